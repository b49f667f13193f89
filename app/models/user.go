package models

import "github.com/bilemo/api/pkg/auth"

// User belongs to at most one Client. Password holds a bcrypt hash and is
// never serialised.
type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ClientID    *uint   `gorm:"index" json:"clientId"`
	Client      *Client `gorm:"constraint:OnDelete:SET NULL" json:"client,omitempty"`
	Email       string  `gorm:"size:180;not null;uniqueIndex" json:"email"`
	Roles       Roles   `gorm:"not null" json:"roles"`
	Password    string  `gorm:"size:255;not null" json:"-"`
	FirstName   string  `gorm:"size:25;not null" json:"firstName"`
	LastName    string  `gorm:"size:45;not null" json:"lastName"`
	PhoneNumber *string `gorm:"size:20" json:"phoneNumber"`
}

func (User) TableName() string { return "user" }

// EffectiveRoles returns the stored roles plus the implicit ROLE_USER.
func (u *User) EffectiveRoles() []string {
	return auth.Normalize(u.Roles)
}

// Principal describes u as an authenticated caller. Client must be loaded
// for ClientName to be filled.
func (u *User) Principal() auth.Principal {
	p := auth.Principal{
		UserID:   u.ID,
		Email:    u.Email,
		Roles:    u.EffectiveRoles(),
		ClientID: u.ClientID,
	}
	if u.Client != nil {
		name := u.Client.CompanyName
		p.ClientName = &name
	}
	return p
}
