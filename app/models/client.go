package models

// Client is a tenant: a reseller company whose staff are Users.
type Client struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	CompanyName string  `gorm:"size:75;not null;uniqueIndex:uniq_client_identity" json:"companyName"`
	Address     string  `gorm:"size:255;not null;uniqueIndex:uniq_client_identity" json:"address"`
	SiretNumber string  `gorm:"size:45;not null" json:"siretNumber"`
	PhoneNumber *string `gorm:"size:20" json:"phoneNumber"`
	Users       []User  `gorm:"foreignKey:ClientID" json:"users,omitempty"`
}

func (Client) TableName() string { return "client" }
