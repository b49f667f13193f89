// Package requests declares the JSON write payloads of the API and their
// validation rules. Create payloads use plain fields; update payloads use
// pointers so that only supplied fields are validated and applied.
package requests

// Credentials is the body of POST /api/login_check.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateClient struct {
	CompanyName string  `json:"companyName" validate:"required,max=75"`
	Address     string  `json:"address" validate:"required,max=255"`
	SiretNumber string  `json:"siretNumber" validate:"required,max=45"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitnil,max=20"`
}

type UpdateClient struct {
	CompanyName *string `json:"companyName" validate:"omitnil,required,max=75"`
	Address     *string `json:"address" validate:"omitnil,required,max=255"`
	SiretNumber *string `json:"siretNumber" validate:"omitnil,required,max=45"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitnil,max=20"`
}

type CreateProduct struct {
	Name            string  `json:"name" validate:"required,max=150"`
	Brand           string  `json:"brand" validate:"required,max=45"`
	Price           string  `json:"price" validate:"required,max=15"`
	Stock           int     `json:"stock" validate:"gte=0"`
	Description     string  `json:"description" validate:"required"`
	ImageURL        string  `json:"imageUrl" validate:"required,url"`
	OperatingSystem string  `json:"operatingSystem" validate:"required,max=45"`
	StorageCapacity *string `json:"storageCapacity" validate:"omitnil,max=15"`
	ScreenSize      *string `json:"screenSize" validate:"omitnil,max=15"`
	PhotoResolution *string `json:"photoResolution" validate:"omitnil,max=15"`
	Weight          *string `json:"weight" validate:"omitnil,max=15"`
}

type UpdateProduct struct {
	Name            *string `json:"name" validate:"omitnil,required,max=150"`
	Brand           *string `json:"brand" validate:"omitnil,required,max=45"`
	Price           *string `json:"price" validate:"omitnil,required,max=15"`
	Stock           *int    `json:"stock" validate:"omitnil,gte=0"`
	Description     *string `json:"description" validate:"omitnil,required"`
	ImageURL        *string `json:"imageUrl" validate:"omitnil,required,url"`
	OperatingSystem *string `json:"operatingSystem" validate:"omitnil,required,max=45"`
	StorageCapacity *string `json:"storageCapacity" validate:"omitnil,max=15"`
	ScreenSize      *string `json:"screenSize" validate:"omitnil,max=15"`
	PhotoResolution *string `json:"photoResolution" validate:"omitnil,max=15"`
	Weight          *string `json:"weight" validate:"omitnil,max=15"`
}

// CreateUser carries roles and clientId, which the user service may
// override depending on the caller.
type CreateUser struct {
	Email       string   `json:"email" validate:"required,email,max=180"`
	Password    string   `json:"password" validate:"required,min=6,max=72"`
	FirstName   string   `json:"firstName" validate:"required,max=25"`
	LastName    string   `json:"lastName" validate:"required,max=45"`
	PhoneNumber *string  `json:"phoneNumber" validate:"omitnil,max=20"`
	ClientID    *uint    `json:"clientId"`
	Roles       []string `json:"roles" validate:"omitempty,unique,dive,oneof=ROLE_USER ROLE_ADMIN ROLE_SUPER_ADMIN"`
}

type UpdateUser struct {
	Email       *string  `json:"email" validate:"omitnil,required,email,max=180"`
	Password    *string  `json:"password" validate:"omitnil,min=6,max=72"`
	FirstName   *string  `json:"firstName" validate:"omitnil,required,max=25"`
	LastName    *string  `json:"lastName" validate:"omitnil,required,max=45"`
	PhoneNumber *string  `json:"phoneNumber" validate:"omitnil,max=20"`
	ClientID    *uint    `json:"clientId"`
	Roles       []string `json:"roles" validate:"omitempty,unique,dive,oneof=ROLE_USER ROLE_ADMIN ROLE_SUPER_ADMIN"`
}
