package seeders

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/auth"
)

// DemoPassword is the plain password of every seeded account.
const DemoPassword = "password"

var demoClients = []models.Client{
	{CompanyName: "Phone Store", Address: "12 rue de la Paix, 75002 Paris", SiretNumber: "41234567800011"},
	{CompanyName: "Mobile Market", Address: "3 quai Saint-Antoine, 69002 Lyon", SiretNumber: "52345678900022"},
}

var demoProducts = []models.Product{
	{Name: "Galaxy S21", Brand: "Samsung", Price: "859.00", Stock: 120, OperatingSystem: "Android 11", Description: "6.2-inch Dynamic AMOLED phone."},
	{Name: "iPhone 12 Pro", Brand: "Apple", Price: "1159.00", Stock: 80, OperatingSystem: "iOS 14", Description: "6.1-inch Super Retina XDR phone."},
	{Name: "Pixel 5", Brand: "Google", Price: "629.00", Stock: 45, OperatingSystem: "Android 11", Description: "6-inch OLED phone."},
	{Name: "Xperia 1 III", Brand: "Sony", Price: "1299.00", Stock: 20, OperatingSystem: "Android 11", Description: "6.5-inch 4K OLED phone."},
	{Name: "Redmi Note 10", Brand: "Xiaomi", Price: "199.90", Stock: 300, OperatingSystem: "Android 11", Description: "6.43-inch AMOLED phone."},
}

func init() {
	Register("clients", seedClients)
	Register("users", seedUsers)
	Register("products", seedProducts)
}

func seedClients(db *gorm.DB) error {
	for _, c := range demoClients {
		err := db.Where(models.Client{CompanyName: c.CompanyName, Address: c.Address}).
			FirstOrCreate(&c).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	if err := firstOrCreateUser(db, models.User{
		Email:     "superadmin@bilemo.test",
		Roles:     models.Roles{auth.RoleSuperAdmin},
		Password:  hash,
		FirstName: "Bile",
		LastName:  "Mo",
	}); err != nil {
		return err
	}

	for i, dc := range demoClients {
		var client models.Client
		if err := db.Where(models.Client{CompanyName: dc.CompanyName, Address: dc.Address}).First(&client).Error; err != nil {
			return err
		}

		accounts := []models.User{
			{Email: fmt.Sprintf("admin@client%d.test", i+1), Roles: models.Roles{auth.RoleAdmin}, FirstName: "Admin", LastName: client.CompanyName},
			{Email: fmt.Sprintf("user1@client%d.test", i+1), Roles: models.Roles{auth.RoleUser}, FirstName: "First", LastName: "Customer"},
			{Email: fmt.Sprintf("user2@client%d.test", i+1), Roles: models.Roles{auth.RoleUser}, FirstName: "Second", LastName: "Customer"},
		}
		for _, u := range accounts {
			u.ClientID = &client.ID
			u.Password = hash
			if err := firstOrCreateUser(db, u); err != nil {
				return err
			}
		}
	}
	return nil
}

func firstOrCreateUser(db *gorm.DB, u models.User) error {
	return db.Where(models.User{Email: u.Email}).FirstOrCreate(&u).Error
}

func seedProducts(db *gorm.DB) error {
	for _, p := range demoProducts {
		err := db.Where(models.Product{Name: p.Name}).FirstOrCreate(&p).Error
		if err != nil {
			return err
		}
	}
	return nil
}
