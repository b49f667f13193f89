package testkit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/auth"
)

// Password is the plain password of every fixture user.
const Password = "secret123"

var (
	hashOnce sync.Once
	hash     string
)

// passwordHash hashes Password once per test binary; bcrypt is slow.
func passwordHash(t testing.TB) string {
	hashOnce.Do(func() {
		h, err := auth.HashPassword(Password)
		require.NoError(t, err)
		hash = h
	})
	return hash
}

// Catalog is the standard fixture set: a super admin without a client and
// two tenants, each with an admin and a plain user.
type Catalog struct {
	Acme, Globex            *models.Client
	SuperAdmin              *models.User
	AcmeAdmin, AcmeUser     *models.User
	GlobexAdmin, GlobexUser *models.User
	Phone                   *models.Product
}

// Seed inserts the standard Catalog into db.
func Seed(t testing.TB, db *gorm.DB) *Catalog {
	t.Helper()

	c := &Catalog{}
	c.Acme = CreateClient(t, db, "Acme", "1 Acme Road")
	c.Globex = CreateClient(t, db, "Globex", "2 Globex Avenue")
	c.SuperAdmin = CreateUser(t, db, "root@bilemo.test", nil, auth.RoleSuperAdmin)
	c.AcmeAdmin = CreateUser(t, db, "admin@acme.test", c.Acme, auth.RoleAdmin)
	c.AcmeUser = CreateUser(t, db, "user@acme.test", c.Acme)
	c.GlobexAdmin = CreateUser(t, db, "admin@globex.test", c.Globex, auth.RoleAdmin)
	c.GlobexUser = CreateUser(t, db, "user@globex.test", c.Globex)
	c.Phone = CreateProduct(t, db, "Galaxy S21")
	return c
}

// CreateClient inserts a client.
func CreateClient(t testing.TB, db *gorm.DB, name, address string) *models.Client {
	t.Helper()
	c := &models.Client{CompanyName: name, Address: address, SiretNumber: "12345678900011"}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateUser inserts a user linked to client (nil for none) with the given
// roles and the fixture Password.
func CreateUser(t testing.TB, db *gorm.DB, email string, client *models.Client, roles ...string) *models.User {
	t.Helper()
	u := &models.User{
		Email:     email,
		Roles:     models.Roles(roles),
		Password:  passwordHash(t),
		FirstName: "Test",
		LastName:  "User",
		Client:    client,
	}
	if client != nil {
		u.ClientID = &client.ID
	}
	require.NoError(t, db.Omit("Client").Create(u).Error)
	return u
}

// CreateProduct inserts a product; its slug derives from name.
func CreateProduct(t testing.TB, db *gorm.DB, name string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:            name,
		Brand:           "Samsung",
		Price:           "859.00",
		Stock:           10,
		Description:     "A phone.",
		OperatingSystem: "Android",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Token issues a JWT for u as the login endpoint would.
func Token(t testing.TB, u *models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(u.Principal())
	require.NoError(t, err)
	return token
}
