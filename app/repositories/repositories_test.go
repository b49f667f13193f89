package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/internal/testkit"
	"github.com/bilemo/api/pkg/auth"
)

func principal(u *models.User) *auth.Principal {
	p := u.Principal()
	return &p
}

func TestLinkedClientFiltersUsers(t *testing.T) {
	db := testkit.NewDB(t)
	c := testkit.Seed(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users, pagination, err := repo.List(ctx, principal(c.AcmeAdmin), 1, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pagination.Total)
	for _, u := range users {
		require.NotNil(t, u.ClientID)
		assert.Equal(t, c.Acme.ID, *u.ClientID)
		require.NotNil(t, u.Client)
		assert.Equal(t, "Acme", u.Client.CompanyName)
	}

	_, err = repo.Find(ctx, principal(c.AcmeAdmin), c.GlobexUser.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	found, err := repo.Find(ctx, principal(c.AcmeAdmin), c.AcmeUser.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@acme.test", found.Email)
}

func TestLinkedClientSkipsSuperAdminAndUnlinked(t *testing.T) {
	db := testkit.NewDB(t)
	c := testkit.Seed(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, pagination, err := repo.List(ctx, principal(c.SuperAdmin), 1, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 5, pagination.Total)

	loner := testkit.CreateUser(t, db, "loner@bilemo.test", nil, auth.RoleAdmin)
	_, pagination, err = repo.List(ctx, principal(loner), 1, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 6, pagination.Total)

	_, pagination, err = repo.List(ctx, nil, 1, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 6, pagination.Total)
}

func TestLinkedClientFiltersClients(t *testing.T) {
	db := testkit.NewDB(t)
	c := testkit.Seed(t, db)
	repo := NewClientRepository(db)
	ctx := context.Background()

	clients, _, err := repo.List(ctx, principal(c.GlobexUser), 1, 30)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, c.Globex.ID, clients[0].ID)

	_, err = repo.Find(ctx, principal(c.GlobexAdmin), c.Acme.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	acme, err := repo.Find(ctx, principal(c.SuperAdmin), c.Acme.ID)
	require.NoError(t, err)
	assert.Len(t, acme.Users, 2)
}

func TestClientDeleteDetachesUsers(t *testing.T) {
	db := testkit.NewDB(t)
	c := testkit.Seed(t, db)
	repo := NewClientRepository(db)

	require.NoError(t, repo.Delete(context.Background(), c.Acme.ID))

	var user models.User
	require.NoError(t, db.First(&user, c.AcmeUser.ID).Error)
	assert.Nil(t, user.ClientID)

	ok, err := repo.Exists(context.Background(), c.Acme.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUniquenessChecks(t *testing.T) {
	db := testkit.NewDB(t)
	c := testkit.Seed(t, db)
	ctx := context.Background()

	users := NewUserRepository(db)
	taken, err := users.EmailTaken(ctx, "user@acme.test", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = users.EmailTaken(ctx, "user@acme.test", c.AcmeUser.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	products := NewProductRepository(db)
	taken, err = products.SlugTaken(ctx, "galaxy-s21", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	clients := NewClientRepository(db)
	taken, err = clients.IdentityTaken(ctx, "Acme", "1 Acme Road", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = clients.IdentityTaken(ctx, "Acme", "elsewhere", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestProductPagination(t *testing.T) {
	db := testkit.NewDB(t)
	for _, name := range []string{"A1", "A2", "A3"} {
		testkit.CreateProduct(t, db, name)
	}
	repo := NewProductRepository(db)

	products, pagination, err := repo.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "a3", products[0].Slug)
	assert.Equal(t, 2, pagination.LastPage)
}
