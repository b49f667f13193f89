package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/internal/testkit"
	"github.com/bilemo/api/pkg/auth"
)

func TestProductSlugFollowsName(t *testing.T) {
	db := testkit.NewDB(t)

	p := testkit.CreateProduct(t, db, "Pro Duct!")
	assert.Equal(t, "pro-duct", p.Slug)

	p.Name = "Écran Géant 6,5\""
	require.NoError(t, db.Save(p).Error)

	var stored models.Product
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, "ecran-geant-6-5", stored.Slug)
}

func TestRolesColumn(t *testing.T) {
	db := testkit.NewDB(t)
	acme := testkit.CreateClient(t, db, "Acme", "1 Acme Road")

	u := testkit.CreateUser(t, db, "a@acme.test", acme, auth.RoleAdmin)

	var stored models.User
	require.NoError(t, db.Preload("Client").First(&stored, u.ID).Error)
	assert.Equal(t, models.Roles{auth.RoleAdmin}, stored.Roles)
	assert.True(t, stored.Roles.Contains(auth.RoleAdmin))
	assert.False(t, stored.Roles.Contains(auth.RoleUser))
	assert.Equal(t, []string{auth.RoleAdmin, auth.RoleUser}, stored.EffectiveRoles())
}

func TestRolesScan(t *testing.T) {
	var r models.Roles
	require.NoError(t, r.Scan(nil))
	assert.Equal(t, models.Roles{}, r)

	require.NoError(t, r.Scan([]byte(`["ROLE_SUPER_ADMIN"]`)))
	assert.Equal(t, models.Roles{"ROLE_SUPER_ADMIN"}, r)

	assert.Error(t, r.Scan(42))
	assert.Error(t, r.Scan("not json"))

	v, err := models.Roles(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestPrincipal(t *testing.T) {
	db := testkit.NewDB(t)
	acme := testkit.CreateClient(t, db, "Acme", "1 Acme Road")
	bound := testkit.CreateUser(t, db, "u@acme.test", acme)
	free := testkit.CreateUser(t, db, "root@bilemo.test", nil, auth.RoleSuperAdmin)

	var u models.User
	require.NoError(t, db.Preload("Client").First(&u, bound.ID).Error)
	p := u.Principal()
	require.NotNil(t, p.ClientID)
	require.NotNil(t, p.ClientName)
	assert.Equal(t, acme.ID, *p.ClientID)
	assert.Equal(t, "Acme", *p.ClientName)
	assert.Equal(t, []string{auth.RoleUser}, p.Roles)

	p = free.Principal()
	assert.Nil(t, p.ClientID)
	assert.Nil(t, p.ClientName)
}
