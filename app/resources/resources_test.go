package resources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/resource"
)

func encode(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestUserGroupsNeverExposePassword(t *testing.T) {
	u := models.User{ID: 3, Email: "a@b.c", Password: "$2a$hash", FirstName: "A", LastName: "B"}

	list := encode(t, UserListItem(u))
	assert.NotContains(t, list, "password")
	assert.NotContains(t, list, "email")
	assert.Nil(t, list["client"])
	assert.Equal(t, []any{"ROLE_USER"}, list["roles"])

	item := encode(t, UserItem(u))
	assert.NotContains(t, item, "password")
	assert.Equal(t, "a@b.c", item["email"])
}

func TestClientGroups(t *testing.T) {
	c := models.Client{
		ID:          1,
		CompanyName: "Acme",
		Address:     "1 Acme Road",
		SiretNumber: "123",
		Users:       []models.User{{ID: 7, FirstName: "A", LastName: "B", Email: "hidden@acme.test"}},
	}

	assert.Equal(t, map[string]any{"id": 1.0, "companyName": "Acme"}, encode(t, ClientListItem(c)))

	item := encode(t, ClientItem(c))
	users := item["users"].([]any)
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "email")
	assert.Equal(t, "A", users[0].(map[string]any)["firstName"])
}

func TestEmptyCollectionEncodesAsArray(t *testing.T) {
	b, err := json.Marshal(resource.Collection([]models.Product(nil), Product))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
