package graphql

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilemo/api/app/repositories"
	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/internal/testkit"
	"github.com/bilemo/api/pkg/auth"
)

func run(t *testing.T, ctx context.Context, query string) (map[string]any, *graphql.Result) {
	t.Helper()

	db := testkit.NewDB(t)
	catalog := testkit.Seed(t, db)
	testkit.CreateProduct(t, db, "Pixel 8")

	schema, err := NewSchema(services.NewProductService(repositories.NewProductRepository(db), nil))
	require.NoError(t, err)

	if ctx == nil {
		p := catalog.AcmeAdmin.Principal()
		ctx = auth.WithPrincipal(context.Background(), &p)
	}
	res := graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: ctx})

	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))
	return data, res
}

func TestProductsQuery(t *testing.T) {
	data, res := run(t, nil, `{ products(perPage: 1) { items { name slug } pagination { total last_page } } }`)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	page := data["products"].(map[string]any)
	items := page["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "galaxy-s21", items[0].(map[string]any)["slug"])

	pagination := page["pagination"].(map[string]any)
	assert.EqualValues(t, 2, pagination["total"])
	assert.EqualValues(t, 2, pagination["last_page"])
}

func TestProductQuery(t *testing.T) {
	data, res := run(t, nil, `{ found: product(id: 2) { name storageCapacity } missing: product(id: 99) { name } }`)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	found := data["found"].(map[string]any)
	assert.Equal(t, "Pixel 8", found["name"])
	assert.Nil(t, found["storageCapacity"])
	assert.Nil(t, data["missing"])
}

func TestMeQuery(t *testing.T) {
	data, res := run(t, nil, `{ me { email clientId clientName roles } }`)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	me := data["me"].(map[string]any)
	assert.Equal(t, "admin@acme.test", me["email"])
	assert.EqualValues(t, 1, me["clientId"])
	assert.Equal(t, "Acme", me["clientName"])
}

func TestMeQueryRequiresPrincipal(t *testing.T) {
	_, res := run(t, context.Background(), `{ me { email } }`)
	require.True(t, res.HasErrors())
	assert.Equal(t, errUnauthenticated.Error(), res.Errors[0].Message)
}
