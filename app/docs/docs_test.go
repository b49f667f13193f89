package docs

import (
	"context"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilemo/api/pkg/openapi"
)

// The served document loads back and passes OpenAPI validation.
func TestValidDocument(t *testing.T) {
	for _, format := range []openapi.Format{openapi.JSON, openapi.YAML} {
		raw, err := openapi.Encode(Build(), format)
		require.NoError(t, err)

		doc, err := openapi3.NewLoader().LoadFromData(raw)
		require.NoError(t, err, format)
		require.NoError(t, doc.Validate(context.Background()), format)

		assert.Equal(t, 14, doc.Paths.Len(), format)
		assert.Contains(t, doc.Components.Schemas, "User-write", format)
	}
}

func TestLoginCheckOperation(t *testing.T) {
	d := Build()

	op := operation(d, http.MethodPost, "/api/login_check")
	require.NotNil(t, op)
	assert.Equal(t, "postCredentialsItem", op.OperationID)
	assert.Equal(t, []string{TagAuthentication}, op.Tags)
	assert.Equal(t, "Get JWT token to login.", op.Summary)
	assert.Equal(t, "Create new JWT Token", op.RequestBody.Value.Description)
	assert.Equal(t, "#/components/schemas/Credentials", op.RequestBody.Value.Content.Get("application/json").Schema.Ref)
	assert.Equal(t, "#/components/schemas/Token", op.Responses.Value("200").Value.Content.Get("application/json").Schema.Ref)
	assert.Equal(t, public, op.Security)
}

func TestBearerAuthScheme(t *testing.T) {
	d := Build()

	scheme, ok := d.Components.SecuritySchemes[SecurityScheme]
	require.True(t, ok)
	assert.Equal(t, "http", scheme.Value.Type)
	assert.Equal(t, "bearer", scheme.Value.Scheme)
	assert.Equal(t, "JWT", scheme.Value.BearerFormat)
	assert.Equal(t, openapi3.SecurityRequirements{{SecurityScheme: []string{}}}, d.Security)

	token := d.Components.Schemas["Token"]
	require.NotNil(t, token)
	assert.True(t, token.Value.Properties["token"].Value.ReadOnly)

	credentials := d.Components.Schemas["Credentials"]
	require.NotNil(t, credentials)
	assert.ElementsMatch(t, []string{"username", "password"}, credentials.Value.Required)
}

func TestEveryOperationHasUniqueID(t *testing.T) {
	seen := map[string]string{}
	for path, item := range Build().Paths.Map() {
		for method, op := range item.Operations() {
			where := method + " " + path
			require.NotEmpty(t, op.OperationID, where)
			if prev, dup := seen[op.OperationID]; dup {
				t.Fatalf("operationId %q used by %s and %s", op.OperationID, prev, where)
			}
			seen[op.OperationID] = where
		}
	}
}

func TestWriteSchemasHideServerFields(t *testing.T) {
	schemas := Build().Components.Schemas
	assert.NotContains(t, schemas["Product-write"].Value.Properties, "slug")
	assert.NotContains(t, schemas["Product-write"].Value.Properties, "id")
	assert.NotContains(t, schemas["User-item"].Value.Properties, "password")
	assert.Empty(t, schemas["User-patch"].Value.Required)
	assert.True(t, schemas["User-write"].Value.Properties["password"].Value.WriteOnly)
}
