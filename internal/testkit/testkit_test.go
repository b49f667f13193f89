package testkit

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffJSONIsSubsetMatch(t *testing.T) {
	exp := map[string]any{"status": 200.0, "data": map[string]any{"email": "a@b.c"}}
	act := map[string]any{"status": 200.0, "data": map[string]any{"email": "a@b.c", "id": 1.0}}
	assert.Empty(t, DiffJSON("", exp, act))

	act["status"] = 404.0
	assert.Len(t, DiffJSON("", exp, act), 1)

	assert.NotEmpty(t, DiffJSON("", []any{1.0}, []any{1.0, 2.0}))
}

func TestLoadScenarioArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
	  {"name": "list", "requestUrl": "/api/users", "expectedCode": 200},
	  {"name": "create", "requestMethod": "POST", "requestUrl": "/api/users", "requestFileName": "create.json", "expectedCode": 201}
	]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "create.json"), []byte(`{"email":"x@y.z"}`), 0o644))

	scenarios, err := LoadScenarioArray(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "GET", scenarios[0].RequestMethod)

	body, err := scenarios[1].requestBody()
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"x@y.z"}`, string(body))
}

func TestLoadScenarioArrayRejectsMissingCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"x","requestUrl":"/"}]`), 0o644))

	_, err := LoadScenarioArray(path)
	assert.Error(t, err)
}

func TestRunnerSendsToken(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"data":{"ok":true,"extra":1}}`))
	})

	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
	  {"name": "with token", "actingAs": "alice", "requestUrl": "/", "expectedCode": 200, "expectedBody": {"data": {"ok": true}}}
	]`), 0o644))

	r := &Runner{Handler: h, Tokens: map[string]string{"alice": "abc"}}
	r.RunFile(t, path)
}

func TestSeedCatalog(t *testing.T) {
	db := NewDB(t)
	c := Seed(t, db)

	assert.NotZero(t, c.Acme.ID)
	assert.Nil(t, c.SuperAdmin.ClientID)
	require.NotNil(t, c.AcmeUser.ClientID)
	assert.Equal(t, c.Acme.ID, *c.AcmeUser.ClientID)
	assert.Equal(t, "galaxy-s21", c.Phone.Slug)
	assert.NotEmpty(t, Token(t, c.AcmeAdmin))
}
