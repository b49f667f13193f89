package ctx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bilemo/api/pkg/auth"
	appctx "github.com/bilemo/api/pkg/ctx"
)

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.JSON(http.StatusOK, map[string]any{"ok": true})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})(rec, req)

	var body struct {
		Status int            `json:"status"`
		Data   map[string]int `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusOK || body.Data["id"] != 1 {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestParamUint(t *testing.T) {
	cases := map[string]bool{"7": true, "0": false, "-1": false, "abc": false}
	for raw, want := range cases {
		r := chi.NewRouter()
		r.Get("/users/{id}", appctx.Wrap(func(c *appctx.Context) {
			id, ok := c.ParamUint("id")
			if ok != want {
				t.Errorf("%q: expected ok=%v, got %v", raw, want, ok)
			}
			if ok && id != 7 {
				t.Errorf("expected 7, got %d", id)
			}
			c.NoContent()
		}))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/"+raw, nil))
	}
}

func TestPageParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&per_page=500", nil)
	appctx.Wrap(func(c *appctx.Context) {
		page, perPage := c.PageParams()
		if page != 3 || perPage != 100 {
			t.Errorf("expected 3/100, got %d/%d", page, perPage)
		}
	})(httptest.NewRecorder(), req)
}

func TestPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		if c.Principal() != nil {
			t.Error("expected no principal on an anonymous request")
		}
	})(httptest.NewRecorder(), req)

	p := &auth.Principal{UserID: 4, Roles: []string{auth.RoleAdmin}}
	req = req.WithContext(auth.WithPrincipal(context.Background(), p))
	appctx.Wrap(func(c *appctx.Context) {
		if got := c.Principal(); got == nil || got.UserID != 4 {
			t.Errorf("expected principal 4, got %+v", got)
		}
	})(httptest.NewRecorder(), req)
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"name":"John","email":"john@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name  string `json:"name" validate:"required"`
			Email string `json:"email" validate:"required,email"`
		}
		if !c.BindJSON(&input) {
			t.Error("expected BindJSON to succeed")
			return
		}
		if input.Name != "John" {
			t.Errorf("expected John, got %s", input.Name)
		}
		c.Success(nil)
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBindJSONInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name" validate:"required"`
		}
		if c.BindJSON(&input) {
			t.Error("expected BindJSON to fail")
		}
	})(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"name":"The name field is required."`) {
		t.Errorf("missing field error: %s", rec.Body.String())
	}
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name"`
		}
		c.BindJSON(&input)
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	var written int
	appctx.Wrap(func(c *appctx.Context) {
		c.NotFound("Resource missing")
		written = c.WrittenStatus()
	})(rec, req)

	if rec.Code != http.StatusNotFound || written != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Resource missing") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
