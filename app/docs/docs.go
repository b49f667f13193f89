// Package docs describes the HTTP API as an OpenAPI 3 document, served on
// /api/docs.json and /api/docs.yaml and printed by `bilemo docs`.
package docs

import (
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/bilemo/api/config"
	"github.com/bilemo/api/pkg/auth"
)

const (
	TagAuthentication = "Authentication"
	TagProduct        = "Product"
	TagClient         = "Client"
	TagUser           = "User"
	TagSystem         = "System"
)

// SecurityScheme is the name of the bearer JWT scheme.
const SecurityScheme = "bearerAuth"

// public overrides the document-wide bearer requirement.
var public = &openapi3.SecurityRequirements{{}}

// Build returns the document for every route of the API.
func Build() *openapi3.T {
	d := &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:   "BileMo API",
			Version: "1.0.0",
			Description: "Catalogue of mobile phones for BileMo's B2B clients. " +
				"Client and user data is scoped to the caller's client unless the caller is a super admin.",
		},
		Servers: openapi3.Servers{{URL: config.Get("APP_URL", "http://localhost:"+config.AppPort())}},
		Tags: openapi3.Tags{
			{Name: TagAuthentication},
			{Name: TagProduct, Description: "Shared phone catalogue."},
			{Name: TagClient, Description: "Companies using the API."},
			{Name: TagUser, Description: "Users attached to a client."},
			{Name: TagSystem},
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
			SecuritySchemes: openapi3.SecuritySchemes{
				SecurityScheme: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
		Security: openapi3.SecurityRequirements{{SecurityScheme: []string{}}},
	}

	s := registerSchemas(d)
	authentication(d, s)
	products(d, s)
	clients(d, s)
	users(d, s)
	system(d)
	return d
}

func add(d *openapi3.T, method, path string, op *openapi3.Operation) {
	item := d.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		d.Paths.Set(path, item)
	}
	item.SetOperation(method, op)
}

func operation(d *openapi3.T, method, path string) *openapi3.Operation {
	if item := d.Paths.Value(path); item != nil {
		return item.GetOperation(method)
	}
	return nil
}

// component registers schema under name and returns a reference to it.
func component(d *openapi3.T, name string, schema *openapi3.Schema) *openapi3.SchemaRef {
	d.Components.Schemas[name] = schema.NewRef()
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schema)
}

// schemas holds references to the registered component schemas.
type schemas struct {
	credentials, token, errorBody, validation, pagination, me *openapi3.SchemaRef

	product, productWrite, productPatch              *openapi3.SchemaRef
	clientList, clientItem, clientWrite, clientPatch *openapi3.SchemaRef
	userList, userItem, userWrite, userPatch         *openapi3.SchemaRef
}

type fields map[string]*openapi3.SchemaRef

func object(props fields, required ...string) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Properties = openapi3.Schemas(props)
	s.Required = required
	return s
}

func arrayOf(item *openapi3.SchemaRef) *openapi3.Schema {
	s := openapi3.NewArraySchema()
	s.Items = item
	return s
}

func str(max int64) *openapi3.SchemaRef {
	return openapi3.NewStringSchema().WithMaxLength(max).NewRef()
}

func text() *openapi3.SchemaRef    { return openapi3.NewStringSchema().NewRef() }
func integer() *openapi3.SchemaRef { return openapi3.NewIntegerSchema().NewRef() }

func nullable(s *openapi3.SchemaRef) *openapi3.SchemaRef {
	s.Value.Nullable = true
	return s
}

func readOnly(s *openapi3.Schema) *openapi3.SchemaRef {
	s.ReadOnly = true
	return s.NewRef()
}

func readOnlyID() *openapi3.SchemaRef { return readOnly(openapi3.NewIntegerSchema()) }

func clientRef() *openapi3.SchemaRef {
	return object(fields{
		"id":          readOnlyID(),
		"companyName": text(),
	}).NewRef()
}

func roles() *openapi3.SchemaRef {
	enum := make([]any, len(auth.AllRoles))
	for i, r := range auth.AllRoles {
		enum[i] = r
	}
	return arrayOf(openapi3.NewStringSchema().WithEnum(enum...).NewRef()).NewRef()
}

func registerSchemas(d *openapi3.T) schemas {
	var s schemas

	username, password := openapi3.NewStringSchema(), openapi3.NewStringSchema()
	username.Default = "superadmin@bilemo.test"
	password.Default = "password"
	s.credentials = component(d, "Credentials", object(fields{
		"username": username.NewRef(),
		"password": password.NewRef(),
	}, "username", "password"))
	s.token = component(d, "Token", object(fields{
		"token": readOnly(openapi3.NewStringSchema()),
	}))
	s.errorBody = component(d, "Error", object(fields{
		"status":  integer(),
		"message": text(),
	}))
	errs := openapi3.NewObjectSchema()
	errs.Description = "Field name to message."
	s.validation = component(d, "ValidationError", object(fields{
		"status":  integer(),
		"message": text(),
		"errors":  errs.NewRef(),
	}))
	s.pagination = component(d, "Pagination", object(fields{
		"total":        integer(),
		"per_page":     integer(),
		"current_page": integer(),
		"last_page":    integer(),
	}))

	productFields := fields{
		"name":            str(150),
		"brand":           str(45),
		"price":           str(15),
		"stock":           openapi3.NewIntegerSchema().WithMin(0).NewRef(),
		"description":     text(),
		"imageUrl":        openapi3.NewStringSchema().WithFormat("uri").NewRef(),
		"operatingSystem": str(45),
		"storageCapacity": nullable(str(15)),
		"screenSize":      nullable(str(15)),
		"photoResolution": nullable(str(15)),
		"weight":          nullable(str(15)),
	}
	productRequired := []string{"name", "brand", "price", "description", "imageUrl", "operatingSystem"}
	s.productWrite = component(d, "Product-write", object(productFields, productRequired...))
	s.productPatch = component(d, "Product-patch", object(productFields))
	s.product = component(d, "Product", object(merge(productFields, fields{
		"id":   readOnlyID(),
		"slug": readOnly(openapi3.NewStringSchema()),
	})))

	clientFields := fields{
		"companyName": str(75),
		"address":     str(255),
		"siretNumber": str(45),
		"phoneNumber": nullable(str(20)),
	}
	s.clientWrite = component(d, "Client-write", object(clientFields, "companyName", "address", "siretNumber"))
	s.clientPatch = component(d, "Client-patch", object(clientFields))
	s.clientList = component(d, "Client-list", clientRef().Value)
	s.clientItem = component(d, "Client-item", object(merge(clientFields, fields{
		"id": readOnlyID(),
		"users": arrayOf(object(fields{
			"id":        readOnlyID(),
			"firstName": text(),
			"lastName":  text(),
			"roles":     roles(),
		}).NewRef()).NewRef(),
	})))

	secret := openapi3.NewStringSchema().WithMinLength(6).WithMaxLength(72)
	secret.WriteOnly = true
	clientID := openapi3.NewIntegerSchema().WithNullable()
	clientID.Description = "Only applied when the caller is a super admin; otherwise the caller's client is used."
	userFields := fields{
		"email":       openapi3.NewStringSchema().WithFormat("email").WithMaxLength(180).NewRef(),
		"password":    secret.NewRef(),
		"firstName":   str(25),
		"lastName":    str(45),
		"phoneNumber": nullable(str(20)),
		"clientId":    clientID.NewRef(),
		"roles":       roles(),
	}
	s.userWrite = component(d, "User-write", object(userFields, "email", "password", "firstName", "lastName"))
	s.userPatch = component(d, "User-patch", object(userFields))
	userList := fields{
		"id":        readOnlyID(),
		"firstName": text(),
		"lastName":  text(),
		"client":    nullable(clientRef()),
		"roles":     roles(),
	}
	s.userList = component(d, "User-list", object(userList))
	s.userItem = component(d, "User-item", object(merge(userList, fields{
		"phoneNumber": nullable(text()),
		"email":       openapi3.NewStringSchema().WithFormat("email").NewRef(),
	})))

	s.me = component(d, "Me", object(fields{
		"id":         integer(),
		"email":      openapi3.NewStringSchema().WithFormat("email").NewRef(),
		"roles":      roles(),
		"clientId":   nullable(integer()),
		"clientName": nullable(text()),
	}))
	return s
}

func merge(maps ...fields) fields {
	out := fields{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// envelope wraps data in the {"status", "data"} success body.
func envelope(data *openapi3.SchemaRef) *openapi3.SchemaRef {
	return object(fields{
		"status": integer(),
		"data":   data,
	}).NewRef()
}

func page(item, pagination *openapi3.SchemaRef) *openapi3.SchemaRef {
	return envelope(object(fields{
		"items":      arrayOf(item).NewRef(),
		"pagination": pagination,
	}).NewRef())
}

func idParam() *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewPathParameter("id").
		WithSchema(openapi3.NewIntegerSchema().WithMin(1))}
}

func pageParams() openapi3.Parameters {
	pageNum, perPage := openapi3.NewIntegerSchema(), openapi3.NewIntegerSchema()
	pageNum.Default = 1
	perPage.Default = 30
	return openapi3.Parameters{
		{Value: openapi3.NewQueryParameter("page").WithDescription("The collection page number").WithSchema(pageNum)},
		{Value: openapi3.NewQueryParameter("per_page").WithDescription("Items per page (max 100)").WithSchema(perPage)},
	}
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	r := openapi3.NewResponse().WithDescription(description)
	if schema != nil {
		r = r.WithJSONSchemaRef(schema)
	}
	return &openapi3.ResponseRef{Value: r}
}

func jsonBody(schema *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schema)}
}

type codes map[int]*openapi3.ResponseRef

func responses(rs codes) *openapi3.Responses {
	out := &openapi3.Responses{}
	for code, r := range rs {
		out.Set(strconv.Itoa(code), r)
	}
	return out
}

// failures adds the failure responses shared by protected operations.
func (s schemas) failures(rs codes, statuses ...int) *openapi3.Responses {
	for _, code := range statuses {
		switch code {
		case http.StatusUnprocessableEntity:
			rs[code] = jsonResponse("Unprocessable entity", s.validation)
		case http.StatusBadRequest:
			rs[code] = jsonResponse("Invalid input", s.errorBody)
		case http.StatusUnauthorized:
			rs[code] = jsonResponse("Missing, invalid or expired token", s.errorBody)
		case http.StatusForbidden:
			rs[code] = jsonResponse("Access Denied.", s.errorBody)
		case http.StatusNotFound:
			rs[code] = jsonResponse("Resource not found", s.errorBody)
		}
	}
	return responses(rs)
}

func authentication(d *openapi3.T, s schemas) {
	add(d, http.MethodPost, "/api/login_check", &openapi3.Operation{
		Tags:        []string{TagAuthentication},
		Summary:     "Get JWT token to login.",
		OperationID: "postCredentialsItem",
		RequestBody: &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
			WithDescription("Create new JWT Token").
			WithRequired(true).
			WithJSONSchemaRef(s.credentials)},
		Responses: s.failures(codes{
			http.StatusOK: jsonResponse("Get JWT token", s.token),
		}, http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity),
		Security: public,
	})
	add(d, http.MethodGet, "/api/me", &openapi3.Operation{
		Tags:        []string{TagAuthentication},
		Summary:     "Describe the authenticated caller.",
		OperationID: "getMeItem",
		Responses: s.failures(codes{
			http.StatusOK: jsonResponse("Caller identity", envelope(s.me)),
		}, http.StatusUnauthorized),
	})
}

// crud describes the five collection and item operations of a resource.
type crud struct {
	tag, name, path string

	list, item, write, patch *openapi3.SchemaRef

	listRole, writeRole, deleteRole string
}

func (c crud) add(d *openapi3.T, s schemas) {
	itemPath := c.path + "/{id}"
	add(d, http.MethodGet, c.path, &openapi3.Operation{
		Tags:        []string{c.tag},
		Summary:     "Retrieves the collection of " + c.name + " resources.",
		Description: "Requires " + c.listRole + ".",
		OperationID: "get" + c.name + "Collection",
		Parameters:  pageParams(),
		Responses: s.failures(codes{
			http.StatusOK: jsonResponse(c.name+" collection", page(c.list, s.pagination)),
		}, http.StatusUnauthorized, http.StatusForbidden),
	})
	add(d, http.MethodPost, c.path, &openapi3.Operation{
		Tags:        []string{c.tag},
		Summary:     "Creates a " + c.name + " resource.",
		Description: "Requires " + c.writeRole + ".",
		OperationID: "post" + c.name + "Collection",
		RequestBody: jsonBody(c.write),
		Responses: s.failures(codes{
			http.StatusCreated: jsonResponse(c.name+" resource created", envelope(c.item)),
		}, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity),
	})
	add(d, http.MethodGet, itemPath, &openapi3.Operation{
		Tags:        []string{c.tag},
		Summary:     "Retrieves a " + c.name + " resource.",
		Description: "Requires " + c.listRole + ".",
		OperationID: "get" + c.name + "Item",
		Parameters:  openapi3.Parameters{idParam()},
		Responses: s.failures(codes{
			http.StatusOK: jsonResponse(c.name+" resource", envelope(c.item)),
		}, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound),
	})
	add(d, http.MethodPatch, itemPath, &openapi3.Operation{
		Tags:        []string{c.tag},
		Summary:     "Updates the " + c.name + " resource.",
		Description: "Requires " + c.listRole + ". Only the supplied fields change.",
		OperationID: "patch" + c.name + "Item",
		Parameters:  openapi3.Parameters{idParam()},
		RequestBody: jsonBody(c.patch),
		Responses: s.failures(codes{
			http.StatusOK: jsonResponse(c.name+" resource updated", envelope(c.item)),
		}, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusUnprocessableEntity),
	})
	add(d, http.MethodDelete, itemPath, &openapi3.Operation{
		Tags:        []string{c.tag},
		Summary:     "Removes the " + c.name + " resource.",
		Description: "Requires " + c.deleteRole + ".",
		OperationID: "delete" + c.name + "Item",
		Parameters:  openapi3.Parameters{idParam()},
		Responses: s.failures(codes{
			http.StatusNoContent: jsonResponse(c.name+" resource deleted", nil),
		}, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound),
	})
}

func products(d *openapi3.T, s schemas) {
	crud{
		tag: TagProduct, name: "Product", path: "/api/products",
		list: s.product, item: s.product, write: s.productWrite, patch: s.productPatch,
		listRole: auth.RoleUser, writeRole: auth.RoleSuperAdmin, deleteRole: auth.RoleSuperAdmin,
	}.add(d, s)

	// Only super admins edit the catalogue, unlike the read role above.
	operation(d, http.MethodPatch, "/api/products/{id}").Description =
		"Requires " + auth.RoleSuperAdmin + ". Only the supplied fields change."

	image := openapi3.NewStringSchema().WithFormat("binary")
	upload := object(fields{"image": image.NewRef()}, "image")
	add(d, http.MethodPost, "/api/products/{id}/image", &openapi3.Operation{
		Tags:        []string{TagProduct},
		Summary:     "Uploads the product image.",
		Description: "Requires " + auth.RoleSuperAdmin + ". Accepts jpg, png and webp files.",
		OperationID: "postProductImage",
		Parameters:  openapi3.Parameters{idParam()},
		RequestBody: &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchemaRef(upload.NewRef(), []string{"multipart/form-data"}))},
		Responses: s.failures(codes{
			http.StatusOK:                    jsonResponse("Product with its new imageUrl", envelope(s.product)),
			http.StatusRequestEntityTooLarge: jsonResponse("Image too large", s.errorBody),
		}, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusUnprocessableEntity),
	})
}

func clients(d *openapi3.T, s schemas) {
	crud{
		tag: TagClient, name: "Client", path: "/api/clients",
		list: s.clientList, item: s.clientItem, write: s.clientWrite, patch: s.clientPatch,
		listRole: auth.RoleAdmin, writeRole: auth.RoleSuperAdmin, deleteRole: auth.RoleSuperAdmin,
	}.add(d, s)
}

func users(d *openapi3.T, s schemas) {
	crud{
		tag: TagUser, name: "User", path: "/api/users",
		list: s.userList, item: s.userItem, write: s.userWrite, patch: s.userPatch,
		listRole: auth.RoleAdmin, writeRole: auth.RoleAdmin, deleteRole: auth.RoleAdmin,
	}.add(d, s)

	for _, method := range []string{http.MethodGet, http.MethodPatch} {
		operation(d, method, "/api/users/{id}").Description = "Requires " + auth.RoleAdmin + ", or the user itself."
	}
}

func system(d *openapi3.T) {
	plain := func(rs map[int]string) *openapi3.Responses {
		out := codes{}
		for code, desc := range rs {
			out[code] = jsonResponse(desc, nil)
		}
		return responses(out)
	}

	for _, format := range []string{"json", "yaml"} {
		add(d, http.MethodGet, "/api/docs."+format, &openapi3.Operation{
			Tags:        []string{TagSystem},
			Summary:     "This document, as " + format + ".",
			OperationID: "getDocs" + format,
			Responses:   plain(map[int]string{http.StatusOK: "OpenAPI document"}),
			Security:    public,
		})
	}
	query := object(fields{
		"query":         text(),
		"variables":     openapi3.NewObjectSchema().NewRef(),
		"operationName": text(),
	}, "query")
	add(d, http.MethodPost, "/graphql", &openapi3.Operation{
		Tags:        []string{TagSystem},
		Summary:     "Read-only GraphQL access to products and the caller.",
		OperationID: "postGraphql",
		RequestBody: jsonBody(query.NewRef()),
		Responses:   plain(map[int]string{http.StatusOK: "GraphQL result"}),
	})
	add(d, http.MethodGet, "/health", &openapi3.Operation{
		Tags:        []string{TagSystem},
		Summary:     "Liveness and database connectivity.",
		OperationID: "getHealth",
		Responses: plain(map[int]string{
			http.StatusOK:                 "Healthy",
			http.StatusServiceUnavailable: "Database unreachable",
		}),
		Security: public,
	})
	add(d, http.MethodGet, "/metrics", &openapi3.Operation{
		Tags:        []string{TagSystem},
		Summary:     "Prometheus metrics.",
		OperationID: "getMetrics",
		Responses:   plain(map[int]string{http.StatusOK: "Prometheus text exposition"}),
		Security:    public,
	})
}
