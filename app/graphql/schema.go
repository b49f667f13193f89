// Package graphql exposes the product catalogue and the caller identity as
// a read-only GraphQL schema, served on POST /graphql to any authenticated
// user.
package graphql

import (
	"errors"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/pkg/auth"
	gql "github.com/bilemo/api/pkg/graphql"
	"github.com/bilemo/api/pkg/orm"
	"github.com/bilemo/api/pkg/resource"
)

var errUnauthenticated = errors.New("JWT Token not found")

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":              &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"slug":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"brand":           &graphql.Field{Type: graphql.String},
		"price":           &graphql.Field{Type: graphql.String},
		"stock":           &graphql.Field{Type: graphql.Int},
		"description":     &graphql.Field{Type: graphql.String},
		"imageUrl":        &graphql.Field{Type: graphql.String},
		"operatingSystem": &graphql.Field{Type: graphql.String},
		"storageCapacity": &graphql.Field{Type: graphql.String},
		"screenSize":      &graphql.Field{Type: graphql.String},
		"photoResolution": &graphql.Field{Type: graphql.String},
		"weight":          &graphql.Field{Type: graphql.String},
	},
})

var paginationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Pagination",
	Fields: graphql.Fields{
		"total":        &graphql.Field{Type: graphql.Int},
		"per_page":     &graphql.Field{Type: graphql.Int},
		"current_page": &graphql.Field{Type: graphql.Int},
		"last_page":    &graphql.Field{Type: graphql.Int},
	},
})

var productPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductPage",
	Fields: graphql.Fields{
		"items":      &graphql.Field{Type: graphql.NewList(productType)},
		"pagination": &graphql.Field{Type: paginationType},
	},
})

var meType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Me",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"email":      &graphql.Field{Type: graphql.String},
		"roles":      &graphql.Field{Type: graphql.NewList(graphql.String)},
		"clientId":   &graphql.Field{Type: graphql.Int},
		"clientName": &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the schema on top of the product service.
func NewSchema(products *services.ProductService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: productPageType,
				Args: graphql.FieldConfigArgument{
					"page":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: orm.DefaultPerPage},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, perPage := orm.PageParams(intArg(p, "page"), intArg(p, "perPage"))
					result, err := products.List(p.Context, page, perPage)
					if err != nil {
						return nil, err
					}
					return resource.Map{
						"items":      resource.Collection(result.Items, productNode),
						"pagination": paginationNode(result.Pagination),
					}, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(int)
					if id < 1 {
						return nil, nil
					}
					product, err := products.Find(p.Context, uint(id))
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return productNode(*product), nil
				},
			},
			"me": &graphql.Field{
				Type: meType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					caller, ok := auth.FromContext(p.Context)
					if !ok {
						return nil, errUnauthenticated
					}
					return meNode(caller), nil
				},
			},
		},
	})
	return gql.NewSchema(query)
}

func intArg(p graphql.ResolveParams, name string) string {
	if v, ok := p.Args[name].(int); ok {
		return strconv.Itoa(v)
	}
	return ""
}

// Scalars are flattened to plain values; GraphQL serializers do not follow
// pointers.
func productNode(p models.Product) resource.Map {
	return resource.Map{
		"id":              int(p.ID),
		"name":            p.Name,
		"slug":            p.Slug,
		"brand":           p.Brand,
		"price":           p.Price,
		"stock":           p.Stock,
		"description":     p.Description,
		"imageUrl":        p.ImageURL,
		"operatingSystem": p.OperatingSystem,
		"storageCapacity": deref(p.StorageCapacity),
		"screenSize":      deref(p.ScreenSize),
		"photoResolution": deref(p.PhotoResolution),
		"weight":          deref(p.Weight),
	}
}

func paginationNode(p orm.Pagination) resource.Map {
	return resource.Map{
		"total":        int(p.Total),
		"per_page":     p.PerPage,
		"current_page": p.CurrentPage,
		"last_page":    p.LastPage,
	}
}

func meNode(p *auth.Principal) resource.Map {
	m := resource.Map{
		"id":         int(p.UserID),
		"email":      p.Email,
		"roles":      p.Roles,
		"clientId":   nil,
		"clientName": deref(p.ClientName),
	}
	if p.ClientID != nil {
		m["clientId"] = int(*p.ClientID)
	}
	return m
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
