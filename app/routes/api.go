// Package routes wires repositories, services and controllers together and
// mounts them on the router.
package routes

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/bilemo/api/app/controllers"
	"github.com/bilemo/api/app/docs"
	appgraphql "github.com/bilemo/api/app/graphql"
	"github.com/bilemo/api/app/repositories"
	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/ctx"
	gql "github.com/bilemo/api/pkg/graphql"
	"github.com/bilemo/api/pkg/metrics"
	"github.com/bilemo/api/pkg/middleware"
	"github.com/bilemo/api/pkg/openapi"
	"github.com/bilemo/api/pkg/rbac"
	"github.com/bilemo/api/pkg/router"
	"github.com/bilemo/api/pkg/storage"
)

// App holds the handlers behind the routes.
type App struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Clients  *controllers.ClientController
	Users    *controllers.UserController
	Health   *controllers.HealthController
	GraphQL  graphql.Schema
	Docs     *openapi3.T
}

// New builds the application over db. disk stores product images and may
// be nil, in which case uploads fail.
func New(db *gorm.DB, disk storage.Disk) (*App, error) {
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	productRepo := repositories.NewProductRepository(db)

	productService := services.NewProductService(productRepo, disk)
	schema, err := appgraphql.NewSchema(productService)
	if err != nil {
		return nil, err
	}

	return &App{
		Auth:     controllers.NewAuthController(services.NewAuthService(userRepo)),
		Products: controllers.NewProductController(productService),
		Clients:  controllers.NewClientController(services.NewClientService(clientRepo)),
		Users:    controllers.NewUserController(services.NewUserService(userRepo, clientRepo)),
		Health:   controllers.NewHealthController(pinger(db)),
		GraphQL:  schema,
		Docs:     docs.Build(),
	}, nil
}

func pinger(db *gorm.DB) func(context.Context) error {
	return func(c context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(c)
	}
}

// RegisterAPI mounts every endpoint of a on r.
func RegisterAPI(r *router.Router, a *App) {
	r.Get("/health", "health", ctx.Wrap(a.Health.Check))
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Post("/graphql", "graphql", gql.Handler(a.GraphQL),
		middleware.Authenticate, rbac.HasRole(auth.RoleUser))

	api := r.Group("/api")
	api.Post("/login_check", "auth.login", ctx.Wrap(a.Auth.Login))
	api.Get("/docs.json", "docs.json", openapi.Handler(a.Docs, openapi.JSON))
	api.Get("/docs.yaml", "docs.yaml", openapi.Handler(a.Docs, openapi.YAML))

	secured := api.Group("", middleware.Authenticate)

	user := secured.Group("", rbac.HasRole(auth.RoleUser))
	user.Get("/me", "auth.me", ctx.Wrap(a.Auth.Me))
	user.Get("/products", "products.index", ctx.Wrap(a.Products.Index))
	user.Get("/products/{id}", "products.show", ctx.Wrap(a.Products.Show))

	admin := secured.Group("", rbac.HasRole(auth.RoleAdmin))
	admin.Get("/clients", "clients.index", ctx.Wrap(a.Clients.Index))
	admin.Get("/clients/{id}", "clients.show", ctx.Wrap(a.Clients.Show))
	admin.Patch("/clients/{id}", "clients.update", ctx.Wrap(a.Clients.Update))
	admin.Get("/users", "users.index", ctx.Wrap(a.Users.Index))
	admin.Post("/users", "users.store", ctx.Wrap(a.Users.Store))
	admin.Delete("/users/{id}", "users.destroy", ctx.Wrap(a.Users.Destroy))

	self := secured.Group("", rbac.HasRoleOrSelf("id", auth.RoleAdmin))
	self.Get("/users/{id}", "users.show", ctx.Wrap(a.Users.Show))
	self.Patch("/users/{id}", "users.update", ctx.Wrap(a.Users.Update))

	super := secured.Group("", rbac.HasRole(auth.RoleSuperAdmin))
	super.Post("/products", "products.store", ctx.Wrap(a.Products.Store))
	super.Patch("/products/{id}", "products.update", ctx.Wrap(a.Products.Update))
	super.Delete("/products/{id}", "products.destroy", ctx.Wrap(a.Products.Destroy))
	super.Post("/products/{id}/image", "products.image", ctx.Wrap(a.Products.UploadImage))
	super.Post("/clients", "clients.store", ctx.Wrap(a.Clients.Store))
	super.Delete("/clients/{id}", "clients.destroy", ctx.Wrap(a.Clients.Destroy))
}
