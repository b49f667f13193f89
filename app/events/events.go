// Package events names the domain events the services fire and registers
// the listeners that react to them.
package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/bilemo/api/pkg/cache"
	"github.com/bilemo/api/pkg/event"
	"github.com/bilemo/api/pkg/logger"
)

const (
	ProductSaved   = "product.saved"
	ProductDeleted = "product.deleted"
	ClientDeleted  = "client.deleted"
	UserCreated    = "user.created"
	UserDeleted    = "user.deleted"
)

// ProductsVersionKey is the generation counter embedded in product cache
// keys; bumping it invalidates every cached page.
const ProductsVersionKey = "products:version"

// Register wires the listeners. Call it once at boot.
func Register() {
	event.Listen(ProductSaved, bumpProducts)
	event.Listen(ProductDeleted, bumpProducts)

	event.Listen(ClientDeleted, audit("client deleted"))
	event.Listen(UserCreated, audit("user created"))
	event.Listen(UserDeleted, audit("user deleted"))
}

func bumpProducts(ctx context.Context, _ any) {
	if err := cache.Bump(ctx, ProductsVersionKey); err != nil {
		logger.WithCtx(ctx).Warn("product cache not invalidated", zap.Error(err))
	}
}

func audit(msg string) event.Handler {
	return func(ctx context.Context, payload any) {
		logger.WithCtx(ctx).Info(msg, zap.Any("id", payload))
	}
}
