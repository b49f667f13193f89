package services

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/bilemo/api/app/models"
	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/logger"
)

// userPayload holds the write fields the caller's privileges decide on.
// A nil field was not supplied.
type userPayload struct {
	Password *string
	Roles    []string
	ClientID *uint
}

// applyPayload writes in onto target. A supplied password is hashed.
// Super admins set roles and client freely, provided the client exists.
// Anyone else creates users as ROLE_USER of their own client and cannot
// change an existing user's roles or client; such submitted values are
// dropped with a warning.
func (s *UserService) applyPayload(ctx context.Context, caller *auth.Principal, target *models.User, in userPayload, creating bool) error {
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return err
		}
		target.Password = hash
	}

	if caller.IsSuperAdmin() {
		if in.Roles != nil {
			target.Roles = models.Roles(in.Roles)
		}
		if in.ClientID != nil {
			ok, err := s.clients.Exists(ctx, *in.ClientID)
			if err != nil {
				return err
			}
			if !ok {
				return fieldError("clientId", "The selected client does not exist.")
			}
			id := *in.ClientID
			target.ClientID = &id
		}
		return nil
	}

	var discarded []string
	if creating {
		target.Roles = models.Roles{auth.RoleUser}
		target.ClientID = nil
		if id, ok := caller.LinkedClient(); ok {
			target.ClientID = &id
		}
		if in.Roles != nil && !slices.Equal(auth.Normalize(in.Roles), auth.Normalize(target.Roles)) {
			discarded = append(discarded, "roles")
		}
		if in.ClientID != nil && (target.ClientID == nil || *in.ClientID != *target.ClientID) {
			discarded = append(discarded, "clientId")
		}
	} else {
		if in.Roles != nil && !slices.Equal(auth.Normalize(in.Roles), target.EffectiveRoles()) {
			discarded = append(discarded, "roles")
		}
		if in.ClientID != nil && (target.ClientID == nil || *in.ClientID != *target.ClientID) {
			discarded = append(discarded, "clientId")
		}
	}

	if len(discarded) > 0 {
		logger.WithCtx(ctx).Warn("user payload override",
			zap.Uint("caller_id", caller.UserID),
			zap.Uint("target_id", target.ID),
			zap.Strings("discarded", discarded),
		)
	}
	return nil
}
