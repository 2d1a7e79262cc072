package middleware

import (
	"errors"
	"net/http"

	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity is the authenticated caller as resolved by the upstream
// identity system. User accounts live outside this service.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

var ErrNoIdentity = errors.New("no identity on request")

// IdentityProvider resolves the caller of a request.
type IdentityProvider interface {
	Identify(r *http.Request) (*Identity, error)
}

// HeaderProvider trusts the identity headers stamped by the API
// gateway after it has authenticated the caller.
type HeaderProvider struct{}

func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

func (p *HeaderProvider) Identify(r *http.Request) (*Identity, error) {
	rawID := r.Header.Get("X-User-ID")
	email := r.Header.Get("X-User-Email")
	if rawID == "" || email == "" {
		return nil, ErrNoIdentity
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrNoIdentity
	}

	role := r.Header.Get("X-User-Role")
	if role == "" {
		role = "customer"
	}

	return &Identity{UserID: userID, Email: email, Role: role}, nil
}

// Authenticated middleware resolves the caller and puts the identity
// into the request context.
func Authenticated(provider IdentityProvider, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := provider.Identify(r)
			if err != nil {
				if !errors.Is(err, ErrNoIdentity) {
					logger.Error("Failed to resolve identity", zap.Error(err))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			ctx := utils.SetUserContext(r.Context(), identity.UserID, identity.Email, identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin middleware, runs after Authenticated.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != "admin" {
				logger.Warn("Non-admin access attempt",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
