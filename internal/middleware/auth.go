package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/krank/internal/auth"
	"github.com/2beens/krank/internal/telemetry/tracing"
	"github.com/2beens/krank/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type sessionChecker interface {
	UserID(ctx context.Context, token string) (string, error)
}

const TokenHeader = "X-KRANK-TOKEN"

type AuthMiddlewareHandler struct {
	sessionChecker sessionChecker
	allowedPaths   map[string]bool
}

func NewAuthMiddlewareHandler(sessionChecker sessionChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessionChecker: sessionChecker,
		allowedPaths: map[string]bool{
			// misc handler:
			"/":        true,
			"/version": true,

			// stats handler, static data:
			"/stats/movement-families": true,

			// login-logout:
			"/a/login":  true,
			"/a/logout": true,
		},
	}
}

// RequestToken reads the session token from "Authorization: Bearer <token>",
// falling back to the X-KRANK-TOKEN header.
func RequestToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if token, found := strings.CutPrefix(authz, "Bearer "); found {
			return strings.TrimSpace(token)
		}
	}
	return r.Header.Get(TokenHeader)
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := RequestToken(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONMessage(w, http.StatusUnauthorized, "Unauthorized")
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			userID, err := h.sessionChecker.UserID(ctx, authToken)
			if err != nil {
				if errors.Is(err, auth.ErrNoSession) || errors.Is(err, auth.ErrSessionExpired) {
					log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
					span.SetStatus(codes.Error, "not-logged")
				} else {
					log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
					span.SetStatus(codes.Error, "check-logged-err")
					span.RecordError(err)
				}
				pkg.WriteJSONMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
