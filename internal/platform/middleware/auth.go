package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"brandgate/pkg/requestcontext"
)

// TokenVerifier resolves a bearer token into an authenticated principal.
// Verification is signature plus expiry only; it must be side-effect free and
// safe to call on every request.
type TokenVerifier interface {
	VerifyToken(token string) (requestcontext.Principal, error)
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + errCode + `","error_description":"` + errDesc + `"}`))
}

// RequireAuth verifies the bearer token and stores the principal in context.
// Missing, malformed, or expired tokens are all a 401; the role checks below
// layer 403 on top.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			after, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			principal, err := verifier.VerifyToken(after)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches a principal when a valid bearer token is present and
// lets anonymous requests through untouched. An invalid token is treated as
// anonymous; routes that need a guarantee use RequireAuth.
func OptionalAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			after, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := verifier.VerifyToken(after)
			if err != nil {
				logger.DebugContext(r.Context(), "ignoring invalid token on optional-auth route",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose principal is not an admin. Must be
// mounted after RequireAuth.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return requireKind(requestcontext.PrincipalAdmin, logger)
}

// RequireMember rejects requests whose principal is not a member. Must be
// mounted after RequireAuth.
func RequireMember(logger *slog.Logger) func(http.Handler) http.Handler {
	return requireKind(requestcontext.PrincipalMember, logger)
}

func requireKind(kind requestcontext.PrincipalKind, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := requestcontext.GetPrincipal(r.Context())
			if principal.IsZero() {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			if principal.Kind != kind {
				logger.WarnContext(r.Context(), "forbidden - wrong role",
					"required", string(kind),
					"actual", string(principal.Kind),
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
