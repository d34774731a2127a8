package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ncordova/vinoteca/internal/domain"
)

type contextKey string

// authClaims are the JWT claims issued at login. Subject carries the
// user ID as a decimal string.
type authClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// WithUser extracts the bearer token, verifies it and attaches the user to
// the request context. Requests without a token, or with an invalid one,
// continue unauthenticated; RequireAuth decides whether that is fatal.
func WithUser(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := parseToken(token, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.IsAuthenticated(r.Context()) {
			respondUnauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose user lacks the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.IsAuthenticated(r.Context()) {
			respondUnauthorized(w, r)
			return
		}
		if !domain.IsAdmin(r.Context()) {
			respondForbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// parseToken verifies an HS256 token and maps its claims to a domain user.
func parseToken(token string, secret []byte) (*domain.User, error) {
	var claims authClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID < 1 {
		return nil, jwt.ErrTokenInvalidSubject
	}

	return &domain.User{
		ID:    userID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
