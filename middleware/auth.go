package middleware

import (
	"context"
	"net/http"
	"strings"

	"auth_api/utils"
)

type contextKey int

const userContextKey contextKey = 0

// UserFromContext returns the verified access token claims attached by
// JWTMiddleware.
func UserFromContext(ctx context.Context) (*utils.JWTClaims, bool) {
	claims, ok := ctx.Value(userContextKey).(*utils.JWTClaims)
	return claims, ok
}

// JWTMiddleware authenticates protected routes: the access token comes
// from the cookie or an Authorization bearer header, and the verified
// claims go into the request context.
func JWTMiddleware(tokens *utils.TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := accessTokenFromRequest(r)
			if tokenString == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Missing access token")
				return
			}

			claims, err := tokens.ParseAccessToken(tokenString)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(utils.AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}
	return ""
}
