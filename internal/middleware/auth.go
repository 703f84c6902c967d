package middleware

import (
	"context"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Context keys populated by RequireAuth. The session state the old
// deployment kept globally travels on the request context instead.
const (
	CtxEmail = "userEmail"
	CtxRol   = "userRol"
)

type AuthMiddleware struct {
	jwtSecret []byte
}

func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: secret}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid claims", http.StatusUnauthorized)
			return
		}
		email, ok := claims["sub"].(string)
		if !ok || email == "" {
			http.Error(w, "invalid subject", http.StatusUnauthorized)
			return
		}
		rol, _ := claims["rol"].(string)

		ctx := context.WithValue(r.Context(), CtxEmail, strings.ToLower(email))
		ctx = context.WithValue(ctx, CtxRol, rol)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
