package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anonto42/curious/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// TokenParser turns a bearer token into the caller's claims
type TokenParser func(ctx context.Context, token string) (*models.JwtCustomClaims, error)

// LocalTokenParser accepts HS256 tokens signed with secret
func LocalTokenParser(secret string) TokenParser {
	return func(_ context.Context, tokenString string) (*models.JwtCustomClaims, error) {
		claims := &models.JwtCustomClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			return nil, err
		}
		if !token.Valid || claims.UserID == 0 {
			return nil, errors.New("invalid token")
		}
		return claims, nil
	}
}

// JWTAuthMiddleware requires a bearer token accepted by one of parsers,
// tried in order, and stores the claims for CurrentUser.
func JWTAuthMiddleware(parsers ...TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			for _, parse := range parsers {
				claims, err := parse(c.Request().Context(), parts[1])
				if err == nil {
					SetCurrentUser(c, claims)
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
	}
}

func SetCurrentUser(c echo.Context, claims *models.JwtCustomClaims) {
	c.Set(userContextKey, claims)
}

// CurrentUser returns the claims stored by JWTAuthMiddleware
func CurrentUser(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(userContextKey).(*models.JwtCustomClaims)
	return claims, ok && claims != nil
}
