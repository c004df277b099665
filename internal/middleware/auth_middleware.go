package middleware

import (
	"context"
	"net/http"
	"pickwise/pkg/logger"
	"pickwise/pkg/utils"
	"strconv"
	"strings"
	"time"

	jsonres "pickwise/pkg/response"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks the server-side session record for a JWT.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}

	return tokenParts[1], true
}

// AuthMiddleware validates the JWT signature and expiry only. Used where a
// Redis round trip is not worth it, like read-only catalog endpoints.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing or malformed authorization header", nil,
				))
			}

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Token expired", nil,
				))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("invalid user ID in token", "error", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis additionally requires a live session in Redis,
// so logout revokes the token before its JWT expiry.
func AuthMiddlewareWithRedis(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing or malformed authorization header", nil,
				))
			}

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				logger.Error("failed to parse JWT", "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || time.Now().After(expAt.Time) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Token expired", nil,
				))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := tokenValidator.ValidateToken(ctx, tokenString)
			if err != nil {
				logger.Error("token not found in Redis", "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired or invalid", nil,
				))
			}

			if userID != claims.UserID {
				logger.Error("user ID mismatch between JWT and Redis")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("invalid user ID in token", "error", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Get("role")
			roleStr, ok := role.(string)
			if !ok || strings.ToUpper(roleStr) != "ADMIN" {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

// SelfOrAdmin allows admins through, otherwise the :id path param must
// match the authenticated user.
func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			loggedInUserID, ok := c.Get("user_id").(uint)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "User not authenticated", nil,
				))
			}

			role := c.Get("role")
			roleStr, ok := role.(string)
			if !ok {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid role", nil,
				))
			}

			if strings.ToUpper(roleStr) == "ADMIN" {
				return next(c)
			}

			requestedID := c.Param("id")
			requestedIDUint, err := strconv.ParseUint(requestedID, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, jsonres.Error(
					"BAD_REQUEST", "Invalid user ID", nil,
				))
			}

			if uint(requestedIDUint) != loggedInUserID {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "You can only access your own data", nil,
				))
			}

			return next(c)
		}
	}
}
