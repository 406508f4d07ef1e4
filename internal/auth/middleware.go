package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nortia/backoffice/internal/model"
	"github.com/nortia/backoffice/internal/pkg/apperror"
)

const (
	localUserID  = "user_id"
	localEmail   = "user_email"
	localIsAdmin = "is_admin"
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Required rejects requests without a valid bearer token.
func Required(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return apperror.Unauthorized("missing bearer token")
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			return apperror.Unauthorized("invalid or expired token")
		}

		c.Locals(localUserID, claims.Subject)
		c.Locals(localEmail, claims.Email)
		return c.Next()
	}
}

// Admin re-verifies the caller's role against the database on every call,
// so revocations take effect immediately rather than at token expiry.
func Admin(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == "" {
			return apperror.Unauthorized("missing bearer token")
		}

		user, err := repo.FindByID(c.Context(), userID)
		if err != nil {
			return apperror.Internal(err)
		}
		if user == nil || user.Role != model.RoleAdmin {
			return apperror.Forbidden("admin access required")
		}

		c.Locals(localIsAdmin, true)
		return c.Next()
	}
}

// Optional resolves admin status when a token is present but lets anonymous
// requests through. Used on public catalog routes where admins see more.
func Optional(secret string, repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			return c.Next()
		}

		user, err := repo.FindByID(c.Context(), claims.Subject)
		if err == nil && user != nil && user.Role == model.RoleAdmin {
			c.Locals(localUserID, user.ID)
			c.Locals(localIsAdmin, true)
		}
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(localUserID).(string); ok {
		return id
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	admin, ok := c.Locals(localIsAdmin).(bool)
	return ok && admin
}
