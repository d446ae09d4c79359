package middleware

import (
	"github.com/gin-gonic/gin"

	"sociogram/internal/repository"
	"sociogram/internal/utils"
	"sociogram/pkg/logger"
)

// AuthMiddleware authenticates requests via Bearer tokens.
type AuthMiddleware struct {
	jwtManager *utils.JWTManager
	userRepo   repository.UserRepository
	logger     *logger.Logger
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(jwtManager *utils.JWTManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
		logger:     logger.NewComponentLogger("AuthMiddleware"),
	}
}

// RequireAuth rejects requests without a valid access token and puts the
// authenticated user ID into the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		token, err := utils.ExtractTokenFromHeader(header)
		if err != nil {
			utils.Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		userID, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			utils.Unauthorized(c, "User not found")
			c.Abort()
			return
		}
		if !user.IsActive {
			utils.Forbidden(c, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user", user)
		c.Request = c.Request.WithContext(logger.NewContextWithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present but lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, err := utils.ExtractTokenFromHeader(header)
		if err != nil {
			c.Next()
			return
		}

		userID, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(logger.NewContextWithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
