package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"svctopo/internal/domain"
)

// AuthMiddleware validates the bearer JWT and sets the user's username/role
// in the gin context, grounded on the monitoring backend's original
// middleware but simplified to MapClaims only.
func (s *Server) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "Authorization header required"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "invalid authorization format"))
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(t *jwt.Token) (interface{}, error) {
			return s.jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "invalid or expired token"))
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		username, _ := claims["username"].(string)
		c.Set("user_role", domain.UserRole(role))
		c.Set("username", username)
		c.Next()
	}
}

// RequireAdmin gates the admin-only route group.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("user_role")
		if role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, ErrorResponse("forbidden", "admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) generateJWT(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"exp":      jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		"iat":      jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *Server) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}

	user, err := s.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "invalid credentials"))
		return
	}

	if err := s.users.CheckPassword(user, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "invalid credentials"))
		return
	}

	token, err := s.generateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("token_failed", "failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, domain.LoginResponse{Token: token, User: *user})
}

func (s *Server) FirstRunAdmin(c *gin.Context) {
	first, err := s.users.IsFirstRun(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("check_failed", "failed to check system status"))
		return
	}
	if !first {
		c.JSON(http.StatusConflict, ErrorResponse("already_initialized", "an admin account already exists"))
		return
	}

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}

	user, err := s.users.CreateAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("create_failed", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse("admin_created", gin.H{"user": user}))
}
