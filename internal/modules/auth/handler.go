package auth

import (
	"errors"
	"net/http"

	"petstat/internal/domain"
	"petstat/internal/middleware"
	"petstat/internal/pkg/response"
	"petstat/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handler exposes the session flows over HTTP
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the auth endpoints. Extra middleware (rate
// limiting) is applied to the whole group.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, mw ...gin.HandlerFunc) {
	authGroup := v1.Group("/auth", mw...)
	{
		authGroup.POST("/sign-in", h.SignIn)
		authGroup.POST("/rotate", h.Rotate)
		authGroup.POST("/sign-out", middleware.BearerToken(), h.SignOut)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
	}
}

// SignIn verifies an identity token from an external provider and starts a session.
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if !req.Provider.Valid() {
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_PROVIDER", "Unsupported provider")
		return
	}

	pair, err := h.service.SignIn(c.Request.Context(), req.IDToken, req.Provider)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedProvider):
			response.Error(c, http.StatusBadRequest, "UNSUPPORTED_PROVIDER", "Unsupported provider")
		case errors.Is(err, ErrInvalidIdentityToken):
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign in")
		}
		return
	}

	response.Success(c, http.StatusOK, TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// SignOut revokes the refresh token. It succeeds for expired access tokens and
// for sessions that are already gone.
func (h *Handler) SignOut(c *gin.Context) {
	var req SignOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.SignOut(c.Request.Context(), c.GetString(middleware.AccessTokenKey), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidAccessToken) {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign out")
		return
	}

	response.Success(c, http.StatusOK, SignOutResponse{
		Success: true,
		Message: "successfully signed out.",
	})
}

func (h *Handler) Rotate(c *gin.Context) {
	var req RotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pair, err := h.service.Rotate(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidSession) {
			response.Error(c, http.StatusUnauthorized, "INVALID_SESSION", "Invalid session, please sign in again")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to rotate session")
		return
	}

	response.Success(c, http.StatusOK, TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, toUserPublic(user))
}

func toUserPublic(u *domain.User) UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email, LoginType: u.LoginType}
}
