package pet

import (
	"errors"
	"net/http"
	"strconv"

	"petstat/internal/middleware"
	"petstat/internal/pkg/response"
	"petstat/internal/pkg/validator"
	"petstat/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	pets := protected.Group("/pets")
	{
		pets.GET("", h.List)
		pets.GET("/count", h.Count)
		pets.GET("/:id", h.Get)
		pets.POST("", h.Create)
		pets.PATCH("/:id", h.Update)
		pets.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	pets, err := h.service.List(c.Request.Context(), c.GetInt64(middleware.UserIDKey))
	if err != nil {
		h.internalError(c, err)
		return
	}

	out := make([]PetResponse, 0, len(pets))
	for i := range pets {
		out = append(out, toPetResponse(&pets[i]))
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Count(c *gin.Context) {
	n, err := h.service.Count(c.Request.Context(), c.GetInt64(middleware.UserIDKey))
	if err != nil {
		h.internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CountResponse{Count: n})
}

func (h *Handler) Get(c *gin.Context) {
	petID, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), c.GetInt64(middleware.UserIDKey), petID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPetResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pet", errs)
		return
	}

	p, err := h.service.Add(c.Request.Context(), c.GetInt64(middleware.UserIDKey), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toPetResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	petID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pet", errs)
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.GetInt64(middleware.UserIDKey), petID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPetResponse(p))
}

// Delete answers 200 either way; success=false means there was nothing to delete.
func (h *Handler) Delete(c *gin.Context) {
	petID, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Remove(c.Request.Context(), c.GetInt64(middleware.UserIDKey), petID)
	if err != nil {
		h.internalError(c, err)
		return
	}

	res := DeletePetResponse{ID: petID, Success: deleted, Message: "Delete success"}
	if !deleted {
		res.Message = "Not found object"
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPetNotFound):
		response.Error(c, http.StatusNotFound, "PET_NOT_FOUND", "Pet not found")
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pet ID")
		return 0, false
	}
	return id, true
}
