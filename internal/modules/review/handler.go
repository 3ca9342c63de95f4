package review

import (
	"net/http"
	"strconv"

	"staybnb/internal/middleware"
	"staybnb/internal/pkg/response"
	"staybnb/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/listings/:id/reviews", h.ListForListing)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.CreateReview)
	rg.POST("/reviews/:id/response", h.Respond)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews/:id/approve", h.Approve)
}

func (h *Handler) ListForListing(c *gin.Context) {
	id, ok := parseID(c, "Invalid listing ID")
	if !ok {
		return
	}
	items, err := h.service.ListForListing(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := validator.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64(middleware.CtxUserID), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := parseID(c, "Invalid review ID")
	if !ok {
		return
	}
	var req HostResponseRequest
	if err := validator.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	rv, err := h.service.Respond(c.Request.Context(), c.GetInt64(middleware.CtxUserID), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := parseID(c, "Invalid review ID")
	if !ok {
		return
	}
	rv, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func parseID(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", message)
		return 0, false
	}
	return id, true
}
