package seats

import (
	"errors"
	"net/http"
	"strconv"

	"salonpos/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes mounts seat and branch management endpoints (manager/admin
// only).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/seats", h.CreateSeat)
	rg.POST("/branches/:id/seats/bulk", h.BulkCreateSeats)
	rg.PUT("/seats/:id/status", h.UpdateStatus)
	rg.DELETE("/seats/:id", h.DeleteSeat)

	rg.POST("/branches", h.CreateBranch)
	rg.PUT("/branches/:id", h.UpdateBranch)
}

// RegisterReadRoutes mounts the public seat map.
func (h *Handler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("/branches", h.ListBranches)
	rg.GET("/branches/:id", h.GetBranch)
	rg.GET("/branches/:id/seats", h.ListByBranch)
	rg.GET("/seats/:id", h.GetSeat)
}

func (h *Handler) CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "branch name is required")
		return
	}

	branch, err := h.registry.CreateBranch(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"branch": branch})
}

func (h *Handler) UpdateBranch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	branch, err := h.registry.UpdateBranch(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"branch": branch})
}

func (h *Handler) GetBranch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	branch, err := h.registry.GetBranch(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"branch": branch})
}

func (h *Handler) ListBranches(c *gin.Context) {
	branches, err := h.registry.ListBranches(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"branches": branches})
}

func (h *Handler) CreateSeat(c *gin.Context) {
	var req CreateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if req.BranchID == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "branch_id is required")
		return
	}

	seat, err := h.registry.CreateSeat(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"seat": seat})
}

func (h *Handler) BulkCreateSeats(c *gin.Context) {
	branchID, ok := pathID(c)
	if !ok {
		return
	}

	var req BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Seats) == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "seats list is required")
		return
	}

	result, err := h.registry.BulkCreateSeats(c.Request.Context(), branchID, req.Seats)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"created": result.Created,
		"skipped": result.Skipped,
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	seatID, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	seat, err := h.registry.UpdateSeatStatus(c.Request.Context(), seatID, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"seat": seat})
}

func (h *Handler) DeleteSeat(c *gin.Context) {
	seatID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.registry.DeleteSeat(c.Request.Context(), seatID); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListByBranch(c *gin.Context) {
	branchID, ok := pathID(c)
	if !ok {
		return
	}

	seats, err := h.registry.ListByBranch(c.Request.Context(), branchID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"seats": seats})
}

func (h *Handler) GetSeat(c *gin.Context) {
	seatID, ok := pathID(c)
	if !ok {
		return
	}

	seat, err := h.registry.GetSeat(c.Request.Context(), seatID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"seat": seat})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrDuplicateSeatNumber):
		response.Error(c, http.StatusConflict, "DUPLICATE_SEAT_NUMBER", err.Error())
	case errors.Is(err, ErrInvalidSeatStatus), errors.Is(err, ErrInvalidSeatType):
		response.Error(c, http.StatusBadRequest, "INVALID_SEAT_FIELD", err.Error())
	case errors.Is(err, ErrSeatUnavailable):
		response.Error(c, http.StatusConflict, "SEAT_UNAVAILABLE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
