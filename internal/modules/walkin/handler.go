package walkin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"salonpos/internal/modules/catalog"
	"salonpos/internal/modules/seats"
	"salonpos/internal/modules/stock"
	"salonpos/internal/pkg/response"
	"salonpos/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the walk-in order endpoints. The group is expected
// to be behind auth middleware; any staff member can compose orders.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/walkins")
	{
		g.POST("", h.CreateOrder)
		g.GET("/:id", h.GetOrder)
		g.GET("/:id/receipt", h.Receipt)

		g.POST("/:id/services", h.AddServiceLine)
		g.PUT("/:id/services/:lineId/staff", h.AssignStaff)
		g.DELETE("/:id/services/:lineId", h.RemoveServiceLine)

		g.POST("/:id/products", h.AddProductLine)
		g.DELETE("/:id/products/:lineId", h.RemoveProductLine)

		g.POST("/:id/seats", h.AddSeatLine)
		g.DELETE("/:id/seats/:lineId", h.RemoveSeatLine)

		g.PUT("/:id/status", h.UpdateStatus)
		g.PUT("/:id/payment", h.UpdatePayment)
	}
	rg.GET("/branches/:id/walkins", h.ListByBranch)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Receipt(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.service.Receipt(c.Request.Context(), id)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, receipt)
}

func (h *Handler) ListByBranch(c *gin.Context) {
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	views, total, err := h.service.ListByBranch(c.Request.Context(), branchID, limit, offset)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders": views,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) AddServiceLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddServiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	line, err := h.service.AddServiceLine(c.Request.Context(), id, req)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"line": line})
}

func (h *Handler) AssignStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "lineId")
	if !ok {
		return
	}

	var req AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	line, err := h.service.AssignStaff(c.Request.Context(), id, lineID, req.StaffID)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"line": line})
}

func (h *Handler) AddProductLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddProductLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	line, err := h.service.AddProductLine(c.Request.Context(), id, req)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"line": line})
}

func (h *Handler) AddSeatLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddSeatLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	line, err := h.service.AddSeatLine(c.Request.Context(), id, req)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"line": line})
}

func (h *Handler) RemoveServiceLine(c *gin.Context) {
	h.removeLine(c, h.service.RemoveServiceLine)
}

func (h *Handler) RemoveProductLine(c *gin.Context) {
	h.removeLine(c, h.service.RemoveProductLine)
}

func (h *Handler) RemoveSeatLine(c *gin.Context) {
	h.removeLine(c, h.service.RemoveSeatLine)
}

func (h *Handler) removeLine(c *gin.Context, remove func(ctx context.Context, orderID, lineID int64) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "lineId")
	if !ok {
		return
	}

	if err := remove(c.Request.Context(), id, lineID); err != nil {
		handleOrderError(c, err)
		return
	}

	view, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	view, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	view, err := h.service.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		handleOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func handleOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, catalog.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidPayment):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, stock.ErrInvalidQuantity):
		response.Error(c, http.StatusBadRequest, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, stock.ErrInsufficientStock):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, seats.ErrSeatUnavailable):
		response.Error(c, http.StatusConflict, "SEAT_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrSeatWrongBranch):
		response.Error(c, http.StatusConflict, "SEAT_WRONG_BRANCH", err.Error())
	case errors.Is(err, ErrStaffRoleMismatch):
		response.Error(c, http.StatusConflict, "STAFF_ROLE_MISMATCH", err.Error())
	case errors.Is(err, ErrIllegalTransition):
		response.Error(c, http.StatusConflict, "ILLEGAL_TRANSITION", err.Error())
	case errors.Is(err, ErrOrderLocked):
		response.Error(c, http.StatusConflict, "ORDER_LOCKED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
