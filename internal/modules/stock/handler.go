package stock

import (
	"errors"
	"net/http"
	"strconv"

	"salonpos/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	ledger *Ledger
}

func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// RegisterRoutes mounts the ledger endpoints. The group is expected to be
// behind auth + manager/admin role middleware; reads stay in the catalog.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/products/:id/stock")
	{
		g.GET("", h.GetStock)
		g.POST("/book", h.Book)
		g.POST("/release", h.Release)
		g.POST("/use", h.MarkAsInUse)
		g.POST("/return", h.ReturnFromUse)
		g.PUT("/in-use", h.SetInUse)
		g.PUT("/total", h.SetTotal)
	}
}

func (h *Handler) GetStock(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	p, err := h.ledger.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stock": toStockView(p)})
}

func (h *Handler) Book(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.ledger.BookProduct(c.Request.Context(), id, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stock": toStockView(p)})
}

func (h *Handler) Release(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.ledger.ReleaseBooked(c.Request.Context(), id, req.Quantity); err != nil {
		handleError(c, err)
		return
	}

	p, err := h.ledger.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stock": toStockView(p)})
}

func (h *Handler) MarkAsInUse(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	p, err := h.ledger.MarkAsInUse(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stock": toStockView(p)})
}

func (h *Handler) ReturnFromUse(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.ledger.ReturnFromUse(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	p, err := h.ledger.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stock": toStockView(p)})
}

func (h *Handler) SetInUse(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req SetInUseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.ledger.SetInUseStock(c.Request.Context(), id, req.InUseStock)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stock": toStockView(p)})
}

func (h *Handler) SetTotal(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req SetTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.ledger.SetTotalStock(c.Request.Context(), id, req.TotalStock)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stock": toStockView(p)})
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	case errors.Is(err, ErrInvalidQuantity):
		response.Error(c, http.StatusBadRequest, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, ErrInsufficientStock):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, ErrExceedsTotalStock):
		response.Error(c, http.StatusConflict, "EXCEEDS_TOTAL_STOCK", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
