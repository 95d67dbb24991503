package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/domain/models"
	"github.com/mamadbah2/farmshop/internal/service/reporting"
	"github.com/mamadbah2/farmshop/internal/service/shop"
)

// ShopHandler exposes the shop service over HTTP.
type ShopHandler struct {
	svc    *shop.Service
	logger *zap.Logger
}

// NewShopHandler constructs the HTTP handler adapter.
func NewShopHandler(svc *shop.Service, logger *zap.Logger) *ShopHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopHandler{svc: svc, logger: logger}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// bindOptionalJSON binds the request body into dst, treating an empty body as
// an empty object.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// parseDay reads an optional YYYY-MM-DD value. An empty value gives the zero
// time.
func parseDay(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

func queryRange(c *gin.Context) (reporting.DateRange, bool) {
	r, err := reporting.NewDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		badRequest(c, err.Error())
		return reporting.DateRange{}, false
	}
	return r, true
}

// ListStock returns every stock item.
func (h *ShopHandler) ListStock(c *gin.Context) {
	respond(c, h.logger, http.StatusOK, h.svc.Stock(), nil)
}

// CreateStock adds a stock item.
func (h *ShopHandler) CreateStock(c *gin.Context) {
	var in shop.StockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid stock item")
		return
	}
	item, err := h.svc.AddStockItem(c.Request.Context(), in)
	respond(c, h.logger, http.StatusCreated, item, err)
}

// UpdateStock edits a stock item.
func (h *ShopHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in shop.StockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid stock item")
		return
	}
	item, err := h.svc.EditStockItem(c.Request.Context(), id, in)
	respond(c, h.logger, http.StatusOK, item, err)
}

type receiveRequest struct {
	Quantity int    `json:"quantity"`
	Date     string `json:"date"`
}

// ReceiveStock books a delivery against a stock item.
func (h *ShopHandler) ReceiveStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req receiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid receive request")
		return
	}

	date, ok := parseDay(c, req.Date)
	if !ok {
		return
	}

	item, err := h.svc.ReceiveStock(c.Request.Context(), id, req.Quantity, date)
	respond(c, h.logger, http.StatusOK, item, err)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// QuickAdd tops up a stock item.
func (h *ShopHandler) QuickAdd(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid quantity")
		return
	}
	item, err := h.svc.QuickAdd(c.Request.Context(), id, req.Quantity)
	respond(c, h.logger, http.StatusOK, item, err)
}

// ListWorkers returns every worker.
func (h *ShopHandler) ListWorkers(c *gin.Context) {
	respond(c, h.logger, http.StatusOK, h.svc.Workers(), nil)
}

// CreateWorker adds a worker.
func (h *ShopHandler) CreateWorker(c *gin.Context) {
	var in shop.WorkerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid worker")
		return
	}
	w, err := h.svc.AddWorker(c.Request.Context(), in)
	respond(c, h.logger, http.StatusCreated, w, err)
}

// UpdateWorker edits a worker.
func (h *ShopHandler) UpdateWorker(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in shop.WorkerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid worker")
		return
	}
	w, err := h.svc.EditWorker(c.Request.Context(), id, in)
	respond(c, h.logger, http.StatusOK, w, err)
}

type cartView struct {
	Lines any    `json:"lines"`
	Total string `json:"total"`
}

// GetCart returns the caller's cart.
func (h *ShopHandler) GetCart(c *gin.Context) {
	cart := h.svc.Cart(currentUser(c).Username)
	respond(c, h.logger, http.StatusOK, cartView{Lines: cart.Lines, Total: cart.Total().StringFixed(2)}, nil)
}

type addLineRequest struct {
	ItemID int `json:"itemId" binding:"required"`
}

// AddCartLine adds one unit of an item to the caller's cart.
func (h *ShopHandler) AddCartLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "itemId is required")
		return
	}
	cart, err := h.svc.AddToCart(currentUser(c).Username, req.ItemID)
	respond(c, h.logger, http.StatusOK, cartView{Lines: cart.Lines, Total: cart.Total().StringFixed(2)}, err)
}

// SetCartLine changes the quantity of a cart line.
func (h *ShopHandler) SetCartLine(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid quantity")
		return
	}
	cart, err := h.svc.SetCartQuantity(currentUser(c).Username, itemID, req.Quantity)
	respond(c, h.logger, http.StatusOK, cartView{Lines: cart.Lines, Total: cart.Total().StringFixed(2)}, err)
}

// RemoveCartLine drops a cart line.
func (h *ShopHandler) RemoveCartLine(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	cart := h.svc.RemoveFromCart(currentUser(c).Username, itemID)
	respond(c, h.logger, http.StatusOK, cartView{Lines: cart.Lines, Total: cart.Total().StringFixed(2)}, nil)
}

type checkoutRequest struct {
	WorkerID int `json:"workerId"`
}

// Checkout charges the caller's cart to a worker.
func (h *ShopHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "invalid checkout request")
		return
	}
	txns, err := h.svc.CheckoutCart(c.Request.Context(), currentUser(c).Username, req.WorkerID)
	respond(c, h.logger, http.StatusCreated, txns, err)
}

// ListTransactions returns the transactions inside ?start=&end=.
func (h *ShopHandler) ListTransactions(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	respond(c, h.logger, http.StatusOK, h.svc.Transactions(r), nil)
}

type draftView struct {
	Draft   any `json:"draft"`
	Summary any `json:"summary"`
}

// StartStocktake opens a count sheet for the caller.
func (h *ShopHandler) StartStocktake(c *gin.Context) {
	user := currentUser(c).Username
	h.svc.StartStocktake(user)
	draft, summary, err := h.svc.StocktakeDraft(user)
	respond(c, h.logger, http.StatusCreated, draftView{Draft: draft, Summary: summary}, err)
}

// GetStocktakeDraft returns the caller's open count sheet.
func (h *ShopHandler) GetStocktakeDraft(c *gin.Context) {
	draft, summary, err := h.svc.StocktakeDraft(currentUser(c).Username)
	respond(c, h.logger, http.StatusOK, draftView{Draft: draft, Summary: summary}, err)
}

type countRequest struct {
	ActualQty *int `json:"actualQty" binding:"required"`
}

// RecordCount stores a physical count.
func (h *ShopHandler) RecordCount(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req countRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "actualQty is required")
		return
	}

	user := currentUser(c).Username
	if _, err := h.svc.RecordCount(user, itemID, *req.ActualQty); err != nil {
		respond(c, h.logger, http.StatusOK, nil, err)
		return
	}
	draft, summary, err := h.svc.StocktakeDraft(user)
	respond(c, h.logger, http.StatusOK, draftView{Draft: draft, Summary: summary}, err)
}

type commitRequest struct {
	Type models.StocktakeType `json:"type"`
	Date string               `json:"date"`
}

// CommitStocktake records the caller's count sheet. The body may name the
// count date; it defaults to today.
func (h *ShopHandler) CommitStocktake(c *gin.Context) {
	var req commitRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "invalid stocktake commit request")
		return
	}
	if req.Type == "" {
		req.Type = models.StocktakeMonthly
	}
	date, ok := parseDay(c, req.Date)
	if !ok {
		return
	}
	st, err := h.svc.CommitStocktake(c.Request.Context(), currentUser(c).Username, req.Type, date)
	respond(c, h.logger, http.StatusCreated, st, err)
}

// DiscardStocktake closes the caller's count sheet without saving it.
func (h *ShopHandler) DiscardStocktake(c *gin.Context) {
	h.svc.DiscardStocktake(currentUser(c).Username)
	c.Status(http.StatusNoContent)
}

// ListStocktakes returns committed stocktakes.
func (h *ShopHandler) ListStocktakes(c *gin.Context) {
	respond(c, h.logger, http.StatusOK, h.svc.Stocktakes(), nil)
}

// Dashboard returns the dashboard for ?start=&end=.
func (h *ShopHandler) Dashboard(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	respond(c, h.logger, http.StatusOK, h.svc.Dashboard(r), nil)
}

// WorkerSummaries returns the monthly account summary of every worker.
func (h *ShopHandler) WorkerSummaries(c *gin.Context) {
	respond(c, h.logger, http.StatusOK, h.svc.WorkerSummaries(), nil)
}

// WorkerDetail returns one worker's purchases grouped by month.
func (h *ShopHandler) WorkerDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, ok := queryRange(c)
	if !ok {
		return
	}
	detail, err := h.svc.WorkerDetail(id, r)
	respond(c, h.logger, http.StatusOK, detail, err)
}

// StocktakeReport returns committed stocktakes with signed totals.
func (h *ShopHandler) StocktakeReport(c *gin.Context) {
	respond(c, h.logger, http.StatusOK, h.svc.StocktakeReport(), nil)
}

// Reload fetches every collection again.
func (h *ShopHandler) Reload(c *gin.Context) {
	report := h.svc.Load(c.Request.Context())
	h.logger.Info("collections reloaded", zap.String("user", currentUser(c).Username))
	respond(c, h.logger, http.StatusOK, report, nil)
}
