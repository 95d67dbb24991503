package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/service/checkout"
	"github.com/mamadbah2/farmshop/internal/service/shop"
	"github.com/mamadbah2/farmshop/internal/service/stocktake"
)

// statusFor maps a service error to the HTTP status returned to the client.
func statusFor(err error) int {
	var stockErr *checkout.InsufficientStockError
	switch {
	case errors.Is(err, shop.ErrNotFound), errors.Is(err, stocktake.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, stocktake.ErrAlreadyCommitted):
		return http.StatusConflict
	case errors.As(err, &stockErr),
		errors.Is(err, checkout.ErrMissingWorker),
		errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shop.ErrValidation),
		errors.Is(err, stocktake.ErrNegativeCount),
		errors.Is(err, stocktake.ErrInvalidType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respond writes data, or the error that came with it. A failed remote save
// still returns the data, as 202 with a warning, since the change was kept.
func respond(c *gin.Context, logger *zap.Logger, status int, data any, err error) {
	if err == nil {
		c.JSON(status, gin.H{"data": data})
		return
	}

	if errors.Is(err, shop.ErrRemoteSave) {
		logger.Warn("change kept locally", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusAccepted, gin.H{
			"data":    data,
			"warning": "saved locally; the spreadsheet could not be updated",
		})
		return
	}

	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(code, gin.H{"error": "internal error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
