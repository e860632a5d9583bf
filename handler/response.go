package handler

import (
	"errors"
	"net/http"

	"github.com/Dibbotcf/Legacyscript/pkg/logger"
	"github.com/Dibbotcf/Legacyscript/service"
	"github.com/gin-gonic/gin"
)

// respondData writes {success:true, data}.
func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondOK writes {success:true}.
func respondOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// respondServiceError maps service errors onto status codes. Anything
// unrecognised, unreadable request bodies included, is a 500 carrying the
// error text.
func respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrInvoiceNotFound):
		respondError(c, http.StatusNotFound, "Invoice not found")
	default:
		_ = c.Error(err)
		logger.Error(c.Request.Context(), "request failed", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
