package handler

import (
	"fmt"

	"github.com/Dibbotcf/Legacyscript/model"
	"github.com/Dibbotcf/Legacyscript/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	svc            *service.Service
	frontendOrigin string
}

func NewInvoiceHandler(svc *service.Service, frontendOrigin string) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, frontendOrigin: frontendOrigin}
}

// ShareResponse is returned when an invoice is shared
type ShareResponse struct {
	ShareID string        `json:"shareId"`
	URL     string        `json:"url"`
	Invoice model.Invoice `json:"invoice"`
}

// List returns every valid invoice, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.svc.ListInvoices(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, invoices)
}

// GetShared resolves a public share token
func (h *InvoiceHandler) GetShared(c *gin.Context) {
	invoice, err := h.svc.GetInvoiceByShareToken(c.Request.Context(), c.Param("shareId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, invoice)
}

// Create stores an invoice under the id carried in the body
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req model.Invoice
	if err := c.ShouldBindJSON(&req); err != nil {
		respondServiceError(c, fmt.Errorf("parse request body: %w", err))
		return
	}

	invoice, err := h.svc.CreateOrReplaceInvoice(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, invoice)
}

// Update replaces the invoice at the path id
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req model.Invoice
	if err := c.ShouldBindJSON(&req); err != nil {
		respondServiceError(c, fmt.Errorf("parse request body: %w", err))
		return
	}

	invoice, err := h.svc.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, invoice)
}

// Delete removes an invoice. Unknown ids succeed.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c)
}

// Share issues (or returns the existing) share token and public link
func (h *InvoiceHandler) Share(c *gin.Context) {
	invoice, err := h.svc.ShareInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, ShareResponse{
		ShareID: invoice.ShareID,
		URL:     service.ShareURL(h.frontendOrigin, invoice.ShareID),
		Invoice: invoice,
	})
}
