package model

// InvoiceStatus constants
const (
	StatusDraft = "draft"
	StatusSent  = "sent"
	StatusPaid  = "paid"
)

// InvoiceItem is a numbered line item of an invoice. Details are rendered in order.
type InvoiceItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Details        []string `json:"details"`
	Price          string   `json:"price"`
	PriceSecondary string   `json:"priceSecondary,omitempty"`
}

// Invoice represents an invoice or quotation document
type Invoice struct {
	ID                 string        `json:"id"`
	QuoteNo            string        `json:"quoteNo"`
	Date               string        `json:"date"`
	JobID              string        `json:"jobId"`
	ClientName         string        `json:"clientName"`
	ClientTitle        string        `json:"clientTitle"`
	ClientContact      string        `json:"clientContact"`
	ClientAddress      string        `json:"clientAddress"`
	ProjectTitle       string        `json:"projectTitle"`
	Items              []InvoiceItem `json:"items"`
	AmountInWords      string        `json:"amountInWords"`
	VATNote            string        `json:"vatNote"`
	TermsAndConditions []string      `json:"termsAndConditions"`
	SignatureName      string        `json:"signatureName"`
	SignatureTitle     string        `json:"signatureTitle"`
	Status             string        `json:"status"`
	CreatedAt          string        `json:"createdAt"`
	ShareID            string        `json:"shareId,omitempty"`
}

// Valid reports whether the invoice can be listed.
func (i *Invoice) Valid() bool {
	return i != nil && i.ID != "" && i.CreatedAt != ""
}

// IsValidStatus reports whether status is one of draft, sent or paid.
func IsValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusSent, StatusPaid:
		return true
	}
	return false
}

// Normalize replaces nil sequences with empty ones and defaults the status to draft.
func (i *Invoice) Normalize() {
	if i.Items == nil {
		i.Items = []InvoiceItem{}
	}
	for n := range i.Items {
		if i.Items[n].Details == nil {
			i.Items[n].Details = []string{}
		}
	}
	if i.TermsAndConditions == nil {
		i.TermsAndConditions = []string{}
	}
	if i.Status == "" {
		i.Status = StatusDraft
	}
}
