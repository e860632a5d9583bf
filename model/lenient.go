package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Stored documents are written by older clients and by hand, so decoding is
// forgiving: scalars of any JSON type become their textual form and values of
// the wrong shape become empty. Only an unparseable document is an error.

// fields splits a JSON object into its members.
func fields(data []byte) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// text returns a scalar as a string: strings unquoted, numbers in their
// literal form, booleans as true/false. null, objects and arrays give "".
func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// exactString returns raw only when it is a JSON string.
func exactString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// textList returns an array of scalars as strings. A lone scalar becomes a
// one-element list; anything else is nil.
func textList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		if s := text(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, text(item))
	}
	return out
}

func (s *Submission) UnmarshalJSON(data []byte) error {
	m, err := fields(data)
	if err != nil {
		return err
	}
	*s = Submission{
		ID:        text(m["id"]),
		Name:      text(m["name"]),
		Email:     text(m["email"]),
		Phone:     text(m["phone"]),
		Message:   text(m["message"]),
		Timestamp: text(m["timestamp"]),
	}
	return nil
}

func (it *InvoiceItem) UnmarshalJSON(data []byte) error {
	m, err := fields(data)
	if err != nil {
		return err
	}
	*it = InvoiceItem{
		ID:             text(m["id"]),
		Title:          text(m["title"]),
		Details:        textList(m["details"]),
		Price:          text(m["price"]),
		PriceSecondary: text(m["priceSecondary"]),
	}
	return nil
}

// UnmarshalJSON decodes an invoice leniently. Line items that are not objects
// are skipped. shareId only matches when stored as a string.
func (i *Invoice) UnmarshalJSON(data []byte) error {
	m, err := fields(data)
	if err != nil {
		return err
	}

	var items []InvoiceItem
	var rawItems []json.RawMessage
	if json.Unmarshal(m["items"], &rawItems) == nil && rawItems != nil {
		items = make([]InvoiceItem, 0, len(rawItems))
		for _, raw := range rawItems {
			var item InvoiceItem
			if err := item.UnmarshalJSON(raw); err != nil {
				continue
			}
			items = append(items, item)
		}
	}

	*i = Invoice{
		ID:                 text(m["id"]),
		QuoteNo:            text(m["quoteNo"]),
		Date:               text(m["date"]),
		JobID:              text(m["jobId"]),
		ClientName:         text(m["clientName"]),
		ClientTitle:        text(m["clientTitle"]),
		ClientContact:      text(m["clientContact"]),
		ClientAddress:      text(m["clientAddress"]),
		ProjectTitle:       text(m["projectTitle"]),
		Items:              items,
		AmountInWords:      text(m["amountInWords"]),
		VATNote:            text(m["vatNote"]),
		TermsAndConditions: textList(m["termsAndConditions"]),
		SignatureName:      text(m["signatureName"]),
		SignatureTitle:     text(m["signatureTitle"]),
		Status:             text(m["status"]),
		CreatedAt:          text(m["createdAt"]),
		ShareID:            exactString(m["shareId"]),
	}
	return nil
}
