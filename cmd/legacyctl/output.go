package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Dibbotcf/Legacyscript/model"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#F59E0B")
	colorSuccess = lipgloss.Color("#10B981")

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleStatus = map[string]lipgloss.Style{
		model.StatusDraft: lipgloss.NewStyle().Foreground(colorMuted),
		model.StatusSent:  lipgloss.NewStyle().Foreground(colorWarning),
		model.StatusPaid:  lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
	}
)

// Printer renders command results as styled text or JSON.
type Printer struct {
	w     io.Writer
	json  bool
	color bool
}

// NewPrinter creates a printer. Color is enabled for "always", or for "auto"
// when w is a terminal.
func NewPrinter(w io.Writer, jsonOut bool, colorMode string) *Printer {
	color := false
	switch colorMode {
	case "always":
		color = true
	case "never":
	default:
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &Printer{w: w, json: jsonOut, color: color}
}

// IsJSON reports whether JSON output was requested.
func (p *Printer) IsJSON() bool {
	return p.json
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

func (p *Printer) Title(text string) {
	fmt.Fprintln(p.w, p.render(styleTitle, text))
}

func (p *Printer) Success(text string) {
	fmt.Fprintln(p.w, p.render(styleSuccess, "✓ "+text))
}

func (p *Printer) Muted(text string) {
	fmt.Fprintln(p.w, p.render(styleMuted, text))
}

func (p *Printer) status(status string) string {
	style, ok := styleStatus[status]
	if !ok {
		return status
	}
	return p.render(style, status)
}

// truncate shortens s to n runes for table cells.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Submissions prints a submissions table.
func (p *Printer) Submissions(subs []model.Submission) error {
	if p.json {
		return p.JSON(subs)
	}
	if len(subs) == 0 {
		p.Muted("No submissions")
		return nil
	}

	p.Title(fmt.Sprintf("%d submission(s)", len(subs)))
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tNAME\tEMAIL\tPHONE\tMESSAGE")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Timestamp, truncate(s.Name, 24), s.Email, s.Phone, truncate(s.Message, 40))
	}
	return tw.Flush()
}

// Invoices prints an invoices table.
func (p *Printer) Invoices(invoices []model.Invoice) error {
	if p.json {
		return p.JSON(invoices)
	}
	if len(invoices) == 0 {
		p.Muted("No invoices")
		return nil
	}

	p.Title(fmt.Sprintf("%d invoice(s)", len(invoices)))
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUOTE\tCLIENT\tPROJECT\tSTATUS\tCREATED\tSHARE")
	for _, inv := range invoices {
		share := inv.ShareID
		if share == "" {
			share = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.QuoteNo, truncate(inv.ClientName, 24), truncate(inv.ProjectTitle, 32),
			p.status(inv.Status), inv.CreatedAt, share)
	}
	return tw.Flush()
}

// Invoice prints a single invoice with its line items.
func (p *Printer) Invoice(inv *model.Invoice) error {
	if p.json {
		return p.JSON(inv)
	}

	p.Title(fmt.Sprintf("Invoice %s (%s)", inv.ID, p.status(inv.Status)))
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Quote no\t%s\n", inv.QuoteNo)
	fmt.Fprintf(tw, "Date\t%s\n", inv.Date)
	fmt.Fprintf(tw, "Client\t%s\n", inv.ClientName)
	fmt.Fprintf(tw, "Project\t%s\n", inv.ProjectTitle)
	fmt.Fprintf(tw, "Amount\t%s\n", inv.AmountInWords)
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, item := range inv.Items {
		fmt.Fprintf(p.w, "  %s. %s  %s\n", item.ID, item.Title, item.Price)
		for _, d := range item.Details {
			p.Muted("       " + d)
		}
	}
	return nil
}
