package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/service"
)

const (
	pageMargin   = 10.0
	bottomMargin = 15.0
	rowHeight    = 7.0
	fontFamily   = "Helvetica"
)

// Renderer draws documents onto A4 pages.
type Renderer struct {
	now func() time.Time
}

var _ service.ReportRenderer = (*Renderer)(nil)

// NewRenderer creates a PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render builds the document for kind and writes it to w as PDF.
func (r *Renderer) Render(w io.Writer, items []model.InventoryItem, policyLimit float64, kind service.ReportKind) error {
	now := r.now()
	doc, err := Build(items, policyLimit, kind, now)
	if err != nil {
		return err
	}
	return Write(w, doc, now)
}

// Write renders an already built document.
func Write(w io.Writer, doc Document, created time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetCreationDate(created)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("LedgerLens", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.SetTextColor(doc.TitleColor.R, doc.TitleColor.G, doc.TitleColor.B)
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range doc.Lines {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	if doc.Warning != "" {
		pdf.SetTextColor(Red.R, Red.G, Red.B)
		pdf.CellFormat(0, 6, tr(doc.Warning), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	for _, section := range doc.Sections {
		drawSection(pdf, tr, section)
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render %s report: %w", doc.Kind, err)
	}
	return nil
}

func drawSection(pdf *fpdf.Fpdf, tr func(string) string, s Section) {
	if s.Heading != "" {
		pdf.SetFont(fontFamily, "B", 13)
		pdf.SetTextColor(s.Fill.R, s.Fill.G, s.Fill.B)
		pdf.CellFormat(0, 9, tr(s.Heading), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader(pdf, tr, s)

	if len(s.Rows) == 0 {
		pdf.SetFont(fontFamily, "I", 10)
		pdf.CellFormat(0, rowHeight, tr(s.Empty), "", 1, "L", false, 0, "")
		return
	}

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont(fontFamily, "", 10)
	for i, row := range s.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
			drawHeader(pdf, tr, s)
			pdf.SetFont(fontFamily, "", 10)
		}
		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)
		for c, col := range s.Columns {
			text := ""
			if c < len(row) {
				text = fit(pdf, tr, row[c], col.Width-2)
			}
			align := col.Align
			if align == "" {
				align = "L"
			}
			pdf.CellFormat(col.Width, rowHeight, text, "B", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, s Section) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(s.Fill.R, s.Fill.G, s.Fill.B)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range s.Columns {
		pdf.CellFormat(col.Width, rowHeight+1, tr(col.Header), "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// fit truncates UTF-8 text with an ellipsis until its translated form fits
// in width, and returns the translated result.
func fit(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) string {
	if out := tr(text); pdf.GetStringWidth(out) <= width {
		return out
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := tr(string(runes) + "...")
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
