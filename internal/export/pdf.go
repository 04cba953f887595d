package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

var pdfColWidths = []float64{22, 50, 26, 36, 19, 19, 19}

// PDF renders one month's expenses as an A4 expense report: title,
// reporting period, a table of expenses and a totals row.
func PDF(expenses []model.Expense, month, year int) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// receipts carry accented French text; fpdf core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(fmt.Sprintf("Note de frais %02d/%d", month, year)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Note de Frais"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Période : %s %d", monthNames[month], year)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Date d'édition : %s", time.Now().Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// header row
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(52, 152, 219)
	pdf.SetTextColor(255, 255, 255)
	headers := []string{"Date", "Description", "Catégorie", "Fournisseur", "HT", "TVA", "TTC"}
	for i, h := range headers {
		align := "L"
		if i >= 4 {
			align = "R"
		}
		pdf.CellFormat(pdfColWidths[i], 8, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFillColor(249, 249, 249)

	totalHT := decimal.Zero
	totalTVA := decimal.Zero
	totalTTC := decimal.Zero

	for i, e := range expenses {
		fill := i%2 == 1
		cells := []string{
			e.Date.Format("02/01/2006"),
			e.Description,
			string(e.Category),
			e.Vendor,
			formatAmount(orZero(e.AmountHT)),
			formatAmount(orZero(e.TVA)),
			formatAmount(e.AmountTTC),
		}
		for j, c := range cells {
			align := "L"
			if j >= 4 {
				align = "R"
			}
			pdf.CellFormat(pdfColWidths[j], 7, tr(c), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)

		totalHT = totalHT.Add(orZero(e.AmountHT))
		totalTVA = totalTVA.Add(orZero(e.TVA))
		totalTTC = totalTTC.Add(e.AmountTTC)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(236, 240, 241)
	pdf.CellFormat(pdfColWidths[0]+pdfColWidths[1]+pdfColWidths[2]+pdfColWidths[3], 8, "TOTAL", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColWidths[4], 8, tr(formatAmount(totalHT.Round(2))), "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColWidths[5], 8, tr(formatAmount(totalTVA.Round(2))), "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColWidths[6], 8, tr(formatAmount(totalTTC.Round(2))), "1", 0, "R", true, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, tr("Document généré automatiquement par Expense Tracker"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &buf, nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}
