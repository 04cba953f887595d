// Package export renders monthly expense reports ("notes de frais") as
// Excel workbooks and PDF documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

var monthNames = map[int]string{
	1: "Janvier", 2: "Février", 3: "Mars", 4: "Avril",
	5: "Mai", 6: "Juin", 7: "Juillet", 8: "Août",
	9: "Septembre", 10: "Octobre", 11: "Novembre", 12: "Décembre",
}

var excelHeaders = []string{"Date", "Description", "Catégorie", "Fournisseur", "HT (€)", "TVA (€)", "TTC (€)"}

// Excel renders one month's expenses as a workbook: styled header row,
// one row per expense, a totals row, fixed column widths.
func Excel(expenses []model.Expense, month, year int) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Note de frais %02d-%d", month, year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("bold style: %w", err)
	}

	for col, header := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	totalHT := decimal.Zero
	totalTVA := decimal.Zero
	totalTTC := decimal.Zero

	for i, e := range expenses {
		row := i + 2
		setRow(f, sheet, row, []interface{}{
			e.Date.Format("02/01/2006"),
			e.Description,
			string(e.Category),
			e.Vendor,
			decimalValue(e.AmountHT),
			decimalValue(e.TVA),
			amountValue(e.AmountTTC),
		})
		totalHT = totalHT.Add(orZero(e.AmountHT))
		totalTVA = totalTVA.Add(orZero(e.TVA))
		totalTTC = totalTTC.Add(e.AmountTTC)
	}

	totalRow := len(expenses) + 2
	setRow(f, sheet, totalRow, []interface{}{
		nil, nil, nil, "TOTAL",
		amountValue(totalHT.Round(2)),
		amountValue(totalTVA.Round(2)),
		amountValue(totalTTC.Round(2)),
	})
	start, _ := excelize.CoordinatesToCellName(4, totalRow)
	end, _ := excelize.CoordinatesToCellName(7, totalRow)
	f.SetCellStyle(sheet, start, end, boldStyle)

	widths := []float64{12, 40, 18, 25, 12, 12, 12}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	return f.WriteToBuffer()
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func decimalValue(d *decimal.Decimal) interface{} {
	if d == nil {
		return amountValue(decimal.Zero)
	}
	return amountValue(*d)
}

func amountValue(d decimal.Decimal) interface{} {
	v, _ := d.Float64()
	return v
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
