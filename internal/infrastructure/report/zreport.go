// Package report renders Z-reports as XLSX workbooks.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Z-Report"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var movementOrder = []domain.MovementType{
	domain.MovementPayment,
	domain.MovementCashIn,
	domain.MovementCashOut,
	domain.MovementRefund,
}

// Filename is the attachment name for a shift's export.
func Filename(shiftID int64) string {
	return fmt.Sprintf("z-report-%d.xlsx", shiftID)
}

// WriteZReport writes a single-sheet workbook: a summary block followed by
// one row per movement type and the untracked cash orders.
func WriteZReport(w io.Writer, r domain.ZReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	rows := [][]any{
		{"Shift", r.ShiftID},
		{"Restaurant", r.RestaurantID},
		{"Cashier", r.CashierID},
		{"Opened at", r.OpenedAt.UTC().Format(time.RFC3339)},
		{"Closed at", formatTime(r.ClosedAt)},
		{"Opening balance", money(r.OpeningBalance)},
		{"Expected balance", money(r.ExpectedBalance)},
		{"Closing balance", moneyPtr(r.ClosingBalance)},
		{"Variance", moneyPtr(r.Variance)},
		{"Movements", r.MovementCount},
		{"Notes", r.Notes},
		{},
		{"Type", "Count", "Total", "Cash total"},
	}
	headerRow := len(rows)

	for _, kind := range movementOrder {
		sub := r.Subtotals[kind]
		rows = append(rows, []any{string(kind), sub.Count, money(sub.Total), money(sub.CashTotal)})
	}

	rows = append(rows, []any{}, []any{"Untracked cash orders", joinIDs(r.UntrackedCashOrders)})

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("D%d", headerRow), bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// money keeps two decimals as text so the workbook never shows float noise.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func moneyPtr(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return money(*d)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
