// Package export renders console tables as spreadsheet files.
package export

import (
	"fmt"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const settlementSheet = "Settlements"

var settlementHeader = []any{
	"ID", "Store", "Reference", "Settlement Date", "Bill Amount", "Commission %",
	"Commission", "Settlement Amount", "Tax", "Processing Fee", "Settled",
	"Pending", "Extra Paid", "Net Settlement", "Status",
}

// amount columns E..N
const firstAmountCol, lastAmountCol = 5, 14

// SettlementsXLSX renders settlements as an XLSX workbook
func SettlementsXLSX(rows []entity.Settlement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", settlementSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(settlementSheet, "A1", &settlementHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(settlementHeader), 1)
	if err := f.SetCellStyle(settlementSheet, "A1", lastHeader, bold); err != nil {
		return nil, err
	}

	for i, s := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		var date any
		if !s.SettlementDate.IsZero() {
			date = s.SettlementDate.Format("2006-01-02")
		}
		row := []any{
			s.ID.String(), s.StoreName, s.Reference, date,
			s.BillAmount.InexactFloat64(),
			s.CommissionPercentage.InexactFloat64(),
			s.CommissionAmount.InexactFloat64(),
			s.SettlementAmount.InexactFloat64(),
			s.TaxAmount.InexactFloat64(),
			s.ProcessingFee.InexactFloat64(),
			s.SettledAmount.InexactFloat64(),
			s.PendingAmount.InexactFloat64(),
			s.ExtraPaidAmount.InexactFloat64(),
			s.NetSettlementAmount.InexactFloat64(),
			s.Status.Label(),
		}
		if err := f.SetSheetRow(settlementSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		money, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
		if err != nil {
			return nil, err
		}
		from, _ := excelize.CoordinatesToCellName(firstAmountCol, 2)
		to, _ := excelize.CoordinatesToCellName(lastAmountCol, len(rows)+1)
		if err := f.SetCellStyle(settlementSheet, from, to, money); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(settlementSheet, "B", "C", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(settlementSheet, "D", "O", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
