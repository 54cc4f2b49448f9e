// Package report builds downloadable workbook reports over the permit
// register.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/ledger"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
)

const registerSheet = "Register"
const summarySheet = "Summary"

var registerHeader = []interface{}{
	"Reference No", "Applicant", "Email", "Status", "Remarks", "Submitted At", "Updated At",
}

// BuildRegister renders the permit register for one domain as an XLSX
// workbook: a Register sheet with one row per application and a Summary
// sheet with per-stage counts.
func BuildRegister(d domain.PermitDomain, apps []service.ApplicationView, counts domain.StatusCounts) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, fmt.Errorf("report: creating register sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("report: dropping default sheet: %w", err)
	}

	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return nil, fmt.Errorf("report: writing header: %w", err)
	}
	for i := range apps {
		app := &apps[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			app.ReferenceNo,
			app.ApplicantName,
			app.ApplicantEmail,
			app.DisplayStatus,
			len(ledger.Decode(app.CommentLog)),
			app.SubmittedAt.Format("2006-01-02 15:04"),
			app.UpdatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("report: writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("report: creating summary sheet: %w", err)
	}
	header := []interface{}{fmt.Sprintf("%s register", d), "Count"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("report: writing summary header: %w", err)
	}
	for i, s := range domain.AllStatuses {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{string(s), counts[s]}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("report: writing summary row: %w", err)
		}
	}

	return f, nil
}
