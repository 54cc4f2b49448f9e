// Package csvexport writes permit application lists as CSV for download.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Theijiii/plms-sys-sub004/internal/ledger"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Reference No",
	"Domain",
	"Applicant",
	"Applicant Email",
	"Status",
	"Remarks",
	"Last Remark",
	"Last Remark At",
	"Submitted At",
	"Updated At",
}

// Writer wraps csv.Writer for exporting applications as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteApplications converts a batch of application views to CSV rows and
// writes them.
func (w *Writer) WriteApplications(apps []service.ApplicationView) error {
	for i := range apps {
		if err := w.csv.Write(applicationToRow(&apps[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func applicationToRow(app *service.ApplicationView) []string {
	entries := ledger.Decode(app.CommentLog)

	lastRemark := ""
	lastRemarkAt := ""
	if len(entries) > 0 {
		last := entries[len(entries)-1]
		lastRemark = last.Text
		lastRemarkAt = ledger.DisplayTime(last.At)
	}

	return []string{
		app.ReferenceNo,
		string(app.Domain),
		app.ApplicantName,
		app.ApplicantEmail,
		app.DisplayStatus,
		strconv.Itoa(len(entries)),
		lastRemark,
		lastRemarkAt,
		app.SubmittedAt.Format("2006-01-02 15:04"),
		app.UpdatedAt.Format("2006-01-02 15:04"),
	}
}
