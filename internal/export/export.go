// Package export renders the medicine master list as an Excel workbook.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

const (
	// SheetName is the label of the single worksheet.
	SheetName = "OPMC Inventory"
	// FilePrefix starts every exported file name.
	FilePrefix = "OPMC_Master_List"
	// NotSet fills the location code column for incomplete locations.
	NotSet = "Not Set"
	// TimestampLayout formats the Last Updated column.
	TimestampLayout = "1/2/2006, 3:04:05 PM"
	// ContentType is the MIME type of the workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Column is a worksheet column heading and width in characters.
type Column struct {
	Header string
	Width  float64
}

// Columns lists the worksheet columns in order.
var Columns = []Column{
	{"Medicine Name", 30},
	{"Baris", 10},
	{"Rak", 10},
	{"Tingkat", 10},
	{"Petak", 10},
	{"Location Code", 15},
	{"Last Updated", 20},
}

// Row is one exported medicine.
type Row struct {
	Name         string
	Baris        string
	Rak          string
	Tingkat      string
	Petak        string
	LocationCode string
	LastUpdated  string
}

func (r Row) values() []any {
	return []any{r.Name, r.Baris, r.Rak, r.Tingkat, r.Petak, r.LocationCode, r.LastUpdated}
}

// Rows maps medicines to export rows, formatting timestamps in loc.
func Rows(meds []model.Medicine, loc *time.Location) []Row {
	rows := make([]Row, 0, len(meds))
	for _, m := range meds {
		code, ok := m.LocationCode()
		if !ok {
			code = NotSet
		}
		rows = append(rows, Row{
			Name:         m.Name,
			Baris:        m.Location.Baris,
			Rak:          m.Location.Rak,
			Tingkat:      m.Location.Tingkat,
			Petak:        m.Location.Petak,
			LocationCode: code,
			LastUpdated:  FormatTimestamp(m.LastUpdated, loc),
		})
	}
	return rows
}

// FormatTimestamp renders t in loc, or "" for a nil timestamp.
func FormatTimestamp(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimestampLayout)
}

// FileName returns the export file name for the date of now.
func FileName(now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", FilePrefix, now.Format("2006-01-02"))
}

// Workbook builds the workbook in memory. The caller must Close it.
func Workbook(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c.Header

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("naming column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(SheetName, col, col, c.Width); err != nil {
			f.Close()
			return nil, fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		values := r.values()
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// Render builds the workbook and returns its bytes.
func Render(rows []Row) ([]byte, error) {
	f, err := Workbook(rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Exporter produces master list workbooks from a gateway.
type Exporter struct {
	Gateway inventory.Gateway
	// Location formats Last Updated. Defaults to time.Local.
	Location *time.Location
	// Now dates the file name. Defaults to time.Now.
	Now func() time.Time
}

// Export fetches every medicine and renders the workbook. Any failure is an
// inventory error of kind KindExport.
func (e *Exporter) Export(ctx context.Context) (name string, data []byte, err error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	meds, err := e.Gateway.ListMedicines(ctx)
	if err != nil {
		return "", nil, exportError("fetching medicines", err)
	}

	data, err = Render(Rows(meds, e.Location))
	if err != nil {
		return "", nil, exportError("rendering workbook", err)
	}
	return FileName(now()), data, nil
}

// ExportFile writes the workbook into dir and returns its path. The file only
// appears once it is complete.
func (e *Exporter) ExportFile(ctx context.Context, dir string) (string, error) {
	name, data, err := e.Export(ctx)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".opmc-export-*.xlsx")
	if err != nil {
		return "", exportError("creating export file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", exportError("writing export file", err)
	}
	if err := tmp.Close(); err != nil {
		return "", exportError("closing export file", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", exportError("moving export file into place", err)
	}
	return path, nil
}

func exportError(op string, err error) error {
	return &inventory.Error{Kind: inventory.KindExport, Op: op, Notice: "Failed to export data", Err: err}
}
