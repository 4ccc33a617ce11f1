package sink

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// DefaultSheet is the worksheet used when none is configured.
const DefaultSheet = "lineup"

// Workbook is a single sheet of an XLSX file.
type Workbook struct {
	Path  string
	Sheet string
}

// NewWorkbook returns a destination for sheet in the workbook at path.
func NewWorkbook(path, sheet string) *Workbook {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Workbook{Path: path, Sheet: sheet}
}

func (w *Workbook) open() (*xlsx.File, error) {
	if _, err := os.Stat(w.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	f, err := xlsx.OpenFile(w.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", w.Path)
	}
	return f, nil
}

// Names reads the first cell of every non-empty row of the sheet.
func (w *Workbook) Names(_ context.Context) ([]string, error) {
	f, err := w.open()
	if err != nil || f == nil {
		return nil, err
	}
	sheet, ok := f.Sheet[w.Sheet]
	if !ok {
		return nil, nil
	}

	var names []string
	for _, row := range sheet.Rows {
		if row == nil || len(row.Cells) == 0 {
			continue
		}
		if v := strings.TrimSpace(row.Cells[0].String()); v != "" {
			names = append(names, v)
		}
	}
	return names, nil
}

// AppendRows adds rows after the sheet's last row and saves the workbook.
func (w *Workbook) AppendRows(_ context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	f, err := w.open()
	if err != nil {
		return err
	}
	if f == nil {
		f = xlsx.NewFile()
	}

	sheet, ok := f.Sheet[w.Sheet]
	if !ok {
		sheet, err = f.AddSheet(w.Sheet)
		if err != nil {
			return eris.Wrapf(err, "xlsx: add sheet %s", w.Sheet)
		}
	}

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}

	return eris.Wrapf(f.Save(w.Path), "xlsx: save %s", w.Path)
}

func (w *Workbook) Close() error { return nil }
