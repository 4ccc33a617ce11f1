package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
)

// CSVFile is a header-less delimited text file.
type CSVFile struct {
	Path string
}

// NewCSVFile returns a destination backed by path. The file is created on first write.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

// Names reads the first field of every line. A missing file holds no names.
func (c *CSVFile) Names(_ context.Context) ([]string, error) {
	f, err := os.Open(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %s", c.Path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var names []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, eris.Wrapf(err, "csv: read %s", c.Path)
		}
		if len(rec) > 0 && rec[0] != "" {
			names = append(names, rec[0])
		}
	}
}

// AppendRows appends rows, starting on a new line if the file lacks a trailing newline.
func (c *CSVFile) AppendRows(_ context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	needsNewline, err := c.missingTrailingNewline()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(c.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrapf(err, "csv: open %s for append", c.Path)
	}
	defer f.Close() //nolint:errcheck

	if needsNewline {
		if _, err := f.WriteString("\n"); err != nil {
			return eris.Wrapf(err, "csv: write %s", c.Path)
		}
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return eris.Wrapf(err, "csv: write %s", c.Path)
	}
	return eris.Wrapf(f.Sync(), "csv: sync %s", c.Path)
}

func (c *CSVFile) missingTrailingNewline() (bool, error) {
	f, err := os.Open(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "csv: open %s", c.Path)
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		return false, eris.Wrapf(err, "csv: stat %s", c.Path)
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, eris.Wrapf(err, "csv: read %s", c.Path)
	}
	return last[0] != '\n', nil
}

// Close is a no-op; the file is opened per call.
func (c *CSVFile) Close() error { return nil }
