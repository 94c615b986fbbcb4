package storage

import (
	"encoding/csv"
	"errors"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/rsnakamura/theape/internal/core/domain"
	"go.trai.ch/zerr"
)

// CSVStorage writes rows keyed by column header.
// The header line is written before the first row.
type CSVStorage struct {
	Headers []string

	out     io.Writer
	writer  *csv.Writer
	started bool
}

// NewCSVStorage creates a CSV writer over out.
func NewCSVStorage(headers []string, out io.Writer) *CSVStorage {
	return &CSVStorage{Headers: headers, out: out}
}

// OpenCSV opens name in files and returns a CSV storage writing to it.
func OpenCSV(files *FileStorage, name string, headers []string) (*CSVStorage, *FileStorage, error) {
	f, err := files.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return NewCSVStorage(headers, f), f, nil
}

// WriteRow writes one row. Columns missing from row are left empty; a key
// that is not a header is an error.
func (c *CSVStorage) WriteRow(row map[string]string) error {
	if c.out == nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, domain.ErrStorageNotOpen), "csv storage has no output")
	}
	if len(c.Headers) == 0 {
		return zerr.Wrap(domain.ErrStorage, "csv storage has no headers")
	}

	var unknown []string
	for key := range row {
		if !slices.Contains(c.Headers, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		err := zerr.With(zerr.Wrap(domain.ErrStorage, "row keys are not in the header"), "keys", strings.Join(unknown, ","))
		return zerr.With(err, "headers", strings.Join(c.Headers, ","))
	}

	if c.writer == nil {
		c.writer = csv.NewWriter(c.out)
	}
	if !c.started {
		if err := c.writer.Write(c.Headers); err != nil {
			return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to write csv header")
		}
		c.started = true
	}

	record := make([]string, len(c.Headers))
	for i, h := range c.Headers {
		record[i] = row[h]
	}
	if err := c.writer.Write(record); err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to write csv row")
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to flush csv row")
	}
	return nil
}

// WriteRows writes each row in order, stopping at the first error.
func (c *CSVStorage) WriteRows(rows []map[string]string) error {
	for _, row := range rows {
		if err := c.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}
