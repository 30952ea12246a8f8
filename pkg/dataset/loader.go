package dataset

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Loader produces a dataset from a source. Implementations fail with an
// errors.ErrCodeLoad error when the source is unreachable or unparseable.
type Loader interface {
	Load(ctx context.Context, source string) (*Dataset, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, source string) (*Dataset, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, source string) (*Dataset, error) {
	return f(ctx, source)
}

// FileLoader reads CSV and XLSX files through a schema.
type FileLoader struct {
	Schema Schema

	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string

	Logger *log.Logger
}

// NewFileLoader creates a loader for schema. A nil logger discards output.
func NewFileLoader(schema Schema, logger *log.Logger) *FileLoader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileLoader{Schema: schema, Logger: logger}
}

// Load reads the file at source. The format is chosen by extension.
func (l *FileLoader) Load(ctx context.Context, source string) (*Dataset, error) {
	if err := errors.ValidateSourcePath(source); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "load %s", source)
	}
	if err := l.Schema.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "open %s", source)
	}
	defer f.Close()

	var ds *Dataset
	switch strings.ToLower(filepath.Ext(source)) {
	case ".xlsx":
		ds, err = l.ReadXLSX(ctx, f)
	default:
		ds, err = l.ReadCSV(ctx, f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "read %s", source)
	}
	ds.Source = source

	l.logger().Debug("dataset loaded", "source", source, "rows", ds.Len(), "dropped", ds.Dropped, "filtered", ds.Filtered, "defaulted", ds.Defaulted)
	return ds, nil
}

// ReadCSV parses CSV from r. The first row is the header. Rows the CSV
// reader rejects are counted as dropped.
func (l *FileLoader) ReadCSV(ctx context.Context, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeLoad, "no header row")
	}
	if err != nil {
		return nil, err
	}
	b, err := l.newBuilder(header)
	if err != nil {
		return nil, err
	}

	for n := 0; ; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if stderrors.As(err, &perr) {
			b.ds.Dropped++
			continue
		}
		if err != nil {
			return nil, err
		}
		b.add(row)
	}
	return b.ds, nil
}

// ReadXLSX parses a workbook from r. The first row of the sheet is the
// header.
func (l *FileLoader) ReadXLSX(ctx context.Context, r io.Reader) (*Dataset, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeLoad, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.Schema.FromRows(rows)
}

// FromRows builds a dataset from a header row followed by data rows.
func (s Schema) FromRows(rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeLoad, "no header row")
	}
	b, err := newBuilder(s, rows[0])
	if err != nil {
		return nil, err
	}
	for _, row := range rows[1:] {
		b.add(row)
	}
	return b.ds, nil
}

type builder struct {
	schema Schema
	cols   columns
	ds     *Dataset
}

func (l *FileLoader) newBuilder(header []string) (*builder, error) {
	return newBuilder(l.Schema, header)
}

func newBuilder(s Schema, header []string) (*builder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cols, err := s.resolve(header)
	if err != nil {
		return nil, err
	}
	return &builder{schema: s, cols: cols, ds: &Dataset{Shape: s.Shape}}, nil
}

func (b *builder) add(row []string) {
	if blank(row) {
		return
	}
	r, defaulted, err := b.schema.parse(b.cols, row)
	if err != nil {
		b.ds.Dropped++
		return
	}
	if !b.schema.keep(r) {
		b.ds.Filtered++
		return
	}
	if defaulted {
		b.ds.Defaulted++
	}
	b.ds.Records = append(b.ds.Records, r)
}

func (l *FileLoader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
