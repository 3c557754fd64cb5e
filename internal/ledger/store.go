package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/Plauto679/taiico-crm/internal/models"
)

// Store reads and writes ledger sheets. The workbooks are shared mutable
// state with no external coordination, so every operation holds a per-path
// mutex; the lock scope is the whole file because a write rewrites the whole
// file.
type Store struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore() *Store {
	return &Store{locks: make(map[string]*sync.Mutex)}
}

func (s *Store) lockFor(path string) *sync.Mutex {
	key := filepath.Clean(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[key] = l
	return l
}

// LoadSheet loads one sheet as a dataset. A missing workbook or sheet is
// ErrNotFound; the read and write callers translate that differently.
func (s *Store) LoadSheet(path, sheet string) (*Dataset, error) {
	l := s.lockFor(path)
	l.Lock()
	defer l.Unlock()
	return s.readSheet(path, sheet)
}

// WriteSheet replaces the target sheet's header and rows. Every other sheet
// in the workbook is left untouched; stale rows beyond the new extent are
// removed.
func (s *Store) WriteSheet(path, sheet string, ds *Dataset) error {
	l := s.lockFor(path)
	l.Lock()
	defer l.Unlock()
	return s.writeSheet(path, sheet, ds)
}

// Mutate runs a load→mutate→write sequence atomically with respect to other
// Store calls on the same file. fn gets the current sheet content and edits
// it in place; returning an error aborts without a write.
func (s *Store) Mutate(path, sheet string, fn func(*Dataset) error) error {
	l := s.lockFor(path)
	l.Lock()
	defer l.Unlock()

	ds, err := s.readSheet(path, sheet)
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.writeSheet(path, sheet, ds)
}

// MutateOrCreate is Mutate for workbooks that may not exist yet: a missing
// file starts from an empty dataset with the given columns and is created on
// write.
func (s *Store) MutateOrCreate(path, sheet string, columns []string, fn func(*Dataset) error) error {
	l := s.lockFor(path)
	l.Lock()
	defer l.Unlock()

	ds, err := s.readSheet(path, sheet)
	if errors.Is(err, models.ErrNotFound) {
		ds = NewDataset(columns...)
	} else if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.writeSheet(path, sheet, ds)
}

// SheetNames lists the workbook's sheets, used for first-sheet discovery.
func (s *Store) SheetNames(path string) ([]string, error) {
	l := s.lockFor(path)
	l.Lock()
	defer l.Unlock()

	f, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func (s *Store) open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("workbook %s: %w", path, models.ErrNotFound)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %v: %w", path, err, models.ErrIO)
	}
	return f, nil
}

func (s *Store) readSheet(path, sheet string) (*Dataset, error) {
	f, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		names := f.GetSheetList()
		if len(names) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets: %w", path, models.ErrNotFound)
		}
		sheet = names[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q in %s: %v: %w", sheet, path, err, models.ErrNotFound)
	}
	if len(rows) == 0 {
		return &Dataset{}, nil
	}

	ds := &Dataset{Columns: append([]string(nil), rows[0]...)}
	for _, raw := range rows[1:] {
		row := make(Row, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(raw) && raw[i] != "" {
				row[col] = raw[i]
			} else {
				row[col] = nil
			}
		}
		ds.Append(row)
	}
	return ds, nil
}

func (s *Store) writeSheet(path, sheet string, ds *Dataset) error {
	var f *excelize.File
	created := false

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f = excelize.NewFile()
		created = true
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %v: %w", err, models.ErrIO)
		}
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("open workbook %s: %v: %w", path, err, models.ErrIO)
		}
	}
	defer f.Close()

	if sheet == "" {
		names := f.GetSheetList()
		if len(names) == 0 {
			sheet = "Sheet1"
		} else {
			sheet = names[0]
		}
	}

	if created {
		if sheet != "Sheet1" {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %v: %w", err, models.ErrIO)
			}
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %v: %w", sheet, err, models.ErrIO)
		}
	}

	old, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q extent: %v: %w", sheet, err, models.ErrIO)
	}
	oldWidth := 0
	for _, r := range old {
		if len(r) > oldWidth {
			oldWidth = len(r)
		}
	}
	width := len(ds.Columns)
	if oldWidth > width {
		width = oldWidth
	}

	writeRow := func(rowIdx int, values []any) error {
		for col := 0; col < width; col++ {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			var v any = ""
			if col < len(values) {
				v = values[col]
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	header := make([]any, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := writeRow(1, header); err != nil {
		return fmt.Errorf("write header: %v: %w", err, models.ErrIO)
	}
	for i, row := range ds.Rows {
		values := make([]any, len(ds.Columns))
		for j, col := range ds.Columns {
			values[j] = writeValue(row[col])
		}
		if err := writeRow(i+2, values); err != nil {
			return fmt.Errorf("write row %d: %v: %w", i+2, err, models.ErrIO)
		}
	}

	// Stale rows beyond the new extent must not survive the rewrite.
	for extra := len(old) - (len(ds.Rows) + 1); extra > 0; extra-- {
		if err := f.RemoveRow(sheet, len(ds.Rows)+2); err != nil {
			return fmt.Errorf("trim stale row: %v: %w", err, models.ErrIO)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %v: %w", path, err, models.ErrIO)
	}
	slog.Info("ledger sheet written", "path", path, "sheet", sheet, "rows", len(ds.Rows))
	return nil
}

func writeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case *float64:
		if t == nil {
			return ""
		}
		return *t
	default:
		return v
	}
}
