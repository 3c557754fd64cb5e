package repository

import (
	"fmt"
	"strings"

	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/parse"
)

// Client directory workbook columns. The file is a single-sheet workbook
// maintained by hand, so the repository tolerates a missing file on reads
// and creates it on the first write.
const (
	colClientName  = "Clientes"
	colClientMail  = "Mail"
	colClientPhone = "Telefono"
)

var clientColumns = []string{colClientName, colClientMail, colClientPhone}

// ClientDirectory is the Excel-backed contact store keyed by client name.
type ClientDirectory struct {
	store *ledger.Store
	path  string
}

func NewClientDirectory(store *ledger.Store, path string) *ClientDirectory {
	return &ClientDirectory{store: store, path: path}
}

func (d *ClientDirectory) List() ([]models.Client, error) {
	ds, err := d.store.LoadSheet(d.path, "")
	if err != nil {
		if isNotFound(err) {
			return []models.Client{}, nil
		}
		return nil, err
	}

	clients := make([]models.Client, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		name, ok := ledger.CellString(row[colClientName])
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		c := models.Client{Name: strings.TrimSpace(name)}
		if mail, ok := ledger.CellString(row[colClientMail]); ok && strings.TrimSpace(mail) != "" {
			m := strings.TrimSpace(mail)
			c.Email = &m
		}
		// Phone cells picked up a ".0" when the sheet stored them numeric.
		if phone := parse.Identifier(row[colClientPhone]); phone != "" {
			c.Phone = &phone
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// LookupEmail resolves a contact address by normalized-name equality.
// ErrNotFound means no address on file, which callers surface as a
// user-actionable error, not a server failure.
func (d *ClientDirectory) LookupEmail(name string) (string, error) {
	ds, err := d.store.LoadSheet(d.path, "")
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("no address on file for %q: %w", name, models.ErrNotFound)
		}
		return "", err
	}

	target := parse.Name(name)
	for _, row := range ds.Rows {
		cell, ok := ledger.CellString(row[colClientName])
		if !ok || parse.Name(cell) != target {
			continue
		}
		if mail, ok := ledger.CellString(row[colClientMail]); ok && strings.TrimSpace(mail) != "" {
			return strings.TrimSpace(mail), nil
		}
	}
	return "", fmt.Errorf("no address on file for %q: %w", name, models.ErrNotFound)
}

func (d *ClientDirectory) Add(c models.Client) error {
	return d.store.MutateOrCreate(d.path, "", clientColumns, func(ds *ledger.Dataset) error {
		for _, col := range clientColumns {
			ds.EnsureColumn(col)
		}
		ds.Append(clientRow(c))
		return nil
	})
}

func (d *ClientDirectory) Update(originalName string, c models.Client) error {
	found := false
	err := d.store.Mutate(d.path, "", func(ds *ledger.Dataset) error {
		for _, row := range ds.Rows {
			cell, ok := ledger.CellString(row[colClientName])
			if !ok || strings.TrimSpace(cell) != strings.TrimSpace(originalName) {
				continue
			}
			setClientRow(row, c)
			found = true
			break
		}
		if !found {
			return fmt.Errorf("client %q: %w", originalName, models.ErrNotFound)
		}
		return nil
	})
	return err
}

func (d *ClientDirectory) Delete(name string) error {
	return d.store.Mutate(d.path, "", func(ds *ledger.Dataset) error {
		kept := ds.Rows[:0]
		for _, row := range ds.Rows {
			cell, _ := ledger.CellString(row[colClientName])
			if strings.TrimSpace(cell) == strings.TrimSpace(name) {
				continue
			}
			kept = append(kept, row)
		}
		if len(kept) == len(ds.Rows) {
			return fmt.Errorf("client %q: %w", name, models.ErrNotFound)
		}
		ds.Rows = kept
		return nil
	})
}

// UpsertEmail records a manually supplied address so the directory learns
// from notification overrides. Existing entries keep their phone number.
func (d *ClientDirectory) UpsertEmail(name, email string) error {
	return d.store.MutateOrCreate(d.path, "", clientColumns, func(ds *ledger.Dataset) error {
		for _, col := range clientColumns {
			ds.EnsureColumn(col)
		}
		target := parse.Name(name)
		for _, row := range ds.Rows {
			cell, ok := ledger.CellString(row[colClientName])
			if ok && parse.Name(cell) == target {
				row[colClientMail] = strings.TrimSpace(email)
				return nil
			}
		}
		ds.Append(ledger.Row{
			colClientName:  strings.TrimSpace(name),
			colClientMail:  strings.TrimSpace(email),
			colClientPhone: nil,
		})
		return nil
	})
}

func clientRow(c models.Client) ledger.Row {
	row := ledger.Row{colClientName: nil, colClientMail: nil, colClientPhone: nil}
	setClientRow(row, c)
	return row
}

func setClientRow(row ledger.Row, c models.Client) {
	row[colClientName] = strings.TrimSpace(c.Name)
	if c.Email != nil {
		row[colClientMail] = strings.TrimSpace(*c.Email)
	} else {
		row[colClientMail] = nil
	}
	if c.Phone != nil {
		row[colClientPhone] = strings.TrimSpace(*c.Phone)
	} else {
		row[colClientPhone] = nil
	}
}
