package ledger

import (
	"fmt"
	"path/filepath"

	"github.com/Plauto679/taiico-crm/internal/models"
)

// Location is the physical address of one ledger sheet. An empty Sheet means
// the workbook's first sheet is discovered at load time.
type Location struct {
	Path  string
	Sheet string
}

type locationKey struct {
	book    models.LedgerBook
	carrier models.Carrier
	line    models.ProductLine
}

// Resolver maps (book, carrier, productLine) to a workbook path and sheet
// name. The table is static configuration rooted at the shared-drive base
// path; the workbooks themselves are maintained by the carriers.
type Resolver struct {
	base  string
	table map[locationKey]Location
}

func NewResolver(basePath string) *Resolver {
	r := &Resolver{base: basePath, table: make(map[locationKey]Location)}

	r.Register(models.BookRenewals, models.CarrierMetlife, models.LineLife,
		"Fechas de emision de Polizas y renovaciones/Metlife Vida.xlsx", "Vida")
	r.Register(models.BookRenewals, models.CarrierMetlife, models.LineHealth,
		"Fechas de emision de Polizas y renovaciones/Metlife GMM.xlsx", "GMM")
	// AXA and GNP ship single-sheet workbooks with no stable sheet name.
	r.Register(models.BookRenewals, models.CarrierAXA, models.LineLife,
		"Fechas de emision de Polizas y renovaciones/AXA Vida.xlsx", "")
	r.Register(models.BookRenewals, models.CarrierGNP, models.LineHealth,
		"Fechas de emision de Polizas y renovaciones/GNP GMM.xlsx", "")

	r.Register(models.BookCollections, models.CarrierMetlife, models.LineLife,
		"Bases de cobranza y comisiones/Metlife base cobranza.xlsx", "Vida")
	r.Register(models.BookCollections, models.CarrierMetlife, models.LineHealth,
		"Bases de cobranza y comisiones/Metlife base cobranza.xlsx", "GMM")

	r.Register(models.BookPortfolio, models.CarrierMetlife, models.LineLife,
		"Relaciones de cartera/Cartera Metlife.xlsx", "Vida")
	r.Register(models.BookPortfolio, models.CarrierMetlife, models.LineHealth,
		"Relaciones de cartera/Cartera Metlife.xlsx", "GMM")

	return r
}

// Register adds or replaces a table entry. relPath is joined onto the base
// path.
func (r *Resolver) Register(book models.LedgerBook, carrier models.Carrier, line models.ProductLine, relPath, sheet string) {
	r.table[locationKey{book, carrier, line}] = Location{
		Path:  filepath.Join(r.base, filepath.FromSlash(relPath)),
		Sheet: sheet,
	}
}

func (r *Resolver) Resolve(book models.LedgerBook, carrier models.Carrier, line models.ProductLine) (Location, error) {
	loc, ok := r.table[locationKey{book, carrier, line}]
	if !ok {
		return Location{}, fmt.Errorf("no %s ledger for carrier %s line %s: %w", book, carrier, line, models.ErrNotFound)
	}
	return loc, nil
}

// Entries lists the registered (carrier, line) pairs for one book, used by
// the aggregate query surfaces.
func (r *Resolver) Entries(book models.LedgerBook) []struct {
	Carrier models.Carrier
	Line    models.ProductLine
} {
	var out []struct {
		Carrier models.Carrier
		Line    models.ProductLine
	}
	for k := range r.table {
		if k.book == book {
			out = append(out, struct {
				Carrier models.Carrier
				Line    models.ProductLine
			}{k.carrier, k.line})
		}
	}
	return out
}
