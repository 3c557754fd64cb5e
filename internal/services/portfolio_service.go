package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
)

// lineTagColumn tags each portfolio row with the product line it came from
// once the line sheets are concatenated for searching.
const lineTagColumn = "Tipo"

// PortfolioService exposes the read-only portfolio (cartera) search surface.
type PortfolioService struct {
	store    *ledger.Store
	resolver *ledger.Resolver
}

func NewPortfolioService(store *ledger.Store, resolver *ledger.Resolver) *PortfolioService {
	return &PortfolioService{store: store, resolver: resolver}
}

// Search concatenates every portfolio sheet and keeps rows where any cell
// contains the query, case-insensitively. Missing workbooks contribute
// nothing.
func (s *PortfolioService) Search(query string) ([]ledger.Row, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := []ledger.Row{}
	for _, entry := range s.resolver.Entries(models.BookPortfolio) {
		loc, err := s.resolver.Resolve(models.BookPortfolio, entry.Carrier, entry.Line)
		if err != nil {
			return nil, err
		}
		ds, err := s.store.LoadSheet(loc.Path, loc.Sheet)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				slog.Warn("portfolio ledger missing, skipping",
					"carrier", entry.Carrier, "line", entry.Line, "path", loc.Path)
				continue
			}
			return nil, err
		}
		for _, row := range ds.Rows {
			if !rowContains(row, needle) {
				continue
			}
			row[lineTagColumn] = string(entry.Line)
			out = append(out, row)
		}
	}
	return out, nil
}

func rowContains(row ledger.Row, needle string) bool {
	if needle == "" {
		return true
	}
	for _, v := range row {
		if s, ok := ledger.CellString(v); ok {
			if strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
	}
	return false
}
