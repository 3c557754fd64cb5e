package services

import (
	"errors"
	"log/slog"

	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
)

// CollectionService exposes the read-only collections (cobranza) surface.
// Collection sheets keep their raw carrier layout; there is no update
// semantics here.
type CollectionService struct {
	store    *ledger.Store
	resolver *ledger.Resolver
}

func NewCollectionService(store *ledger.Store, resolver *ledger.Resolver) *CollectionService {
	return &CollectionService{store: store, resolver: resolver}
}

func (s *CollectionService) Collections(carrier models.Carrier, line models.ProductLine) ([]ledger.Row, error) {
	loc, err := s.resolver.Resolve(models.BookCollections, carrier, line)
	if err != nil {
		return nil, err
	}
	ds, err := s.store.LoadSheet(loc.Path, loc.Sheet)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			slog.Warn("collections ledger missing, returning empty result",
				"carrier", carrier, "line", line, "path", loc.Path)
			return []ledger.Row{}, nil
		}
		return nil, err
	}
	if ds.Rows == nil {
		return []ledger.Row{}, nil
	}
	return ds.Rows, nil
}
