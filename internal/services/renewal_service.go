package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Plauto679/taiico-crm/internal/adapters"
	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/parse"
)

const defaultLookaheadDays = 30

// RenewalService answers date-range queries over the normalized renewal
// ledgers and performs the targeted status/case-file/notification updates
// against the raw sheets.
type RenewalService struct {
	store    *ledger.Store
	resolver *ledger.Resolver
	registry *adapters.Registry
	now      func() time.Time
}

func NewRenewalService(store *ledger.Store, resolver *ledger.Resolver, registry *adapters.Registry) *RenewalService {
	return &RenewalService{
		store:    store,
		resolver: resolver,
		registry: registry,
		now:      time.Now,
	}
}

// UpcomingRenewals loads, normalizes and range-filters one carrier/line
// ledger. An explicit start/end wins; otherwise the range is today through
// today plus the lookahead. A missing ledger file degrades to an empty
// result so the aggregate query surface stays available.
func (s *RenewalService) UpcomingRenewals(carrier models.Carrier, line models.ProductLine, start, end string, days int) ([]models.PolicyRecord, error) {
	adapter, err := s.registry.Lookup(carrier, line)
	if err != nil {
		return nil, err
	}
	loc, err := s.resolver.Resolve(models.BookRenewals, carrier, line)
	if err != nil {
		return nil, err
	}

	raw, err := s.store.LoadSheet(loc.Path, loc.Sheet)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			slog.Warn("renewal ledger missing, returning empty result",
				"carrier", carrier, "line", line, "path", loc.Path)
			return []models.PolicyRecord{}, nil
		}
		return nil, err
	}

	if start == "" || end == "" {
		start, end = s.defaultRange(days)
	}

	normalized := adapter.Adapt(raw)
	filtered := normalized.FilterByDateRange(adapter.RenewalDateColumn, start, end)

	records := make([]models.PolicyRecord, 0, len(filtered.Rows))
	for _, row := range filtered.Rows {
		records = append(records, adapter.Record(row))
	}
	return records, nil
}

// UpcomingAcross aggregates upcoming renewals over every registered renewal
// ledger, optionally restricted to one carrier and/or line.
func (s *RenewalService) UpcomingAcross(carrier models.Carrier, line models.ProductLine, start, end string, days int) ([]models.PolicyRecord, error) {
	var out []models.PolicyRecord
	for _, entry := range s.resolver.Entries(models.BookRenewals) {
		if carrier != "" && entry.Carrier != carrier {
			continue
		}
		if line != "" && entry.Line != line {
			continue
		}
		records, err := s.UpcomingRenewals(entry.Carrier, entry.Line, start, end, days)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	if out == nil {
		out = []models.PolicyRecord{}
	}
	return out, nil
}

// UpdateRenewal runs the Locate→Mutate→Persist sequence under the ledger's
// per-file lock. The identifier match is exact normalized-string equality;
// zero matches aborts without a write. Duplicate matches are all updated
// rather than silently picking one.
func (s *RenewalService) UpdateRenewal(req models.UpdateRenewalRequest) error {
	adapter, err := s.registry.Lookup(req.Carrier, req.ProductLine)
	if err != nil {
		return err
	}
	loc, err := s.resolver.Resolve(models.BookRenewals, req.Carrier, req.ProductLine)
	if err != nil {
		return err
	}

	target := parse.Identifier(req.PolicyNumber)
	if target == "" {
		return fmt.Errorf("empty policy number: %w", models.ErrNotFound)
	}

	return s.store.Mutate(loc.Path, loc.Sheet, func(ds *ledger.Dataset) error {
		matched := s.locate(ds, adapter, target)
		if len(matched) == 0 {
			return fmt.Errorf("policy %s not in %s %s ledger: %w", target, req.Carrier, req.ProductLine, models.ErrNotFound)
		}
		if req.RenewalStatus != nil {
			col := adapter.SourceFor(models.ColStatus)
			ds.EnsureColumn(col)
			for _, row := range matched {
				row[col] = *req.RenewalStatus
			}
		}
		if req.CaseFile != nil {
			col := adapter.SourceFor(models.ColCaseFile)
			ds.EnsureColumn(col)
			for _, row := range matched {
				row[col] = *req.CaseFile
			}
		}
		slog.Info("renewal updated", "carrier", req.Carrier, "line", req.ProductLine,
			"policy_number", target, "rows", len(matched))
		return nil
	})
}

// MarkNotified stamps the notification marker on a policy row. Only the
// notification dispatcher calls this, after a successful send.
func (s *RenewalService) MarkNotified(carrier models.Carrier, line models.ProductLine, policyNumber string) error {
	adapter, err := s.registry.Lookup(carrier, line)
	if err != nil {
		return err
	}
	loc, err := s.resolver.Resolve(models.BookRenewals, carrier, line)
	if err != nil {
		return err
	}

	target := parse.Identifier(policyNumber)
	return s.store.Mutate(loc.Path, loc.Sheet, func(ds *ledger.Dataset) error {
		matched := s.locate(ds, adapter, target)
		if len(matched) == 0 {
			return fmt.Errorf("policy %s not in %s %s ledger: %w", target, carrier, line, models.ErrNotFound)
		}
		col := adapter.SourceFor(models.ColNotified)
		ds.EnsureColumn(col)
		for _, row := range matched {
			row[col] = string(models.NotificationSent)
		}
		return nil
	})
}

// locate selects the rows whose normalized identifier equals the normalized
// target. No fuzzy or partial matching.
func (s *RenewalService) locate(ds *ledger.Dataset, adapter *adapters.Adapter, target string) []ledger.Row {
	idCol := adapter.SourceFor(models.ColPolicyNumber)
	var matched []ledger.Row
	for _, row := range ds.Rows {
		if parse.Identifier(row[idCol]) == target {
			matched = append(matched, row)
		}
	}
	return matched
}

func (s *RenewalService) defaultRange(days int) (string, string) {
	if days <= 0 {
		days = defaultLookaheadDays
	}
	today := s.now()
	return today.Format(parse.ISODate), today.AddDate(0, 0, days).Format(parse.ISODate)
}
