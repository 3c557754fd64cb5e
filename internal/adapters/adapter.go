// Package adapters maps carrier-specific raw sheet layouts onto the unified
// policy record shape. One adapter exists per (carrier, product line); each
// is a pure transformation over a loosely-typed dataset.
package adapters

import (
	"fmt"
	"time"

	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/parse"
)

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindMoney
	KindDate
	KindPackedDate
	KindPercent
)

// ColumnSpec declares one output column: its canonical name, the raw header
// it is sourced from (defaults to the canonical name) and how the cell is
// parsed.
type ColumnSpec struct {
	Name   string
	Source string
	Kind   ColumnKind
}

// Adapter declares the full output column set for one (carrier, line) pair.
// Missing source columns never fail the adapter; they surface as nulls.
type Adapter struct {
	Carrier models.Carrier
	Line    models.ProductLine
	Columns []ColumnSpec

	// RenewalDateColumn is the canonical date column date-range queries run
	// against.
	RenewalDateColumn string

	// FractionalRates marks carriers whose raw rate cells are already in
	// [0,1]. This is a documented per-carrier convention, never inferred
	// from the data.
	FractionalRates bool

	// DedupeByPolicy drops repeated rows per policy number. Group policies
	// legitimately list one row per insured person; only the first survives.
	DedupeByPolicy bool
}

// Adapt normalizes a raw dataset into the declared column set. Every
// declared column exists in the output, null-filled when the source sheet
// does not carry it.
func (a *Adapter) Adapt(raw *ledger.Dataset) *ledger.Dataset {
	out := &ledger.Dataset{Columns: make([]string, 0, len(a.Columns))}
	for _, spec := range a.Columns {
		out.Columns = append(out.Columns, spec.Name)
	}

	seen := make(map[string]bool)
	for _, row := range raw.Rows {
		normalized := make(ledger.Row, len(a.Columns))
		for _, spec := range a.Columns {
			normalized[spec.Name] = a.convert(spec, rawCell(raw, row, spec))
		}
		if a.DedupeByPolicy {
			id := parse.Identifier(normalized[models.ColPolicyNumber])
			if id != "" {
				if seen[id] {
					continue
				}
				seen[id] = true
			}
		}
		out.Append(normalized)
	}
	return out
}

// rawCell resolves a cell by the declared source header, falling back to the
// canonical name so re-running the adapter on its own output still finds the
// column.
func rawCell(raw *ledger.Dataset, row ledger.Row, spec ColumnSpec) any {
	if spec.Source != "" && raw.HasColumn(spec.Source) {
		return row[spec.Source]
	}
	if raw.HasColumn(spec.Name) {
		return row[spec.Name]
	}
	return nil
}

func (a *Adapter) convert(spec ColumnSpec, v any) any {
	switch spec.Kind {
	case KindMoney:
		return parse.Money(v)
	case KindDate:
		return parse.FlexibleDate(v)
	case KindPackedDate:
		if d := parse.PackedDate(v); d != nil {
			return d
		}
		// Already-canonical values pass through unchanged on a re-run.
		if s, ok := ledger.CellString(v); ok {
			if _, err := time.Parse(parse.ISODate, s); err == nil {
				return &s
			}
		}
		return (*string)(nil)
	case KindPercent:
		return parse.Percent(v, a.FractionalRates)
	default:
		if s, ok := ledger.CellString(v); ok && s != "" {
			return s
		}
		return nil
	}
}

// SourceFor returns the raw sheet header a canonical column is read from.
// The update engine uses it to address the identifier and the mutable
// columns on the physical sheet.
func (a *Adapter) SourceFor(name string) string {
	for _, spec := range a.Columns {
		if spec.Name == name {
			if spec.Source != "" {
				return spec.Source
			}
			return spec.Name
		}
	}
	return name
}

// Record maps one normalized row into the unified PolicyRecord. Declared
// columns outside the backbone land in Extras.
func (a *Adapter) Record(row ledger.Row) models.PolicyRecord {
	rec := models.PolicyRecord{
		Carrier:      a.Carrier,
		ProductLine:  a.Line,
		PolicyNumber: parse.Identifier(row[models.ColPolicyNumber]),
	}
	backbone := map[string]bool{models.ColPolicyNumber: true}

	setString := func(name string, dst **string) {
		backbone[name] = true
		if s, ok := ledger.CellString(row[name]); ok && s != "" {
			*dst = &s
		}
	}
	setFloat := func(name string, dst **float64) {
		backbone[name] = true
		if f, ok := ledger.CellFloat(row[name]); ok {
			*dst = &f
		}
	}

	setString(models.ColContractor, &rec.ContractorName)
	setString(models.ColInsured, &rec.InsuredName)
	setString(models.ColCoverageStart, &rec.CoverageStart)
	setString(models.ColCoverageEnd, &rec.CoverageEnd)
	setString(models.ColPaidThrough, &rec.PaidThrough)
	setFloat(models.ColPremium, &rec.PremiumAmount)
	setFloat(models.ColTax, &rec.Tax)
	setFloat(models.ColSurcharge, &rec.Surcharge)
	setFloat(models.ColExpenseFees, &rec.ExpenseFees)
	setFloat(models.ColDeductible, &rec.Deductible)
	setFloat(models.ColCoinsurance, &rec.Coinsurance)
	setString(models.ColStatus, &rec.RenewalStatus)
	setString(models.ColCaseFile, &rec.CaseFileReference)
	setString(models.ColNotified, &rec.NotificationMarker)

	for _, spec := range a.Columns {
		if backbone[spec.Name] {
			continue
		}
		v := row[spec.Name]
		if v == nil {
			continue
		}
		if rec.Extras == nil {
			rec.Extras = make(map[string]any)
		}
		if s, ok := ledger.CellString(v); ok {
			rec.Extras[spec.Name] = s
		} else if f, ok := ledger.CellFloat(v); ok {
			rec.Extras[spec.Name] = f
		} else {
			rec.Extras[spec.Name] = v
		}
	}
	return rec
}

// Registry resolves the adapter for a (carrier, line) pair.
type Registry struct {
	adapters map[string]*Adapter
}

func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[string]*Adapter)}
	r.Register(metlifeVida())
	r.Register(metlifeGMM())
	r.Register(axaVida())
	r.Register(gnpGMM())
	return r
}

func (r *Registry) Register(a *Adapter) {
	r.adapters[registryKey(a.Carrier, a.Line)] = a
}

func (r *Registry) Lookup(carrier models.Carrier, line models.ProductLine) (*Adapter, error) {
	a, ok := r.adapters[registryKey(carrier, line)]
	if !ok {
		return nil, fmt.Errorf("no adapter for carrier %s line %s: %w", carrier, line, models.ErrNotFound)
	}
	return a, nil
}

func registryKey(carrier models.Carrier, line models.ProductLine) string {
	return string(carrier) + "/" + string(line)
}
