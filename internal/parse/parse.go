// Package parse holds the value parsers that turn raw ledger cells into
// normalized values. Every parser is total: bad input degrades to nil, it is
// never an error. Callers treat nil as "unknown".
package parse

import (
	"strconv"
	"strings"
	"time"
)

// ISODate is the canonical date form used across the whole service. ISO-8601
// date strings sort lexicographically in calendar order, which is what makes
// the date-range filter a plain string comparison.
const ISODate = "2006-01-02"

// excelEpoch is Dec 30 1899, the base of the Excel date serial scheme.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var flexibleLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"01-02-06",
	"2-Jan-06",
	"Jan 2, 2006",
}

// Money parses a monetary cell. Numeric values pass through; strings are
// stripped of currency symbols and thousands separators first. Pointer cells
// from an already-normalized dataset unwrap to their value, so re-parsing is
// a no-op.
func Money(raw any) *float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case *float64:
		if v == nil {
			return nil
		}
		f := *v
		return &f
	case *string:
		if v == nil {
			return nil
		}
		return Money(*v)
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		s = strings.NewReplacer("$", "", "€", "", ",", "", " ", "").Replace(s)
		s = strings.TrimPrefix(s, "MXN")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// FlexibleDate best-effort parses heterogeneous date representations: native
// times, Excel date serials and the textual formats the carrier ledgers ship.
// The result is the canonical YYYY-MM-DD string.
func FlexibleDate(raw any) *string {
	switch v := raw.(type) {
	case nil:
		return nil
	case *string:
		if v == nil {
			return nil
		}
		return FlexibleDate(*v)
	case *float64:
		if v == nil {
			return nil
		}
		return serialDate(*v)
	case time.Time:
		return isoDate(v)
	case float64:
		return serialDate(v)
	case int:
		return serialDate(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range flexibleLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return isoDate(t)
			}
		}
		// Bare numeric strings are date serials when the sheet was read
		// without cell styling.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return serialDate(f)
		}
		return nil
	default:
		return nil
	}
}

// PackedDate parses the 8-digit zero-padded YYYYMMDD encoding some carriers
// use. Values that do not resolve to a real calendar date are nil.
func PackedDate(raw any) *string {
	var s string
	switch v := raw.(type) {
	case nil:
		return nil
	case *string:
		if v == nil {
			return nil
		}
		s = strings.TrimSpace(*v)
	case *float64:
		if v == nil {
			return nil
		}
		s = strconv.FormatFloat(*v, 'f', -1, 64)
	case string:
		s = strings.TrimSpace(v)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return nil
	}
	s = strings.TrimSuffix(s, ".0")
	if len(s) != 8 {
		return nil
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(s[4:6])
	if err != nil {
		return nil
	}
	day, err := strconv.Atoi(s[6:8])
	if err != nil {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil
	}
	return isoDate(t)
}

// Identifier normalizes a policy-number cell: whitespace is trimmed and the
// trailing ".0" a numeric id picks up when serialized as a float is stripped,
// so "100123.0" and " 100123 " both come out as "100123".
func Identifier(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case *string:
		if v == nil {
			return ""
		}
		return Identifier(*v)
	case *float64:
		if v == nil {
			return ""
		}
		return Identifier(*v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		s := strings.TrimSpace(v)
		if dot := strings.LastIndex(s, "."); dot >= 0 {
			frac := s[dot+1:]
			if frac != "" && strings.Trim(frac, "0") == "" {
				if _, err := strconv.ParseFloat(s, 64); err == nil {
					s = s[:dot]
				}
			}
		}
		return s
	default:
		return ""
	}
}

// Name normalizes a free-text client name for matching: trimmed, upper-cased
// and internal whitespace collapsed to single spaces.
func Name(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}

// Percent parses a rate cell into a fraction in [0,1]. Carriers whose raw
// values are whole-number percentages get divided by 100; fractional is the
// explicit per-carrier convention, never inferred from the data. Values
// already at or below 1 are left alone so re-running an adapter on its own
// output does not rescale them.
func Percent(raw any, fractional bool) *float64 {
	f := Money(raw)
	if f == nil {
		return nil
	}
	v := *f
	if !fractional && v > 1 {
		v = v / 100
	}
	return &v
}

func isoDate(t time.Time) *string {
	s := t.Format(ISODate)
	return &s
}

func serialDate(serial float64) *string {
	// Plausible serial window: anything outside reads as garbage, not a date.
	if serial < 61 || serial > 200000 {
		return nil
	}
	t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	return isoDate(t)
}
