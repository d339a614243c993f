// Package kit reads the printed lot and expiry code of a reagent test kit
// from a photo of its label. Expired reagents drift in color response, so
// the surrounding application warns when the kit in use is past its date.
package kit

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultShelfLife is assumed when a label carries only a lot code and no
// explicit expiry. Liquid reagent kits are typically rated three years
// from production.
const DefaultShelfLife = 3 * 365 * 24 * time.Hour

// Label is a decoded kit label.
type Label struct {
	Lot      string    // Lot/batch identifier, empty if not found
	Produced time.Time // Production date decoded from the lot, zero if unknown
	Expiry   time.Time // Expiry date, zero if unknown
}

// Expired reports whether the kit is past its expiry at the given time.
// Labels with no decodable expiry are never reported expired.
func (l Label) Expired(now time.Time) bool {
	return !l.Expiry.IsZero() && now.After(l.Expiry)
}

var (
	// 04/2027, 04-2027, 4/27
	expiryMonthYear = regexp.MustCompile(`^(\d{1,2})[/-](\d{2}|\d{4})$`)
	// 2027-04, 2027/04
	expiryYearMonth = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})$`)
	// L23089 or 23089: two-digit year + three-digit day of year
	lotJulian = regexp.MustCompile(`^L?(\d{2})(\d{3})$`)
)

// ParseFields assembles a Label from OCR'd words. Markers like "LOT" and
// "EXP" bind the following token; otherwise the first token that looks
// like a date or lot code wins.
func ParseFields(words []string) Label {
	var label Label

	expectLot := false
	expectExpiry := false
	for _, raw := range words {
		word := strings.ToUpper(strings.Trim(raw, ".,:;"))
		if word == "" {
			continue
		}

		switch word {
		case "LOT", "BATCH":
			expectLot = true
			continue
		case "EXP", "EXPIRY", "EXPIRES", "USE", "BY":
			expectExpiry = true
			continue
		}

		switch {
		case expectExpiry:
			if t, ok := decodeExpiry(word); ok {
				label.Expiry = t
			}
			expectExpiry = false
		case expectLot:
			label.Lot = word
			if t, ok := decodeLotDate(word); ok {
				label.Produced = t
			}
			expectLot = false
		case label.Expiry.IsZero():
			if t, ok := decodeExpiry(word); ok {
				label.Expiry = t
				continue
			}
			fallthrough
		default:
			if label.Lot == "" {
				if t, ok := decodeLotDate(word); ok {
					label.Lot = word
					label.Produced = t
				}
			}
		}
	}

	if label.Expiry.IsZero() && !label.Produced.IsZero() {
		label.Expiry = label.Produced.Add(DefaultShelfLife)
	}
	return label
}

// decodeExpiry parses MM/YYYY, MM-YYYY, MM/YY, and YYYY-MM forms. The
// expiry is the last instant of the named month.
func decodeExpiry(s string) (time.Time, bool) {
	var year, month int

	if m := expiryMonthYear.FindStringSubmatch(s); m != nil {
		month, _ = strconv.Atoi(m[1])
		year, _ = strconv.Atoi(m[2])
		if year < 100 {
			year += 2000
		}
	} else if m := expiryYearMonth.FindStringSubmatch(s); m != nil {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
	} else {
		return time.Time{}, false
	}

	if month < 1 || month > 12 || year < 2000 || year > 2099 {
		return time.Time{}, false
	}

	// First of the following month minus a second.
	firstOfNext := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.Add(-time.Second), true
}

// decodeLotDate parses LYYDDD lot codes (two-digit year, day of year).
func decodeLotDate(s string) (time.Time, bool) {
	m := lotJulian.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if day < 1 || day > 366 {
		return time.Time{}, false
	}

	return time.Date(2000+year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1), true
}
