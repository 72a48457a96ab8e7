// Package catalog holds the fixed reference table of purchasable assets.
//
// The table is loaded once at process start and never mutated: no entry is
// added, removed, or repriced at runtime. Portfolio NAV bookkeeping depends
// on this — the incremental NAV updates in the portfolio package assume the
// unit price observed at buy time equals the unit price at sell time.
package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownAsset is returned by Lookup for ids outside the catalog.
var ErrUnknownAsset = errors.New("unknown catalog asset")

// Entry is one row of the reference catalog.
type Entry struct {
	ID        int
	Class     string
	Name      string
	UnitPrice float64
}

var entries = map[int]Entry{
	0: {ID: 0, Class: "commodity", Name: "gold", UnitPrice: 1286.59},
	1: {ID: 1, Class: "real-estate", Name: "NYC real estate index", UnitPrice: 16255.18},
	2: {ID: 2, Class: "commodity", Name: "brent crude oil", UnitPrice: 51.45},
	3: {ID: 3, Class: "fixed income", Name: "US 10Y T-Note", UnitPrice: 130.77},
}

// Lookup returns the catalog entry for id. Entries are returned by value so
// callers cannot alter the table.
func Lookup(id int) (Entry, error) {
	e, ok := entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("asset id %d: %w", id, ErrUnknownAsset)
	}
	return e, nil
}

// Size reports the number of catalog entries.
func Size() int { return len(entries) }
