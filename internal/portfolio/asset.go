package portfolio

import (
	"errors"

	"github.com/bhaveshvasandani/PortfolioMgmt/internal/catalog"
)

// ErrNegativeQuantity is returned when a sell would drive a holding below
// zero. The failed operation leaves the asset and its portfolio unmodified.
var ErrNegativeQuantity = errors.New("sell exceeds held quantity")

// Asset is one holding inside a portfolio: a catalog entry plus the quantity
// held. Quantity is the single source of truth; NetValue is derived from it
// on every mutation and never drifts on its own.
//
// Fields must not be written without the owning directory shard's lock; the
// read API hands out copies.
type Asset struct {
	ID        int
	Class     string
	Name      string
	UnitPrice float64
	Quantity  int64
	NetValue  float64
}

// newAsset builds a holding for a catalog id, validating the id.
// A zero initial quantity is legal; Portfolio.buy relies on that.
func newAsset(id int, quantity int64) (*Asset, error) {
	e, err := catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	a := &Asset{
		ID:        e.ID,
		Class:     e.Class,
		Name:      e.Name,
		UnitPrice: e.UnitPrice,
		Quantity:  quantity,
	}
	a.reprice()
	return a, nil
}

func (a *Asset) reprice() { a.NetValue = float64(a.Quantity) * a.UnitPrice }

// increase adds delta units. Unbounded growth is permitted.
func (a *Asset) increase(delta int64) {
	a.Quantity += delta
	a.reprice()
}

// decrease removes delta units, failing without partial effect if the
// holding would go negative.
func (a *Asset) decrease(delta int64) error {
	if a.Quantity-delta < 0 {
		return ErrNegativeQuantity
	}
	a.Quantity -= delta
	a.reprice()
	return nil
}
