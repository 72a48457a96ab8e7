package portfolio

import (
	"errors"

	"github.com/bhaveshvasandani/PortfolioMgmt/internal/catalog"
)

// ErrAssetNotFound is returned by sell and asset reads when the catalog id
// is not currently held in the portfolio.
var ErrAssetNotFound = errors.New("asset not held in portfolio")

// Portfolio owns one user's holdings keyed by catalog id plus an
// incrementally maintained net asset value.
//
// The NAV increment uses the catalog price at call time rather than reading
// back the asset's recomputed net value. Both paths agree only because
// catalog prices never change after load; see the catalog package doc.
//
// Portfolio is not safe for concurrent use on its own; the Directory
// serializes all access behind its shard locks.
type Portfolio struct {
	user   string
	assets map[int]*Asset
	nav    float64
}

func newPortfolio(user string) *Portfolio {
	return &Portfolio{
		user:   user,
		assets: make(map[int]*Asset),
	}
}

// buy adds quantity units of a catalog asset, creating the holding on first
// purchase. quantity must be >= 0; zero is a no-op. The catalog id is
// validated on every call, not only when the holding is first created, since
// catalog membership is authoritative.
func (p *Portfolio) buy(id int, quantity int64) error {
	if quantity == 0 {
		return nil
	}
	e, err := catalog.Lookup(id)
	if err != nil {
		return err
	}
	if a, ok := p.assets[id]; ok {
		a.increase(quantity)
	} else {
		a, err := newAsset(id, quantity)
		if err != nil {
			return err
		}
		p.assets[id] = a
	}
	p.nav += e.UnitPrice * float64(quantity)
	return nil
}

// sell removes quantity units of a held asset. quantity must be >= 0; zero
// is a no-op. A sell that would go negative fails with ErrNegativeQuantity
// and leaves the holding and the NAV untouched. A holding that reaches zero
// is removed from the portfolio rather than kept at zero.
func (p *Portfolio) sell(id int, quantity int64) error {
	if quantity == 0 {
		return nil
	}
	a, ok := p.assets[id]
	if !ok {
		return ErrAssetNotFound
	}
	if err := a.decrease(quantity); err != nil {
		return err
	}
	p.nav -= a.UnitPrice * float64(quantity)
	if a.Quantity == 0 {
		delete(p.assets, id)
	}
	return nil
}

// apply dispatches a signed quantity delta: negative routes to sell,
// non-negative to buy. This backs the "update quantity by delta" semantics
// of the PUT endpoint.
func (p *Portfolio) apply(id int, delta int64) error {
	if delta < 0 {
		return p.sell(id, -delta)
	}
	return p.buy(id, delta)
}

// removeAsset drops a holding outright, decrementing the NAV by the removed
// asset's net value so the sum invariant holds. No-op when the id is not
// held.
func (p *Portfolio) removeAsset(id int) {
	a, ok := p.assets[id]
	if !ok {
		return
	}
	p.nav -= a.NetValue
	delete(p.assets, id)
}
