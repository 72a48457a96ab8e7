package portfolio

import "sort"

// Snapshot is the stable wire form of one portfolio, carrying only the
// catalog id and quantity of each holding. Prices and derived values are
// re-derived from the catalog on restore, never persisted, so a snapshot
// taken under one catalog is priced by the catalog that restores it.
type Snapshot struct {
	User   string          `json:"user"`
	Assets []SnapshotAsset `json:"assets"`
}

// SnapshotAsset is one holding record within a Snapshot.
type SnapshotAsset struct {
	ID       int   `json:"id"`
	Quantity int64 `json:"quantity"`
}

// Snapshot returns the wire form of the user's portfolio with holdings
// sorted by catalog id.
func (d *Directory) Snapshot(user string) (Snapshot, error) {
	sh := d.shardOf(user)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.portfolios[user]
	if !ok {
		return Snapshot{}, ErrUserNotFound
	}
	snap := Snapshot{User: user, Assets: make([]SnapshotAsset, 0, len(p.assets))}
	for _, a := range p.assets {
		snap.Assets = append(snap.Assets, SnapshotAsset{ID: a.ID, Quantity: a.Quantity})
	}
	sort.Slice(snap.Assets, func(i, j int) bool { return snap.Assets[i].ID < snap.Assets[j].ID })
	return snap, nil
}

// RestoreSnapshot rebuilds a portfolio from its wire form, repricing every
// holding against the current catalog. Fails with ErrUserExists if the user
// is already present and with the catalog error if a recorded id is no
// longer valid; a failed restore leaves no partial portfolio behind.
func (d *Directory) RestoreSnapshot(snap Snapshot) error {
	p := newPortfolio(snap.User)
	for _, a := range snap.Assets {
		if err := p.buy(a.ID, a.Quantity); err != nil {
			return err
		}
	}

	sh := d.shardOf(snap.User)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.portfolios[snap.User]; exists {
		return ErrUserExists
	}
	sh.portfolios[snap.User] = p
	return nil
}
