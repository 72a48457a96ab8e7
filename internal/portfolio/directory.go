// Package portfolio tracks per-user portfolios of catalog assets behind a
// sharded, thread-safe directory.
//
// # Consistency
//
// Every mutation either fully succeeds or fully fails: a rejected sell
// leaves the holding map and the net asset value exactly as they were. The
// NAV is maintained incrementally on every buy/sell and the directory's read
// API only ever hands out copies, never live maps.
//
// # Sharding
//
// Users are spread across [numShards] independent shards keyed by a fast
// FNV-1a hash of the user id. Each shard carries its own RWMutex, so all
// operations on one user's portfolio are serialized while users in different
// shards never contend.
package portfolio

import (
	"errors"
	"hash/fnv"
	"sort"
	"sync"
)

const numShards = 64

var (
	// ErrUserExists is returned by Create for a user id already present.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned by reads and mutations for absent users.
	ErrUserNotFound = errors.New("user not found")
)

// ─── shard ────────────────────────────────────────────────────────────────────

type shard struct {
	mu         sync.RWMutex
	portfolios map[string]*Portfolio
}

// ─── Directory ────────────────────────────────────────────────────────────────

// Directory is the process-wide mapping from user id to portfolio. All
// public methods are safe for concurrent use from arbitrary goroutines.
type Directory struct {
	shards [numShards]shard
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	d := &Directory{}
	for i := range d.shards {
		d.shards[i].portfolios = make(map[string]*Portfolio)
	}
	return d
}

func (d *Directory) shardOf(user string) *shard {
	h := fnv.New32a()
	h.Write([]byte(user))
	return &d.shards[h.Sum32()%numShards]
}

// ─── lifecycle ────────────────────────────────────────────────────────────────

// Create inserts an empty portfolio for user.
// Returns ErrUserExists if the user is already present; the existing
// portfolio is unaffected.
func (d *Directory) Create(user string) error {
	sh := d.shardOf(user)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.portfolios[user]; exists {
		return ErrUserExists
	}
	sh.portfolios[user] = newPortfolio(user)
	return nil
}

// Delete removes the user's portfolio. Deleting an absent user is a no-op,
// not an error.
func (d *Directory) Delete(user string) {
	sh := d.shardOf(user)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.portfolios, user)
}

// ─── mutation ─────────────────────────────────────────────────────────────────

// Buy adds quantity units of a catalog asset to the user's portfolio.
func (d *Directory) Buy(user string, id int, quantity int64) error {
	sh := d.shardOf(user)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.portfolios[user]
	if !ok {
		return ErrUserNotFound
	}
	return p.buy(id, quantity)
}

// Sell removes quantity units of a held asset from the user's portfolio.
func (d *Directory) Sell(user string, id int, quantity int64) error {
	sh := d.shardOf(user)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.portfolios[user]
	if !ok {
		return ErrUserNotFound
	}
	return p.sell(id, quantity)
}

// Apply adjusts a holding by a signed delta: negative sells, non-negative
// buys.
func (d *Directory) Apply(user string, id int, delta int64) error {
	sh := d.shardOf(user)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.portfolios[user]
	if !ok {
		return ErrUserNotFound
	}
	return p.apply(id, delta)
}

// RemoveAsset drops a holding outright, adjusting the NAV by the removed
// asset's net value. Removing from an absent user, or removing an id that is
// not held, is a no-op.
func (d *Directory) RemoveAsset(user string, id int) {
	sh := d.shardOf(user)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if p, ok := sh.portfolios[user]; ok {
		p.removeAsset(id)
	}
}

// ─── read API ─────────────────────────────────────────────────────────────────

// Summary is a read-only view of one portfolio for listing endpoints.
type Summary struct {
	User           string
	NumberOfAssets int
	NetAssetValue  float64
}

// Summaries returns one Summary per known user, sorted by user id for
// deterministic output. Iterates all shards.
func (d *Directory) Summaries() []Summary {
	var out []Summary
	for i := range d.shards {
		sh := &d.shards[i]
		sh.mu.RLock()
		for user, p := range sh.portfolios {
			out = append(out, Summary{
				User:           user,
				NumberOfAssets: len(p.assets),
				NetAssetValue:  p.nav,
			})
		}
		sh.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User < out[j].User })
	return out
}

// AssetNames returns the catalog names of the user's holdings, sorted.
func (d *Directory) AssetNames(user string) ([]string, error) {
	sh := d.shardOf(user)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.portfolios[user]
	if !ok {
		return nil, ErrUserNotFound
	}
	names := make([]string, 0, len(p.assets))
	for _, a := range p.assets {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Asset returns a copy of one holding.
func (d *Directory) Asset(user string, id int) (Asset, error) {
	sh := d.shardOf(user)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.portfolios[user]
	if !ok {
		return Asset{}, ErrUserNotFound
	}
	a, ok := p.assets[id]
	if !ok {
		return Asset{}, ErrAssetNotFound
	}
	return *a, nil
}

// NAV returns the user's net asset value.
func (d *Directory) NAV(user string) (float64, error) {
	sh := d.shardOf(user)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.portfolios[user]
	if !ok {
		return 0, ErrUserNotFound
	}
	return p.nav, nil
}
