// Package store ships best-effort portfolio snapshots to the optional cache
// backend. The service never reads snapshots back at runtime — state is
// volatile and lives in the directory — so a write failure costs nothing but
// a log line, and the nop driver is the default when no backend is
// configured.
package store

import "github.com/bhaveshvasandani/PortfolioMgmt/internal/portfolio"

// Driver receives portfolio snapshots after mutations.
type Driver interface {
	// Ping verifies the backend is reachable.
	Ping() error
	// SaveSnapshot writes the snapshot for later inspection.
	SaveSnapshot(snap portfolio.Snapshot) error
	// DeleteSnapshot drops the stored snapshot for a user.
	DeleteSnapshot(user string) error
	// Close releases the backend connection.
	Close() error
}

// Nop is the default driver: every operation succeeds without effect.
type Nop struct{}

func (Nop) Ping() error                           { return nil }
func (Nop) SaveSnapshot(portfolio.Snapshot) error { return nil }
func (Nop) DeleteSnapshot(string) error           { return nil }
func (Nop) Close() error                          { return nil }
