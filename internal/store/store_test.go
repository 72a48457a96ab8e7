package store

import (
	"testing"

	"github.com/bhaveshvasandani/PortfolioMgmt/internal/portfolio"
)

// The Redis driver needs a live backend; only the key scheme and the nop
// driver are covered here.

func TestSnapshotKey(t *testing.T) {
	if got := snapshotKey("alice"); got != "portfolio:alice" {
		t.Errorf("snapshotKey: got %q, want %q", got, "portfolio:alice")
	}
}

func TestNopNeverFails(t *testing.T) {
	var d Driver = Nop{}
	if err := d.Ping(); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if err := d.SaveSnapshot(portfolio.Snapshot{User: "alice"}); err != nil {
		t.Errorf("SaveSnapshot: %v", err)
	}
	if err := d.DeleteSnapshot("alice"); err != nil {
		t.Errorf("DeleteSnapshot: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
