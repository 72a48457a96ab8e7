package portfolio

import (
	"errors"
	"sync"
	"testing"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

func newDir() *Directory { return NewDirectory() }

func mustCreate(t *testing.T, d *Directory, user string) {
	t.Helper()
	if err := d.Create(user); err != nil {
		t.Fatalf("Create(%q): %v", user, err)
	}
}

func mustNAV(t *testing.T, d *Directory, user string) float64 {
	t.Helper()
	nav, err := d.NAV(user)
	if err != nil {
		t.Fatalf("NAV(%q): %v", user, err)
	}
	return nav
}

// ─── Create / Delete ──────────────────────────────────────────────────────────

func TestCreateDuplicate(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")
	if err := d.Buy("alice", 0, 10); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	if err := d.Create("alice"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate Create: got %v, want ErrUserExists", err)
	}

	// The original portfolio must be unaffected.
	if nav := mustNAV(t, d, "alice"); !closeTo(nav, 10*goldPrice) {
		t.Errorf("NAV after duplicate create: got %v, want %v", nav, 10*goldPrice)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")

	d.Delete("alice")
	d.Delete("alice") // second delete of the same user
	d.Delete("ghost") // never existed

	if _, err := d.NAV("alice"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("NAV after delete: got %v, want ErrUserNotFound", err)
	}
}

// ─── mutation routing ─────────────────────────────────────────────────────────

func TestMutationsOnAbsentUser(t *testing.T) {
	d := newDir()

	if err := d.Buy("ghost", 0, 1); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Buy: got %v, want ErrUserNotFound", err)
	}
	if err := d.Sell("ghost", 0, 1); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Sell: got %v, want ErrUserNotFound", err)
	}
	if err := d.Apply("ghost", 0, -1); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Apply: got %v, want ErrUserNotFound", err)
	}
	// RemoveAsset on an absent user is deliberately a no-op.
	d.RemoveAsset("ghost", 0)
}

func TestRemoveAssetThroughDirectory(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")
	if err := d.Buy("alice", 0, 10); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if err := d.Buy("alice", 2, 4); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	d.RemoveAsset("alice", 0)

	if _, err := d.Asset("alice", 0); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("Asset after removal: got %v, want ErrAssetNotFound", err)
	}
	if nav := mustNAV(t, d, "alice"); !closeTo(nav, 4*crudePrice) {
		t.Errorf("NAV after removal: got %v, want %v", nav, 4*crudePrice)
	}
}

// ─── read API ─────────────────────────────────────────────────────────────────

func TestSummariesSortedAndCopied(t *testing.T) {
	d := newDir()
	for _, u := range []string{"carol", "alice", "bob"} {
		mustCreate(t, d, u)
	}
	if err := d.Buy("bob", 0, 2); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	got := d.Summaries()
	if len(got) != 3 {
		t.Fatalf("Summaries: got %d entries, want 3", len(got))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if got[i].User != want {
			t.Errorf("summary %d: got user %q, want %q", i, got[i].User, want)
		}
	}
	if got[1].NumberOfAssets != 1 || !closeTo(got[1].NetAssetValue, 2*goldPrice) {
		t.Errorf("bob summary: got %+v", got[1])
	}
}

func TestAssetNamesSorted(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")
	for _, id := range []int{3, 0, 2} {
		if err := d.Buy("alice", id, 1); err != nil {
			t.Fatalf("Buy(%d): %v", id, err)
		}
	}

	names, err := d.AssetNames("alice")
	if err != nil {
		t.Fatalf("AssetNames: %v", err)
	}
	want := []string{"US 10Y T-Note", "brent crude oil", "gold"}
	if len(names) != len(want) {
		t.Fatalf("AssetNames: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestAssetReturnsCopy(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")
	if err := d.Buy("alice", 0, 10); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	a, err := d.Asset("alice", 0)
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	a.Quantity = 0 // must not write through

	again, err := d.Asset("alice", 0)
	if err != nil {
		t.Fatalf("Asset again: %v", err)
	}
	if again.Quantity != 10 {
		t.Errorf("holding mutated through returned copy: %d", again.Quantity)
	}
}

// ─── concurrency ──────────────────────────────────────────────────────────────

// Concurrent buys and sells against one user must serialize behind the shard
// lock without losing updates to the quantity or the NAV.
func TestConcurrentMutationsDoNotLoseUpdates(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")
	if err := d.Buy("alice", 0, 1000); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	const workers = 8
	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2 * workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if err := d.Buy("alice", 0, 1); err != nil {
					t.Errorf("Buy: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if err := d.Sell("alice", 0, 1); err != nil {
					t.Errorf("Sell: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	a, err := d.Asset("alice", 0)
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	if a.Quantity != 1000 {
		t.Errorf("quantity after balanced buys/sells: got %d, want 1000", a.Quantity)
	}
	if nav := mustNAV(t, d, "alice"); !closeTo(nav, 1000*goldPrice) {
		t.Errorf("NAV after balanced buys/sells: got %v, want %v", nav, 1000*goldPrice)
	}
}
