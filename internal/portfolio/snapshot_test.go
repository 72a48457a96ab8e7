package portfolio

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSnapshotStableOrder(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")
	for _, id := range []int{3, 0, 2} {
		if err := d.Buy("alice", id, int64(id+1)); err != nil {
			t.Fatalf("Buy(%d): %v", id, err)
		}
	}

	snap, err := d.Snapshot("alice")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"user":"alice","assets":[{"id":0,"quantity":1},{"id":2,"quantity":3},{"id":3,"quantity":4}]}`
	if string(b) != want {
		t.Errorf("wire form:\n got %s\nwant %s", b, want)
	}
}

func TestSnapshotAbsentUser(t *testing.T) {
	d := newDir()
	if _, err := d.Snapshot("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Snapshot(ghost): got %v, want ErrUserNotFound", err)
	}
}

func TestRestoreRebuildsNAVFromCatalog(t *testing.T) {
	src := newDir()
	mustCreate(t, src, "alice")
	if err := src.Buy("alice", 0, 10); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if err := src.Buy("alice", 2, 4); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	snap, err := src.Snapshot("alice")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	dst := newDir()
	if err := dst.RestoreSnapshot(snap); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}

	srcNAV := mustNAV(t, src, "alice")
	dstNAV := mustNAV(t, dst, "alice")
	if !closeTo(srcNAV, dstNAV) {
		t.Errorf("restored NAV: got %v, want %v", dstNAV, srcNAV)
	}
	a, err := dst.Asset("alice", 0)
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	if a.Quantity != 10 || a.Name != "gold" {
		t.Errorf("restored holding: got %+v", a)
	}
}

func TestRestoreExistingUser(t *testing.T) {
	d := newDir()
	mustCreate(t, d, "alice")

	err := d.RestoreSnapshot(Snapshot{User: "alice"})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("restore over existing user: got %v, want ErrUserExists", err)
	}
}
