package catalog

import (
	"errors"
	"testing"
)

func TestLookupKnown(t *testing.T) {
	e, err := Lookup(0)
	if err != nil {
		t.Fatalf("Lookup(0): %v", err)
	}
	if e.Name != "gold" || e.Class != "commodity" {
		t.Errorf("Lookup(0): got %q/%q, want gold/commodity", e.Name, e.Class)
	}
	if e.UnitPrice != 1286.59 {
		t.Errorf("Lookup(0) unit price: got %v, want 1286.59", e.UnitPrice)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup(99)
	if !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("Lookup(99): got %v, want ErrUnknownAsset", err)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	e, err := Lookup(2)
	if err != nil {
		t.Fatalf("Lookup(2): %v", err)
	}
	e.UnitPrice = 0 // must not write through to the table

	again, err := Lookup(2)
	if err != nil {
		t.Fatalf("Lookup(2) again: %v", err)
	}
	if again.UnitPrice != 51.45 {
		t.Errorf("catalog entry mutated through returned copy: %v", again.UnitPrice)
	}
}

func TestSize(t *testing.T) {
	if got := Size(); got != 4 {
		t.Errorf("Size: got %d, want 4", got)
	}
}
