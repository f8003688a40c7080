package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id == "" {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestNewRunID tests that run IDs are populated
func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == "" || b == "" {
		t.Fatal("Expected non-empty run IDs")
	}
	if a == b {
		t.Errorf("Expected distinct run IDs, got %s twice", a)
	}
}
