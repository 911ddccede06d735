package ids

import (
	"errors"
	"strconv"
	"testing"
)

func TestNewGeneratorRejectsOutOfRangeNode(t *testing.T) {
	t.Parallel()

	for _, nodeID := range []int64{-1, 1024} {
		if _, err := NewGenerator(nodeID); !errors.Is(err, ErrInvalidNodeID) {
			t.Fatalf("NewGenerator(%d) expected ErrInvalidNodeID, got %v", nodeID, err)
		}
	}
}

func TestNextIDIsUniqueAndIncreasing(t *testing.T) {
	t.Parallel()

	generator, err := NewGenerator(1)
	if err != nil {
		t.Fatalf("NewGenerator() unexpected error: %v", err)
	}

	seen := make(map[string]struct{}, 100)
	var previous int64
	for i := 0; i < 100; i++ {
		id := generator.NextID()
		if _, exists := seen[id]; exists {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}

		value, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			t.Fatalf("id %q is not numeric: %v", id, err)
		}
		if value <= previous {
			t.Fatalf("expected increasing ids, got %d after %d", value, previous)
		}
		previous = value
	}
}
