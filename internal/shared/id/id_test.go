package id

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestNewAttemptID(t *testing.T) {
	id := NewAttemptID().String()

	if !strings.HasPrefix(id, AttemptPrefix+"_") {
		t.Errorf("ID should start with '%s_', got: %s", AttemptPrefix, id)
	}

	if _, err := Parse(id); err != nil {
		t.Errorf("prefixed ID should parse: %v", err)
	}
}

func TestIsAttemptID(t *testing.T) {
	if !IsAttemptID(NewAttemptID().String()) {
		t.Error("generated attempt id should be recognized")
	}

	raw := NewGenerator().GenerateString()
	for _, name := range []string{raw, "other_" + raw, AttemptPrefix + "_", AttemptPrefix + "_not-a-ulid", ""} {
		if IsAttemptID(name) {
			t.Errorf("%q should not be an attempt id", name)
		}
	}
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := NewGenerator().GenerateAt(at).String()

	ts, err := Timestamp(AttemptPrefix + "_" + raw)
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if !ts.Equal(at) {
		t.Errorf("expected %v, got %v", at, ts)
	}

	if _, err := Timestamp("not-a-ulid"); err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := gen.GenerateString()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("expected %d unique IDs, got %d", workers*perWorker, len(seen))
	}
}
