package scores

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, max int) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "scores.db"), max)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t, 10)

	if _, kept, err := s.Add("Player1", 100); err != nil || !kept {
		t.Fatalf("Add: kept=%v err=%v", kept, err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.PlayerName != "Player1" || e.CompletionTime != 100 {
		t.Errorf("stored %s/%v, want Player1/100", e.PlayerName, e.CompletionTime)
	}
	if e.ID == "" {
		t.Error("entry has no id")
	}
	if e.DateAchieved.IsZero() {
		t.Error("entry has no achievement timestamp")
	}
}

func TestListOrderedByTime(t *testing.T) {
	s := newTestStore(t, 10)

	for _, tc := range []struct {
		name string
		secs float64
	}{
		{"slow", 300}, {"fast", 45}, {"middle", 120},
	} {
		if _, _, err := s.Add(tc.name, tc.secs); err != nil {
			t.Fatalf("Add(%s): %v", tc.name, err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"fast", "middle", "slow"}
	for i, name := range want {
		if entries[i].PlayerName != name {
			t.Errorf("entry %d = %s, want %s", i, entries[i].PlayerName, name)
		}
	}
}

func TestCapTrimsWorstScores(t *testing.T) {
	s := newTestStore(t, 3)

	for i, secs := range []float64{50, 60, 70} {
		if _, kept, _ := s.Add("early", secs); !kept {
			t.Fatalf("entry %d trimmed while table underfull", i)
		}
	}

	// Better than the worst kept time: enters, pushing out 70.
	if _, kept, err := s.Add("better", 65); err != nil || !kept {
		t.Fatalf("better score rejected: kept=%v err=%v", kept, err)
	}

	// Worse than everything kept: inserted then trimmed straight away.
	if _, kept, err := s.Add("worse", 200); err != nil {
		t.Fatalf("Add: %v", err)
	} else if kept {
		t.Error("score worse than the full table was kept")
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if worst := entries[len(entries)-1].CompletionTime; worst != 65 {
		t.Errorf("worst kept time = %v, want 65", worst)
	}
}

func TestQualifies(t *testing.T) {
	s := newTestStore(t, 2)

	// Underfull table: anything qualifies.
	if ok, err := s.Qualifies(9999); err != nil || !ok {
		t.Errorf("underfull Qualifies(9999) = %v, %v", ok, err)
	}

	s.Add("a", 100)
	s.Add("b", 200)

	if ok, _ := s.Qualifies(150); !ok {
		t.Error("150 should beat the worst time of 200")
	}
	if ok, _ := s.Qualifies(200); ok {
		t.Error("equal to the worst time should not qualify")
	}
	if ok, _ := s.Qualifies(300); ok {
		t.Error("300 should not qualify")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t, 10)
	s.Add("a", 10)
	s.Add("b", 20)

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries after clear, want 0", len(entries))
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := NewSQLiteStore(path, 10)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if _, _, err := s.Add("Player1", 100); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path, 10)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerName != "Player1" || entries[0].CompletionTime != 100 {
		t.Errorf("reopened table = %+v, want the saved Player1/100 entry", entries)
	}
}

func TestDefaultCap(t *testing.T) {
	s := newTestStore(t, 0)
	if s.max != DefaultMaxScores {
		t.Errorf("max = %d, want %d", s.max, DefaultMaxScores)
	}
}
