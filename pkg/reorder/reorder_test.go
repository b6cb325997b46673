package reorder

import (
	"errors"
	"slices"
	"testing"
)

type entry struct {
	ID  string
	Seq int
}

func setSeq(e *entry, n int) { e.Seq = n }

func entries(ids ...string) []entry {
	out := make([]entry, len(ids))
	for i, id := range ids {
		out[i] = entry{ID: id, Seq: i + 1}
	}
	return out
}

func ids(items []entry) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.ID
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"down", 0, 3, []string{"b", "c", "d", "a", "e"}},
		{"up", 4, 1, []string{"a", "e", "b", "c", "d"}},
		{"same", 2, 2, []string{"a", "b", "c", "d", "e"}},
		{"to end", 1, 4, []string{"a", "c", "d", "e", "b"}},
		{"to front", 3, 0, []string{"d", "a", "b", "c", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := entries("a", "b", "c", "d", "e")
			got, err := Move(in, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Move: %v", err)
			}
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("Move(%d, %d) = %v, want %v", tt.from, tt.to, ids(got), tt.want)
			}
			if !slices.Equal(ids(in), []string{"a", "b", "c", "d", "e"}) {
				t.Errorf("input was modified: %v", ids(in))
			}
		})
	}
}

func TestMove_OutOfRange(t *testing.T) {
	_, err := Move(entries("a", "b"), 0, 2)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
	_, err = Move(entries(), 0, 0)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange on empty list", err)
	}
}

func TestSession_ContiguousSequenceAfterDrop(t *testing.T) {
	for from := 0; from < 6; from++ {
		for to := 0; to < 6; to++ {
			s := NewSession(entries("a", "b", "c", "d", "e", "f"), setSeq)
			if err := s.Pick(from); err != nil {
				t.Fatalf("Pick: %v", err)
			}
			if err := s.Drop(to); err != nil {
				t.Fatalf("Drop: %v", err)
			}
			seen := map[int]bool{}
			for i, e := range s.Items() {
				if e.Seq != i+1 {
					t.Fatalf("move %d->%d: item %s at %d has sequence %d", from, to, e.ID, i, e.Seq)
				}
				if seen[e.Seq] {
					t.Fatalf("move %d->%d: duplicate sequence %d", from, to, e.Seq)
				}
				seen[e.Seq] = true
			}
			if s.Items()[to].ID != string(rune('a'+from)) {
				t.Fatalf("move %d->%d: item at target is %s", from, to, s.Items()[to].ID)
			}
		}
	}
}

func TestSession_StateMachine(t *testing.T) {
	s := NewSession(entries("a", "b", "c"), setSeq)
	if s.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", s.State())
	}

	if err := s.Drop(1); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Drop while idle: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := s.Persist(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Persist while idle: err = %v, want ErrInvalidTransition", err)
	}

	if err := s.Pick(2); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateDragging {
		t.Errorf("state = %s, want dragging", s.State())
	}
	if err := s.Cancel(); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateIdle {
		t.Errorf("state after cancel = %s, want idle", s.State())
	}

	_ = s.Pick(2)
	_ = s.Drop(0)
	if s.State() != StateDropped {
		t.Errorf("state = %s, want dropped", s.State())
	}
	pending, err := s.Persist()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ids(pending), []string{"c", "a", "b"}) {
		t.Errorf("pending order = %v", ids(pending))
	}
	if s.State() != StatePersisting {
		t.Errorf("state = %s, want persisting", s.State())
	}

	if err := s.Settle(nil, nil); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateSettled || s.RolledBack() {
		t.Errorf("state = %s rolledBack = %v, want settled without rollback", s.State(), s.RolledBack())
	}
	if !slices.Equal(ids(s.Items()), []string{"c", "a", "b"}) {
		t.Errorf("kept order = %v", ids(s.Items()))
	}
}

func TestSession_RollbackOnFailure(t *testing.T) {
	original := entries("a", "b", "c")
	s := NewSession(original, setSeq)
	_ = s.Pick(0)
	_ = s.Drop(2)
	_, _ = s.Persist()

	server := entries("x", "a", "b", "c")
	failure := errors.New("bulk update failed")
	if err := s.Settle(failure, server); err != nil {
		t.Fatal(err)
	}
	if !s.RolledBack() {
		t.Fatal("expected rollback")
	}
	if !errors.Is(s.Failure(), failure) {
		t.Errorf("Failure() = %v", s.Failure())
	}
	if !slices.Equal(ids(s.Items()), []string{"x", "a", "b", "c"}) {
		t.Errorf("order = %v, want server order", ids(s.Items()))
	}

	s = NewSession(original, setSeq)
	_ = s.Pick(0)
	_ = s.Drop(2)
	_, _ = s.Persist()
	_ = s.Settle(failure, nil)
	if !slices.Equal(ids(s.Items()), []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want original order when refetch failed", ids(s.Items()))
	}
}
