package stream

import (
	"errors"
	"io"
	"testing"
)

// scriptedStream replays fragments then a terminal error.
type scriptedStream struct {
	fragments []string
	pos       int
	finalErr  error
	closed    bool
}

func (s *scriptedStream) Recv() (string, error) {
	if s.pos >= len(s.fragments) {
		if s.finalErr != nil {
			return "", s.finalErr
		}
		return "", io.EOF
	}
	f := s.fragments[s.pos]
	s.pos++
	return f, nil
}

func (s *scriptedStream) Close() error {
	s.closed = true
	return nil
}

func TestCollectConcatenatesInOrder(t *testing.T) {
	s := &scriptedStream{fragments: []string{"{\"a\":", " 1", "}"}}

	got, err := Collect(s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"a": 1}` {
		t.Errorf("expected concatenated buffer, got %q", got)
	}
}

func TestCollectEmptyStream(t *testing.T) {
	s := &scriptedStream{}

	got, err := Collect(s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty buffer, got %q", got)
	}
}

func TestCollectObserverSeesNonEmptyFragments(t *testing.T) {
	s := &scriptedStream{fragments: []string{"one", "", "two", "three"}}

	var observed []string
	_, err := Collect(s, func(fragment string) {
		observed = append(observed, fragment)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"one", "two", "three"}
	if len(observed) != len(want) {
		t.Fatalf("expected %d observations, got %d", len(want), len(observed))
	}
	for i := range want {
		if observed[i] != want[i] {
			t.Errorf("observation %d: expected %q, got %q", i, want[i], observed[i])
		}
	}
}

func TestCollectTransportFailure(t *testing.T) {
	boom := errors.New("connection reset")
	s := &scriptedStream{fragments: []string{"partial"}, finalErr: boom}

	got, err := Collect(s, nil)
	if err == nil {
		t.Fatal("expected error for failed transport")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
	if got != "" {
		t.Errorf("expected no partial result, got %q", got)
	}
}
