package world

import (
	"errors"
	"sync"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestHost_Do(t *testing.T) {
	s := newTestSession(t, 6)
	h := NewHost(s)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Do(func(s *Session) error {
				s.Player.Move(1, 0)
				s.Player.Move(-1, 1)
				return nil
			})
		}()
	}
	wg.Wait()

	start := s.Current().Start
	testutil.AssertEqual(t, "x", s.Player.X, start.X)
	testutil.AssertEqual(t, "y", s.Player.Y, start.Y+50)

	sentinel := errors.New("boom")
	if err := h.Do(func(*Session) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("expected fn error to be returned, got %v", err)
	}
}

func TestHost_Replace(t *testing.T) {
	h := NewHost(nil)
	if err := h.Do(func(*Session) error { return nil }); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	s := newTestSession(t, 7)
	h.Replace(s)

	var depth int
	if err := h.Do(func(s *Session) error {
		depth = s.Depth()
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "depth", depth, 1)
}
