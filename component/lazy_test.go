package component

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLazy_BuildsOnce(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})
	l := NewLazy("transport", func(context.Context) (*int, error) {
		builds.Add(1)
		<-release
		v := 42
		return &v, nil
	})

	const callers = 32
	var wg sync.WaitGroup
	results := make([]*int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := l.Get(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = v
		}(i)
	}

	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("expected exactly one build, got %d", got)
	}
	for i, v := range results {
		if v != results[0] {
			t.Fatalf("caller %d observed a different instance", i)
		}
	}
	if *results[0] != 42 {
		t.Errorf("unexpected value %d", *results[0])
	}
}

func TestLazy_NotBuiltUntilUsed(t *testing.T) {
	l := NewLazy("transport", func(context.Context) (string, error) { return "x", nil })
	if l.IsInitialized() {
		t.Fatal("expected no build before first Get")
	}
	if _, ok := l.Peek(); ok {
		t.Fatal("Peek must not build")
	}
	if v, err := l.Get(context.Background()); err != nil || v != "x" {
		t.Fatalf("unexpected Get result %q, %v", v, err)
	}
	if v, ok := l.Peek(); !ok || v != "x" {
		t.Errorf("expected Peek to see the built value, got %q", v)
	}
}

func TestLazy_RetriesAfterFailure(t *testing.T) {
	boom := errors.New("boom")
	var attempts int
	l := NewLazy("transport", func(context.Context) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, boom
		}
		return attempts, nil
	})

	if _, err := l.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if l.IsInitialized() {
		t.Fatal("a failed build must not publish a value")
	}
	v, err := l.Get(context.Background())
	if err != nil || v != 2 {
		t.Fatalf("expected the second attempt to succeed, got %d, %v", v, err)
	}
	if v, _ := l.Get(context.Background()); v != 2 || attempts != 2 {
		t.Errorf("expected no further builds, got value %d after %d attempts", v, attempts)
	}
}

func TestLazy_NoInitializer(t *testing.T) {
	l := NewLazy[int]("empty", nil)
	if _, err := l.Get(context.Background()); err == nil {
		t.Error("expected an error without an initializer")
	}
}
