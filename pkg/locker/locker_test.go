package locker

import (
	"errors"
	"sync"
	"testing"
)

func TestLockerSerializes(t *testing.T) {
	l := New()

	const workers = 50
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Acquire("uploads/a.png")
			counter++
			l.Release("uploads/a.png")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestLockerIndependentIds(t *testing.T) {
	l := New()

	l.Acquire("a")
	done := make(chan struct{})
	go func() {
		// Must not block on an unrelated id
		l.Acquire("b")
		l.Release("b")
		close(done)
	}()
	<-done
	l.Release("a")
}

func TestLockerDo(t *testing.T) {
	l := New()

	wantErr := errors.New("boom")
	if err := l.Do("x", func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("Do() error = %v, want %v", err, wantErr)
	}

	// Lock must be released after Do
	l.Acquire("x")
	l.Release("x")
}
