package loader

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestLoader(t *testing.T, opts ...LoaderBuilderOption) Loader {
	t.Helper()
	l := NewLoader(opts...)
	t.Cleanup(l.Close)
	return l
}

func waitDone(t *testing.T, f *Future) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := f.Wait(ctx); errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("future %q did not resolve", f.Name())
	}
}

func TestLoadRunsCallbackOnPump(t *testing.T) {
	l := newTestLoader(t, WithFactory("answer", func(context.Context) (any, error) {
		return 42, nil
	}))

	var got any
	calls := 0
	f := l.Load("answer", func(v any, err error) {
		if err != nil {
			t.Errorf("callback err = %v, want nil", err)
		}
		got = v
		calls++
	})

	waitDone(t, f)
	if calls != 0 {
		t.Fatal("callback ran before Pump")
	}
	if f.State() != StateResolved {
		t.Errorf("State() = %v, want resolved", f.State())
	}
	if l.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", l.Pending())
	}

	if n := l.Pump(); n != 1 {
		t.Errorf("Pump() = %d, want 1", n)
	}
	if calls != 1 || got != 42 {
		t.Errorf("callback calls = %d value = %v, want 1 and 42", calls, got)
	}
	if l.Pending() != 0 {
		t.Errorf("Pending() after Pump = %d, want 0", l.Pending())
	}
	if n := l.Pump(); n != 0 {
		t.Errorf("second Pump() = %d, want 0", n)
	}
}

func TestLoadUnknownModule(t *testing.T) {
	l := newTestLoader(t)

	var cbErr error
	f := l.Load("missing", func(_ any, err error) { cbErr = err })
	waitDone(t, f)

	if f.State() != StateFailed {
		t.Errorf("State() = %v, want failed", f.State())
	}
	if _, err := f.Result(); !errors.Is(err, ErrUnknownModule) {
		t.Errorf("Result() err = %v, want ErrUnknownModule", err)
	}
	l.Pump()
	if !errors.Is(cbErr, ErrUnknownModule) {
		t.Errorf("callback err = %v, want ErrUnknownModule", cbErr)
	}
}

func TestLoadFactoryError(t *testing.T) {
	boom := errors.New("boom")
	l := newTestLoader(t)
	l.Register("broken", func(context.Context) (any, error) { return nil, boom })

	f := l.Load("broken", nil)
	waitDone(t, f)
	if _, err := f.Result(); !errors.Is(err, boom) {
		t.Errorf("Result() err = %v, want wrapped boom", err)
	}
	// nil callbacks are still accounted for
	if n := l.Pump(); n != 1 {
		t.Errorf("Pump() = %d, want 1", n)
	}
}

func TestLoadAfterClose(t *testing.T) {
	l := NewLoader(WithFactory("x", func(context.Context) (any, error) { return 1, nil }))
	l.Close()
	l.Close()

	f := l.Load("x", nil)
	waitDone(t, f)
	if _, err := f.Result(); !errors.Is(err, ErrClosed) {
		t.Errorf("Result() err = %v, want ErrClosed", err)
	}
}

func TestRegistered(t *testing.T) {
	l := newTestLoader(t)
	if l.Registered("r") {
		t.Error("Registered() = true before Register")
	}
	l.Register("r", func(context.Context) (any, error) { return nil, nil })
	if !l.Registered("r") {
		t.Error("Registered() = false after Register")
	}
}

func TestFutureWaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	l := newTestLoader(t, WithFactory("slow", func(ctx context.Context) (any, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, nil
	}))
	t.Cleanup(func() { close(release) })

	f := l.Load("slow", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() err = %v, want context.Canceled", err)
	}
}
