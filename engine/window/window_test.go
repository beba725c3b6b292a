package window

import "testing"

func TestBuilderOptions(t *testing.T) {
	w := defaultWindow()
	for _, opt := range []WindowBuilderOption{
		WithTitle("split"),
		WithSize(800, 600),
		WithSizeLimits(100, 100, 1000, 900),
	} {
		opt(w)
	}

	if w.Title() != "split" {
		t.Errorf("Title() = %q, want split", w.Title())
	}
	if w.Width() != 800 || w.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", w.Width(), w.Height())
	}
	if w.minWidth != 100 || w.minHeight != 100 || w.maxWidth != 1000 || w.maxHeight != 900 {
		t.Errorf("limits = %d,%d,%d,%d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
}

func TestResizedNotifiesCallback(t *testing.T) {
	w := defaultWindow()
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) { gotW, gotH = width, height })

	w.resized(1024, 768)

	if gotW != 1024 || gotH != 768 {
		t.Errorf("callback got %dx%d, want 1024x768", gotW, gotH)
	}
	if w.Width() != 1024 || w.Height() != 768 {
		t.Errorf("size = %dx%d, want 1024x768", w.Width(), w.Height())
	}
}

func TestResizedKeepsSizeWhenMinimized(t *testing.T) {
	w := defaultWindow()
	calls := 0
	w.SetResizeCallback(func(int, int) { calls++ })

	w.resized(0, 0)

	if w.Width() != 1280 || w.Height() != 720 {
		t.Errorf("size after minimize = %dx%d, want 1280x720", w.Width(), w.Height())
	}
	if calls != 0 {
		t.Errorf("resize callback calls = %d, want 0", calls)
	}
}

func TestUncreatedWindow(t *testing.T) {
	w := defaultWindow()
	if w.IsRunning() {
		t.Error("IsRunning() = true for a window that was never created")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("SurfaceDescriptor() != nil for a window that was never created")
	}
	if err := w.Close(); err == nil {
		t.Error("Close() = nil for a window that was never created")
	}
}
