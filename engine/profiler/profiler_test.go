package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
)

func TestTickReportsAfterInterval(t *testing.T) {
	orig := common.Logger()
	t.Cleanup(func() { common.SetLogger(orig) })

	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	start := time.Unix(100, 0)
	clock := start
	p := NewProfiler(time.Second)
	p.lastTime = start
	p.now = func() time.Time { return clock }

	clock = start.Add(500 * time.Millisecond)
	if p.Tick() {
		t.Fatal("Tick() reported before the interval elapsed")
	}
	if buf.Len() != 0 {
		t.Fatalf("log output before interval = %q", buf.String())
	}

	clock = start.Add(time.Second)
	if !p.Tick(slog.Int("viewports", 2)) {
		t.Fatal("Tick() did not report after the interval elapsed")
	}
	out := buf.String()
	for _, want := range []string{"msg=profiler", "fps=2", "viewports=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output = %q, want it to contain %q", out, want)
		}
	}
	if p.frameCount != 0 {
		t.Errorf("frameCount after report = %d, want 0", p.frameCount)
	}
}

func TestNewProfilerDefaultInterval(t *testing.T) {
	if got := NewProfiler(0).updateInterval; got != time.Second {
		t.Errorf("updateInterval = %v, want %v", got, time.Second)
	}
}
