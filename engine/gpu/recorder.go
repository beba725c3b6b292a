package gpu

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Op identifies a recorded device command.
type Op int

const (
	OpSetClearColor Op = iota
	OpSetScissor
	OpSetViewport
	OpSetDepthMask
	OpClear
	OpFlush
	OpBeginFrame
	OpPresent
	OpResize
)

var opNames = [...]string{
	OpSetClearColor: "SetClearColor",
	OpSetScissor:    "SetScissor",
	OpSetViewport:   "SetViewport",
	OpSetDepthMask:  "SetDepthMask",
	OpClear:         "Clear",
	OpFlush:         "Flush",
	OpBeginFrame:    "BeginFrame",
	OpPresent:       "Present",
	OpResize:        "Resize",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Op(?)"
}

// Command is one recorded device call. Only the fields relevant to Op are set.
type Command struct {
	Op        Op
	Color     wgpu.Color
	Rect      Rect
	DepthMask bool
	Flags     ClearFlags
}

// Recorder is a headless FrameDevice that records every command it receives
// and tracks the resulting device state. It backs offscreen runs and tests.
type Recorder struct {
	mu sync.Mutex

	commands []Command

	clearColor wgpu.Color
	scissor    Rect
	viewport   Rect
	depthMask  bool
	width      int
	height     int
}

var _ FrameDevice = &Recorder{}

// NewRecorder creates a Recorder with a depth mask enabled and an opaque black clear color.
//
// Returns:
//   - *Recorder: the new recorder
func NewRecorder() *Recorder {
	return &Recorder{
		clearColor: wgpu.Color{A: 1},
		depthMask:  true,
	}
}

func (r *Recorder) record(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, c)
}

func (r *Recorder) SetClearColor(c wgpu.Color) {
	r.record(Command{Op: OpSetClearColor, Color: c})
	r.mu.Lock()
	r.clearColor = c
	r.mu.Unlock()
}

func (r *Recorder) SetScissor(rect Rect) {
	r.record(Command{Op: OpSetScissor, Rect: rect})
	r.mu.Lock()
	r.scissor = rect
	r.mu.Unlock()
}

func (r *Recorder) SetViewport(rect Rect) {
	r.record(Command{Op: OpSetViewport, Rect: rect})
	r.mu.Lock()
	r.viewport = rect
	r.mu.Unlock()
}

func (r *Recorder) SetDepthMask(enabled bool) {
	r.record(Command{Op: OpSetDepthMask, DepthMask: enabled})
	r.mu.Lock()
	r.depthMask = enabled
	r.mu.Unlock()
}

func (r *Recorder) Clear(flags ClearFlags) {
	r.record(Command{Op: OpClear, Flags: flags})
}

func (r *Recorder) Flush() {
	r.record(Command{Op: OpFlush})
}

func (r *Recorder) BeginFrame() error {
	r.record(Command{Op: OpBeginFrame})
	return nil
}

func (r *Recorder) Present() {
	r.record(Command{Op: OpPresent})
}

func (r *Recorder) Resize(width, height int) {
	r.record(Command{Op: OpResize, Rect: Rect{W: width, H: height}})
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

// Commands returns a copy of every command recorded since the last Reset.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Count returns how many recorded commands have the given op.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops the recorded commands. Device state is kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = r.commands[:0]
}

// State returns the current clear color, scissor, viewport and depth mask.
func (r *Recorder) State() (clearColor wgpu.Color, scissor, viewport Rect, depthMask bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor, r.scissor, r.viewport, r.depthMask
}
