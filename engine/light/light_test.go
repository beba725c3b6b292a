package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

type fakeView struct{ id int }

func (v *fakeView) ID() int                     { return v.id }
func (v *fakeView) Name() string                { return "view" }
func (v *fakeView) Aspect() float32             { return 1 }
func (v *fakeView) CameraWorldPos() common.Vec3 { return common.Vec3{} }

type fakeRenderer struct {
	rq     *renderqueue.Manager
	lights []*LightJob
}

func (r *fakeRenderer) RQManager() *renderqueue.Manager { return r.rq }

func (r *fakeRenderer) DrawLight(job *LightJob, _ *statepool.StatePool) {
	r.lights = append(r.lights, job)
}

type plainRenderer struct{}

func (plainRenderer) RQManager() *renderqueue.Manager { return nil }

func TestRenderPushesOneJob(t *testing.T) {
	tests := []struct {
		name  string
		light Light
		want  int
	}{
		{"default queue", NewLight(LightTypePoint), renderqueue.Light},
		{"custom queue", NewLight(LightTypeSpot, WithQueueIndex(renderqueue.Overlay)), renderqueue.Overlay},
		{"directional", NewDirectionalLight(common.Vec3{1, 1, 1}, common.Vec3{1, 0, 0}), renderqueue.Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := renderqueue.NewManager()
			view := &fakeView{id: 3}
			node := scene.NewNode("lamp")

			tt.light.Render(view, tt.light, node, rq)

			if got := rq.Len(); got != 1 {
				t.Fatalf("Len() = %d, want 1", got)
			}
			q := rq.Queue(tt.want)
			if q.Len() != 1 {
				t.Fatalf("Queue(%d).Len() = %d, want 1", tt.want, q.Len())
			}
			job, ok := q.Jobs()[0].(*LightJob)
			if !ok {
				t.Fatalf("queued job is %T, want *LightJob", q.Jobs()[0])
			}
			if job.Light() != tt.light || job.Entity() != tt.light || job.Node() != node || job.View() != view {
				t.Error("LightJob does not carry the exact light, entity, node and view")
			}
			if _, ok := job.Distance(); ok {
				t.Error("Distance() is set on a fresh job")
			}
		})
	}
}

func TestRenderCreatesFreshJobs(t *testing.T) {
	rq := renderqueue.NewManager()
	l := NewLight(LightTypePoint)
	node := scene.NewNode("lamp")
	view := &fakeView{}

	l.Render(view, l, node, rq)
	l.Render(view, l, node, rq)

	jobs := rq.Queue(renderqueue.Light).Jobs()
	if len(jobs) != 2 || jobs[0] == jobs[1] {
		t.Error("two Render calls did not produce two distinct jobs")
	}
}

func TestLightJobDraw(t *testing.T) {
	l := NewLight(LightTypePoint)
	job := newLightJob(l, l, scene.NewNode("n"), &fakeView{})

	r := &fakeRenderer{rq: renderqueue.NewManager()}
	job.Draw(r, statepool.NewStatePool())
	if len(r.lights) != 1 || r.lights[0] != job {
		t.Errorf("DrawLight received %d jobs, want the job once", len(r.lights))
	}

	// Renderers without light support are skipped without panicking.
	job.Draw(plainRenderer{}, statepool.NewStatePool())
}

func TestDirectionalLightDirection(t *testing.T) {
	l := NewDirectionalLight(common.Vec3{1, 1, 1}, common.Vec3{0, 0, 4})
	if got := l.Direction(); got != (common.Vec3{0, 0, 1}) {
		t.Errorf("Direction() = %v, want (0,0,1)", got)
	}
	if got := l.BoundingRadius(); got >= 0 {
		t.Errorf("BoundingRadius() = %v, want negative", got)
	}

	def := NewDirectionalLight(common.Vec3{1, 1, 1}, common.Vec3{})
	if got := def.Direction(); got != (common.Vec3{0, -1, 0}) {
		t.Errorf("default Direction() = %v, want (0,-1,0)", got)
	}
}

func TestPointLightBoundingRadius(t *testing.T) {
	l := NewLight(LightTypePoint, WithRange(7))
	if got := l.BoundingRadius(); got != 7 {
		t.Errorf("BoundingRadius() = %v, want 7", got)
	}
}

func TestSpotCone(t *testing.T) {
	l := NewLight(LightTypeSpot)
	l.SetSpotCone(60, 90)
	if got := l.InnerCone(); math.Abs(float64(got)-0.5) > 1e-5 {
		t.Errorf("InnerCone() = %v, want 0.5", got)
	}
	if got := l.OuterCone(); math.Abs(float64(got)) > 1e-5 {
		t.Errorf("OuterCone() = %v, want 0", got)
	}
}

func TestShadowMapSize(t *testing.T) {
	tests := []struct {
		bias int
		want int
	}{
		{0, 2048},
		{1, 4096},
		{2, 8192},
		{5, MaxShadowMapResolution},
		{-1, 1024},
		{-3, 256},
		{-10, MinShadowMapResolution},
	}
	for _, tt := range tests {
		if got := ShadowMapSize(tt.bias); got != tt.want {
			t.Errorf("ShadowMapSize(%d) = %d, want %d", tt.bias, got, tt.want)
		}
	}

	l := NewLight(LightTypeDirectional, WithCastShadows(true), WithShadowMapResolutionBias(-1))
	if !l.CastShadows() {
		t.Error("CastShadows() = false, want true")
	}
	if got := l.ShadowMapSize(); got != 1024 {
		t.Errorf("ShadowMapSize() = %d, want 1024", got)
	}
}
