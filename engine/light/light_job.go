package light

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// Drawer is implemented by renderers that consume light jobs.
type Drawer interface {
	// DrawLight is called once per LightJob while the light queue is drained.
	//
	// Parameters:
	//   - job: the light job
	//   - sp: the state pool for the current frame
	DrawLight(job *LightJob, sp *statepool.StatePool)
}

// LightJob is the per-frame record a light pushes into its render queue.
// It is created on every Light.Render call and must not be kept after the frame.
type LightJob struct {
	distance    float32
	hasDistance bool
	light       Light
	entity      scene.Entity
	node        *scene.Node
	view        scene.View
}

var _ renderqueue.Job = &LightJob{}
var _ renderqueue.Distancer = &LightJob{}

func newLightJob(l Light, e scene.Entity, n *scene.Node, view scene.View) *LightJob {
	return &LightJob{light: l, entity: e, node: n, view: view}
}

func (j *LightJob) Light() Light         { return j.light }
func (j *LightJob) Entity() scene.Entity { return j.entity }
func (j *LightJob) Node() *scene.Node    { return j.node }
func (j *LightJob) View() scene.View     { return j.view }

// Distance returns the distance to the camera. It is reserved for renderers
// that sort lights and stays unset unless SetDistance was called.
func (j *LightJob) Distance() (float32, bool) {
	return j.distance, j.hasDistance
}

func (j *LightJob) SetDistance(d float32) {
	j.distance = d
	j.hasDistance = true
}

// WorldPosition returns the world-space position of the node the light is attached to.
func (j *LightJob) WorldPosition() common.Vec3 {
	if j.node == nil {
		return common.Vec3{}
	}
	return j.node.WorldPosition()
}

// Draw hands the job to the renderer's DrawLight. Renderers without light support skip it.
func (j *LightJob) Draw(r renderqueue.Renderer, sp *statepool.StatePool) {
	d, ok := r.(Drawer)
	if !ok {
		common.Logger().Debug("renderer does not draw lights, skipping light job", "type", j.light.Type().String())
		return
	}
	d.DrawLight(j, sp)
}
