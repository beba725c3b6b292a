package mesh

import (
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// Drawer is implemented by renderers that draw meshes.
type Drawer interface {
	DrawMesh(job *MeshJob, sp *statepool.StatePool)
}

// MeshJob is the per-frame record a mesh pushes into its render queue.
type MeshJob struct {
	distance    float32
	hasDistance bool
	mesh        Mesh
	entity      scene.Entity
	node        *scene.Node
	view        scene.View
}

var _ renderqueue.Job = &MeshJob{}
var _ renderqueue.Distancer = &MeshJob{}

func (j *MeshJob) Mesh() Mesh           { return j.mesh }
func (j *MeshJob) Entity() scene.Entity { return j.entity }
func (j *MeshJob) Node() *scene.Node    { return j.node }
func (j *MeshJob) View() scene.View     { return j.view }

func (j *MeshJob) Distance() (float32, bool) {
	return j.distance, j.hasDistance
}

func (j *MeshJob) SetDistance(d float32) {
	j.distance = d
	j.hasDistance = true
}

// Draw hands the job to the renderer's DrawMesh; renderers without mesh support skip it.
func (j *MeshJob) Draw(r renderqueue.Renderer, sp *statepool.StatePool) {
	if d, ok := r.(Drawer); ok {
		d.DrawMesh(j, sp)
	}
}
