// Package light implements light entities and the per-frame jobs they submit.
//
// A light is attached to a scene node, which supplies its position. Every time
// a camera walks the scene, each visible light pushes one LightJob into the
// renderer's light queue. The renderer drains that queue before any geometry so
// the frame's light list is complete when meshes are drawn.
package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional has no position, only a direction, and no attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint emits in all directions from the node position up to its range.
	LightTypePoint

	// LightTypeSpot emits in a cone along its direction, attenuated by distance and cone angle.
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// Light is a light source entity.
type Light interface {
	scene.Entity

	// Type returns the kind of light source.
	Type() LightType

	// Direction returns the normalized light direction. Meaningless for point lights.
	Direction() common.Vec3

	// SetDirection sets and normalizes the light direction.
	SetDirection(x, y, z float32)

	Color() common.Vec3
	SetColor(r, g, b float32)
	Intensity() float32
	SetIntensity(intensity float32)

	// Range returns the attenuation cutoff distance of point and spot lights.
	Range() float32
	SetRange(lightRange float32)

	// InnerCone returns cos of the inner cone half-angle of a spot light.
	InnerCone() float32

	// OuterCone returns cos of the outer cone half-angle of a spot light.
	OuterCone() float32

	// SetSpotCone sets the inner and outer cone half-angles in degrees.
	SetSpotCone(innerDeg, outerDeg float32)

	// Enabled reports whether the renderer takes the light into account.
	Enabled() bool
	SetEnabled(enabled bool)

	// CastShadows reports whether the light requests a shadow map.
	CastShadows() bool
	SetCastShadows(castShadows bool)

	// ShadowMapResolutionBias returns the power-of-two exponent applied to ShadowMapResolution.
	ShadowMapResolutionBias() int
	SetShadowMapResolutionBias(bias int)

	// ShadowMapSize returns the shadow map edge length in texels after applying the resolution bias.
	//
	// Returns:
	//   - int: ShadowMapResolution * 2^bias, clamped to [MinShadowMapResolution, MaxShadowMapResolution]
	ShadowMapSize() int

	// QueueIndex returns the render queue the light pushes its jobs into.
	QueueIndex() int
	SetQueueIndex(idx int)
}

type lightImpl struct {
	mu          *sync.RWMutex
	lightType   LightType
	direction   common.Vec3
	color       common.Vec3
	intensity   float32
	lightRange  float32
	innerCone   float32 // cos(angle)
	outerCone   float32 // cos(angle)
	enabled     bool
	castShadows bool
	shadowBias  int
	queueIndex  int
}

var _ Light = &lightImpl{}

// NewLight creates a light of the given type. Defaults: white, intensity 1,
// range 10, direction (0,-1,0), 25/35 degree spot cone, enabled, light queue.
//
// Parameters:
//   - lightType: the kind of light
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:         &sync.RWMutex{},
		lightType:  lightType,
		direction:  common.Vec3{0, -1, 0},
		color:      common.Vec3{1, 1, 1},
		intensity:  1,
		lightRange: 10,
		innerCone:  cosDeg(25),
		outerCone:  cosDeg(35),
		enabled:    true,
		queueIndex: renderqueue.Light,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDirectionalLight creates a directional light. A zero direction falls back to straight down.
//
// Parameters:
//   - color: the RGB color
//   - dir: the light direction, normalized before storing
//   - opts: additional configuration
//
// Returns:
//   - Light: the directional light
func NewDirectionalLight(color, dir common.Vec3, opts ...LightBuilderOption) Light {
	if dir.Len() == 0 {
		dir = common.Vec3{0, -1, 0}
	}
	base := []LightBuilderOption{
		WithColor(color[0], color[1], color[2]),
		WithDirection(dir[0], dir[1], dir[2]),
	}
	return NewLight(LightTypeDirectional, append(base, opts...)...)
}

// Render pushes one LightJob referencing the light, the entity and node it is
// attached through, and the viewport. Lights do no culling or distance work here.
func (l *lightImpl) Render(view scene.View, e scene.Entity, n *scene.Node, rq *renderqueue.Manager) {
	rq.Push(l.QueueIndex(), newLightJob(l, e, n, view))
}

// BoundingRadius is the light range for point and spot lights; directional lights are unbounded.
func (l *lightImpl) BoundingRadius() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.lightType == LightTypeDirectional || l.lightRange <= 0 {
		return -1
	}
	return l.lightRange
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Direction() common.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.direction
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = common.Vec3{x, y, z}.Normalize()
}

func (l *lightImpl) Color() common.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.color
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = common.Vec3{r, g, b}
}

func (l *lightImpl) Intensity() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.intensity
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) Range() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lightRange
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lightRange = lightRange
}

func (l *lightImpl) InnerCone() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.outerCone
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) CastShadows() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.castShadows
}

func (l *lightImpl) SetCastShadows(castShadows bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.castShadows = castShadows
}

func (l *lightImpl) ShadowMapResolutionBias() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.shadowBias
}

func (l *lightImpl) SetShadowMapResolutionBias(bias int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shadowBias = bias
}

func (l *lightImpl) ShadowMapSize() int {
	return ShadowMapSize(l.ShadowMapResolutionBias())
}

func (l *lightImpl) QueueIndex() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.queueIndex
}

func (l *lightImpl) SetQueueIndex(idx int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queueIndex = idx
}
