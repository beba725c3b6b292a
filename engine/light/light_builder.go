package light

import (
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithDirection sets the light direction. The direction is normalized before storing.
//
// Parameters:
//   - x, y, z: direction components
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = common.Vec3{x, y, z}.Normalize()
	}
}

// WithColor sets the RGB color of the light.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.Vec3{r, g, b}
	}
}

// WithIntensity sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange sets the attenuation cutoff distance of point and spot lights.
// The range doubles as the culling radius.
//
// Parameters:
//   - lightRange: the range in world units
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone sets the inner and outer cone half-angles of a spot light.
//
// Parameters:
//   - innerDeg: inner half-angle in degrees
//   - outerDeg: outer half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the spot cone option to a lightImpl
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerCone = cosDeg(innerDeg)
		l.outerCone = cosDeg(outerDeg)
	}
}

// WithEnabled sets whether the light is taken into account by the renderer.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastShadows sets whether the light requests a shadow map.
//
// Parameters:
//   - castShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastShadows(castShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castShadows = castShadows
	}
}

// WithShadowMapResolutionBias sets the power-of-two exponent applied to the shadow map resolution.
// A bias of 1 doubles the edge length, -1 halves it.
//
// Parameters:
//   - bias: the exponent
//
// Returns:
//   - LightBuilderOption: a function that applies the bias option to a lightImpl
func WithShadowMapResolutionBias(bias int) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadowBias = bias
	}
}

// WithQueueIndex sets the render queue the light pushes its jobs into.
//
// Parameters:
//   - idx: the render queue index
//
// Returns:
//   - LightBuilderOption: a function that applies the queue option to a lightImpl
func WithQueueIndex(idx int) LightBuilderOption {
	return func(l *lightImpl) {
		l.queueIndex = idx
	}
}

// cosDeg converts an angle in degrees to the cosine of that angle in radians.
func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg) * math.Pi / 180.0))
}
