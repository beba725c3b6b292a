package light

// ShadowMapResolution is the shadow map edge length in texels for a resolution bias of 0.
const ShadowMapResolution = 2048

// MinShadowMapResolution and MaxShadowMapResolution bound the biased shadow map size.
const (
	MinShadowMapResolution = 256
	MaxShadowMapResolution = 8192
)

// ShadowMapSize applies a power-of-two resolution bias to ShadowMapResolution.
//
// Parameters:
//   - bias: the exponent, negative values shrink the map
//
// Returns:
//   - int: the clamped edge length in texels
func ShadowMapSize(bias int) int {
	size := ShadowMapResolution
	switch {
	case bias > 0:
		for i := 0; i < bias && size < MaxShadowMapResolution; i++ {
			size <<= 1
		}
	case bias < 0:
		for i := 0; i > bias && size > MinShadowMapResolution; i-- {
			size >>= 1
		}
	}
	return min(max(size, MinShadowMapResolution), MaxShadowMapResolution)
}
