package gpu

import "github.com/cogentcore/webgpu/wgpu"

// WGPUDeviceBuilderOption is a functional option applied to a WGPUDevice during NewWGPUDevice.
type WGPUDeviceBuilderOption func(*WGPUDevice)

// WithVSync selects FIFO presentation when true (the default) and immediate presentation otherwise.
//
// Parameters:
//   - enabled: true to wait for vertical blank
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the present mode
func WithVSync(enabled bool) WGPUDeviceBuilderOption {
	return func(d *WGPUDevice) {
		if enabled {
			d.presentMode = wgpu.PresentModeFifo
		} else {
			d.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithForceSoftwareAdapter requests the CPU fallback adapter instead of hardware acceleration.
// This requires a software Vulkan ICD such as SwiftShader or lavapipe.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the adapter option
func WithForceSoftwareAdapter(force bool) WGPUDeviceBuilderOption {
	return func(d *WGPUDevice) {
		d.forceFallbackAdapter = force
	}
}
