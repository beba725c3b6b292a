package gpu

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// clearShaderSource draws a single oversized triangle at the far plane. The
// color comes from the pass blend constant, so one pipeline per write mask is
// enough to clear any scissored sub-rectangle to any color.
const clearShaderSource = `
@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>(3.0, -1.0),
        vec2<f32>(-1.0, 3.0),
    );
    return vec4<f32>(pos[i], 1.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

// WGPUDevice implements FrameDevice on top of WebGPU.
//
// WebGPU has no global clear/scissor/viewport state, so the device keeps that
// state itself and applies it to every render pass it opens. Clears are drawn
// with a full-screen triangle restricted by the scissor rectangle rather than
// through attachment load ops, which would always clear the whole surface.
// Rectangles use a lower-left origin and are flipped to WebGPU's top-left origin.
type WGPUDevice struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	presentMode          wgpu.PresentMode
	forceFallbackAdapter bool

	width, height int
	depthTexture  *wgpu.Texture
	depthView     *wgpu.TextureView

	clearModule    *wgpu.ShaderModule
	clearPipelines map[ClearFlags]*wgpu.RenderPipeline

	clearColor wgpu.Color
	scissor    Rect
	viewport   Rect
	depthMask  bool

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	encoder      *wgpu.CommandEncoder
}

var _ FrameDevice = &WGPUDevice{}

// NewWGPUDevice creates a WebGPU instance, adapter and device for the given surface
// and configures the surface to the given size.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor, typically from window.Window
//   - width, height: the initial surface size in pixels
//   - options: functional options to configure the device
//
// Returns:
//   - *WGPUDevice: the configured device
//   - error: an error if adapter or device creation fails
func NewWGPUDevice(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...WGPUDeviceBuilderOption) (*WGPUDevice, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("gpu: NewWGPUDevice requires a surface descriptor")
	}
	runtime.LockOSThread()

	d := &WGPUDevice{
		mu:             &sync.Mutex{},
		presentMode:    wgpu.PresentModeFifo,
		clearPipelines: make(map[ClearFlags]*wgpu.RenderPipeline),
		clearColor:     wgpu.Color{A: 1},
		depthMask:      true,
	}
	for _, opt := range options {
		opt(d)
	}

	d.instance = wgpu.CreateInstance(nil)
	d.surface = d.instance.CreateSurface(surfaceDescriptor)

	adapter, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: d.forceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}
	d.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "oxy-view device",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	d.device = device
	d.queue = device.GetQueue()

	d.clearModule, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "viewport clear",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: clearShaderSource,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create clear shader: %w", err)
	}

	d.Resize(width, height)
	return d, nil
}

// Device returns the underlying WebGPU device for renderers that create their own pipelines.
func (d *WGPUDevice) Device() *wgpu.Device {
	return d.device
}

// SurfaceFormat returns the color format of the configured surface.
func (d *WGPUDevice) SurfaceFormat() wgpu.TextureFormat {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.surfaceFormat
}

func (d *WGPUDevice) Resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	d.width, d.height = width, height

	capabilities := d.surface.GetCapabilities(d.adapter)
	format := capabilities.Formats[0]
	if format != d.surfaceFormat {
		// Clear pipelines are specific to the color target format.
		for _, p := range d.clearPipelines {
			p.Release()
		}
		clear(d.clearPipelines)
	}
	d.surfaceFormat = format

	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: d.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if d.depthView != nil {
		d.depthView.Release()
		d.depthTexture.Release()
		d.depthView, d.depthTexture = nil, nil
	}
	depthTexture, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "viewport depth",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		common.Logger().Warn("gpu: create depth texture", "error", err)
		return
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		common.Logger().Warn("gpu: create depth view", "error", err)
		return
	}
	d.depthTexture, d.depthView = depthTexture, depthView
}

func (d *WGPUDevice) BeginFrame() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frameSurface != nil {
		return fmt.Errorf("gpu: previous frame surface not yet presented")
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("gpu: acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("gpu: create surface view: %w", err)
	}
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}

	d.frameSurface = surfaceTexture
	d.frameView = view
	d.encoder = encoder
	return nil
}

func (d *WGPUDevice) SetClearColor(c wgpu.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearColor = c
}

func (d *WGPUDevice) SetScissor(r Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scissor = r
}

func (d *WGPUDevice) SetViewport(r Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = r
}

func (d *WGPUDevice) SetDepthMask(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depthMask = enabled
}

func (d *WGPUDevice) Clear(flags ClearFlags) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.depthMask {
		flags &^= ClearDepth
	}
	if flags == 0 {
		return
	}
	if d.encoder == nil {
		common.Logger().Debug("gpu: clear outside frame dropped", "flags", flags)
		return
	}

	pipeline, err := d.clearPipeline(flags)
	if err != nil {
		common.Logger().Warn("gpu: clear pipeline", "flags", flags, "error", err)
		return
	}

	pass := d.beginPassLocked()
	if pass == nil {
		return
	}
	pass.SetBlendConstant(&d.clearColor)
	pass.SetPipeline(pipeline)
	pass.Draw(3, 1, 0, 0)
	pass.End()
	pass.Release()
}

// BeginPass opens a render pass over the current frame that preserves existing
// contents and applies the current viewport and scissor rectangles. The caller
// must End and Release the pass before the next device command.
//
// Returns:
//   - *wgpu.RenderPassEncoder: the open pass
//   - error: ErrNoFrame outside BeginFrame/Present, or a rectangle error
func (d *WGPUDevice) BeginPass() (*wgpu.RenderPassEncoder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.encoder == nil {
		return nil, ErrNoFrame
	}
	pass := d.beginPassLocked()
	if pass == nil {
		return nil, fmt.Errorf("gpu: scissor %v lies outside the %dx%d surface", d.scissor, d.width, d.height)
	}
	return pass, nil
}

// beginPassLocked opens a load/store pass with the device rectangles applied.
// Returns nil when the scissor rectangle is empty after clamping. Caller must hold the mutex.
func (d *WGPUDevice) beginPassLocked() *wgpu.RenderPassEncoder {
	scissor, ok := d.clampToSurface(d.scissor)
	if !ok {
		return nil
	}

	desc := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    d.frameView,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	}
	if d.depthView != nil {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:         d.depthView,
			DepthLoadOp:  wgpu.LoadOpLoad,
			DepthStoreOp: wgpu.StoreOpStore,
		}
	}
	pass := d.encoder.BeginRenderPass(desc)

	vp := d.flipY(d.viewport)
	pass.SetViewport(float32(vp.X), float32(vp.Y), float32(vp.W), float32(vp.H), 0, 1)
	sc := d.flipY(scissor)
	pass.SetScissorRect(uint32(sc.X), uint32(sc.Y), uint32(sc.W), uint32(sc.H))
	return pass
}

// clearPipeline returns the cached clear pipeline for the given flags, creating it on first use.
// Caller must hold the mutex.
func (d *WGPUDevice) clearPipeline(flags ClearFlags) (*wgpu.RenderPipeline, error) {
	if p, ok := d.clearPipelines[flags]; ok {
		return p, nil
	}

	writeMask := wgpu.ColorWriteMaskNone
	if flags.Has(ClearColor) {
		writeMask = wgpu.ColorWriteMaskAll
	}

	p, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "viewport clear " + flags.String(),
		Vertex: wgpu.VertexState{
			Module:     d.clearModule,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     d.clearModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    d.surfaceFormat,
					WriteMask: writeMask,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorConstant,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorConstant,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: flags.Has(ClearDepth),
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	d.clearPipelines[flags] = p
	return p, nil
}

func (d *WGPUDevice) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushLocked()
}

// flushLocked submits the frame encoder and opens a fresh one for the rest of the frame.
// Caller must hold the mutex.
func (d *WGPUDevice) flushLocked() {
	if d.encoder == nil {
		return
	}
	commandBuffer, err := d.encoder.Finish(nil)
	d.encoder.Release()
	d.encoder = nil
	if err != nil {
		common.Logger().Warn("gpu: finish command encoder", "error", err)
	} else {
		d.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}

	if d.frameSurface == nil {
		return
	}
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		common.Logger().Warn("gpu: create command encoder", "error", err)
		return
	}
	d.encoder = encoder
}

func (d *WGPUDevice) Present() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frameSurface == nil {
		return
	}
	d.flushLocked()
	if d.encoder != nil {
		d.encoder.Release()
		d.encoder = nil
	}

	d.surface.Present()
	d.frameView.Release()
	d.frameSurface.Release()
	d.frameView = nil
	d.frameSurface = nil
}

// Release frees every GPU resource held by the device.
func (d *WGPUDevice) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range d.clearPipelines {
		p.Release()
	}
	clear(d.clearPipelines)
	if d.clearModule != nil {
		d.clearModule.Release()
	}
	if d.depthView != nil {
		d.depthView.Release()
		d.depthTexture.Release()
	}
	d.device.Release()
	d.adapter.Release()
	d.surface.Release()
	d.instance.Release()
}

// flipY converts a lower-left origin rectangle to the top-left origin WebGPU uses.
func (d *WGPUDevice) flipY(r Rect) Rect {
	return Rect{X: r.X, Y: d.height - (r.Y + r.H), W: r.W, H: r.H}
}

// clampToSurface intersects r with the surface bounds. A zero scissor means the whole surface.
func (d *WGPUDevice) clampToSurface(r Rect) (Rect, bool) {
	if r == (Rect{}) {
		return Rect{W: d.width, H: d.height}, d.width > 0 && d.height > 0
	}
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, d.width), min(r.Y+r.H, d.height)
	out := Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	return out, !out.Empty()
}
