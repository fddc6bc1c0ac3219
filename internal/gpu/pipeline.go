//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Lens pipeline errors.
var (
	// ErrNoDevice is returned when the pipeline or allocator has no device.
	ErrNoDevice = errors.New("gpu: no device")

	// ErrPipelineNotInitialized is returned when a pass runs before Init.
	ErrPipelineNotInitialized = errors.New("gpu: lens pipeline not initialized")

	// ErrNilView is returned when a pass is missing a texture view.
	ErrNilView = errors.New("gpu: nil texture view")

	// ErrEmptyTarget is returned for a zero-sized destination.
	ErrEmptyTarget = errors.New("gpu: empty target")
)

// Attachment is the destination of a pass.
type Attachment struct {
	View    hal.TextureView
	Texture hal.Texture // optional, enables usage transitions
	Format  gputypes.TextureFormat
	Width   uint32
	Height  uint32
}

// Source is a texture sampled by a pass.
type Source struct {
	View    hal.TextureView
	Texture hal.Texture // optional, enables usage transitions
}

// pass holds the per-program GPU objects shared by every frame.
type pass struct {
	name       string
	source     string
	shader     hal.ShaderModule
	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	uniforms   hal.Buffer
	size       uint64

	// pipelines are created on first use per target format.
	pipelines map[gputypes.TextureFormat]hal.RenderPipeline
}

// inflight is the per-pass state that must outlive the submission.
type inflight struct {
	index     uint64
	bindGroup hal.BindGroup
	encoder   hal.CommandEncoder
	cmdBuf    hal.CommandBuffer
}

// retired is a released object whose destruction waits for submission
// index to complete.
type retired struct {
	index uint64
	free  func()
}

// LensPipeline renders the lens composite and FXAA passes.
//
// Each pass draws one full-screen triangle into the destination view. A pass
// writes its uniform buffer, creates a bind group for the current views,
// records a render pass and submits it without waiting. The bind group and
// command buffer are released once the queue reports the submission
// complete, which happens on a later pass, in Reclaim or in Destroy.
// Textures released while passes are in flight go through Defer and are
// destroyed at the same point.
//
// LensPipeline is safe for concurrent use; passes are serialized.
type LensPipeline struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue

	composite pass
	fxaa      pass
	sampler   hal.Sampler

	pending []inflight
	retired []retired
	ready   bool
}

// NewLensPipeline creates a pipeline for device and queue. GPU objects are
// not created until Init.
func NewLensPipeline(device hal.Device, queue hal.Queue) *LensPipeline {
	return &LensPipeline{
		device: device,
		queue:  queue,
		composite: pass{
			name:   "lens_composite",
			source: compositeShaderSource,
			size:   lensUniformSize,
		},
		fxaa: pass{
			name:   "lens_fxaa",
			source: fxaaShaderSource,
			size:   fxaaUniformSize,
		},
	}
}

// Init compiles the shaders and creates layouts, the sampler and the
// uniform buffers. Calling Init on an initialized pipeline is a no-op.
func (p *LensPipeline) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if p.device == nil || p.queue == nil {
		return ErrNoDevice
	}

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "lens_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("create lens sampler: %w", err)
	}
	p.sampler = sampler

	// Composite bindings:
	//   0: Lens uniforms
	//   1: original view
	//   2: zoomed view
	//   3: sampler
	if err := p.createPass(&p.composite, []gputypes.BindGroupLayoutEntry{
		uniformEntry(0),
		textureEntry(1),
		textureEntry(2),
		samplerEntry(3),
	}); err != nil {
		p.destroyLocked()
		return err
	}

	// FXAA bindings:
	//   0: Params uniforms
	//   1: source view
	//   2: sampler
	if err := p.createPass(&p.fxaa, []gputypes.BindGroupLayoutEntry{
		uniformEntry(0),
		textureEntry(1),
		samplerEntry(2),
	}); err != nil {
		p.destroyLocked()
		return err
	}

	p.ready = true
	slogger().Debug("gpu: lens pipeline initialized")
	return nil
}

func (p *LensPipeline) createPass(ps *pass, entries []gputypes.BindGroupLayoutEntry) error {
	spirv, err := compileSPIRV(ps.name, ps.source)
	if err != nil {
		return err
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  ps.name + "_shader",
		Source: hal.ShaderSource{WGSL: ps.source, SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create %s shader: %w", ps.name, err)
	}
	ps.shader = shader

	layout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   ps.name + "_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create %s bind group layout: %w", ps.name, err)
	}
	ps.layout = layout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            ps.name + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{ps.layout},
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", ps.name, err)
	}
	ps.pipeLayout = pipeLayout

	uniforms, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: ps.name + "_uniforms",
		Size:  ps.size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create %s uniform buffer: %w", ps.name, err)
	}
	ps.uniforms = uniforms
	ps.pipelines = make(map[gputypes.TextureFormat]hal.RenderPipeline)
	return nil
}

// pipelineFor returns the render pipeline writing format, creating it on
// first use.
func (p *LensPipeline) pipelineFor(ps *pass, format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if pipe, ok := ps.pipelines[format]; ok {
		return pipe, nil
	}
	pipe, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_pipeline_%d", ps.name, format),
		Layout: ps.pipeLayout,
		Vertex: hal.VertexState{
			Module:     ps.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     ps.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", ps.name, err)
	}
	ps.pipelines[format] = pipe
	return pipe, nil
}

// Composite blends original and zoomed into dst.
func (p *LensPipeline) Composite(dst Attachment, original, zoomed Source, u LensUniforms) error {
	if original.View == nil || zoomed.View == nil {
		return fmt.Errorf("composite: %w", ErrNilView)
	}
	return p.run(&p.composite, dst, []Source{original, zoomed}, u.Bytes())
}

// Antialias applies FXAA to src and writes dst.
func (p *LensPipeline) Antialias(dst Attachment, src Source, u FXAAUniforms) error {
	if src.View == nil {
		return fmt.Errorf("antialias: %w", ErrNilView)
	}
	return p.run(&p.fxaa, dst, []Source{src}, u.Bytes())
}

func (p *LensPipeline) run(ps *pass, dst Attachment, sources []Source, uniforms []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return ErrPipelineNotInitialized
	}
	if dst.View == nil {
		return fmt.Errorf("%s: destination: %w", ps.name, ErrNilView)
	}
	if dst.Width == 0 || dst.Height == 0 {
		return fmt.Errorf("%s: %w", ps.name, ErrEmptyTarget)
	}
	p.reclaimLocked(false)

	pipe, err := p.pipelineFor(ps, dst.Format)
	if err != nil {
		return err
	}
	if err := p.queue.WriteBuffer(ps.uniforms, 0, uniforms); err != nil {
		return fmt.Errorf("%s: write uniforms: %w", ps.name, err)
	}

	entries := make([]gputypes.BindGroupEntry, 0, len(sources)+2)
	entries = append(entries, gputypes.BindGroupEntry{
		Binding:  0,
		Resource: gputypes.BufferBinding{Buffer: ps.uniforms.NativeHandle(), Offset: 0, Size: ps.size},
	})
	for i, s := range sources {
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(i + 1), //nolint:gosec // G115: at most two sources
			Resource: gputypes.TextureViewBinding{TextureView: s.View.NativeHandle()},
		})
	}
	entries = append(entries, gputypes.BindGroupEntry{
		Binding:  uint32(len(sources) + 1), //nolint:gosec // G115: at most two sources
		Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()},
	})
	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   ps.name + "_bind_group",
		Layout:  ps.layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("%s: create bind group: %w", ps.name, err)
	}

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: ps.name})
	if err != nil {
		p.device.DestroyBindGroup(bindGroup)
		return fmt.Errorf("%s: create command encoder: %w", ps.name, err)
	}
	release := func() {
		p.device.DestroyBindGroup(bindGroup)
		encoder.Destroy()
	}
	if err := encoder.BeginEncoding(ps.name); err != nil {
		release()
		return fmt.Errorf("%s: begin encoding: %w", ps.name, err)
	}

	encoder.TransitionTextures(sourceBarriers(sources, gputypes.TextureUsageRenderAttachment, gputypes.TextureUsageTextureBinding))

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: ps.name,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       dst.View,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{},
		}},
	})
	rp.SetPipeline(pipe)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetViewport(0, 0, float32(dst.Width), float32(dst.Height), 0, 1)
	rp.Draw(3, 1, 0, 0)
	rp.End()

	// Hand the sources back to the host's scene draws.
	encoder.TransitionTextures(sourceBarriers(sources, gputypes.TextureUsageTextureBinding, gputypes.TextureUsageRenderAttachment))

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		release()
		return fmt.Errorf("%s: end encoding: %w", ps.name, err)
	}
	index, err := p.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		p.device.FreeCommandBuffer(cmdBuf)
		release()
		return fmt.Errorf("%s: submit: %w", ps.name, err)
	}
	p.pending = append(p.pending, inflight{
		index:     index,
		bindGroup: bindGroup,
		encoder:   encoder,
		cmdBuf:    cmdBuf,
	})
	slogger().Debug("gpu: pass submitted", "pass", ps.name, "index", index, "w", dst.Width, "h", dst.Height)
	return nil
}

func sourceBarriers(sources []Source, from, to gputypes.TextureUsage) []hal.TextureBarrier {
	var barriers []hal.TextureBarrier
	for _, s := range sources {
		if s.Texture == nil {
			continue
		}
		barriers = append(barriers, hal.TextureBarrier{
			Texture: s.Texture,
			Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
			Usage:   hal.TextureUsageTransition{OldUsage: from, NewUsage: to},
		})
	}
	return barriers
}

// reclaimLocked releases per-pass objects whose submission has completed.
// With all set, everything pending is released; the caller must have
// waited for the device to go idle.
func (p *LensPipeline) reclaimLocked(all bool) {
	if len(p.pending) == 0 {
		return
	}
	done := p.queue.PollCompleted()
	kept := p.pending[:0]
	for _, f := range p.pending {
		if !all && f.index > done {
			kept = append(kept, f)
			continue
		}
		p.device.FreeCommandBuffer(f.cmdBuf)
		f.encoder.Destroy()
		p.device.DestroyBindGroup(f.bindGroup)
	}
	clear(p.pending[len(kept):])
	p.pending = kept

	// Bind groups go first; they reference the retired views.
	left := p.retired[:0]
	for _, r := range p.retired {
		if !all && r.index > done {
			left = append(left, r)
			continue
		}
		r.free()
	}
	clear(p.retired[len(left):])
	p.retired = left
}

// Defer runs free once every pass submitted so far has completed. With no
// pass in flight free runs immediately. Allocator routes texture and view
// destruction through Defer so a resize never frees a texture that a
// queued pass still samples or renders to.
func (p *LensPipeline) Defer(free func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		free()
		return
	}
	last := p.pending[len(p.pending)-1].index
	p.retired = append(p.retired, retired{index: last, free: free})
}

// Retired reports how many released objects wait for in-flight passes.
func (p *LensPipeline) Retired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.retired)
}

// Pending reports how many submitted passes still hold GPU objects.
func (p *LensPipeline) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Reclaim releases the objects of completed passes without running a new
// pass. The wgpu backend calls it from SetPresentation, once per host
// frame, and from Resize.
func (p *LensPipeline) Reclaim() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reclaimLocked(false)
}

// Destroy waits for the device to finish outstanding passes and releases
// all GPU resources. Safe to call multiple times.
func (p *LensPipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyLocked()
}

func (p *LensPipeline) destroyLocked() {
	if p.device == nil {
		return
	}
	if len(p.pending) > 0 {
		if err := p.device.WaitIdle(); err != nil {
			slogger().Warn("gpu: wait idle before destroy", "err", err)
		}
		p.reclaimLocked(true)
	}
	p.destroyPass(&p.fxaa)
	p.destroyPass(&p.composite)
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	p.ready = false
}

// destroyPass releases pass resources in reverse creation order.
func (p *LensPipeline) destroyPass(ps *pass) {
	for format, pipe := range ps.pipelines {
		p.device.DestroyRenderPipeline(pipe)
		delete(ps.pipelines, format)
	}
	if ps.uniforms != nil {
		p.device.DestroyBuffer(ps.uniforms)
		ps.uniforms = nil
	}
	if ps.pipeLayout != nil {
		p.device.DestroyPipelineLayout(ps.pipeLayout)
		ps.pipeLayout = nil
	}
	if ps.layout != nil {
		p.device.DestroyBindGroupLayout(ps.layout)
		ps.layout = nil
	}
	if ps.shader != nil {
		p.device.DestroyShaderModule(ps.shader)
		ps.shader = nil
	}
}

func uniformEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}
}

func textureEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	}
}

func samplerEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
	}
}
