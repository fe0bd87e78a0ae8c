package program

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/llap/llap/internal/shader"
)

func (p *Program) createRenderPass() error {
	renderPass, _, err := p.deviceDriver.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         p.swapchain.Format(),
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	if err != nil {
		return p.log.Errorf("Failed to create render pass: %v", err)
	}

	p.renderPass = renderPass
	return nil
}

// createGraphicsPipeline builds the fixed triangle pipeline. The vertex
// shader produces the three vertices itself, so there is no vertex input.
func (p *Program) createGraphicsPipeline() error {
	stages, err := shader.Load(p.cfg.VertexShaderPath(), p.cfg.FragmentShaderPath())
	if err != nil {
		return p.log.Errorf("Failed to load shaders: %v", err)
	}

	vertShader, _, err := p.deviceDriver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: stages.Vertex,
	})
	if err != nil {
		return p.log.Errorf("Failed to create vertex shader module: %v", err)
	}
	defer p.deviceDriver.DestroyShaderModule(vertShader, nil)

	fragShader, _, err := p.deviceDriver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: stages.Fragment,
	})
	if err != nil {
		return p.log.Errorf("Failed to create fragment shader module: %v", err)
	}
	defer p.deviceDriver.DestroyShaderModule(fragShader, nil)

	extent := p.swapchain.Extent()

	vertexInput := &core1_0.PipelineVertexInputStateCreateInfo{}

	inputAssembly := &core1_0.PipelineInputAssemblyStateCreateInfo{
		Topology:               core1_0.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: false,
	}

	vertStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageVertex,
		Module: vertShader,
		Name:   "main",
	}

	fragStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageFragment,
		Module: fragShader,
		Name:   "main",
	}

	viewport := &core1_0.PipelineViewportStateCreateInfo{
		Viewports: []core1_0.Viewport{
			{
				X:        0,
				Y:        0,
				Width:    float32(extent.Width),
				Height:   float32(extent.Height),
				MinDepth: 0,
				MaxDepth: 1,
			},
		},
		Scissors: []core1_0.Rect2D{
			{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: extent,
			},
		},
	}

	rasterization := &core1_0.PipelineRasterizationStateCreateInfo{
		DepthClampEnable:        false,
		RasterizerDiscardEnable: false,

		PolygonMode: core1_0.PolygonModeFill,
		CullMode:    core1_0.CullModeBack,
		FrontFace:   core1_0.FrontFaceClockwise,

		DepthBiasEnable: false,

		LineWidth: 1.0,
	}

	multisample := &core1_0.PipelineMultisampleStateCreateInfo{
		SampleShadingEnable:  false,
		RasterizationSamples: core1_0.Samples1,
		MinSampleShading:     1.0,
	}

	colorBlend := &core1_0.PipelineColorBlendStateCreateInfo{
		LogicOpEnabled: false,
		LogicOp:        core1_0.LogicOpCopy,

		BlendConstants: [4]float32{0, 0, 0, 0},
		Attachments: []core1_0.PipelineColorBlendAttachmentState{
			{
				BlendEnabled:   false,
				ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
			},
		},
	}

	p.pipelineLayout, _, err = p.deviceDriver.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return p.log.Errorf("Failed to create pipeline layout: %v", err)
	}

	pipelines, _, err := p.deviceDriver.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				vertStage,
				fragStage,
			},
			VertexInputState:   vertexInput,
			InputAssemblyState: inputAssembly,
			ViewportState:      viewport,
			RasterizationState: rasterization,
			MultisampleState:   multisample,
			ColorBlendState:    colorBlend,
			Layout:             p.pipelineLayout,
			RenderPass:         p.renderPass,
			Subpass:            0,
			BasePipelineIndex:  -1,
		},
	)
	if err != nil {
		return p.log.Errorf("Failed to create graphics pipeline: %v", err)
	}
	p.graphicsPipeline = pipelines[0]

	p.log.Messagef("Created graphics pipeline")
	return nil
}

func (p *Program) createFramebuffers() error {
	extent := p.swapchain.Extent()

	for _, imageView := range p.swapchain.Views() {
		framebuffer, _, err := p.deviceDriver.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass:  p.renderPass,
			Layers:      1,
			Attachments: []core1_0.ImageView{imageView},
			Width:       extent.Width,
			Height:      extent.Height,
		})
		if err != nil {
			return p.log.Errorf("Failed to create framebuffer: %v", err)
		}

		p.framebuffers = append(p.framebuffers, framebuffer)
	}

	return nil
}
