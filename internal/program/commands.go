package program

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

func (p *Program) createCommandPool() error {
	pool, _, err := p.deviceDriver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: *p.physicalDevice.Indices.Graphics,
	})
	if err != nil {
		return p.log.Errorf("Failed to create command pool: %v", err)
	}

	p.commandPool = pool
	return nil
}

// createCommandBuffers records one buffer per swapchain image. They are
// never re-recorded: each frame submits the buffer for the acquired image.
func (p *Program) createCommandBuffers() error {
	buffers, _, err := p.deviceDriver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        p.commandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: p.swapchain.Len(),
	})
	if err != nil {
		return p.log.Errorf("Failed to allocate command buffers: %v", err)
	}
	p.commandBuffers = buffers

	clear := p.cfg.ClearColor
	for bufferIdx, buffer := range buffers {
		_, err = p.deviceDriver.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
		if err != nil {
			return p.log.Errorf("Failed to begin command buffer %d: %v", bufferIdx, err)
		}

		err = p.deviceDriver.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline,
			core1_0.RenderPassBeginInfo{
				RenderPass:  p.renderPass,
				Framebuffer: p.framebuffers[bufferIdx],
				RenderArea: core1_0.Rect2D{
					Offset: core1_0.Offset2D{X: 0, Y: 0},
					Extent: p.swapchain.Extent(),
				},
				ClearValues: []core1_0.ClearValue{
					core1_0.ClearValueFloat{clear.X(), clear.Y(), clear.Z(), clear.W()},
				},
			})
		if err != nil {
			return p.log.Errorf("Failed to begin render pass %d: %v", bufferIdx, err)
		}

		p.deviceDriver.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, p.graphicsPipeline)
		p.deviceDriver.CmdDraw(buffer, 3, 1, 0, 0)
		p.deviceDriver.CmdEndRenderPass(buffer)

		_, err = p.deviceDriver.EndCommandBuffer(buffer)
		if err != nil {
			return p.log.Errorf("Failed to record command buffer %d: %v", bufferIdx, err)
		}
	}

	p.log.Messagef("Recorded %d command buffers", len(buffers))
	return nil
}
