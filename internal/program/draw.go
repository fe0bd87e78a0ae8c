package program

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/llap/llap/internal/frame"
)

var _ frame.Presenter = (*Program)(nil)

// createSyncObjects gives every frame slot an image-available semaphore, a
// render-finished semaphore and a fence that starts signalled. Each
// swapchain image remembers the fence of the last slot that rendered to it.
func (p *Program) createSyncObjects() error {
	for i := 0; i < p.cfg.FramesInFlight; i++ {
		semaphore, _, err := p.deviceDriver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			return p.log.Errorf("Failed to create semaphore: %v", err)
		}
		p.imageAvailable = append(p.imageAvailable, semaphore)

		semaphore, _, err = p.deviceDriver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			return p.log.Errorf("Failed to create semaphore: %v", err)
		}
		p.renderFinished = append(p.renderFinished, semaphore)

		fence, _, err := p.deviceDriver.CreateFence(nil, core1_0.FenceCreateInfo{
			Flags: core1_0.FenceCreateSignaled,
		})
		if err != nil {
			return p.log.Errorf("Failed to create fence: %v", err)
		}
		p.inFlight = append(p.inFlight, fence)
	}

	p.imagesInFlight = make([]core1_0.Fence, p.swapchain.Len())
	return nil
}

// DrawFrame acquires the next image, submits its recorded command buffer
// and presents it, using the semaphores and fence of the given slot. Waits
// have no timeout. An out-of-date swapchain is fatal because the swapchain
// is never recreated.
func (p *Program) DrawFrame(slot int) error {
	fence := p.inFlight[slot]

	_, err := p.deviceDriver.WaitForFences(true, common.NoTimeout, fence)
	if err != nil {
		return p.log.Errorf("Failed to wait for frame fence: %v", err)
	}

	imageIndex, res, err := p.swapchainExtension.AcquireNextImage(p.swapchain.Handle(), common.NoTimeout, &p.imageAvailable[slot], nil)
	if res == khr_swapchain.VKErrorOutOfDate {
		return p.log.Errorf("Swap chain is out of date; recreating it on resize is not supported")
	} else if err != nil {
		return p.log.Errorf("Failed to acquire swap chain image: %v", err)
	}
	p.noteSuboptimal(res)

	if p.imagesInFlight[imageIndex].Initialized() {
		_, err := p.deviceDriver.WaitForFences(true, common.NoTimeout, p.imagesInFlight[imageIndex])
		if err != nil {
			return p.log.Errorf("Failed to wait for image fence: %v", err)
		}
	}
	p.imagesInFlight[imageIndex] = fence

	_, err = p.deviceDriver.ResetFences(fence)
	if err != nil {
		return p.log.Errorf("Failed to reset frame fence: %v", err)
	}

	_, err = p.deviceDriver.QueueSubmit(p.graphicsQueue, &p.inFlight[slot],
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{p.imageAvailable[slot]},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{p.commandBuffers[imageIndex]},
			SignalSemaphores: []core1_0.Semaphore{p.renderFinished[slot]},
		},
	)
	if err != nil {
		return p.log.Errorf("Failed to submit draw command buffer: %v", err)
	}

	res, err = p.swapchainExtension.QueuePresent(p.presentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{p.renderFinished[slot]},
		Swapchains:     []khr_swapchain.Swapchain{p.swapchain.Handle()},
		ImageIndices:   []int{imageIndex},
	})
	if res == khr_swapchain.VKErrorOutOfDate {
		return p.log.Errorf("Swap chain is out of date; recreating it on resize is not supported")
	} else if err != nil {
		return p.log.Errorf("Failed to present swap chain image: %v", err)
	}
	p.noteSuboptimal(res)

	return nil
}

func (p *Program) noteSuboptimal(res common.VkResult) {
	if res == khr_swapchain.VKSuboptimal && !p.warnedSuboptimal {
		p.log.Warningf("Swap chain no longer matches the surface exactly; continuing without recreation")
		p.warnedSuboptimal = true
	}
}

func (p *Program) WaitIdle() error {
	_, err := p.deviceDriver.DeviceWaitIdle()
	p.idle = err == nil
	return err
}
