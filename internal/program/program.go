// Package program owns every Vulkan object the triangle needs, creates them
// in the API's required order, drives the frame loop and releases them in
// reverse.
package program

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/llap/llap/internal/config"
	"github.com/llap/llap/internal/diag"
	"github.com/llap/llap/internal/frame"
	"github.com/llap/llap/internal/gpu"
	"github.com/llap/llap/internal/swapchain"
)

var deviceExtensions = []string{khr_swapchain.ExtensionName}

type Program struct {
	cfg config.Config
	log *diag.Logger

	sdlInitialized bool
	window         *sdl.Window
	closing        bool

	globalDriver   core1_0.GlobalDriver
	instanceDriver core1_0.CoreInstanceDriver
	deviceDriver   core1_0.CoreDeviceDriver

	validation     bool
	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger

	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	physicalDevice gpu.Candidate
	graphicsQueue  core1_0.Queue
	presentQueue   core1_0.Queue

	swapchainExtension khr_swapchain.ExtensionDriver
	swapchain          *swapchain.Swapchain
	framebuffers       []core1_0.Framebuffer

	renderPass       core1_0.RenderPass
	pipelineLayout   core1_0.PipelineLayout
	graphicsPipeline core1_0.Pipeline

	commandPool    core1_0.CommandPool
	commandBuffers []core1_0.CommandBuffer

	imageAvailable []core1_0.Semaphore
	renderFinished []core1_0.Semaphore
	inFlight       []core1_0.Fence
	imagesInFlight []core1_0.Fence

	warnedSuboptimal bool
	idle             bool
}

func New(cfg config.Config, log *diag.Logger) *Program {
	return &Program{cfg: cfg, log: log}
}

// Run initializes the window and Vulkan, runs the frame loop with the given
// hooks until the window closes, and tears everything down. Initialization
// failures are fatal.
func (p *Program) Run(hooks frame.Hooks) error {
	defer p.cleanup()

	if err := p.initWindow(); err != nil {
		return diag.Fatal(err)
	}

	if err := p.initVulkan(); err != nil {
		return diag.Fatal(err)
	}

	loop := frame.NewLoop(p.cfg.FramesInFlight, frame.NewStats(p.log, p.cfg.StatsInterval))
	return loop.Run(p, hooks)
}

func (p *Program) initVulkan() error {
	err := p.createInstance()
	if err != nil {
		return err
	}

	err = p.setupDebugMessenger()
	if err != nil {
		return err
	}

	err = p.createSurface()
	if err != nil {
		return err
	}

	err = p.pickPhysicalDevice()
	if err != nil {
		return err
	}

	err = p.createLogicalDevice()
	if err != nil {
		return err
	}

	err = p.createSwapchain()
	if err != nil {
		return err
	}

	err = p.createRenderPass()
	if err != nil {
		return err
	}

	err = p.createGraphicsPipeline()
	if err != nil {
		return err
	}

	err = p.createFramebuffers()
	if err != nil {
		return err
	}

	err = p.createCommandPool()
	if err != nil {
		return err
	}

	err = p.createCommandBuffers()
	if err != nil {
		return err
	}

	return p.createSyncObjects()
}

// cleanup releases everything in reverse creation order. It is safe to call
// after a partial initialization.
func (p *Program) cleanup() {
	p.waitBeforeCleanup()

	for _, fence := range p.inFlight {
		p.deviceDriver.DestroyFence(fence, nil)
	}
	p.inFlight = nil
	p.imagesInFlight = nil

	for _, semaphore := range p.renderFinished {
		p.deviceDriver.DestroySemaphore(semaphore, nil)
	}
	p.renderFinished = nil

	for _, semaphore := range p.imageAvailable {
		p.deviceDriver.DestroySemaphore(semaphore, nil)
	}
	p.imageAvailable = nil

	if p.commandPool.Initialized() {
		p.deviceDriver.DestroyCommandPool(p.commandPool, nil)
		p.commandPool = core1_0.CommandPool{}
	}
	p.commandBuffers = nil

	for _, framebuffer := range p.framebuffers {
		p.deviceDriver.DestroyFramebuffer(framebuffer, nil)
	}
	p.framebuffers = nil

	if p.graphicsPipeline.Initialized() {
		p.deviceDriver.DestroyPipeline(p.graphicsPipeline, nil)
		p.graphicsPipeline = core1_0.Pipeline{}
	}

	if p.pipelineLayout.Initialized() {
		p.deviceDriver.DestroyPipelineLayout(p.pipelineLayout, nil)
		p.pipelineLayout = core1_0.PipelineLayout{}
	}

	if p.renderPass.Initialized() {
		p.deviceDriver.DestroyRenderPass(p.renderPass, nil)
		p.renderPass = core1_0.RenderPass{}
	}

	if p.swapchain != nil {
		p.swapchain.Destroy()
		p.swapchain = nil
	}

	if p.deviceDriver != nil {
		p.deviceDriver.DestroyDevice(nil)
		p.deviceDriver = nil
	}

	if p.debugMessenger.Initialized() {
		p.debugDriver.DestroyDebugUtilsMessenger(p.debugMessenger, nil)
		p.debugMessenger = ext_debug_utils.DebugUtilsMessenger{}
	}

	if p.surface.Initialized() {
		p.surfaceExtension.DestroySurface(p.surface, nil)
		p.surface = khr_surface.Surface{}
	}

	if p.instanceDriver != nil {
		p.instanceDriver.DestroyInstance(nil)
		p.instanceDriver = nil
	}

	if p.window != nil {
		p.window.Destroy()
		p.window = nil
	}

	if p.sdlInitialized {
		sdl.Quit()
		p.sdlInitialized = false
	}
}

// waitBeforeCleanup drains the device unless the frame loop already did.
// Only an unwind after a failed initialization still needs the wait.
func (p *Program) waitBeforeCleanup() {
	if p.deviceDriver == nil || p.idle {
		return
	}
	if _, err := p.deviceDriver.DeviceWaitIdle(); err != nil {
		p.log.Warningf("Device did not go idle before cleanup: %v", err)
	}
}
