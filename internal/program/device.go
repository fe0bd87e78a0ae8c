package program

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/llap/llap/internal/gpu"
	"github.com/llap/llap/internal/swapchain"
)

func (p *Program) pickPhysicalDevice() error {
	physicalDevices, _, err := p.instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return p.log.Errorf("Failed to enumerate physical devices: %v", err)
	}

	var candidates []gpu.Candidate
	for _, device := range physicalDevices {
		candidate, err := gpu.Inspect(p.instanceDriver, p.surfaceExtension, p.surface, device, deviceExtensions)
		if err != nil {
			p.log.Warningf("Skipping device that could not be queried: %v", err)
			continue
		}
		candidates = append(candidates, candidate)
	}

	p.physicalDevice, err = gpu.Pick(p.log, candidates)
	return err
}

func (p *Program) createLogicalDevice() error {
	indices := p.physicalDevice.Indices

	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range indices.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	var extensionNames []string
	extensionNames = append(extensionNames, deviceExtensions...)

	// Required to run on top of a portability implementation such as MoltenVK.
	extensions, _, err := p.instanceDriver.EnumerateDeviceExtensionProperties(p.physicalDevice.Device)
	if err != nil {
		return p.log.Errorf("Failed to enumerate device extensions: %v", err)
	}

	_, supported := extensions[khr_portability_subset.ExtensionName]
	if supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	p.deviceDriver, _, err = p.instanceDriver.CreateDevice(p.physicalDevice.Device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return p.log.Errorf("Failed to create a logical device: %v", err)
	}
	p.log.Messagef("Created logical device")

	p.graphicsQueue = p.deviceDriver.GetQueue(*indices.Graphics, 0)
	p.presentQueue = p.deviceDriver.GetQueue(*indices.Present, 0)
	return nil
}

func (p *Program) createSwapchain() error {
	p.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(p.deviceDriver)

	support, err := swapchain.QuerySupport(p.surfaceExtension, p.surface, p.physicalDevice.Device)
	if err != nil {
		return p.log.Errorf("Failed to query swap chain support: %v", err)
	}

	indices := p.physicalDevice.Indices
	plan, err := swapchain.NewPlan(support, p.cfg.Width, p.cfg.Height, *indices.Graphics, *indices.Present)
	if err != nil {
		return p.log.Errorf("Failed to plan swap chain: %v", err)
	}

	p.swapchain, err = swapchain.Create(p.deviceDriver, p.swapchainExtension, p.surface, plan)
	if err != nil {
		return p.log.Errorf("Failed to create swap chain: %v", err)
	}

	p.log.Messagef("Created swap chain: %d images, %dx%d, format %v, present mode %v",
		p.swapchain.Len(), plan.Extent.Width, plan.Extent.Height, plan.Format.Format, plan.PresentMode)
	return nil
}
