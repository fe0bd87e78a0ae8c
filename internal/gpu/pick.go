package gpu

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/llap/llap/internal/diag"
	"github.com/llap/llap/internal/swapchain"
)

// Candidate is everything device selection needs to know about one
// physical device.
type Candidate struct {
	Device            core1_0.PhysicalDevice
	Name              string
	PipelineCacheUUID uuid.UUID

	Indices           Indices
	MissingExtensions []string
	Support           swapchain.Support
}

func (c Candidate) Suitable() bool {
	return c.Indices.Complete() && len(c.MissingExtensions) == 0 && c.Support.Adequate()
}

// Reason explains why a candidate is not suitable.
func (c Candidate) Reason() string {
	var reasons []string
	if c.Indices.Graphics == nil {
		reasons = append(reasons, "no graphics queue")
	}
	if c.Indices.Present == nil {
		reasons = append(reasons, "no present queue")
	}
	if len(c.MissingExtensions) > 0 {
		reasons = append(reasons, "missing "+strings.Join(c.MissingExtensions, ", "))
	}
	if len(c.MissingExtensions) == 0 && !c.Support.Adequate() {
		reasons = append(reasons, "no surface formats or present modes")
	}
	return strings.Join(reasons, "; ")
}

// Pick returns the first suitable candidate. No candidates at all, or no
// suitable one, is fatal.
func Pick(log *diag.Logger, candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, log.Errorf("No GPU with Vulkan support was found")
	}

	log.Messagef("Querying devices for suitable GPU:")
	for _, candidate := range candidates {
		log.Messagef("%s (pipeline cache %s)", candidate.Name, candidate.PipelineCacheUUID)
		if candidate.Suitable() {
			log.Messagef("Device [%s] is suitable", candidate.Name)
			return candidate, nil
		}
		log.Warningf("Device [%s] is not suitable: %s", candidate.Name, candidate.Reason())
	}

	return Candidate{}, log.Errorf("No GPU with Vulkan support is suitable")
}

func (c *Candidate) describe(props *core1_0.PhysicalDeviceProperties) {
	c.Name = props.DriverName
	c.PipelineCacheUUID = props.PipelineCacheUUID
}

// Inspect gathers a Candidate from the driver.
func Inspect(instance core1_0.CoreInstanceDriver, surfaceExt khr_surface.ExtensionDriver, surface khr_surface.Surface, device core1_0.PhysicalDevice, requiredExtensions []string) (Candidate, error) {
	candidate := Candidate{Device: device}

	props, err := instance.GetPhysicalDeviceProperties(device)
	if err != nil {
		return candidate, errors.Wrap(err, "device properties")
	}
	candidate.describe(props)

	var flags []core1_0.QueueFlags
	for _, family := range instance.GetPhysicalDeviceQueueFamilyProperties(device) {
		flags = append(flags, family.QueueFlags)
	}

	candidate.Indices, err = FindQueueFamilies(flags, func(family int) (bool, error) {
		supported, _, err := surfaceExt.GetPhysicalDeviceSurfaceSupport(surface, device, family)
		return supported, err
	})
	if err != nil {
		return candidate, err
	}

	extensions, _, err := instance.EnumerateDeviceExtensionProperties(device)
	if err != nil {
		return candidate, errors.Wrap(err, "device extensions")
	}
	candidate.MissingExtensions = MissingNames(requiredExtensions, extensions)

	if len(candidate.MissingExtensions) == 0 {
		candidate.Support, err = swapchain.QuerySupport(surfaceExt, surface, device)
		if err != nil {
			return candidate, err
		}
	}

	return candidate, nil
}
