// Package swapchain chooses swapchain parameters from surface capabilities
// and owns the swapchain together with one view per image.
package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// Support is what a surface offers on one physical device.
type Support struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

func QuerySupport(ext khr_surface.ExtensionDriver, surface khr_surface.Surface, device core1_0.PhysicalDevice) (Support, error) {
	var support Support
	var err error

	support.Capabilities, _, err = ext.GetPhysicalDeviceSurfaceCapabilities(surface, device)
	if err != nil {
		return support, errors.Wrap(err, "surface capabilities")
	}

	support.Formats, _, err = ext.GetPhysicalDeviceSurfaceFormats(surface, device)
	if err != nil {
		return support, errors.Wrap(err, "surface formats")
	}

	support.PresentModes, _, err = ext.GetPhysicalDeviceSurfacePresentModes(surface, device)
	if err != nil {
		return support, errors.Wrap(err, "surface present modes")
	}

	return support, nil
}

// Adequate reports whether a swapchain can be built at all.
func (s Support) Adequate() bool {
	return s.Capabilities != nil && len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// Plan is the full set of choices a swapchain is built from.
type Plan struct {
	Format             khr_surface.SurfaceFormat
	PresentMode        khr_surface.PresentMode
	Extent             core1_0.Extent2D
	ImageCount         int
	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int

	capabilities *khr_surface.SurfaceCapabilities
}

func NewPlan(support Support, width, height, graphicsFamily, presentFamily int) (Plan, error) {
	if !support.Adequate() {
		return Plan{}, errors.New("surface support is not adequate for a swapchain")
	}

	format, err := ChooseSurfaceFormat(support.Formats)
	if err != nil {
		return Plan{}, err
	}

	sharing, families := Sharing(graphicsFamily, presentFamily)
	return Plan{
		Format:             format,
		PresentMode:        ChoosePresentMode(support.PresentModes),
		Extent:             ChooseExtent(support.Capabilities, width, height),
		ImageCount:         ImageCount(support.Capabilities),
		SharingMode:        sharing,
		QueueFamilyIndices: families,
		capabilities:       support.Capabilities,
	}, nil
}

func (p Plan) CreateInfo(surface khr_surface.Surface) khr_swapchain.SwapchainCreateInfo {
	return khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    p.ImageCount,
		ImageFormat:      p.Format.Format,
		ImageColorSpace:  p.Format.ColorSpace,
		ImageExtent:      p.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   p.SharingMode,
		QueueFamilyIndices: p.QueueFamilyIndices,

		PreTransform:   p.capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    p.PresentMode,
		Clipped:        true,
	}
}

// Swapchain is created and destroyed as a unit: the swapchain handle, its
// images and one color view per image.
type Swapchain struct {
	device core1_0.DeviceDriver
	ext    khr_swapchain.ExtensionDriver

	handle khr_swapchain.Swapchain
	plan   Plan
	images []core1_0.Image
	views  []core1_0.ImageView
}

func Create(device core1_0.DeviceDriver, ext khr_swapchain.ExtensionDriver, surface khr_surface.Surface, plan Plan) (*Swapchain, error) {
	handle, _, err := ext.CreateSwapchain(nil, plan.CreateInfo(surface))
	if err != nil {
		return nil, errors.Wrap(err, "create swapchain")
	}

	s := &Swapchain{
		device: device,
		ext:    ext,
		handle: handle,
		plan:   plan,
	}

	s.images, _, err = ext.GetSwapchainImages(handle)
	if err != nil {
		s.Destroy()
		return nil, errors.Wrap(err, "swapchain images")
	}

	for _, image := range s.images {
		view, _, err := device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   plan.Format.Format,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			s.Destroy()
			return nil, errors.Wrap(err, "failed to create image views")
		}
		s.views = append(s.views, view)
	}

	return s, nil
}

// Destroy releases the views and then the swapchain itself.
func (s *Swapchain) Destroy() {
	for _, view := range s.views {
		s.device.DestroyImageView(view, nil)
	}
	s.views = nil
	s.images = nil

	if s.handle.Initialized() {
		s.ext.DestroySwapchain(s.handle, nil)
		s.handle = khr_swapchain.Swapchain{}
	}
}

func (s *Swapchain) Handle() khr_swapchain.Swapchain {
	return s.handle
}

func (s *Swapchain) Format() core1_0.Format {
	return s.plan.Format.Format
}

func (s *Swapchain) Extent() core1_0.Extent2D {
	return s.plan.Extent
}

func (s *Swapchain) Plan() Plan {
	return s.plan
}

func (s *Swapchain) Len() int {
	return len(s.images)
}

func (s *Swapchain) Views() []core1_0.ImageView {
	return s.views
}
