package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

// UndefinedExtent is the CurrentExtent width a surface reports when the
// swapchain decides the window size. The driver reports it as a uint32, so
// it reaches Go as 0xFFFFFFFF rather than -1.
const UndefinedExtent = 0xFFFFFFFF

// extentUndefined reports whether width is the undefined-extent sentinel in
// either its widened or its sign-extended form.
func extentUndefined(width int) bool {
	return uint32(width) == UndefinedExtent
}

var PreferredFormat = khr_surface.SurfaceFormat{
	Format:     core1_0.FormatB8G8R8A8SRGB,
	ColorSpace: khr_surface.ColorSpaceSRGBNonlinear,
}

// ChooseSurfaceFormat returns PreferredFormat when offered, otherwise the
// first offered format.
func ChooseSurfaceFormat(available []khr_surface.SurfaceFormat) (khr_surface.SurfaceFormat, error) {
	if len(available) == 0 {
		return khr_surface.SurfaceFormat{}, errors.New("surface offers no formats")
	}

	for _, format := range available {
		if format.Format == PreferredFormat.Format && format.ColorSpace == PreferredFormat.ColorSpace {
			return format, nil
		}
	}

	return available[0], nil
}

// ChoosePresentMode prefers mailbox (triple buffering) and falls back to
// FIFO, which every implementation must support.
func ChoosePresentMode(available []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, mode := range available {
		if mode == khr_surface.PresentModeMailbox {
			return mode
		}
	}

	return khr_surface.PresentModeFIFO
}

// ChooseExtent returns the surface's current extent when it is defined, and
// otherwise the requested size clamped to the surface's bounds.
func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities, width, height int) core1_0.Extent2D {
	if !extentUndefined(capabilities.CurrentExtent.Width) {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ImageCount asks for one image more than the minimum, capped at the
// maximum when the surface reports one (zero means unbounded).
func ImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// Sharing picks exclusive ownership when one queue family does both
// graphics and present, and concurrent sharing between the two otherwise.
func Sharing(graphicsFamily, presentFamily int) (core1_0.SharingMode, []int) {
	if graphicsFamily == presentFamily {
		return core1_0.SharingModeExclusive, nil
	}
	return core1_0.SharingModeConcurrent, []int{graphicsFamily, presentFamily}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
