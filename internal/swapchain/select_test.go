package swapchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

var rawUndefined uint32 = UndefinedExtent

var (
	rgbaSRGB   = khr_surface.SurfaceFormat{Format: core1_0.FormatR8G8B8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
	bgraOther  = khr_surface.SurfaceFormat{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear + 1}
	bgraSRGB   = PreferredFormat
	undefined  = core1_0.Extent2D{Width: int(rawUndefined), Height: int(rawUndefined)}
	tinyExtent = core1_0.Extent2D{Width: 1, Height: 1}
)

func capabilities(minCount, maxCount int, current core1_0.Extent2D) *khr_surface.SurfaceCapabilities {
	return &khr_surface.SurfaceCapabilities{
		MinImageCount:  minCount,
		MaxImageCount:  maxCount,
		CurrentExtent:  current,
		MinImageExtent: core1_0.Extent2D{Width: 100, Height: 50},
		MaxImageExtent: core1_0.Extent2D{Width: 1920, Height: 1080},
	}
}

func TestChooseSurfaceFormatPrefersSRGB(t *testing.T) {
	format, err := ChooseSurfaceFormat([]khr_surface.SurfaceFormat{rgbaSRGB, bgraOther, bgraSRGB})
	require.NoError(t, err)
	assert.Equal(t, bgraSRGB, format)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	format, err := ChooseSurfaceFormat([]khr_surface.SurfaceFormat{bgraOther, rgbaSRGB})
	require.NoError(t, err)
	assert.Equal(t, bgraOther, format, "matching format with the wrong color space is not preferred")
}

func TestChooseSurfaceFormatEmpty(t *testing.T) {
	_, err := ChooseSurfaceFormat(nil)
	assert.Error(t, err)
}

func TestChoosePresentMode(t *testing.T) {
	assert.Equal(t, khr_surface.PresentModeMailbox, ChoosePresentMode([]khr_surface.PresentMode{
		khr_surface.PresentModeFIFO, khr_surface.PresentModeImmediate, khr_surface.PresentModeMailbox,
	}))
	assert.Equal(t, khr_surface.PresentModeFIFO, ChoosePresentMode([]khr_surface.PresentMode{
		khr_surface.PresentModeImmediate,
	}))
	assert.Equal(t, khr_surface.PresentModeFIFO, ChoosePresentMode(nil))
}

func TestChooseExtentDefinedIsUnchanged(t *testing.T) {
	current := core1_0.Extent2D{Width: 4000, Height: 10}
	assert.Equal(t, current, ChooseExtent(capabilities(2, 0, current), 800, 600))
}

func TestChooseExtentClamps(t *testing.T) {
	caps := capabilities(2, 0, undefined)

	assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 600}, ChooseExtent(caps, 800, 600))
	assert.Equal(t, core1_0.Extent2D{Width: 1920, Height: 1080}, ChooseExtent(caps, 5000, 5000))
	assert.Equal(t, core1_0.Extent2D{Width: 100, Height: 50}, ChooseExtent(caps, 0, 0))
	assert.Equal(t, core1_0.Extent2D{Width: 100, Height: 1080}, ChooseExtent(caps, 1, 9000))
}

func TestChooseExtentSentinelForms(t *testing.T) {
	widened := capabilities(2, 0, core1_0.Extent2D{Width: int(rawUndefined), Height: int(rawUndefined)})
	assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 600}, ChooseExtent(widened, 800, 600))

	signExtended := capabilities(2, 0, core1_0.Extent2D{Width: int(int32(rawUndefined)), Height: int(int32(rawUndefined))})
	assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 600}, ChooseExtent(signExtended, 800, 600))
}

func TestChooseExtentMinWinsOverMax(t *testing.T) {
	caps := capabilities(2, 0, undefined)
	caps.MaxImageExtent = tinyExtent
	assert.Equal(t, core1_0.Extent2D{Width: 100, Height: 50}, ChooseExtent(caps, 800, 600))
}

func TestImageCount(t *testing.T) {
	assert.Equal(t, 3, ImageCount(capabilities(2, 0, undefined)), "zero maximum is unbounded")
	assert.Equal(t, 3, ImageCount(capabilities(2, 8, undefined)))
	assert.Equal(t, 2, ImageCount(capabilities(2, 2, undefined)))
	assert.Equal(t, 1, ImageCount(capabilities(0, 1, undefined)))
}

func TestSharing(t *testing.T) {
	mode, families := Sharing(0, 0)
	assert.Equal(t, core1_0.SharingModeExclusive, mode)
	assert.Nil(t, families)

	mode, families = Sharing(0, 2)
	assert.Equal(t, core1_0.SharingModeConcurrent, mode)
	assert.Equal(t, []int{0, 2}, families)
}

func TestNewPlan(t *testing.T) {
	support := Support{
		Capabilities: capabilities(2, 3, undefined),
		Formats:      []khr_surface.SurfaceFormat{rgbaSRGB, bgraSRGB},
		PresentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}

	plan, err := NewPlan(support, 800, 600, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, bgraSRGB, plan.Format)
	assert.Equal(t, khr_surface.PresentModeFIFO, plan.PresentMode)
	assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 600}, plan.Extent)
	assert.Equal(t, 3, plan.ImageCount)
	assert.Equal(t, core1_0.SharingModeExclusive, plan.SharingMode)

	info := plan.CreateInfo(khr_surface.Surface{})
	assert.Equal(t, 3, info.MinImageCount)
	assert.Equal(t, core1_0.FormatB8G8R8A8SRGB, info.ImageFormat)
	assert.Equal(t, 1, info.ImageArrayLayers)
	assert.Equal(t, core1_0.ImageUsageColorAttachment, info.ImageUsage)
	assert.Equal(t, khr_surface.CompositeAlphaOpaque, info.CompositeAlpha)
	assert.True(t, info.Clipped)
}

func TestNewPlanInadequate(t *testing.T) {
	_, err := NewPlan(Support{Capabilities: capabilities(2, 0, undefined)}, 800, 600, 0, 0)
	assert.Error(t, err)

	assert.False(t, Support{}.Adequate())
}
