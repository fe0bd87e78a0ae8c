package program

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/llap/llap/internal/config"
	"github.com/llap/llap/internal/diag"
)

func TestCleanupBeforeInit(t *testing.T) {
	var out bytes.Buffer
	p := New(config.Default(), diag.New(&out, &out))

	assert.NotPanics(t, p.cleanup)
	assert.NotPanics(t, p.cleanup, "cleanup is idempotent")
	assert.Empty(t, out.String())
}

func TestDeviceExtensions(t *testing.T) {
	assert.Equal(t, []string{"VK_KHR_swapchain"}, deviceExtensions)
}

type countingDevice struct {
	core1_0.CoreDeviceDriver
	waits int
}

func (d *countingDevice) DeviceWaitIdle() (common.VkResult, error) {
	d.waits++
	return 0, nil
}

func TestShutdownWaitsForDeviceOnce(t *testing.T) {
	device := &countingDevice{}
	p := New(config.Default(), diag.New(&bytes.Buffer{}, &bytes.Buffer{}))
	p.deviceDriver = device

	require.NoError(t, p.WaitIdle())
	p.waitBeforeCleanup()
	assert.Equal(t, 1, device.waits)
}

func TestFailedInitStillWaitsForDevice(t *testing.T) {
	device := &countingDevice{}
	p := New(config.Default(), diag.New(&bytes.Buffer{}, &bytes.Buffer{}))
	p.deviceDriver = device

	p.waitBeforeCleanup()
	assert.Equal(t, 1, device.waits)
}
