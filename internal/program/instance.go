package program

import (
	"fmt"

	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"

	"github.com/llap/llap/internal/diag"
)

func (p *Program) createInstance() error {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    "Triangle",
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_0,
	}

	extensions, _, err := p.globalDriver.AvailableExtensions()
	if err != nil {
		return p.log.Errorf("Failed to enumerate instance extensions: %v", err)
	}

	var extensionLines []string
	for _, name := range diag.SortedKeys(extensions) {
		extensionLines = append(extensionLines, fmt.Sprintf("%s V:%v", name, extensions[name].SpecVersion))
	}
	p.log.List("Vulkan available extensions:", extensionLines)

	windowExtensions := p.window.VulkanGetInstanceExtensions()
	p.log.List("SDL required extensions:", windowExtensions)

	enabled, err := diag.Require(p.log, "extension", windowExtensions, extensions, p.cfg.MissingExtensions)
	if err != nil {
		return err
	}
	instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, enabled...)

	if p.cfg.EnableValidation {
		layers, err := p.enabledValidationLayers()
		if err != nil {
			return err
		}

		_, hasDebugUtils := extensions[ext_debug_utils.ExtensionName]
		if len(layers) > 0 && hasDebugUtils {
			p.validation = true
			instanceOptions.EnabledLayerNames = layers
			instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)
			instanceOptions.Next = p.debugMessengerOptions()
		} else {
			p.log.Warningf("Validation requested but unavailable, continuing without it")
		}
	}

	_, enumerationSupported := extensions[khr_portability_enumeration.ExtensionName]
	if enumerationSupported {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	p.instanceDriver, _, err = p.globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return p.log.Errorf("Failed to create instance: %v", err)
	}

	p.log.Messagef("Created instance")
	return nil
}

// enabledValidationLayers lists the instance layers, then checks the
// configured validation layers against them under the missing-layer policy.
func (p *Program) enabledValidationLayers() ([]string, error) {
	layers, _, err := p.globalDriver.AvailableLayers()
	if err != nil {
		return nil, p.log.Errorf("Failed to enumerate instance layers: %v", err)
	}

	var layerLines []string
	for _, name := range diag.SortedKeys(layers) {
		layerLines = append(layerLines, fmt.Sprintf("%s V:%v", name, layers[name].SpecVersion))
	}
	p.log.List("Available layers:", layerLines)

	return diag.Require(p.log, "layer", p.cfg.ValidationLayers, layers, p.cfg.MissingLayers)
}

func (p *Program) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    p.logDebug,
	}
}

func (p *Program) setupDebugMessenger() error {
	if !p.validation {
		return nil
	}

	var err error
	p.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(p.instanceDriver)
	p.debugMessenger, _, err = p.debugDriver.CreateDebugUtilsMessenger(nil, p.debugMessengerOptions())
	if err != nil {
		return p.log.Errorf("Failed to set up debug messenger: %v", err)
	}

	return nil
}

// logDebug never aborts the call that triggered the message.
func (p *Program) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	tag := diag.Warning
	if severity&ext_debug_utils.SeverityError != 0 {
		tag = diag.Error
	}
	p.log.Log(tag, "validation layer: [%v] %s", msgType, data.Message)
	return false
}

func (p *Program) createSurface() error {
	p.surfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(p.instanceDriver)
	surface, err := vkng_sdl2.CreateSurface(p.instanceDriver.Instance(), p.surfaceExtension, p.window)
	if err != nil {
		return p.log.Errorf("Couldn't create window surface: %v", err)
	}

	p.surface = surface
	return nil
}
