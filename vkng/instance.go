package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

// VK_KHR_portability_enumeration has no package in the pinned extensions module.
const portabilityEnumerationExtension = "VK_KHR_portability_enumeration"

const instanceCreateEnumeratePortability core1_0.InstanceCreateFlags = 0x00000001

// ValidationLayers are tried in order; the first one the loader offers is enabled.
var ValidationLayers = []string{
	"VK_LAYER_KHRONOS_validation",
	"VK_LAYER_LUNARG_standard_validation",
}

type InstanceOptions struct {
	ApplicationName string
	EngineName      string

	// Extensions are requested from the loader; those it does not offer are left out.
	Extensions []string

	// Validation enables the first available entry of ValidationLayers and the
	// debug utils extension when the loader has them.
	Validation bool
}

// InstancePlan is what CreateInstance will ask the loader for.
type InstancePlan struct {
	CreateInfo core1_0.InstanceCreateInfo

	// Unavailable lists requested extensions the loader does not offer.
	Unavailable []string

	// ValidationLayer is empty if validation was requested but no layer is installed.
	ValidationLayer string
	DebugUtils      bool
	Portability     bool
}

// PlanInstance builds the instance create info against what the loader offers.
func PlanInstance(options InstanceOptions, extensions, layers map[string]struct{}) InstancePlan {
	plan := InstancePlan{
		CreateInfo: core1_0.InstanceCreateInfo{
			ApplicationName:    options.ApplicationName,
			ApplicationVersion: common.CreateVersion(1, 0, 0),
			EngineName:         options.EngineName,
			EngineVersion:      common.CreateVersion(1, 0, 0),
			APIVersion:         common.Vulkan1_0,
		},
	}
	info := &plan.CreateInfo

	for _, name := range options.Extensions {
		if _, ok := extensions[name]; !ok {
			plan.Unavailable = append(plan.Unavailable, name)
			continue
		}
		info.EnabledExtensionNames = append(info.EnabledExtensionNames, name)
	}

	if options.Validation {
		for _, layer := range ValidationLayers {
			if _, ok := layers[layer]; ok {
				plan.ValidationLayer = layer
				info.EnabledLayerNames = append(info.EnabledLayerNames, layer)
				break
			}
		}

		if _, ok := extensions[ext_debug_utils.ExtensionName]; ok {
			plan.DebugUtils = true
			info.EnabledExtensionNames = append(info.EnabledExtensionNames, ext_debug_utils.ExtensionName)
		}
	}

	if _, ok := extensions[portabilityEnumerationExtension]; ok {
		plan.Portability = true
		info.EnabledExtensionNames = append(info.EnabledExtensionNames, portabilityEnumerationExtension)
		info.Flags |= instanceCreateEnumeratePortability
	}

	return plan
}

// CreateInstance queries the loader, plans the instance and creates it.
func CreateInstance(loader core.Loader, options InstanceOptions) (core1_0.Instance, InstancePlan, error) {
	extensions, _, err := loader.AvailableExtensions()
	if err != nil {
		return nil, InstancePlan{}, errors.Wrap(err, "enumerate instance extensions")
	}

	layers, _, err := loader.AvailableLayers()
	if err != nil {
		return nil, InstancePlan{}, errors.Wrap(err, "enumerate instance layers")
	}

	plan := PlanInstance(options, keys(extensions), keys(layers))
	instance, _, err := loader.CreateInstance(nil, plan.CreateInfo)
	if err != nil {
		return nil, plan, errors.Wrap(err, "create instance")
	}
	return instance, plan, nil
}
