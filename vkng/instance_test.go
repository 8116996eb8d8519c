package vkng

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_surface"
)

func names(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

func TestPlanInstance(t *testing.T) {
	extensions := names(khr_surface.ExtensionName, "VK_KHR_xlib_surface", ext_debug_utils.ExtensionName)
	layers := names("VK_LAYER_LUNARG_standard_validation", "VK_LAYER_KHRONOS_validation")

	plan := PlanInstance(InstanceOptions{
		ApplicationName: "vkboot",
		Extensions:      []string{khr_surface.ExtensionName, "VK_KHR_xlib_surface"},
		Validation:      true,
	}, extensions, layers)

	require.Equal(t, "VK_LAYER_KHRONOS_validation", plan.ValidationLayer)
	require.Equal(t, []string{"VK_LAYER_KHRONOS_validation"}, plan.CreateInfo.EnabledLayerNames)
	require.True(t, plan.DebugUtils)
	require.False(t, plan.Portability)
	require.Equal(t, []string{khr_surface.ExtensionName, "VK_KHR_xlib_surface", ext_debug_utils.ExtensionName}, plan.CreateInfo.EnabledExtensionNames)
	require.Equal(t, "vkboot", plan.CreateInfo.ApplicationName)
	require.Equal(t, common.Vulkan1_0, plan.CreateInfo.APIVersion)
}

func TestPlanInstance_LegacyValidationLayer(t *testing.T) {
	plan := PlanInstance(InstanceOptions{Validation: true}, names(), names("VK_LAYER_LUNARG_standard_validation"))
	require.Equal(t, "VK_LAYER_LUNARG_standard_validation", plan.ValidationLayer)
	require.False(t, plan.DebugUtils)
}

func TestPlanInstance_NoValidationInstalled(t *testing.T) {
	plan := PlanInstance(InstanceOptions{Validation: true}, names(), names())
	require.Empty(t, plan.ValidationLayer)
	require.Empty(t, plan.CreateInfo.EnabledLayerNames)
}

func TestPlanInstance_ValidationOff(t *testing.T) {
	plan := PlanInstance(InstanceOptions{}, names(ext_debug_utils.ExtensionName), names("VK_LAYER_KHRONOS_validation"))
	require.Empty(t, plan.CreateInfo.EnabledLayerNames)
	require.Empty(t, plan.CreateInfo.EnabledExtensionNames)
	require.Zero(t, plan.CreateInfo.Flags)
	require.False(t, plan.DebugUtils)
}

func TestPlanInstance_Portability(t *testing.T) {
	plan := PlanInstance(InstanceOptions{}, names(portabilityEnumerationExtension), names())
	require.True(t, plan.Portability)
	require.Equal(t, []string{portabilityEnumerationExtension}, plan.CreateInfo.EnabledExtensionNames)
	require.Equal(t, instanceCreateEnumeratePortability, plan.CreateInfo.Flags&instanceCreateEnumeratePortability)
}

func TestPlanInstance_UnavailableExtensions(t *testing.T) {
	plan := PlanInstance(InstanceOptions{Extensions: []string{khr_surface.ExtensionName, "VK_KHR_wayland_surface"}}, names(khr_surface.ExtensionName), names())
	require.Equal(t, []string{khr_surface.ExtensionName}, plan.CreateInfo.EnabledExtensionNames)
	require.Equal(t, []string{"VK_KHR_wayland_surface"}, plan.Unavailable)
}
