package bootstrap

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// RequiredDeviceExtensions must all be advertised by a unit for it to be chosen,
// and are enabled on the logical device.
var RequiredDeviceExtensions = []string{khr_swapchain.ExtensionName}

// MissingExtensions returns the entries of required absent from the unit's
// advertised extensions, in the order of required.
func MissingExtensions(device PhysicalDevice, required []string) ([]string, error) {
	extensions, err := device.ExtensionNames()
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range required {
		if _, ok := extensions[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// IsSuitable reports whether the unit advertises every required device extension.
// A unit whose extensions cannot be enumerated is not suitable.
func IsSuitable(device PhysicalDevice, diag Diagnostics) bool {
	missing, err := MissingExtensions(device, RequiredDeviceExtensions)
	if err != nil {
		diag.warn(err, "could not enumerate device extensions", nil)
		return false
	}
	if len(missing) > 0 {
		diag.info("unit lacks required extensions", log.Fields{"missing": missing})
		return false
	}
	return true
}

// ChooseProcessingUnit returns the first suitable unit in enumeration order.
func ChooseProcessingUnit(instance Instance, diag Diagnostics) (PhysicalDevice, error) {
	if instance == nil {
		return nil, errors.Mark(errors.New("no instance"), ErrContext)
	}

	done := diag.stage("enumerate units")
	devices, err := instance.PhysicalDevices()
	done()
	if err != nil {
		return nil, mark(err, ErrContext, "enumerate physical devices")
	}

	diag.info("choosing processing unit", log.Fields{"count": len(devices)})

	for index, device := range devices {
		unitDiag := diag.with(log.Fields{"index": index})
		if diag.Enabled {
			logUnit(device, unitDiag)
		}

		if IsSuitable(device, unitDiag) {
			return device, nil
		}
	}

	return nil, errors.Wrapf(ErrNotFound, "%d units enumerated", len(devices))
}

func logUnit(device PhysicalDevice, diag Diagnostics) {
	info, err := device.Info()
	if err != nil {
		diag.warn(err, "could not read unit properties", nil)
		return
	}

	diag.info("found unit", log.Fields{
		"unit": info.Name,
		"type": info.Type.String(),
	})
}
