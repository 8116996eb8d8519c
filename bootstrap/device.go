package bootstrap

import (
	log "github.com/sirupsen/logrus"
)

// LogicalDevice is a created device with one queue per unique resolved family.
// The caller owns it and must Destroy it on shutdown.
type LogicalDevice struct {
	Device   Device
	Families QueueFamilyIndices
}

func (d *LogicalDevice) Destroy() {
	if d == nil || d.Device == nil {
		return
	}
	d.Device.Destroy()
	d.Device = nil
}

// QueueCreateInfos requests exactly one queue at priority 1.0 per unique family,
// graphics first.
func QueueCreateInfos(indices QueueFamilyIndices) []QueueCreateInfo {
	var infos []QueueCreateInfo
	for _, family := range indices.Unique() {
		infos = append(infos, QueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}
	return infos
}

// CreateLogicalDevice resolves the queue families for surface and creates a
// device exposing them, with RequiredDeviceExtensions enabled.
func CreateLogicalDevice(physicalDevice PhysicalDevice, surface Surface, diag Diagnostics) (*LogicalDevice, error) {
	indices, err := resolveComplete(physicalDevice, surface, diag)
	if err != nil {
		return nil, err
	}

	queueInfos := QueueCreateInfos(indices)
	extensions := make([]string, len(RequiredDeviceExtensions))
	copy(extensions, RequiredDeviceExtensions)

	done := diag.stage("create device")
	device, err := physicalDevice.CreateDevice(DeviceCreateInfo{
		QueueCreateInfos:      queueInfos,
		EnabledExtensionNames: extensions,
	})
	done()
	if err != nil {
		return nil, mark(err, ErrDeviceCreation, "create device with families %v", indices.Unique())
	}

	diag.info("created logical device", log.Fields{
		"families":   indices.Unique(),
		"extensions": extensions,
	})

	return &LogicalDevice{
		Device:   device,
		Families: indices,
	}, nil
}
