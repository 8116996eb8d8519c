package vkng

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_portability_subset"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// Instance exposes a vkngwrapper instance to the bootstrap.
type Instance struct {
	instance core1_0.Instance
}

func NewInstance(instance core1_0.Instance) *Instance {
	return &Instance{instance: instance}
}

func (i *Instance) Handle() core1_0.Instance {
	return i.instance
}

func (i *Instance) PhysicalDevices() ([]bootstrap.PhysicalDevice, error) {
	devices, _, err := i.instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	units := make([]bootstrap.PhysicalDevice, 0, len(devices))
	for _, device := range devices {
		units = append(units, &PhysicalDevice{device: device})
	}
	return units, nil
}

type PhysicalDevice struct {
	device core1_0.PhysicalDevice
}

func (d *PhysicalDevice) Handle() core1_0.PhysicalDevice {
	return d.device
}

func (d *PhysicalDevice) Info() (bootstrap.UnitInfo, error) {
	properties, err := d.device.Properties()
	if err != nil {
		return bootstrap.UnitInfo{}, err
	}
	return unitInfo(properties), nil
}

func unitInfo(properties *core1_0.PhysicalDeviceProperties) bootstrap.UnitInfo {
	return bootstrap.UnitInfo{
		Name:              properties.DriverName,
		Type:              unitType(properties.DriverType),
		VendorID:          properties.VendorID,
		DeviceID:          properties.DeviceID,
		APIVersion:        fmt.Sprint(properties.APIVersion),
		DriverVersion:     fmt.Sprint(properties.DriverVersion),
		PipelineCacheUUID: properties.PipelineCacheUUID,
	}
}

func unitType(deviceType core1_0.PhysicalDeviceType) bootstrap.UnitType {
	switch deviceType {
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return bootstrap.UnitTypeIntegrated
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return bootstrap.UnitTypeDiscrete
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return bootstrap.UnitTypeVirtual
	case core1_0.PhysicalDeviceTypeCPU:
		return bootstrap.UnitTypeCPU
	default:
		return bootstrap.UnitTypeUnknown
	}
}

func (d *PhysicalDevice) ExtensionNames() (map[string]struct{}, error) {
	extensions, _, err := d.device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, err
	}
	return keys(extensions), nil
}

func (d *PhysicalDevice) QueueFamilyProperties() []*core1_0.QueueFamilyProperties {
	return d.device.QueueFamilyProperties()
}

// CreateDevice creates the logical device. Units implementing Vulkan through a
// portability layer also get VK_KHR_portability_subset enabled, which they require.
func (d *PhysicalDevice) CreateDevice(info bootstrap.DeviceCreateInfo) (bootstrap.Device, error) {
	extensions, err := d.ExtensionNames()
	if err != nil {
		return nil, err
	}

	options := core1_0.DeviceCreateInfo{
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: withPortabilitySubset(info.EnabledExtensionNames, extensions),
	}
	for _, queue := range info.QueueCreateInfos {
		options.QueueCreateInfos = append(options.QueueCreateInfos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.QueueFamilyIndex,
			QueuePriorities:  queue.QueuePriorities,
		})
	}

	device, _, err := d.device.CreateDevice(nil, options)
	if err != nil {
		return nil, err
	}

	return &Device{
		device:             device,
		swapchainExtension: khr_swapchain.CreateExtensionFromDevice(device),
		queues:             make(map[queueKey]*Queue),
	}, nil
}

func withPortabilitySubset(enabled []string, available map[string]struct{}) []string {
	names := append([]string(nil), enabled...)
	if _, ok := available[khr_portability_subset.ExtensionName]; !ok {
		return names
	}
	for _, name := range names {
		if name == khr_portability_subset.ExtensionName {
			return names
		}
	}
	return append(names, khr_portability_subset.ExtensionName)
}

type queueKey struct {
	family int
	index  int
}

// Device is a logical device with the swapchain extension loaded.
type Device struct {
	device             core1_0.Device
	swapchainExtension khr_swapchain.Extension
	queues             map[queueKey]*Queue
}

func (d *Device) Handle() core1_0.Device {
	return d.device
}

// Queue returns the same wrapper for repeated requests of one queue.
func (d *Device) Queue(queueFamilyIndex, queueIndex int) bootstrap.Queue {
	key := queueKey{family: queueFamilyIndex, index: queueIndex}
	queue, ok := d.queues[key]
	if !ok {
		queue = &Queue{
			queue:  d.device.GetQueue(queueFamilyIndex, queueIndex),
			family: queueFamilyIndex,
		}
		d.queues[key] = queue
	}
	return queue
}

func (d *Device) CreateSwapchain(info bootstrap.SwapchainCreateInfo) (bootstrap.Swapchain, error) {
	surface, ok := info.Surface.(*Surface)
	if !ok {
		return nil, errors.Newf("cannot create swapchain for surface of type %T", info.Surface)
	}

	swapchain, _, err := d.swapchainExtension.CreateSwapchain(d.device, nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface.surface,

		MinImageCount:    info.MinImageCount,
		ImageFormat:      info.ImageFormat,
		ImageColorSpace:  info.ImageColorSpace,
		ImageExtent:      info.ImageExtent,
		ImageArrayLayers: info.ImageArrayLayers,
		ImageUsage:       info.ImageUsage,

		ImageSharingMode:   info.ImageSharingMode,
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   info.PreTransform,
		CompositeAlpha: info.CompositeAlpha,
		PresentMode:    info.PresentMode,
		Clipped:        info.Clipped,
	})
	if err != nil {
		return nil, err
	}

	return &Swapchain{swapchain: swapchain}, nil
}

func (d *Device) WaitIdle() error {
	_, err := d.device.WaitIdle()
	return err
}

func (d *Device) Destroy() {
	d.device.Destroy(nil)
}

type Queue struct {
	queue  core1_0.Queue
	family int
}

func (q *Queue) Handle() core1_0.Queue {
	return q.queue
}

func (q *Queue) FamilyIndex() int {
	return q.family
}

type Swapchain struct {
	swapchain khr_swapchain.Swapchain
}

func (s *Swapchain) Handle() khr_swapchain.Swapchain {
	return s.swapchain
}

// Images returns core1_0.Image values.
func (s *Swapchain) Images() ([]bootstrap.Image, error) {
	images, _, err := s.swapchain.SwapchainImages()
	if err != nil {
		return nil, err
	}

	result := make([]bootstrap.Image, 0, len(images))
	for _, image := range images {
		result = append(result, image)
	}
	return result, nil
}

func (s *Swapchain) Destroy() {
	s.swapchain.Destroy(nil)
}

func keys[V any](m map[string]V) map[string]struct{} {
	names := make(map[string]struct{}, len(m))
	for name := range m {
		names[name] = struct{}{}
	}
	return names
}

var (
	_ bootstrap.Instance       = (*Instance)(nil)
	_ bootstrap.PhysicalDevice = (*PhysicalDevice)(nil)
	_ bootstrap.Device         = (*Device)(nil)
	_ bootstrap.Queue          = (*Queue)(nil)
	_ bootstrap.Swapchain      = (*Swapchain)(nil)
	_ bootstrap.Surface        = (*Surface)(nil)
)
