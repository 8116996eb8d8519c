package bootstrap

import (
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// Instance is the top-level graphics context. It is owned by the caller and only
// borrowed by this package.
type Instance interface {
	// PhysicalDevices enumerates the processing units visible to the instance,
	// in driver enumeration order.
	PhysicalDevices() ([]PhysicalDevice, error)
}

// PhysicalDevice is a processing unit. Handles are borrowed from the Instance for
// the whole session and are safe to query from several goroutines.
type PhysicalDevice interface {
	Info() (UnitInfo, error)
	ExtensionNames() (map[string]struct{}, error)
	QueueFamilyProperties() []*core1_0.QueueFamilyProperties
	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// Surface is a presentation surface bound to a single window. Presentation support
// is a property of the (unit, family, surface) triple, so every query names the unit.
type Surface interface {
	PresentSupport(device PhysicalDevice, queueFamilyIndex int) (bool, error)
	Capabilities(device PhysicalDevice) (*khr_surface.SurfaceCapabilities, error)
	Formats(device PhysicalDevice) ([]khr_surface.SurfaceFormat, error)
	PresentModes(device PhysicalDevice) ([]khr_surface.PresentMode, error)
}

type Device interface {
	// Queue returns the queue at index within the given family. Repeated calls
	// with the same arguments return the same handle.
	Queue(queueFamilyIndex, queueIndex int) Queue
	CreateSwapchain(info SwapchainCreateInfo) (Swapchain, error)
	WaitIdle() error
	Destroy()
}

type Queue interface {
	FamilyIndex() int
}

// Swapchain owns its images; they are released together with it.
type Swapchain interface {
	Images() ([]Image, error)
	Destroy()
}

// Image is a presentable image handle borrowed from a Swapchain.
type Image interface{}

type QueueCreateInfo struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	QueueCreateInfos      []QueueCreateInfo
	EnabledExtensionNames []string
}

type SwapchainCreateInfo struct {
	Surface Surface

	MinImageCount    int
	ImageFormat      core1_0.Format
	ImageColorSpace  khr_surface.ColorSpace
	ImageExtent      core1_0.Extent2D
	ImageArrayLayers int
	ImageUsage       core1_0.ImageUsageFlags

	ImageSharingMode   core1_0.SharingMode
	QueueFamilyIndices []int

	PreTransform   khr_surface.SurfaceTransformFlags
	CompositeAlpha khr_surface.CompositeAlphaFlags
	PresentMode    khr_surface.PresentMode
	Clipped        bool
}
