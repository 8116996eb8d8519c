package bootstrap

import (
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// SwapchainCreateInfoFor fills the fixed swapchain parameters around a negotiated
// config: one array layer, color attachment usage, opaque composite alpha,
// clipping on and no predecessor swapchain.
func SwapchainCreateInfoFor(surface Surface, config SwapchainConfig) SwapchainCreateInfo {
	return SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    config.ImageCount,
		ImageFormat:      config.Format,
		ImageColorSpace:  config.ColorSpace,
		ImageExtent:      config.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   config.SharingMode,
		QueueFamilyIndices: config.QueueFamilyIndices,

		PreTransform:   config.PreTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    config.PresentMode,
		Clipped:        true,
	}
}

// CreateSwapchain negotiates a swapchain for the requested drawable size and
// creates it on device. Every call builds an independent swapchain; destroy the
// previous bundle before calling it again for the same surface.
func CreateSwapchain(physicalDevice PhysicalDevice, device *LogicalDevice, surface Surface, width, height int, diag Diagnostics) (*SwapchainBundle, error) {
	config, err := Negotiate(physicalDevice, surface, width, height, diag)
	if err != nil {
		return nil, err
	}

	done := diag.stage("create swapchain")
	swapchain, err := device.Device.CreateSwapchain(SwapchainCreateInfoFor(surface, config))
	done()
	if err != nil {
		return nil, mark(err, ErrSwapchainCreation, "create %s swapchain", extentString(config.Extent))
	}

	images, err := swapchain.Images()
	if err != nil {
		swapchain.Destroy()
		return nil, mark(err, ErrSwapchainCreation, "get swapchain images")
	}

	diag.info("created swapchain", log.Fields{
		"requested_images": config.ImageCount,
		"images":           len(images),
	})

	return &SwapchainBundle{
		Swapchain: swapchain,
		Images:    images,
		Format:    config.Format,
		Extent:    config.Extent,
		Config:    config,
	}, nil
}
