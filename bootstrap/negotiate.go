package bootstrap

import (
	"fmt"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

var PreferredSurfaceFormat = khr_surface.SurfaceFormat{
	Format:     core1_0.FormatB8G8R8A8UnsignedNormalized,
	ColorSpace: khr_surface.ColorSpaceSRGBNonlinear,
}

// QuerySupport reads the surface's current capabilities, formats and present modes
// for the unit. Re-run it whenever the drawable size may have changed.
func QuerySupport(device PhysicalDevice, surface Surface, diag Diagnostics) (SwapchainSupport, error) {
	var support SwapchainSupport
	var err error

	done := diag.stage("query swapchain support")
	defer done()

	support.Capabilities, err = surface.Capabilities(device)
	if err != nil {
		return support, mark(err, ErrSurfaceQuery, "query surface capabilities")
	}

	support.Formats, err = surface.Formats(device)
	if err != nil {
		return support, mark(err, ErrSurfaceQuery, "query surface formats")
	}

	support.PresentModes, err = surface.PresentModes(device)
	if err != nil {
		return support, mark(err, ErrSurfaceQuery, "query surface present modes")
	}

	caps := support.Capabilities
	diag.info("swapchain support", log.Fields{
		"min_images":     caps.MinImageCount,
		"max_images":     caps.MaxImageCount,
		"current_extent": extentString(caps.CurrentExtent),
		"formats":        len(support.Formats),
		"present_modes":  len(support.PresentModes),
	})

	return support, nil
}

// ChooseFormat returns PreferredSurfaceFormat if present in formats, otherwise the
// first entry. formats must not be empty.
func ChooseFormat(formats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range formats {
		if format == PreferredSurfaceFormat {
			return format
		}
	}

	return formats[0]
}

// ChoosePresentMode prefers mailbox and otherwise falls back to FIFO, which every
// implementation supports.
func ChoosePresentMode(modes []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, mode := range modes {
		if mode == khr_surface.PresentModeMailbox {
			return mode
		}
	}

	return khr_surface.PresentModeFIFO
}

// ChooseExtent clamps the requested size into the capability bounds, one dimension
// at a time. CurrentExtent is not consulted.
func ChooseExtent(width, height int, capabilities *khr_surface.SurfaceCapabilities) core1_0.Extent2D {
	return core1_0.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum, bounded by the maximum
// when there is one (a maximum of 0 means unbounded).
func ChooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// ChooseSharing picks exclusive ownership for a shared family, and concurrent
// access over [graphics, present] for split families.
func ChooseSharing(indices QueueFamilyIndices) (core1_0.SharingMode, []int) {
	if indices.Shared() {
		return core1_0.SharingModeExclusive, nil
	}

	graphics, _ := indices.Graphics()
	present, _ := indices.Present()
	return core1_0.SharingModeConcurrent, []int{graphics, present}
}

// Negotiate queries the surface and applies every selection policy for a swapchain
// of the requested size.
func Negotiate(device PhysicalDevice, surface Surface, width, height int, diag Diagnostics) (SwapchainConfig, error) {
	support, err := QuerySupport(device, surface, diag)
	if err != nil {
		return SwapchainConfig{}, err
	}

	indices, err := resolveComplete(device, surface, diag)
	if err != nil {
		return SwapchainConfig{}, err
	}

	return configure(support, indices, width, height, diag)
}

func configure(support SwapchainSupport, indices QueueFamilyIndices, width, height int, diag Diagnostics) (SwapchainConfig, error) {
	if len(support.Formats) == 0 {
		return SwapchainConfig{}, errors.WithStack(ErrSurfaceUnsupported)
	}

	format := ChooseFormat(support.Formats)
	if format != PreferredSurfaceFormat {
		diag.info("preferred format unavailable, using first reported", log.Fields{"format": format.Format})
	}

	presentMode := ChoosePresentMode(support.PresentModes)
	if presentMode != khr_surface.PresentModeMailbox {
		diag.info("mailbox unavailable, using FIFO", nil)
	}

	config := SwapchainConfig{
		ImageCount:   ChooseImageCount(support.Capabilities),
		Format:       format.Format,
		ColorSpace:   format.ColorSpace,
		Extent:       ChooseExtent(width, height, support.Capabilities),
		PresentMode:  presentMode,
		PreTransform: support.Capabilities.CurrentTransform,
	}
	config.SharingMode, config.QueueFamilyIndices = ChooseSharing(indices)

	diag.info("negotiated swapchain", log.Fields{
		"images":       config.ImageCount,
		"format":       config.Format,
		"present_mode": config.PresentMode,
		"extent":       extentString(config.Extent),
		"sharing":      config.SharingMode,
	})

	return config, nil
}

func clamp(value, lower, upper int) int {
	if value < lower {
		value = lower
	}
	if value > upper {
		value = upper
	}
	return value
}

func extentString(extent core1_0.Extent2D) string {
	return fmt.Sprintf("%dx%d", extent.Width, extent.Height)
}
