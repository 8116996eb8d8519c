package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// Surface exposes a khr_surface.Surface to the bootstrap. It only accepts units
// enumerated through this package.
type Surface struct {
	surface khr_surface.Surface
}

func NewSurface(surface khr_surface.Surface) *Surface {
	return &Surface{surface: surface}
}

func (s *Surface) Handle() khr_surface.Surface {
	return s.surface
}

func (s *Surface) PresentSupport(device bootstrap.PhysicalDevice, queueFamilyIndex int) (bool, error) {
	unit, err := physical(device)
	if err != nil {
		return false, err
	}

	supported, _, err := s.surface.PhysicalDeviceSurfaceSupport(unit, queueFamilyIndex)
	return supported, err
}

func (s *Surface) Capabilities(device bootstrap.PhysicalDevice) (*khr_surface.SurfaceCapabilities, error) {
	unit, err := physical(device)
	if err != nil {
		return nil, err
	}

	capabilities, _, err := s.surface.PhysicalDeviceSurfaceCapabilities(unit)
	return capabilities, err
}

func (s *Surface) Formats(device bootstrap.PhysicalDevice) ([]khr_surface.SurfaceFormat, error) {
	unit, err := physical(device)
	if err != nil {
		return nil, err
	}

	formats, _, err := s.surface.PhysicalDeviceSurfaceFormats(unit)
	return formats, err
}

func (s *Surface) PresentModes(device bootstrap.PhysicalDevice) ([]khr_surface.PresentMode, error) {
	unit, err := physical(device)
	if err != nil {
		return nil, err
	}

	modes, _, err := s.surface.PhysicalDeviceSurfacePresentModes(unit)
	return modes, err
}

func (s *Surface) Destroy() {
	s.surface.Destroy(nil)
}

func physical(device bootstrap.PhysicalDevice) (core1_0.PhysicalDevice, error) {
	unit, ok := device.(*PhysicalDevice)
	if !ok {
		return nil, errors.Newf("unit of type %T was not enumerated by vkng", device)
	}
	return unit.device, nil
}
