package bootstrap

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// Session holds everything the rendering side needs to start issuing work. It
// borrows the instance and surface and owns the device and swapchain.
//
// A Session is not safe for concurrent use. Recreate must be serialized with any
// in-flight use of the current Swapchain.
type Session struct {
	Unit          PhysicalDevice
	Device        *LogicalDevice
	GraphicsQueue Queue
	PresentQueue  Queue
	Swapchain     *SwapchainBundle

	surface Surface
	diag    Diagnostics
}

// Start selects a unit, creates its logical device and queues, and builds a
// swapchain for the requested size. If a step after device creation fails, the
// device is destroyed before the error is returned.
func Start(instance Instance, surface Surface, width, height int, diag Diagnostics) (*Session, error) {
	unit, err := ChooseProcessingUnit(instance, diag)
	if err != nil {
		return nil, err
	}

	device, err := CreateLogicalDevice(unit, surface, diag)
	if err != nil {
		return nil, err
	}

	graphicsQueue, presentQueue, err := GetQueues(unit, device.Device, surface, diag)
	if err != nil {
		device.Destroy()
		return nil, err
	}

	bundle, err := CreateSwapchain(unit, device, surface, width, height, diag)
	if err != nil {
		device.Destroy()
		return nil, err
	}

	return &Session{
		Unit:          unit,
		Device:        device,
		GraphicsQueue: graphicsQueue,
		PresentQueue:  presentQueue,
		Swapchain:     bundle,
		surface:       surface,
		diag:          diag,
	}, nil
}

// Recreate replaces the swapchain with one negotiated for the new drawable size.
// A zero or negative size (a minimized window) leaves the current swapchain alone.
func (s *Session) Recreate(width, height int) error {
	if width <= 0 || height <= 0 {
		s.diag.info("skipping swapchain recreation for empty drawable", log.Fields{
			"width":  width,
			"height": height,
		})
		return nil
	}

	err := s.Device.Device.WaitIdle()
	if err != nil {
		return errors.Wrap(err, "wait for device idle")
	}

	s.Swapchain.Destroy()
	s.Swapchain = nil

	bundle, err := CreateSwapchain(s.Unit, s.Device, s.surface, width, height, s.diag)
	if err != nil {
		return err
	}

	s.Swapchain = bundle
	return nil
}

// Close destroys the swapchain and then the device.
func (s *Session) Close() {
	if s == nil {
		return
	}

	s.Swapchain.Destroy()
	s.Swapchain = nil
	s.Device.Destroy()
}
