package bootstrap

import (
	"sync/atomic"

	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

type fakeInstance struct {
	units []PhysicalDevice
	err   error
}

func (i *fakeInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	return i.units, i.err
}

type fakeUnit struct {
	info    UnitInfo
	infoErr error

	extensions []string
	extErr     error

	families    []*core1_0.QueueFamilyProperties
	presentable []bool

	createErr error
	created   []DeviceCreateInfo
	device    *fakeDevice
}

func (u *fakeUnit) Info() (UnitInfo, error) {
	return u.info, u.infoErr
}

func (u *fakeUnit) ExtensionNames() (map[string]struct{}, error) {
	if u.extErr != nil {
		return nil, u.extErr
	}

	names := make(map[string]struct{}, len(u.extensions))
	for _, name := range u.extensions {
		names[name] = struct{}{}
	}
	return names, nil
}

func (u *fakeUnit) QueueFamilyProperties() []*core1_0.QueueFamilyProperties {
	return u.families
}

func (u *fakeUnit) CreateDevice(info DeviceCreateInfo) (Device, error) {
	u.created = append(u.created, info)
	if u.createErr != nil {
		return nil, u.createErr
	}
	if u.device == nil {
		u.device = &fakeDevice{}
	}
	return u.device, nil
}

type fakeSurface struct {
	capabilities *khr_surface.SurfaceCapabilities
	formats      []khr_surface.SurfaceFormat
	presentModes []khr_surface.PresentMode

	supportErr error
	capsErr    error
	formatsErr error
	modesErr   error

	supportCalls int32
	capsCalls    int32
	// onPresentSupport runs on every presentation query.
	onPresentSupport func()
}

func (s *fakeSurface) PresentSupport(device PhysicalDevice, queueFamilyIndex int) (bool, error) {
	atomic.AddInt32(&s.supportCalls, 1)
	if s.onPresentSupport != nil {
		s.onPresentSupport()
	}
	if s.supportErr != nil {
		return false, s.supportErr
	}

	unit := device.(*fakeUnit)
	if queueFamilyIndex >= len(unit.presentable) {
		return false, nil
	}
	return unit.presentable[queueFamilyIndex], nil
}

func (s *fakeSurface) Capabilities(device PhysicalDevice) (*khr_surface.SurfaceCapabilities, error) {
	atomic.AddInt32(&s.capsCalls, 1)
	if s.capsErr != nil {
		return nil, s.capsErr
	}
	caps := *s.capabilities
	return &caps, nil
}

func (s *fakeSurface) Formats(device PhysicalDevice) ([]khr_surface.SurfaceFormat, error) {
	return s.formats, s.formatsErr
}

func (s *fakeSurface) PresentModes(device PhysicalDevice) ([]khr_surface.PresentMode, error) {
	return s.presentModes, s.modesErr
}

type fakeQueue struct {
	family int
	index  int
}

func (q *fakeQueue) FamilyIndex() int {
	return q.family
}

type fakeDevice struct {
	queues map[[2]int]*fakeQueue

	swapchainErr error
	imagesErr    error
	// extraImages is added to the requested image count when images are returned.
	extraImages int

	swapchainInfos []SwapchainCreateInfo
	swapchains     []*fakeSwapchain

	waitIdleCalls int
	destroyed     bool
}

func (d *fakeDevice) Queue(queueFamilyIndex, queueIndex int) Queue {
	if d.queues == nil {
		d.queues = make(map[[2]int]*fakeQueue)
	}

	key := [2]int{queueFamilyIndex, queueIndex}
	queue, ok := d.queues[key]
	if !ok {
		queue = &fakeQueue{family: queueFamilyIndex, index: queueIndex}
		d.queues[key] = queue
	}
	return queue
}

func (d *fakeDevice) CreateSwapchain(info SwapchainCreateInfo) (Swapchain, error) {
	d.swapchainInfos = append(d.swapchainInfos, info)
	if d.swapchainErr != nil {
		return nil, d.swapchainErr
	}

	swapchain := &fakeSwapchain{imagesErr: d.imagesErr}
	for i := 0; i < info.MinImageCount+d.extraImages; i++ {
		swapchain.images = append(swapchain.images, i)
	}
	d.swapchains = append(d.swapchains, swapchain)
	return swapchain, nil
}

func (d *fakeDevice) WaitIdle() error {
	d.waitIdleCalls++
	return nil
}

func (d *fakeDevice) Destroy() {
	d.destroyed = true
}

type fakeSwapchain struct {
	images    []Image
	imagesErr error
	destroyed int
}

func (s *fakeSwapchain) Images() ([]Image, error) {
	return s.images, s.imagesErr
}

func (s *fakeSwapchain) Destroy() {
	s.destroyed++
}

func family(flags core1_0.QueueFlags) *core1_0.QueueFamilyProperties {
	return &core1_0.QueueFamilyProperties{QueueFlags: flags}
}

// newUnit builds a unit advertising the swapchain extension. graphics and present
// list, per family index, whether it is graphics-capable and can present.
func newUnit(name string, graphics, present []bool) *fakeUnit {
	unit := &fakeUnit{
		info:        UnitInfo{Name: name, Type: UnitTypeDiscrete},
		extensions:  []string{khr_swapchain.ExtensionName},
		presentable: present,
	}
	for _, isGraphics := range graphics {
		if isGraphics {
			unit.families = append(unit.families, family(core1_0.QueueGraphics|core1_0.QueueTransfer))
		} else {
			unit.families = append(unit.families, family(core1_0.QueueTransfer))
		}
	}
	return unit
}

func splitUnit() *fakeUnit {
	return newUnit("split", []bool{true, false}, []bool{false, true})
}

func sharedUnit() *fakeUnit {
	return newUnit("shared", []bool{true}, []bool{true})
}

func newSurface() *fakeSurface {
	return &fakeSurface{
		capabilities: &khr_surface.SurfaceCapabilities{
			MinImageCount:    2,
			MaxImageCount:    0,
			CurrentExtent:    core1_0.Extent2D{Width: 640, Height: 480},
			MinImageExtent:   core1_0.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:   core1_0.Extent2D{Width: 4096, Height: 4096},
			CurrentTransform: khr_surface.TransformIdentity,
		},
		formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
			{Format: core1_0.FormatR8G8B8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		presentModes: []khr_surface.PresentMode{
			khr_surface.PresentModeFIFO,
			khr_surface.PresentModeMailbox,
		},
	}
}
