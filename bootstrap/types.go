package bootstrap

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// QueueFamilyIndices is the result of queue family resolution. Either index may be
// missing; use IsComplete before reading them.
type QueueFamilyIndices struct {
	graphics    int
	present     int
	hasGraphics bool
	hasPresent  bool
}

func completeIndices(graphics, present int) QueueFamilyIndices {
	return QueueFamilyIndices{
		graphics:    graphics,
		present:     present,
		hasGraphics: true,
		hasPresent:  true,
	}
}

// Graphics returns the graphics-capable family and whether one was found.
func (i QueueFamilyIndices) Graphics() (int, bool) {
	return i.graphics, i.hasGraphics
}

// Present returns the family able to present to the surface and whether one was found.
func (i QueueFamilyIndices) Present() (int, bool) {
	return i.present, i.hasPresent
}

// IsComplete reports whether both a graphics and a present family were found.
func (i QueueFamilyIndices) IsComplete() bool {
	return i.hasGraphics && i.hasPresent
}

// Shared reports whether graphics and presentation resolved to the same family.
func (i QueueFamilyIndices) Shared() bool {
	return i.IsComplete() && i.graphics == i.present
}

// Unique returns the distinct family indices, graphics first. It is empty unless
// the indices are complete.
func (i QueueFamilyIndices) Unique() []int {
	if !i.IsComplete() {
		return nil
	}

	unique := []int{i.graphics}
	if i.present != i.graphics {
		unique = append(unique, i.present)
	}
	return unique
}

func (i QueueFamilyIndices) String() string {
	graphics, present := "none", "none"
	if i.hasGraphics {
		graphics = fmt.Sprint(i.graphics)
	}
	if i.hasPresent {
		present = fmt.Sprint(i.present)
	}
	return fmt.Sprintf("graphics=%s present=%s", graphics, present)
}

// UnitType is a coarse classification of a processing unit.
type UnitType int

const (
	UnitTypeUnknown UnitType = iota
	UnitTypeIntegrated
	UnitTypeDiscrete
	UnitTypeVirtual
	UnitTypeCPU
)

var unitTypeNames = map[UnitType]string{
	UnitTypeUnknown:    "Unknown",
	UnitTypeIntegrated: "Integrated GPU",
	UnitTypeDiscrete:   "Discrete GPU",
	UnitTypeVirtual:    "Virtual GPU",
	UnitTypeCPU:        "CPU",
}

func (t UnitType) String() string {
	name, ok := unitTypeNames[t]
	if !ok {
		return unitTypeNames[UnitTypeUnknown]
	}
	return name
}

func (t UnitType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnitInfo is the descriptive part of a processing unit's properties.
type UnitInfo struct {
	Name              string    `yaml:"name"`
	Type              UnitType  `yaml:"type"`
	VendorID          uint32    `yaml:"vendor_id"`
	DeviceID          uint32    `yaml:"device_id"`
	APIVersion        string    `yaml:"api_version"`
	DriverVersion     string    `yaml:"driver_version"`
	PipelineCacheUUID uuid.UUID `yaml:"pipeline_cache_uuid"`
}

// SwapchainSupport is a snapshot of what a surface supports on one unit. It goes
// stale whenever the window is resized and must not be kept past one negotiation.
type SwapchainSupport struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

// SwapchainConfig is the negotiated swapchain shape. It is always derived from a
// fresh SwapchainSupport.
type SwapchainConfig struct {
	ImageCount  int
	Format      core1_0.Format
	ColorSpace  khr_surface.ColorSpace
	Extent      core1_0.Extent2D
	PresentMode khr_surface.PresentMode

	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int

	PreTransform khr_surface.SurfaceTransformFlags
}

// SwapchainBundle is a created swapchain and its images. The images belong to the
// swapchain and are never destroyed on their own. len(Images) may be larger than
// Config.ImageCount; size per-image resources from Images.
type SwapchainBundle struct {
	Swapchain Swapchain
	Images    []Image
	Format    core1_0.Format
	Extent    core1_0.Extent2D
	Config    SwapchainConfig
}

// Destroy releases the swapchain, which implicitly releases its images.
func (b *SwapchainBundle) Destroy() {
	if b == nil || b.Swapchain == nil {
		return
	}

	b.Swapchain.Destroy()
	b.Swapchain = nil
	b.Images = nil
}
