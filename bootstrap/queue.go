package bootstrap

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
)

// ResolveQueueFamilies scans the unit's queue families in index order. The first
// graphics-capable family and the first family able to present to surface win, and
// the scan stops as soon as both are known. A later family that could serve both is
// never preferred over an earlier split.
//
// The result may be incomplete; the error is only for a failed presentation query.
// It has no side effects and is safe to call repeatedly.
func ResolveQueueFamilies(device PhysicalDevice, surface Surface, diag Diagnostics) (QueueFamilyIndices, error) {
	var graphics, present int
	var hasGraphics, hasPresent bool

	families := device.QueueFamilyProperties()
	diag.info("found queue families", log.Fields{"count": len(families)})

	for index, family := range families {
		if !hasGraphics && family.QueueFlags&core1_0.QueueGraphics != 0 {
			graphics, hasGraphics = index, true
			diag.info("using graphics queue family", log.Fields{"family": index})
		}

		if !hasPresent {
			supported, err := surface.PresentSupport(device, index)
			if err != nil {
				return QueueFamilyIndices{}, mark(err, ErrSurfaceQuery, "query present support for family %d", index)
			}
			if supported {
				present, hasPresent = index, true
				diag.info("using present queue family", log.Fields{"family": index})
			}
		}

		if hasGraphics && hasPresent {
			break
		}
	}

	return QueueFamilyIndices{
		graphics:    graphics,
		present:     present,
		hasGraphics: hasGraphics,
		hasPresent:  hasPresent,
	}, nil
}

// resolveComplete is ResolveQueueFamilies for callers that cannot continue without
// both families.
func resolveComplete(device PhysicalDevice, surface Surface, diag Diagnostics) (QueueFamilyIndices, error) {
	indices, err := ResolveQueueFamilies(device, surface, diag)
	if err != nil {
		return indices, err
	}
	if !indices.IsComplete() {
		return indices, errors.Wrapf(ErrNoSuitableQueueFamily, "resolved %s", indices)
	}
	return indices, nil
}

// GetQueues re-resolves the queue families and returns queue 0 of the graphics and
// present families. Both are the same handle when the families are shared.
func GetQueues(physicalDevice PhysicalDevice, device Device, surface Surface, diag Diagnostics) (graphicsQueue, presentQueue Queue, err error) {
	indices, err := resolveComplete(physicalDevice, surface, diag)
	if err != nil {
		return nil, nil, err
	}

	graphicsFamily, _ := indices.Graphics()
	presentFamily, _ := indices.Present()
	return device.Queue(graphicsFamily, 0), device.Queue(presentFamily, 0), nil
}
