package bootstrap

import "github.com/cockroachdb/errors"

// Failures returned by this package are marked with one of these, so callers can
// test them with errors.Is while the native error stays attached.
var (
	ErrContext               = errors.New("processing units cannot be enumerated")
	ErrNotFound              = errors.New("no suitable processing unit")
	ErrNoSuitableQueueFamily = errors.New("no suitable queue family")
	ErrDeviceCreation        = errors.New("logical device creation failed")
	ErrSwapchainCreation     = errors.New("swapchain creation failed")
	ErrSurfaceQuery          = errors.New("surface query failed")
	ErrSurfaceUnsupported    = errors.New("surface reports no formats")
)

func mark(err error, sentinel error, msg string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, msg, args...), sentinel)
}
