package surface

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/extensions/khr_surface"
)

func TestSelect(t *testing.T) {
	cases := map[uint32]string{
		sdl.SYSWM_WINDOWS: "win32",
		sdl.SYSWM_X11:     "x11",
		sdl.SYSWM_WAYLAND: "wayland",
		sdl.SYSWM_COCOA:   "cocoa",
	}

	for subsystem, name := range cases {
		backend, err := Select(subsystem)
		require.NoError(t, err)
		require.Equal(t, name, backend.Name())
		require.Equal(t, subsystem, backend.Subsystem())
	}
}

func TestSelect_Unsupported(t *testing.T) {
	_, err := Select(sdl.SYSWM_UNKNOWN)
	require.True(t, errors.Is(err, ErrUnsupportedPlatform))
}

func TestBackendsAreDistinct(t *testing.T) {
	subsystems := map[uint32]struct{}{}
	for _, backend := range Backends() {
		subsystems[backend.Subsystem()] = struct{}{}
		require.NotEmpty(t, backend.InstanceExtension())
	}
	require.Len(t, subsystems, len(Backends()))
}

func TestRequiredExtensions(t *testing.T) {
	backend, err := Select(sdl.SYSWM_X11)
	require.NoError(t, err)

	extensions := RequiredExtensions(backend, []string{khr_surface.ExtensionName, "VK_KHR_xlib_surface"})
	require.Equal(t, []string{khr_surface.ExtensionName, "VK_KHR_xlib_surface"}, extensions)

	extensions = RequiredExtensions(backend, nil)
	require.Equal(t, []string{khr_surface.ExtensionName, "VK_KHR_xlib_surface"}, extensions)
}
