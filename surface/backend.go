// Package surface creates the presentation surface for an SDL window on the
// windowing subsystem it runs under.
package surface

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/vkng"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2"
)

var ErrUnsupportedPlatform = errors.New("platform not supported")

// Backend creates surfaces for one windowing subsystem.
type Backend interface {
	Name() string
	// Subsystem is the SDL_SYSWM value the backend serves.
	Subsystem() uint32
	// InstanceExtension is the platform surface extension the instance must enable.
	InstanceExtension() string
	CreateSurface(instance core1_0.Instance, window *sdl.Window) (*vkng.Surface, error)
}

type sdlBackend struct {
	name      string
	subsystem uint32
	extension string
}

func (b sdlBackend) Name() string {
	return b.name
}

func (b sdlBackend) Subsystem() uint32 {
	return b.subsystem
}

func (b sdlBackend) InstanceExtension() string {
	return b.extension
}

func (b sdlBackend) CreateSurface(instance core1_0.Instance, window *sdl.Window) (*vkng.Surface, error) {
	loader := khr_surface.CreateExtensionFromInstance(instance)

	surface, err := vkng_sdl2.CreateSurface(instance, loader, window)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s surface", b.name)
	}
	return vkng.NewSurface(surface), nil
}

var backends = []Backend{
	sdlBackend{name: "win32", subsystem: sdl.SYSWM_WINDOWS, extension: "VK_KHR_win32_surface"},
	sdlBackend{name: "x11", subsystem: sdl.SYSWM_X11, extension: "VK_KHR_xlib_surface"},
	sdlBackend{name: "wayland", subsystem: sdl.SYSWM_WAYLAND, extension: "VK_KHR_wayland_surface"},
	sdlBackend{name: "cocoa", subsystem: sdl.SYSWM_COCOA, extension: "VK_EXT_metal_surface"},
}

func Backends() []Backend {
	return append([]Backend(nil), backends...)
}

// Select returns the backend for an SDL_SYSWM subsystem value.
func Select(subsystem uint32) (Backend, error) {
	for _, backend := range backends {
		if backend.Subsystem() == subsystem {
			return backend, nil
		}
	}
	return nil, errors.Wrapf(ErrUnsupportedPlatform, "subsystem %d", subsystem)
}

// Detect selects the backend for the subsystem window was created on.
func Detect(window *sdl.Window) (Backend, error) {
	info, err := window.GetWMInfo()
	if err != nil {
		return nil, errors.Wrap(err, "read window manager info")
	}
	return Select(info.Subsystem)
}

// RequiredExtensions merges the extensions SDL reports for the window with the
// generic and platform surface extensions of backend, keeping the first
// occurrence of each.
func RequiredExtensions(backend Backend, windowExtensions []string) []string {
	seen := make(map[string]struct{})
	var extensions []string
	for _, name := range append(append([]string(nil), windowExtensions...), khr_surface.ExtensionName, backend.InstanceExtension()) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		extensions = append(extensions, name)
	}
	return extensions
}
