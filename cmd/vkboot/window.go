package main

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/config"
	"github.com/vkngwrapper/bootstrap/surface"
	"github.com/vkngwrapper/bootstrap/vkng"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

// environment is everything the bootstrap borrows: a window, an instance and a
// surface for the window.
type environment struct {
	window    *sdl.Window
	instance  core1_0.Instance
	messenger ext_debug_utils.DebugUtilsMessenger
	surface   *vkng.Surface

	logger *log.Logger
	diag   bootstrap.Diagnostics
}

func openEnvironment(cfg config.Config, logger *log.Logger, flags uint32) (*environment, error) {
	env := &environment{
		logger: logger,
		diag:   bootstrap.NewDiagnostics(cfg.Log.Diagnostics, logger),
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, errors.Wrap(err, "init sdl")
	}

	env.window, err = sdl.CreateWindow(cfg.Window.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Window.Width), int32(cfg.Window.Height), flags|sdl.WINDOW_VULKAN)
	if err != nil {
		env.Close()
		return nil, errors.Wrap(err, "create window")
	}

	backend, err := surface.Detect(env.window)
	if err != nil {
		env.Close()
		return nil, err
	}
	logger.WithField("backend", backend.Name()).Debug("detected windowing subsystem")

	loader, err := core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		env.Close()
		return nil, errors.Wrap(err, "load vulkan")
	}

	instance, plan, err := vkng.CreateInstance(loader, vkng.InstanceOptions{
		ApplicationName: cfg.Vulkan.ApplicationName,
		EngineName:      "vkboot",
		Extensions:      surface.RequiredExtensions(backend, env.window.VulkanGetInstanceExtensions()),
		Validation:      cfg.Vulkan.Validation,
	})
	if err != nil {
		env.Close()
		return nil, err
	}
	env.instance = instance

	if len(plan.Unavailable) > 0 {
		logger.WithField("extensions", plan.Unavailable).Warn("instance extensions unavailable")
	}
	if cfg.Vulkan.Validation && plan.ValidationLayer == "" {
		logger.Warn("no validation layer installed")
	}
	logger.WithFields(log.Fields{
		"extensions": plan.CreateInfo.EnabledExtensionNames,
		"layers":     plan.CreateInfo.EnabledLayerNames,
	}).Debug("created instance")

	if plan.DebugUtils {
		env.messenger, err = vkng.NewDebugMessenger(instance, logger.WithField("source", "validation"))
		if err != nil {
			env.Close()
			return nil, errors.Wrap(err, "create debug messenger")
		}
	}

	env.surface, err = backend.CreateSurface(instance, env.window)
	if err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

func (e *environment) drawableSize() (int, int) {
	width, height := e.window.VulkanGetDrawableSize()
	return int(width), int(height)
}

// Close releases in reverse creation order whatever was created.
func (e *environment) Close() {
	if e.surface != nil {
		e.surface.Destroy()
	}
	if e.messenger != nil {
		e.messenger.Destroy(nil)
	}
	if e.instance != nil {
		e.instance.Destroy(nil)
	}
	if e.window != nil {
		e.window.Destroy()
	}
	sdl.Quit()
}
