package main

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/config"
	"github.com/vkngwrapper/bootstrap/vkng"
)

func runWindow(cfg config.Config, logger *log.Logger) error {
	env, err := openEnvironment(cfg, logger, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return err
	}
	defer env.Close()

	width, height := env.drawableSize()
	session, err := bootstrap.Start(vkng.NewInstance(env.instance), env.surface, width, height, env.diag)
	if err != nil {
		return err
	}
	defer session.Close()

	info, err := session.Unit.Info()
	if err != nil {
		return errors.Wrap(err, "read unit properties")
	}
	logger.WithFields(log.Fields{
		"unit":   info.Name,
		"images": len(session.Swapchain.Images),
		"extent": session.Swapchain.Extent,
	}).Info("bootstrap complete")

	return eventLoop(env, session, logger)
}

func eventLoop(env *environment, session *bootstrap.Session, logger *log.Logger) error {
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return session.Device.Device.WaitIdle()
			case *sdl.WindowEvent:
				if e.Event != sdl.WINDOWEVENT_SIZE_CHANGED {
					continue
				}

				width, height := env.drawableSize()
				err := session.Recreate(width, height)
				if err != nil {
					return err
				}
				if session.Swapchain != nil {
					logger.WithFields(log.Fields{
						"extent": session.Swapchain.Extent,
						"images": len(session.Swapchain.Images),
					}).Info("recreated swapchain")
				}
			}
		}

		sdl.Delay(16)
	}
}
