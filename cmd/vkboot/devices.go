package main

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/config"
	"github.com/vkngwrapper/bootstrap/vkng"
	"gopkg.in/yaml.v3"
)

func printDevices(ctx context.Context, out io.Writer, cfg config.Config, logger *log.Logger) error {
	env, err := openEnvironment(cfg, logger, sdl.WINDOW_HIDDEN)
	if err != nil {
		return err
	}
	defer env.Close()

	reports, err := bootstrap.Survey(ctx, vkng.NewInstance(env.instance), env.surface, env.diag)
	if err != nil {
		return err
	}
	return writeReports(out, reports)
}

func writeReports(out io.Writer, reports []bootstrap.UnitReport) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	err := encoder.Encode(reports)
	if err != nil {
		return err
	}
	return encoder.Close()
}
