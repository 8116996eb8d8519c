package main

import (
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/bootstrap/config"
)

type options struct {
	configPath string
	width      int
	height     int
	debug      bool
	validation bool
	logLevel   string
}

func (o *options) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "path to a TOML config file")
	flags.IntVar(&o.width, "width", 0, "window width")
	flags.IntVar(&o.height, "height", 0, "window height")
	flags.BoolVar(&o.debug, "debug", false, "report bootstrap progress")
	flags.BoolVar(&o.validation, "validation", false, "enable validation layers")
	flags.StringVar(&o.logLevel, "log-level", "", "log level")
}

// apply overrides cfg with the flags that were set on the command line.
func (o *options) apply(cfg *config.Config, changed func(name string) bool) {
	if changed("width") {
		cfg.Window.Width = o.width
	}
	if changed("height") {
		cfg.Window.Height = o.height
	}
	if changed("debug") {
		cfg.Log.Diagnostics = o.debug
	}
	if changed("validation") {
		cfg.Vulkan.Validation = o.validation
	}
	if changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
}

func (o *options) load(cmd *cobra.Command) (config.Config, *log.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, nil, err
	}

	o.apply(&cfg, cmd.Flags().Changed)
	err = cfg.Validate()
	if err != nil {
		return cfg, nil, err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "vkboot",
		Short:         "Bring up a Vulkan device and swapchain for a window",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.register(root)

	run := &cobra.Command{
		Use:   "run",
		Short: "Open a window, bootstrap it and keep the swapchain sized to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runWindow(cfg, logger)
		},
	}

	devices := &cobra.Command{
		Use:   "devices",
		Short: "Print what every processing unit supports for a window surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return printDevices(cmd.Context(), cmd.OutOrStdout(), cfg, logger)
		},
	}

	root.AddCommand(run, devices)
	return root
}

func main() {
	// SDL and the presentation engine expect every call on the main thread.
	runtime.LockOSThread()

	err := newRootCommand().Execute()
	if err != nil {
		log.Fatalf("%+v", err)
	}
}
