package bootstrap

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"golang.org/x/sync/errgroup"
)

// UnitReport describes one processing unit as the bootstrap would see it.
type UnitReport struct {
	Index             int      `yaml:"index"`
	Info              UnitInfo `yaml:"info"`
	MissingExtensions []string `yaml:"missing_extensions,omitempty"`
	Suitable          bool     `yaml:"suitable"`
	QueueFamilies     int      `yaml:"queue_families"`
	GraphicsFamily    *int     `yaml:"graphics_family,omitempty"`
	PresentFamily     *int     `yaml:"present_family,omitempty"`

	// Choice is only filled when the unit is suitable and its families are
	// complete.
	Choice *SurfaceChoice `yaml:"choice,omitempty"`
}

// SurfaceChoice is the outcome of the selection policies for one unit.
type SurfaceChoice struct {
	Format      core1_0.Format          `yaml:"format"`
	ColorSpace  khr_surface.ColorSpace  `yaml:"color_space"`
	PresentMode khr_surface.PresentMode `yaml:"present_mode"`
	MinImages   int                     `yaml:"min_images"`
	MaxImages   int                     `yaml:"max_images"`
	ImageCount  int                     `yaml:"image_count"`
	Sharing     core1_0.SharingMode     `yaml:"sharing"`
}

// MarshalYAML writes the enumerated values by name.
func (c SurfaceChoice) MarshalYAML() (interface{}, error) {
	return struct {
		Format      string `yaml:"format"`
		ColorSpace  string `yaml:"color_space"`
		PresentMode string `yaml:"present_mode"`
		MinImages   int    `yaml:"min_images"`
		MaxImages   int    `yaml:"max_images"`
		ImageCount  int    `yaml:"image_count"`
		Sharing     string `yaml:"sharing"`
	}{
		Format:      fmt.Sprint(c.Format),
		ColorSpace:  fmt.Sprint(c.ColorSpace),
		PresentMode: fmt.Sprint(c.PresentMode),
		MinImages:   c.MinImages,
		MaxImages:   c.MaxImages,
		ImageCount:  c.ImageCount,
		Sharing:     fmt.Sprint(c.Sharing),
	}, nil
}

// Survey reports on every unit of instance against surface. Units are queried
// concurrently; reports come back in enumeration order. After the first failing
// query, the other units stop at their next native call.
func Survey(ctx context.Context, instance Instance, surface Surface, diag Diagnostics) ([]UnitReport, error) {
	if instance == nil {
		return nil, errors.Mark(errors.New("no instance"), ErrContext)
	}

	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, mark(err, ErrContext, "enumerate physical devices")
	}

	reports := make([]UnitReport, len(devices))
	group, ctx := errgroup.WithContext(ctx)
	for index, device := range devices {
		index, device := index, device
		group.Go(func() error {
			report, err := surveyUnit(ctx, device, surface)
			if err != nil {
				return err
			}
			report.Index = index
			reports[index] = report

			diag.info("surveyed unit", log.Fields{
				"index":    index,
				"unit":     report.Info.Name,
				"suitable": report.Suitable,
			})
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func surveyUnit(ctx context.Context, device PhysicalDevice, surface Surface) (UnitReport, error) {
	var report UnitReport
	var err error

	if err := ctx.Err(); err != nil {
		return report, err
	}
	report.Info, err = device.Info()
	if err != nil {
		return report, errors.Wrap(err, "read unit properties")
	}

	report.MissingExtensions, err = MissingExtensions(device, RequiredDeviceExtensions)
	if err != nil {
		return report, errors.Wrapf(err, "enumerate extensions of %s", report.Info.Name)
	}
	report.Suitable = len(report.MissingExtensions) == 0
	report.QueueFamilies = len(device.QueueFamilyProperties())

	if err := ctx.Err(); err != nil {
		return report, err
	}
	indices, err := ResolveQueueFamilies(device, surface, Diagnostics{})
	if err != nil {
		return report, err
	}
	if graphics, ok := indices.Graphics(); ok {
		report.GraphicsFamily = &graphics
	}
	if present, ok := indices.Present(); ok {
		report.PresentFamily = &present
	}

	if !report.Suitable || !indices.IsComplete() {
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	support, err := QuerySupport(device, surface, Diagnostics{})
	if err != nil {
		return report, err
	}
	if len(support.Formats) == 0 {
		return report, nil
	}

	format := ChooseFormat(support.Formats)
	sharing, _ := ChooseSharing(indices)
	report.Choice = &SurfaceChoice{
		Format:      format.Format,
		ColorSpace:  format.ColorSpace,
		PresentMode: ChoosePresentMode(support.PresentModes),
		MinImages:   support.Capabilities.MinImageCount,
		MaxImages:   support.Capabilities.MaxImageCount,
		ImageCount:  ChooseImageCount(support.Capabilities),
		Sharing:     sharing,
	}
	return report, nil
}
