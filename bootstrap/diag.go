package bootstrap

import (
	"time"

	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
)

// Diagnostics gates informational output from the bootstrap operations. The zero
// value is disabled. It never changes what an operation does, only what it reports.
type Diagnostics struct {
	Enabled bool
	Logger  log.FieldLogger
}

// NewDiagnostics returns Diagnostics writing to logger, or to the logrus standard
// logger if logger is nil.
func NewDiagnostics(enabled bool, logger log.FieldLogger) Diagnostics {
	return Diagnostics{Enabled: enabled, Logger: logger}
}

func (d Diagnostics) entry() log.FieldLogger {
	if d.Logger == nil {
		return log.StandardLogger()
	}
	return d.Logger
}

func (d Diagnostics) with(fields log.Fields) Diagnostics {
	if !d.Enabled {
		return d
	}
	return Diagnostics{Enabled: true, Logger: d.entry().WithFields(fields)}
}

func (d Diagnostics) info(msg string, fields log.Fields) {
	if !d.Enabled {
		return
	}
	d.entry().WithFields(fields).Info(msg)
}

func (d Diagnostics) warn(err error, msg string, fields log.Fields) {
	if !d.Enabled {
		return
	}
	d.entry().WithFields(fields).WithError(err).Warn(msg)
}

// stage starts timing a native-call stage; calling the returned func logs the
// elapsed time at debug level.
func (d Diagnostics) stage(name string) func() {
	if !d.Enabled {
		return func() {}
	}

	start := hrtime.Now()
	return func() {
		elapsed := hrtime.Since(start)
		d.entry().WithFields(log.Fields{
			"stage":   name,
			"elapsed": elapsed.Round(time.Microsecond),
		}).Debug("stage complete")
	}
}
