package logging

import (
	"fmt"
	"io"
	"time"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New creates a logfmt logger writing to w. Only warnings and errors pass
// unless verbose is set.
func New(w io.Writer, verbose bool) gokitlog.Logger {
	logger := gokitlog.NewLogfmtLogger(gokitlog.NewSyncWriter(w))
	logger = gokitlog.With(logger, "ts", gokitlog.DefaultTimestampUTC, "caller", gokitlog.DefaultCaller)

	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowWarn())
}

// OrNop returns logger, or a no-op logger if it is nil.
func OrNop(logger gokitlog.Logger) gokitlog.Logger {
	if logger == nil {
		return gokitlog.NewNopLogger()
	}
	return logger
}

// TimeFunction wraps fn with start and completion debug lines
func TimeFunction(logger gokitlog.Logger, name string, fn func() error) error {
	startTime := time.Now()
	level.Debug(logger).Log("msg", fmt.Sprintf("Starting %s", name))

	err := fn()

	elapsed := time.Since(startTime)
	if err != nil {
		level.Warn(logger).Log("msg", fmt.Sprintf("Completed %s with error", name), "err", err, "took", elapsed)
	} else {
		level.Debug(logger).Log("msg", fmt.Sprintf("Completed %s successfully", name), "took", elapsed)
	}

	return err
}
