package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/lmittmann/tint"
	"github.com/tebeka/atexit"
)

func newLogger(w io.Writer, level string, noColor bool) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      l,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	})), nil
}

// startCPUProfile starts profiling into path. The profile is flushed when
// the process exits through atexit.
func startCPUProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}

	atexit.Register(func() {
		pprof.StopCPUProfile()

		err := f.Close()
		if err != nil {
			panic(err)
		}
	})

	return nil
}
