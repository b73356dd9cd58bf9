package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// config holds the values of all flags.
type config struct {
	size         int
	core         int
	logLevel     string
	noColor      bool
	sweep        []int
	sweepDefault bool
	simulate     bool
	cpuProfile   string
}

var cfg config

// envFlags maps environment variables to the flags they provide defaults
// for.
var envFlags = []struct {
	env  string
	flag string
}{
	{"TRANSPOSEBENCH_SIZE", "size"},
	{"TRANSPOSEBENCH_CORE", "core"},
	{"TRANSPOSEBENCH_LOG_LEVEL", "log-level"},
}

// applyEnv loads .env from the working directory if there is one and uses
// the environment for flags not given on the command line.
func applyEnv(cmd *cobra.Command, _ []string) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	for _, e := range envFlags {
		f := cmd.Flags().Lookup(e.flag)
		if f == nil || f.Changed {
			continue
		}

		v, ok := os.LookupEnv(e.env)
		if !ok {
			continue
		}

		if err := cmd.Flags().Set(e.flag, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}

	return nil
}

// sizeFromArgs returns the positional size if there is one, else def.
func sizeFromArgs(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}

	size, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("matrix size must be an integer, got %q", args[0])
	}

	return size, nil
}
