// Package cli implements the decima command line tools.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/logicossoftware/go-decima"
)

var (
	configPath  string
	rootDir     string
	variantFlag string
	typeMapPath string
	lenient     bool
	verbose     bool

	// logger is the logger of the running command, flushed before exit.
	logger = zap.NewNop()
	osExit = os.Exit
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "decima",
	Short: "Inspect and repack Decima engine .core containers",
	Long: "Tools for the .core resource containers of Horizon Zero Dawn and Death Stranding: " +
		"list records, dump and repack text, and print credits, sentences and textures.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./decima.yaml if present)")
	RootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Extracted game directory (overrides config)")
	RootCmd.PersistentFlags().StringVar(&variantFlag, "variant", "", "Game build: hzd-pc, hzd-ps4 or ds-pc (overrides config)")
	RootCmd.PersistentFlags().StringVarP(&typeMapPath, "type-map", "t", "", "YAML type map file (overrides config)")
	RootCmd.PersistentFlags().BoolVar(&lenient, "lenient", false, "Warn instead of failing when a record is not fully decoded")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

const defaultConfig = "decima.yaml"

// options merges the config file with the command line flags, which win.
func options() ([]decima.Option, *zap.Logger, error) {
	log, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	logger = log
	opts := []decima.Option{decima.WithLogger(log)}

	path := configPath
	if path == "" {
		if _, err := os.Stat(defaultConfig); err == nil {
			path = defaultConfig
		}
	}
	if path != "" {
		cfg, err := decima.LoadConfig(path)
		if err != nil {
			return nil, nil, err
		}
		fileOpts, err := cfg.Options()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, fileOpts...)
	}

	if variantFlag != "" {
		v, err := decima.ParseVariant(variantFlag)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, decima.WithVariant(v))
	}
	if rootDir != "" {
		opts = append(opts, decima.WithRootDir(rootDir))
	}
	if typeMapPath != "" {
		m, err := decima.LoadTypeMap(typeMapPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, decima.WithTypeMap(m))
	}
	if lenient {
		opts = append(opts, decima.WithLenientSizes(true))
	}
	return opts, log, nil
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}

func openSession() (*decima.Session, *zap.Logger) {
	opts, log, err := options()
	if err != nil {
		exitErr("configure", err)
	}
	return decima.NewSession(opts...), log
}

// exitCode maps the error taxonomy to distinct process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, decima.ErrCorruptContainer):
		return 2
	case errors.Is(err, decima.ErrSizeMismatch):
		return 3
	case errors.Is(err, decima.ErrDanglingReference):
		return 4
	case errors.Is(err, decima.ErrMissingExternalFile):
		return 5
	case errors.Is(err, decima.ErrUnrecognizedAssertion):
		return 6
	}
	return 1
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	_ = logger.Sync()
	osExit(exitCode(err))
}
