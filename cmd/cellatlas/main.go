// cellatlas builds and inspects glyph atlases.
//
// Usage:
//
//	cellatlas dump [file]     - Write the atlas for the configured font as a PNG
//	cellatlas render [file]   - Render a sample screen and print cache statistics
//
// Global flags:
//
//	--config <path>      - YAML config file (default: ~/.cellatlas/config.yaml)
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sparques/cellatlas"
)

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cellatlas",
	Short: "Build and inspect glyph atlases",
	Long: `cellatlas rasterizes the glyph atlas a cell renderer uses for a font
and renders sample screens with it.

Examples:
  cellatlas dump atlas.png
  cellatlas render --cols 80 --rows 24 screen.png
  cellatlas --config ./config.yaml --log-level info render`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(renderCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cellatlas",
		Level:           level,
	})
	cellatlas.SetLogger(slog.New(logger))
	return nil
}

// newRegistry loads the config and returns a registry for it.
func newRegistry() (*cellatlas.Registry, error) {
	cfg, err := cellatlas.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	return cellatlas.NewRegistry(cfg)
}

func writePNG(path string, enc func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
