package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/cia-forge/internal/config"
	"github.com/oshokin/cia-forge/internal/logger"
	"github.com/oshokin/cia-forge/internal/service/builder"
	"github.com/oshokin/cia-forge/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel sets the minimum logging level for this run.
	logLevel string
	// outputDir overrides the configured CIA output directory.
	outputDir string
	// elfPath overrides the configured EasyRPG Player ELF.
	elfPath string
	// rsfTemplate overrides the configured RSF template.
	rsfTemplate string
	// rtpDir overrides the configured runtime package directory.
	rtpDir string
	// noRTP disables runtime package copying.
	noRTP bool

	// rootCmd represents the base command for building CIA packages.
	rootCmd = &cobra.Command{
		Use:   "cia-forge",
		Short: "Package RPG Maker 2000/2003 games as installable 3DS CIA files",
		Long: "cia-forge turns RPG Maker 2000/2003 game directories into installable " +
			"3DS CIA packages using EasyRPG Player. It requires bannertool, 3dstool " +
			"and makerom on PATH; run `cia-forge check` to verify the setup.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
	}
)

// Execute runs the cia-forge CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildOptions collects the shared flags into service options.
func buildOptions() *builder.Options {
	return &builder.Options{
		ConfigPath:  configPath,
		OutputDir:   outputDir,
		ElfPath:     elfPath,
		RSFTemplate: rsfTemplate,
		RTPDir:      rtpDir,
		NoRTP:       noRTP,
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (default "+config.DefaultConfigFilename+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", "",
		"CIA output directory (default out/ next to the executable)")
	rootCmd.PersistentFlags().StringVar(&elfPath, "elf", "",
		"path to the EasyRPG Player ELF file")
	rootCmd.PersistentFlags().StringVar(&rsfTemplate, "rsf", "",
		"path to the ROM spec template (gets each game's unique ID)")
	rootCmd.PersistentFlags().StringVar(&rtpDir, "rtp-dir", "",
		"directory containing runtime packages, one subdirectory per variant")
	rootCmd.PersistentFlags().BoolVar(&noRTP, "no-rtp", false,
		"don't copy RTP files when packaging")
}
