package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ankit-chaubey/exifkit/core/config"
	"github.com/ankit-chaubey/exifkit/core/logging"
	"github.com/ankit-chaubey/exifkit/exif"
	"github.com/spf13/cobra"
)

var (
	appVersion = "0.2.0"
	cfgFile    string
	logLevel   string

	cfg     *config.Config
	service *exif.Service
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to execute command", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "exifkit",
	Short: "Read EXIF, IPTC and XMP metadata from images",
	Long: `exifkit reads the EXIF, IPTC and (optionally) XMP metadata of JPEG,
TIFF, PNG and WebP images, and of cover art embedded in audio files.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appVersion)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(prettyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL)")
}

// setup loads the configuration and wires the logger and the service.
func setup(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if cfgFile == "" && logLevel == "" {
		level = logging.LevelFromEnv(level)
	}
	logger := logging.CreateLogger(level)
	slog.SetDefault(logger)
	service = exif.NewService(logger)
	return nil
}
