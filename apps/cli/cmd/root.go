package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqspec/packages/core/config"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	envFileFlag string
	noColorFlag bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "reqspec",
	Short: "Declarative HTTP request specs. Build, resolve, send.",
	Long: `reqspec composes HTTP requests from YAML request files and fluent
defaults: path templating, query and header merging, one body variant,
reusable handler fragments. Resolve a request to inspect exactly what
would go on the wire, or send it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to a reqspec config file")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "load environment variables from this file")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output and debug logging")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the optional .env file and config file, then applies config
// values onto the process-wide defaults store before any spec resolves.
func setup(cmd *cobra.Command, args []string) error {
	if noColorFlag {
		color.NoColor = true
	}
	if verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if envFileFlag != "" {
		if err := godotenv.Load(envFileFlag); err != nil {
			return err
		}
	} else if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	fc, err := config.LoadFile(configFlag)
	if err != nil {
		return err
	}
	fc.Apply(config.Default())
	return nil
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: noColorFlag}
	return zerolog.New(writer).With().Timestamp().Logger()
}
