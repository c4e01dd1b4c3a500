package cli

import (
	"fmt"

	"github.com/computerscienceiscool/tracestack/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tracestack",
	Short: "Search the web for the error that just crashed your program",
	Long: `tracestack turns an uncaught Go panic into a web search. It prints the
traceback, asks whether to search for the error and opens the search in your
browser. Use "tracestack run" to watch any command, or import the tracestack
package to guard a program from the inside.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExitError carries the exit status of a monitored command
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./tracestack.yaml or $HOME/tracestack.yaml)")

	// Handler flags
	rootCmd.PersistentFlags().Bool("skip", false, "Open the search without asking")
	rootCmd.PersistentFlags().String("engine", config.DefaultEngine, "Search engine: default, google or stackoverflow")
	rootCmd.PersistentFlags().String("language", config.DefaultLanguage, "Language tag added to every query")

	// Output flags
	rootCmd.PersistentFlags().Bool("verbose", false, "Log each step of the handling cycle")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format: text or json")
	rootCmd.PersistentFlags().String("log-output", config.DefaultLogOutput, "Log destination: stderr, stdout or a file path")

	// Bind flags to viper
	viper.BindPFlag("handler.skip", rootCmd.PersistentFlags().Lookup("skip"))
	viper.BindPFlag("handler.engine", rootCmd.PersistentFlags().Lookup("engine"))
	viper.BindPFlag("handler.language", rootCmd.PersistentFlags().Lookup("language"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("logging.output", rootCmd.PersistentFlags().Lookup("log-output"))

	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set all default values in Viper
	config.SetViperDefaults()

	// Set default config file name
	viper.SetConfigName(config.ConfigName)
	viper.SetConfigType(config.ConfigType)
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	// Same variables the library reads, plus TRACESTACK_LOGGING_LEVEL and friends
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	viper.BindEnv("handler.skip", config.EnvPrefix+"_SKIP")
	viper.BindEnv("handler.engine", config.EnvPrefix+"_ENGINE")
	viper.BindEnv("handler.language", config.EnvPrefix+"_LANGUAGE")
}
