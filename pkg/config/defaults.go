package config

import (
	"github.com/computerscienceiscool/tracestack/pkg/handler"
	"github.com/computerscienceiscool/tracestack/pkg/logger"
	"github.com/spf13/viper"
)

// File is the layout of tracestack.yaml
type File struct {
	Handler handler.Config `yaml:"handler" mapstructure:"handler"`
	Logging logger.Config  `yaml:"logging" mapstructure:"logging"`
}

// Default returns the configuration used when nothing is set
func Default() *File {
	return &File{
		Handler: handler.Config{
			Skip:     DefaultSkip,
			Engine:   DefaultEngine,
			Language: DefaultLanguage,
		},
		Logging: logger.Config{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: DefaultLogOutput,
		},
	}
}

// SetViperDefaults sets all default configuration values in Viper
func SetViperDefaults() {
	// Handler defaults
	viper.SetDefault("handler.skip", DefaultSkip)
	viper.SetDefault("handler.engine", DefaultEngine)
	viper.SetDefault("handler.language", DefaultLanguage)

	// Logging defaults
	viper.SetDefault("logging.level", DefaultLogLevel)
	viper.SetDefault("logging.format", DefaultLogFormat)
	viper.SetDefault("logging.output", DefaultLogOutput)
}

// Load builds the configuration from Viper (flags, env, config file, defaults)
func Load() *File {
	cfg := Default()

	if viper.IsSet("handler.skip") {
		cfg.Handler.Skip = viper.GetBool("handler.skip")
	}
	if viper.IsSet("handler.engine") {
		cfg.Handler.Engine = viper.GetString("handler.engine")
	}
	if viper.IsSet("handler.language") {
		cfg.Handler.Language = viper.GetString("handler.language")
	}
	if viper.IsSet("logging.level") {
		cfg.Logging.Level = viper.GetString("logging.level")
	}
	if viper.IsSet("logging.format") {
		cfg.Logging.Format = viper.GetString("logging.format")
	}
	if viper.IsSet("logging.output") {
		cfg.Logging.Output = viper.GetString("logging.output")
	}

	return cfg
}
