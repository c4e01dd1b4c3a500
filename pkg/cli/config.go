package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/computerscienceiscool/tracestack/pkg/browser"
	"github.com/computerscienceiscool/tracestack/pkg/config"
	"github.com/computerscienceiscool/tracestack/pkg/handler"
	"github.com/computerscienceiscool/tracestack/pkg/logger"
	"github.com/computerscienceiscool/tracestack/pkg/prompt"
	"github.com/computerscienceiscool/tracestack/pkg/render"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// initConfig reads in .env, the config file and ENV variables if set
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Error reading .env file: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			fmt.Printf("Error reading config file: %v\n", err)
		}
		// Config file not found; using defaults and flags
	}
}

// buildConfig constructs a config.File from Viper values
func buildConfig() (*config.File, error) {
	cfg := config.Load()

	if viper.GetBool("verbose") {
		cfg.Logging.Level = "debug"
	}

	if _, err := logger.ParseLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("invalid logging.level: %w", err)
	}

	return cfg, nil
}

// session is what every command needs to run a handling cycle
type session struct {
	cfg    *config.File
	log    *slog.Logger
	closer io.Closer
}

func newSession() (*session, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	log, closer, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &session{cfg: cfg, log: log, closer: closer}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// newHandler builds a handler for traces that were already shown on errOut
func (s *session) newHandler(in io.Reader, errOut io.Writer, opener handler.Opener) (*handler.Handler, error) {
	return handler.New(s.cfg.Handler,
		handler.WithRenderer(render.NewSummary(errOut)),
		handler.WithPrompter(prompt.New(in, errOut)),
		handler.WithOpener(opener),
		handler.WithLogger(s.log),
	)
}

// openerFor returns the browser opener, or a printer when printOnly is set
func openerFor(printOnly bool, out io.Writer) handler.Opener {
	if printOnly {
		return browser.NewPrinter(out)
	}
	return browser.New()
}
