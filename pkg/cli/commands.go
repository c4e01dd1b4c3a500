package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/computerscienceiscool/tracestack/pkg/config"
	"github.com/computerscienceiscool/tracestack/pkg/handler"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <kind> [message...]",
	Short: "Print the search URL for an error",
	Example: `  tracestack url '*fs.PathError' open config.yaml: no such file or directory
  tracestack --engine stackoverflow url panic assignment to entry in nil map`,
	Args: cobra.MinimumNArgs(1),
	RunE: runURL,
}

var searchCmd = &cobra.Command{
	Use:   "search <kind> [message...]",
	Short: "Ask, then open the search for an error",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tracestack configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with the current settings",
	Long: `Write a configuration file with the current settings.

Without a path the file is the one tracestack reads: --config if given,
else tracestack.yaml in the current directory or in $HOME, else a new
tracestack.yaml in the current directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	searchCmd.Flags().Bool("print", false, "Print the URL instead of opening a browser")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

// descriptorFromArgs builds a failure from "<kind> [message...]"
func descriptorFromArgs(args []string) handler.Descriptor {
	return handler.Descriptor{
		Kind:  args[0],
		Value: strings.Join(args[1:], " "),
	}
}

func runURL(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	h, err := handler.New(cfg.Handler)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), h.URL(descriptorFromArgs(args)))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	printOnly, _ := cmd.Flags().GetBool("print")
	h, err := sess.newHandler(cmd.InOrStdin(), cmd.ErrOrStderr(), openerFor(printOnly, cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	return h.Handle(descriptorFromArgs(args))
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configInitPath(args)
	force, _ := cmd.Flags().GetBool("force")

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	if err := writeConfigFile(cfg, path, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// configInitPath picks the file config init writes: the argument, then
// --config, then the file viper would read.
func configInitPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	if cfgFile != "" {
		return cfgFile
	}
	return config.GetConfigPath()
}

// writeConfigFile saves cfg unless path exists and force is unset
func writeConfigFile(cfg *config.File, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}
