package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/computerscienceiscool/tracestack/pkg/handler"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run -- <command> [args...]",
	Short: "Run a command and search for the panic it dies with",
	Long: `run starts the command with your terminal attached and watches its stderr.
If the command exits with a Go panic or fatal error, tracestack offers to
search for it. tracestack exits with the command's exit status.`,
	Example: `  tracestack run -- go run ./cmd/server
  tracestack --skip run -- ./bin/worker --once`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("print", false, "Print the URL instead of opening a browser")
}

func runRun(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	status, output, err := runChild(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	sess.log.Debug("command exited", "command", args[0], "status", status)
	if status == 0 {
		return nil
	}

	if d, err := handler.ParsePanic(output); err == nil {
		printOnly, _ := cmd.Flags().GetBool("print")
		h, err := sess.newHandler(cmd.InOrStdin(), cmd.ErrOrStderr(), openerFor(printOnly, cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		if err := h.Handle(d); err != nil {
			return err
		}
	}

	return &ExitError{Code: status}
}

// runChild runs args[0] with args[1:], copying its stderr to errOut.
// It returns the exit status and everything written to stderr.
func runChild(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) (int, string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var captured bytes.Buffer
	child := exec.CommandContext(ctx, args[0], args[1:]...)
	child.Stdin = in
	child.Stdout = out
	child.Stderr = io.MultiWriter(errOut, &captured)

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), captured.String(), nil
		}
		return 0, "", fmt.Errorf("cannot run %s: %w", args[0], err)
	}
	return 0, captured.String(), nil
}
