// Package cli implements the dragsort command-line interface.
package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dragsort/pkg/buildinfo"
	"github.com/matzehuels/dragsort/pkg/errors"
	"github.com/matzehuels/dragsort/pkg/layout"
	"github.com/matzehuels/dragsort/pkg/sortable"
)

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalidArgs = 2
	ExitInterrupted = 130 // Standard shell convention for SIGINT
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance whose logger also serves the library
// packages.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	setLibraryLoggers(c.Logger)
	return c
}

// SetLogLevel updates the logger's level. Library loggers are derived copies
// and are replaced as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	setLibraryLoggers(c.Logger)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "dragsort",
		Short:        "Dragsort reorders lists by dragging",
		Long:         `Dragsort is a drag-and-sort engine. The CLI runs an interactive board in the terminal and inspects the layouts the engine positions items with.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints errors without codes
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.playCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setLibraryLoggers points the library packages at l.
func setLibraryLoggers(l *log.Logger) {
	sortable.SetLogger(l.WithPrefix("sortable"))
	layout.SetLogger(l.WithPrefix("layout"))
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsInput(err):
		return ExitInvalidArgs
	default:
		return ExitFailure
	}
}

// ErrorMessage formats err for the terminal, without error codes.
func ErrorMessage(err error) string {
	return styleIconError.Render(iconError) + " " + errors.UserMessage(err)
}
