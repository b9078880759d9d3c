// Package cmd provides the root command and CLI setup for qsim.
package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/backend"
)

var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qsim",
		Short: "Noise-aware quantum circuit simulator",
		Long: `Qsim simulates quantum circuits on noisy hardware models. Circuits are
described in an OPENQASM 2.0 subset, optionally annotated with noise
directives; runs evolve a density matrix through configurable Kraus
channels and sample measurement outcomes.

When a remote execution service is configured, qsim runs the circuit on
both the local simulator and the remote service and compares the outcome
distributions side by side.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Debug level is opt-in; output is the
// human console writer on stderr so tables on stdout stay pipeable.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// sessions builds the simulated session and, when a remote URL is
// configured, the remote session with the requested retry budget.
func sessions(logger zerolog.Logger, remoteURL string, timeout time.Duration, retries int) (simulated, remote *backend.Session) {
	simulated = backend.NewSession(backend.NewLocal(logger), backend.WithSessionLogger(logger))

	if remoteURL == "" {
		return simulated, nil
	}
	policy := backend.DefaultRetryPolicy()
	if retries > 0 {
		policy.MaxAttempts = retries
	}
	remote = backend.NewSession(
		backend.NewRemote(remoteURL, logger),
		backend.WithSessionLogger(logger),
		backend.WithRetryPolicy(policy),
		backend.WithTimeout(timeout),
	)
	return simulated, remote
}
