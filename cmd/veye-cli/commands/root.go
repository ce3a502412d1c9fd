// Package commands implements the veye-cli operator commands.
package commands

import (
	"veye-site/internal/knowledge"
	"veye-site/pkg/config"
	"veye-site/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	knowledgePath string
	verbose       bool
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "veye-cli",
		Short: "Operator tools for the Veye Media site backend",
		Long: `veye-cli validates the assistant knowledge document, asks the site assistant
questions offline and manages back-office admin accounts.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.knowledgePath, "path", "p", "", "knowledge.json path (defaults to KNOWLEDGE_PATH and the standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newAskCmd(opts),
		newAdminCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := logger.New("debug", "console")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (o *options) candidates(cfg *config.Config) []string {
	if o.knowledgePath != "" {
		return []string{o.knowledgePath}
	}
	return append(cfg.Knowledge.Paths, knowledge.DefaultCandidates()...)
}
