package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"veye-site/internal/assistant"
	"veye-site/internal/knowledge"
	"veye-site/pkg/config"

	"github.com/spf13/cobra"
)

type askResult struct {
	Text          string `json:"text"`
	IsHandoff     bool   `json:"isHandoff"`
	HandoffReason string `json:"handoffReason,omitempty"`
	RedirectHref  string `json:"redirectHref"`
	Source        string `json:"source"`
}

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   `ask "<message>"`,
		Short: "Route a message through the site assistant and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			provider := knowledge.NewFileProvider(opts.candidates(cfg), opts.logger())
			enforcer := assistant.NewEnforcer(assistant.EnforcerConfig{
				MaxSentences: cfg.Assistant.MaxSentences,
				TruncateTo:   cfg.Assistant.TruncateTo,
				LinkBase:     cfg.Site.LinkBase,
			})
			router := assistant.NewRouter(provider, enforcer)

			message := strings.Join(args, " ")
			answer, err := router.Answer(cmd.Context(), message)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(askResult{
				Text:          answer.Text,
				IsHandoff:     answer.IsHandoff,
				HandoffReason: answer.HandoffReason,
				RedirectHref:  answer.RedirectHref,
				Source:        string(answer.Source),
			})
		},
	}
}
