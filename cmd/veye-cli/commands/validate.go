package commands

import (
	"fmt"

	"veye-site/internal/knowledge"
	"veye-site/pkg/config"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the knowledge document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			doc, err := knowledge.Load(opts.candidates(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "knowledge document OK\n")
			fmt.Fprintf(out, "  brand:                  %s\n", doc.Brand.Name)
			fmt.Fprintf(out, "  version:                %s\n", doc.Meta.Version)
			fmt.Fprintf(out, "  last updated:           %s\n", doc.Meta.LastUpdated)
			fmt.Fprintf(out, "  systems:                %d\n", len(doc.SystemsWeBuild))
			fmt.Fprintf(out, "  faq entries:            %d\n", len(doc.FAQ))
			fmt.Fprintf(out, "  preferred explanations: %d\n", len(doc.ApprovedLanguage.PreferredExplanations))
			fmt.Fprintf(out, "  handoff triggers:       %d\n", len(doc.HandoffRules.HumanHandoffTriggers))
			return nil
		},
	}
}
