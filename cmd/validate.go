package cmd

import (
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [template]",
		Short: "Validate every pj-creater.json of a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generator().Validate(cmd.Context(), firstArg(args), updateFlag(cmd))
		},
	}
}
