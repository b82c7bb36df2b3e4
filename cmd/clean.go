package cmd

import (
	"github.com/spf13/cobra"
)

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove every cached template repository",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.cache.Clean(); err != nil {
				return err
			}
			a.ui.Successf("Removed template cache %s", a.cache.Dir)
			return nil
		},
	}
}
