package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SMillerDev/drafter/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the drafter version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "drafter %s (%s, %s, %s/%s)\n",
				version.Version, version.Revision, version.GoVersion, version.GoOS, version.GoArch)

			return nil
		},
	}
}
