package main

import (
	"fmt"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/buildvu-client"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of buildvu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "buildvu %s (%s API %s)\n", version, client.ServiceName, client.APIVersion)
			return err
		},
	}
}
