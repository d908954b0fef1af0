package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newStatusCmd(opts *cliOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:               "status <uuid>",
		Short:             "Print the current state of a conversion",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: flagsInsteadOfFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			uuid := args[0]

			outFmt, err := parseOutputFormat(format)
			if err != nil {
				return err
			}

			cli, err := buildClient(cmd, opts)
			if err != nil {
				return recordFailure(opts, uuid, "", err)
			}

			result, err := cli.GetStatus(cmd.Context(), uuid)
			if err != nil {
				return recordFailure(opts, uuid, cli.Endpoint(), err)
			}

			logEvent(cmd, slog.LevelInfo, uuid, "Conversion status", slog.String("state", string(result.State)))

			return writeResult(cmd.OutOrStdout(), outFmt, result)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatJSON), "Result output format: json|yaml")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}
