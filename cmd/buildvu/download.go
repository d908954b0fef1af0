package main

import (
	"github.com/spf13/cobra"

	client "github.com/hsn0918/buildvu-client"
)

func newDownloadCmd(opts *cliOptions) *cobra.Command {
	var art artifactOptions

	cmd := &cobra.Command{
		Use:               "download <download-url>",
		Short:             "Download the archive of a finished conversion",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: flagsInsteadOfFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			if err := art.validate(); err != nil {
				return err
			}

			cli, err := buildClient(cmd, opts)
			if err != nil {
				return recordFailure(opts, "", target, err)
			}

			ctx := cmd.Context()
			bkt, err := art.openBucket(ctx)
			if err != nil {
				return recordFailure(opts, "", art.bucketURL, err)
			}
			if bkt != nil {
				defer bkt.Close()
			}

			result := &client.Result{DownloadURL: target}
			if err := saveArtifact(ctx, cmd, cli, bkt, result, art, ""); err != nil {
				return recordFailure(opts, "", target, err)
			}
			return nil
		},
	}

	art.addFlags(cmd)

	return cmd
}
