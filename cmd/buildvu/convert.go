package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	client "github.com/hsn0918/buildvu-client"
	"github.com/hsn0918/buildvu-client/internal/sink"
)

func newConvertCmd(opts *cliOptions) *cobra.Command {
	co := &convertOptions{
		opts: opts,
	}

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert local files or remote URLs",
		Example: `  buildvu convert --url http://localhost:8080/microservice-example report.pdf
  buildvu convert --source-url https://example.com/a.pdf --download -o out/
  buildvu convert --param org.jpedal.pdf2html.textMode=svg_realtext *.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := co.complete(args); err != nil {
				return recordFailure(opts, "", "", err)
			}
			return co.run(cmd)
		},
	}

	co.addFlags(cmd)

	return cmd
}

type convertOptions struct {
	sourceURLs  []string
	params      map[string]string
	callbackURL string
	download    bool
	format      string
	concurrency int
	artifact    artifactOptions
	opts        *cliOptions

	jobs         []convertJob
	outputFormat outputFormat
}

type convertJob struct {
	label  string
	params client.Parameters
}

func (o *convertOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&o.sourceURLs, "source-url", nil, "Remote document for the service to fetch (repeatable)")
	cmd.Flags().StringToStringVarP(&o.params, "param", "P", nil, "Extra conversion parameter key=value (repeatable)")
	cmd.Flags().StringVar(&o.callbackURL, "callback-url", "", "URL the service notifies on completion; returns after the first status poll")
	cmd.Flags().BoolVar(&o.download, "download", false, "Download the converted archive when ready")
	cmd.Flags().StringVar(&o.format, "format", string(formatJSON), "Result output format: json|yaml")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 3, "Number of conversions run at once for multiple inputs")
	o.artifact.addFlags(cmd)

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func (o *convertOptions) complete(files []string) error {
	if len(files) == 0 && len(o.sourceURLs) == 0 {
		return errors.New("at least one file or --source-url is required")
	}

	format, err := parseOutputFormat(o.format)
	if err != nil {
		return err
	}
	o.outputFormat = format

	if o.concurrency <= 0 {
		o.concurrency = 3
	}

	if err := o.artifact.validate(); err != nil {
		return err
	}

	o.jobs = o.jobs[:0]
	for _, file := range files {
		o.jobs = append(o.jobs, convertJob{label: file, params: o.buildParams(client.UploadParameters(file))})
	}
	for _, source := range o.sourceURLs {
		o.jobs = append(o.jobs, convertJob{label: source, params: o.buildParams(client.DownloadParameters(source))})
	}

	if o.download && o.artifact.filename != "" && len(o.jobs) > 1 {
		return errors.New("--filename can only be used with a single input")
	}

	return nil
}

// buildParams layers --param and --callback-url over the input parameters.
// The input mode keys always win.
func (o *convertOptions) buildParams(input client.Parameters) client.Parameters {
	params := make(client.Parameters, len(o.params)+len(input)+1)
	maps.Copy(params, o.params)
	maps.Copy(params, input)
	if o.callbackURL != "" {
		params.WithCallbackURL(o.callbackURL)
	}
	return params
}

func (o *convertOptions) run(cmd *cobra.Command) error {
	cli, err := buildClient(cmd, o.opts)
	if err != nil {
		return recordFailure(o.opts, "", "", err)
	}

	ctx := cmd.Context()

	var bkt *sink.Bucket
	if o.download {
		if bkt, err = o.artifact.openBucket(ctx); err != nil {
			return recordFailure(o.opts, "", o.artifact.bucketURL, err)
		}
		if bkt != nil {
			defer bkt.Close()
		}
	}

	if len(o.jobs) == 1 {
		return o.handleJob(ctx, cmd, cli, bkt, o.jobs[0])
	}

	return o.runBatch(ctx, cmd, cli, bkt)
}

func (o *convertOptions) runBatch(ctx context.Context, cmd *cobra.Command, cli client.Client, bkt *sink.Bucket) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)

	var (
		errs []error
		mu   sync.Mutex
	)

	for _, job := range o.jobs {
		job := job
		eg.Go(func() error {
			if err := o.handleJob(ctx, cmd, cli, bkt, job); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if len(errs) > 0 {
		return fmt.Errorf("batch completed with %d errors, first: %w", len(errs), errs[0])
	}

	return nil
}

// handleJob runs one conversion from upload to optional download.
func (o *convertOptions) handleJob(ctx context.Context, cmd *cobra.Command, cli client.Client, bkt *sink.Bucket, job convertJob) error {
	uuid, err := cli.Submit(ctx, job.params)
	if err != nil {
		logEvent(cmd, slog.LevelError, "", "Upload failed", slog.String("input", job.label), slog.Any("error", err))
		return recordFailure(o.opts, "", job.label, fmt.Errorf("[%s] %w", job.label, err))
	}

	logEvent(cmd, slog.LevelInfo, uuid, "Upload success", slog.String("input", job.label))

	result, err := cli.WaitForConversion(ctx, uuid, job.params)
	if err != nil {
		logEvent(cmd, slog.LevelError, uuid, "Conversion failed", slog.String("input", job.label), slog.Any("error", err))
		return recordFailure(o.opts, uuid, job.label, fmt.Errorf("[%s] %w", job.label, err))
	}

	if job.params.HasCallback() && result.State != client.StateProcessed {
		logEvent(cmd, slog.LevelInfo, uuid, "Conversion continues, completion will be sent to callback",
			slog.String("input", job.label),
			slog.String("state", string(result.State)),
		)
	} else {
		logEvent(cmd, slog.LevelInfo, uuid, "Conversion finished",
			slog.String("input", job.label),
			slog.String("preview", result.PreviewURL),
			slog.String("download", result.DownloadURL),
		)
	}

	if err := writeResult(cmd.OutOrStdout(), o.outputFormat, result); err != nil {
		return err
	}

	if !o.download {
		return nil
	}

	if result.DownloadURL == "" {
		logEvent(cmd, slog.LevelInfo, uuid, "Nothing to download yet", slog.String("input", job.label))
		return nil
	}

	if err := saveArtifact(ctx, cmd, cli, bkt, result, o.artifact, uuid); err != nil {
		return recordFailure(o.opts, uuid, job.label, fmt.Errorf("[%s] %w", job.label, err))
	}

	return nil
}
