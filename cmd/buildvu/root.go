package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	client "github.com/hsn0918/buildvu-client"
)

type cliOptions struct {
	configFile        string
	url               string
	username          string
	password          string
	endpoint          string
	timeout           time.Duration
	conversionTimeout int
	failLogPath       string
	verbose           bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "buildvu",
		Short: "Convert documents with a BuildVu web service",
		Long: `buildvu uploads documents (or remote URLs) to a BuildVu conversion
service, waits for the conversion to finish and optionally downloads the
resulting archive.

Settings can come from flags, BUILDVU_* environment variables or a
buildvu.yaml config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd.Root().PersistentFlags(), opts)
		},
	}

	addGlobalFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newDownloadCmd(opts))
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func addGlobalFlags(flags *pflag.FlagSet, opts *cliOptions) {
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./buildvu.yaml or ~/.config/buildvu/buildvu.yaml)")
	flags.StringVar(&opts.url, "url", "", "Base URL of the conversion service, e.g. http://localhost:8080/microservice-example")
	flags.StringVar(&opts.username, "username", "", "Basic auth username")
	flags.StringVar(&opts.password, "password", "", "Basic auth password (or set BUILDVU_PASSWORD)")
	flags.StringVar(&opts.endpoint, "endpoint", client.DefaultEndpoint, "Conversion resource under the base URL")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultRequestTimeout, "Timeout for each HTTP request")
	flags.IntVar(&opts.conversionTimeout, "conversion-timeout", client.DefaultConversionTimeout, "Seconds to wait for a conversion to finish")
	flags.StringVar(&opts.failLogPath, "fail-log", "fail.log", "Path to write failed task logs")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every status poll")
}

func (o *cliOptions) validate() error {
	if o.url == "" {
		return fmt.Errorf("service url is required (flag --url, BUILDVU_URL or url in config)")
	}
	if o.password != "" && o.username == "" {
		return fmt.Errorf("--password needs --username")
	}
	return nil
}
