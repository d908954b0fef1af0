package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "BUILDVU"

// loadConfig layers the config file and BUILDVU_* environment variables
// under the flags in fs. Flags set on the command line win.
func loadConfig(fs *pflag.FlagSet, opts *cliOptions) error {
	v := viper.New()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
	} else {
		v.SetConfigName("buildvu")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "buildvu"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	opts.url = v.GetString("url")
	opts.username = v.GetString("username")
	opts.password = v.GetString("password")
	opts.endpoint = v.GetString("endpoint")
	opts.timeout = v.GetDuration("timeout")
	opts.conversionTimeout = v.GetInt("conversion-timeout")
	opts.failLogPath = v.GetString("fail-log")
	opts.verbose = v.GetBool("verbose")

	return nil
}
