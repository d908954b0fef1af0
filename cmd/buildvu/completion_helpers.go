package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagsInsteadOfFiles completes to the command's flags for commands whose
// positional argument is an opaque token such as a uuid or a URL.
func flagsInsteadOfFiles(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	flags := make([]string, 0, 16)
	add := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		if f.Shorthand != "" {
			flags = append(flags, "-"+f.Shorthand)
		}
		flags = append(flags, "--"+f.Name)
	}

	cmd.NonInheritedFlags().VisitAll(add)
	cmd.InheritedFlags().VisitAll(add)

	return flags, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats offers the supported --format values.
func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{string(formatJSON), string(formatYAML)}, cobra.ShellCompDirectiveNoFileComp
}
