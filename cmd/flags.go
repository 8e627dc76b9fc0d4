package cmd

import (
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts a command line flag into a config option.
type funcFlag func(cmd *cobra.Command) config.Option

// flagOption ties a flag name to its config option.
type flagOption struct {
	name string
	fn   funcFlag
}

func stringFlag(name string, opt func(string) config.Option) flagOption {
	return flagOption{name: name, fn: func(cmd *cobra.Command) config.Option {
		s, _ := cmd.Flags().GetString(name)
		return opt(s)
	}}
}

func intFlag(name string, opt func(int) config.Option) flagOption {
	return flagOption{name: name, fn: func(cmd *cobra.Command) config.Option {
		i, _ := cmd.Flags().GetInt(name)
		return opt(i)
	}}
}

func boolFlag(name string, opt func(bool) config.Option) flagOption {
	return flagOption{name: name, fn: func(cmd *cobra.Command) config.Option {
		b, _ := cmd.Flags().GetBool(name)
		return opt(b)
	}}
}

func fieldsFlag(name string, opt func([]string) config.Option) flagOption {
	return flagOption{name: name, fn: func(cmd *cobra.Command) config.Option {
		ss, _ := cmd.Flags().GetStringSlice(name)
		return opt(ss)
	}}
}

// flagOptions returns options for the flags that were set explicitly, so
// values from the config file and environment are kept otherwise.
func flagOptions(cmd *cobra.Command, flags ...flagOption) []config.Option {
	var res []config.Option
	for _, f := range flags {
		if cmd.Flags().Changed(f.name) {
			res = append(res, f.fn(cmd))
		}
	}
	return res
}

// addPriorityFlags adds flags shared by commands that compute priorities.
func addPriorityFlags(cmd *cobra.Command) {
	cmd.Flags().String("method", "",
		"aggregation of distances to the focal set: min or mean")
	cmd.Flags().IntP("jobs", "j", 0, "number of concurrent workers")
	cmd.Flags().Bool("no-cache", false, "do not use the priority cache")
}

func priorityFlags() []flagOption {
	return []flagOption{
		stringFlag("method", config.OptPriorityMethod),
		intFlag("jobs", config.OptJobsNumber),
		boolFlag("no-cache", config.OptRunNoCache),
	}
}
