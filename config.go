package main

import (
	"errors"
	"fmt"
	"io"

	gitsemver "github.com/bcomnes/gitsemver/pkg"

	"github.com/spf13/cobra"
)

func newConfigCommand(c *cli) *cobra.Command {
	var prefix, suffix, initial, offset string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or update the .semver.config file",
		Long: `Show or change the tag configuration.

Settings are written to .semver.config at the repository root. The regular
git config keys semver.prefix, semver.initial and semver.suffix take
precedence over the file. Without flags the effective configuration is shown.

Bumped tags join the suffix with "-" (ver1.1.0-pending). Before the first
tag exists, the current tag is shown as prefix, initial and suffix written
together with no separator (ver1.0.0pending); configure the suffix as
"-pending" to make both forms read the same.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("initial") && flags.Changed("offset") {
				return usageError(errors.New("argument --offset: not allowed with argument --initial"))
			}

			var u gitsemver.Update
			// Printed in the order written, with the flag name the user chose.
			var written [][2]string
			if flags.Changed("prefix") {
				if err := validatePrefix("prefix", prefix); err != nil {
					return err
				}
				u.Prefix = &prefix
				written = append(written, [2]string{gitsemver.FieldPrefix.Key(), prefix})
			}
			for _, name := range []string{"initial", "offset"} {
				if !flags.Changed(name) {
					continue
				}
				v := initial
				if name == "offset" {
					v = offset
				}
				if err := validateInitial(name, v); err != nil {
					return err
				}
				u.Initial = &v
				written = append(written, [2]string{gitsemver.Namespace + "." + name, v})
			}
			if flags.Changed("suffix") {
				if err := validateSuffix("suffix", suffix); err != nil {
					return err
				}
				u.Suffix = &suffix
				written = append(written, [2]string{gitsemver.FieldSuffix.Key(), suffix})
			}

			engine, err := c.engine(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if u.Empty() {
				showConfig(out, engine.Config())
				return nil
			}
			if _, err := engine.SetConfig(cmd.Context(), u); err != nil {
				return err
			}
			for _, kv := range written {
				fmt.Fprintf(out, "%s = %s\n", kv[0], kv[1])
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&prefix, "prefix", "", "prefix for the tag (lowercase and uppercase letters)")
	f.StringVar(&suffix, "suffix", "", "suffix for the tag (lowercase letters, numbers, dashes and underscores)")
	f.StringVar(&initial, "initial", "", "initial offset for the first tag, e.g. 1.0.0")
	f.StringVar(&offset, "offset", "", "alias for --initial")
	return cmd
}

func showConfig(w io.Writer, cfg gitsemver.Configuration) {
	fmt.Fprintln(w, TitleStyle.Render("Current configuration:"))
	if len(cfg.Explicit) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No configuration defined"))
		return
	}
	for _, f := range cfg.Explicit {
		fmt.Fprintf(w, "%s = %s\n", KeyStyle.Render(f.Key()), ValueStyle.Render(cfg.Get(f)))
	}
}
