package main

import (
	"errors"
	"fmt"

	gitsemver "github.com/bcomnes/gitsemver/pkg"

	"github.com/spf13/cobra"
)

func newBumpCommand(c *cli) *cobra.Command {
	var (
		major, minor, patch bool
		run, noRun          bool
		message, suffix     string
	)

	cmd := &cobra.Command{
		Use:   "bump (--major | --minor | --patch)",
		Short: "Bump the version",
		Long: `Create the next annotated tag at the requested level.

The tag is named <prefix><version>-<suffix>; a suffix that already starts
with "-" is used as is. --suffix overrides the configured suffix for this
bump only, and --suffix "" bumps without one. With --no-run the equivalent
git command is printed instead.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := selectLevel(map[gitsemver.Level]bool{
				gitsemver.Major: major,
				gitsemver.Minor: minor,
				gitsemver.Patch: patch,
			})
			if err != nil {
				return err
			}
			if run && noRun {
				return usageError(errors.New("argument --no-run: not allowed with argument --run"))
			}

			var suffixArg *string
			if cmd.Flags().Changed("suffix") {
				if err := validateSuffix("suffix", suffix); err != nil {
					return err
				}
				suffixArg = &suffix
			}

			engine, err := c.engine(cmd.Context())
			if err != nil {
				return err
			}

			if noRun {
				line, err := engine.PreviewCommand(cmd.Context(), level, message, suffixArg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			}

			tag, err := engine.Bump(cmd.Context(), level, message, suffixArg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&major, "major", false, "bump the major version")
	f.BoolVar(&minor, "minor", false, "bump the minor version")
	f.BoolVar(&patch, "patch", false, "bump the patch version")
	f.StringVarP(&message, "message", "m", "", "additional message to add to the tag")
	f.StringVar(&suffix, "suffix", "", "suffix to add to the version, empty for none (lowercase letters, numbers, dashes and underscores)")
	f.BoolVar(&run, "run", false, "create the tag (default)")
	f.BoolVar(&noRun, "no-run", false, "print the git command instead of creating the tag")
	return cmd
}

// selectLevel returns the single level flag that was set.
func selectLevel(set map[gitsemver.Level]bool) (gitsemver.Level, error) {
	var chosen []gitsemver.Level
	for _, l := range gitsemver.Levels {
		if set[l] {
			chosen = append(chosen, l)
		}
	}
	switch len(chosen) {
	case 0:
		return "", usageError(errors.New("one of the arguments --major --minor --patch is required"))
	case 1:
		return chosen[0], nil
	default:
		return "", usageError(fmt.Errorf("argument --%s: not allowed with argument --%s", chosen[1], chosen[0]))
	}
}
