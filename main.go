// Package main implements a CLI tool that reads the current semantic
// version from git tags and creates the next annotated tag.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	gitsemver "github.com/bcomnes/gitsemver/pkg"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	backendGit   = "git"
	backendGoGit = "go-git"
)

// cli holds the invocation-wide settings shared by all subcommands.
type cli struct {
	v      *viper.Viper
	logger *log.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "gitsemver",
		Short: "Derive and bump semantic version tags in a git repository",
		Long: TitleStyle.Render("gitsemver") + SubtitleStyle.Render(" - semantic version tags for git") + `

Finds the highest "major.minor.patch" version among the repository tags and
creates the next one as an annotated tag. Without a subcommand the current
tag is printed.

` + SubtitleStyle.Render("Examples:") + `
  gitsemver                         Print the current tag
  gitsemver bump --patch            Create the next patch tag
  gitsemver bump --minor --no-run   Print the git command instead of running it
  gitsemver config --prefix v       Prefix new tags with "v"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.engine(cmd.Context())
			if err != nil {
				return err
			}
			tag, err := engine.CurrentTag(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolP("verbose", "v", false, "enable verbose output")
	pf.StringP("workdir", "C", "", "run as if started in this directory")
	pf.String("backend", backendGit, "repository backend: git (runs the git binary) or go-git (in-process)")

	c.v.SetEnvPrefix("GITSEMVER")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	_ = c.v.BindPFlags(pf)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(newBumpCommand(c))
	root.AddCommand(newConfigCommand(c))
	return root
}

// setup builds the logger once flags and environment are known.
func (c *cli) setup(cmd *cobra.Command) error {
	c.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "gitsemver"})
	if c.v.GetBool("verbose") {
		c.logger.SetLevel(log.DebugLevel)
	}
	switch b := c.v.GetString("backend"); b {
	case backendGit, backendGoGit:
	default:
		return usageError(fmt.Errorf("argument --backend: invalid choice %q (choose from %s, %s)", b, backendGit, backendGoGit))
	}
	return nil
}

func (c *cli) gateway() (gitsemver.Gateway, error) {
	dir := c.v.GetString("workdir")
	opt := gitsemver.WithLogger(c.logger)
	if c.v.GetString("backend") == backendGoGit {
		return gitsemver.NewGoGit(dir, opt)
	}
	return gitsemver.NewGitCLI(dir, opt)
}

func (c *cli) engine(ctx context.Context) (*gitsemver.Engine, error) {
	gw, err := c.gateway()
	if err != nil {
		return nil, err
	}
	return gitsemver.New(ctx, gw, gitsemver.WithLogger(c.logger))
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
