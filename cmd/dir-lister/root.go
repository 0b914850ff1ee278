package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/dir-lister/internal/app"
	"github.com/bethropolis/dir-lister/internal/config"
	"github.com/bethropolis/dir-lister/internal/gitrepo"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

// NewRootCmd builds the dir-lister command tree
func NewRootCmd() *cobra.Command {
	flags := &config.Flags{}

	rootCmd := &cobra.Command{
		Use:   config.AppName + " [paths...]",
		Short: "List directories, optionally honoring .gitignore rules",
		Long: `dir-lister lists directory contents like ls, or as a tree.

With --gitignore, entries matched by .gitignore files found while walking and
by the enclosing repository's .git/info/exclude are left out. Settings may
also be given in $XDG_CONFIG_HOME/dir-lister/config.yaml (or .yml, .toml);
command-line flags take precedence over the file.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags, args)
			if err != nil {
				return err
			}
			return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(cmd.Context())
		},
	}
	flags.Register(rootCmd.Flags())
	rootCmd.Flags().SortFlags = false

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", config.AppName, Version)
			if !gitrepo.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "built without repository discovery")
			}
		},
	}
}
