// Package cli holds the cobra commands of the board binary.
package cli

import (
	"fmt"

	"board/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type VersionInfo struct {
	Version string
	Commit  string
}

func NewRootCommand(info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "board",
		Short:         "Discussion board API",
		Long:          "Posts, comments, tags and likes over a PostgreSQL or SQLite store.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default is ./config.yml plus config.<APP_ENV>.yml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag(config.ConfigFileKey, cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("LOG_LEVEL", cmd.PersistentFlags().Lookup("log-level"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)
	return cmd
}
