// Command board runs the discussion-board API and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"board/cmd/board/cli"
)

// @title Board API
// @version 1.0
// @description Posts, comments, tags and likes with author-based ownership.
// @BasePath /api
// @schemes http https

var (
	version = "0.1.0-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{Version: version, Commit: commit})
	root.AddCommand(cli.NewServeCommand())
	root.AddCommand(cli.NewMigrateCommand())
	root.AddCommand(cli.NewSeedCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
