package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/cmd/dexd/app"
	"github.com/iov-one/dex/commands/server"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "dex")

	var home string
	root := &cobra.Command{
		Use:          "dexd",
		Short:        "Escrow based atomic swap node",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&home, "home",
		filepath.Join(os.ExpandEnv("$HOME"), ".dex"), "directory to store files under")

	root.AddCommand(
		server.InitCmd(app.GenInitOptions, logger, &home),
		server.StartCmd(app.GenerateApp, logger, &home),
		server.ValidateCmd(app.Initializers(), logger, &home),
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(dex.Version)
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
