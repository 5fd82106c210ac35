package server

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/iov-one/dex/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagOverwrite = "overwrite"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisPath returns the location of the tendermint genesis file under home
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd will store the app_state produced by gen in the genesis file
// created by `tendermint init` in the same home directory.
func InitCmd(gen GenOptions, logger log.Logger, home *string) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init [args...]",
		Short: "Initialize app options in genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := gen(args)
			if err != nil {
				return err
			}
			genFile := GenesisPath(*home)
			if err := addGenesisOptions(genFile, options, overwrite); err != nil {
				return err
			}
			logger.Info("App state written to genesis", "path", genFile)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&overwrite, flagOverwrite, "i", false, "overwrite an existing app_state")
	return cmd
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, overwrite bool) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot read genesis file, run tendermint init first: "+err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if state := doc["app_state"]; len(state) > 0 && string(state) != "null" && !overwrite {
		return errors.Wrap(errors.ErrState, "app_state already set, use -i to overwrite")
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return os.WriteFile(filename, out, 0600)
}
