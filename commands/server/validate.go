package server

import (
	"encoding/json"
	"os"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

// ValidateCmd runs the app_state of each genesis file through ini against a
// throwaway store. The home genesis file is used when no path is given.
func ValidateCmd(ini dex.Initializer, logger log.Logger, home *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [genesis.json...]",
		Short: "Validate the app_state of genesis files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{GenesisPath(*home)}
			}
			if err := ValidateGenesis(ini, args); err != nil {
				return err
			}
			logger.Info("Genesis is valid", "files", len(args))
			return nil
		},
	}
}

// ValidateGenesis initializes a memory store from every genesis file and
// returns the first failure.
func ValidateGenesis(ini dex.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini dex.Initializer, genesisPath string) error {
	b, err := os.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "cannot read genesis file: "+err.Error())
	}

	var genesis struct {
		State dex.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot JSON deserialize genesis: "+err.Error())
	}

	// the result is discarded
	db := store.MemStore()
	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
