package utils

import (
	"github.com/iov-one/dex"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key holding the message path, clients subscribe to
// e.g. action='offer/take'.
const ActionKey = "action"

// ActionTagger tags every delivered tx with the path of its message.
type ActionTagger struct{}

var _ dex.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx dex.Context, db dex.KVStore, tx dex.Tx, next dex.Checker) (*dex.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags successful results only.
func (ActionTagger) Deliver(ctx dex.Context, db dex.KVStore, tx dex.Tx, next dex.Deliverer) (*dex.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
