package dextest

import "github.com/iov-one/dex"

// Handler is a mock implementation of the dex.Handler interface.
//
// Every call is counted. When WriteKey is set, the handler writes
// WriteValue under it before returning, which lets tests observe whether
// the changes of a failed call were discarded.
type Handler struct {
	checkCall   int
	CheckResult dex.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult dex.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte

	// Panic if set makes every call panic with this value.
	Panic interface{}
}

var _ dex.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.CheckResult, error) {
	h.checkCall++
	if err := h.act(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.DeliverResult, error) {
	h.deliverCall++
	if err := h.act(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) act(db dex.KVStore) error {
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.WriteValue); err != nil {
			return err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
