package dex

import (
	"github.com/iov-one/dex/errors"
)

// Msg is one requested state transition. It carries no authentication,
// signatures live on the wrapping Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler, e.g. "offer/make". It must
	// match [0-9A-Za-z_\-/]+.
	Path() string

	// Validate checks the message without touching state.
	Validate() error
}

// Marshaller serializes itself. Marshal may fail on invalid data.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also load itself. It is usually
// implemented on a pointer.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: exactly one message plus whatever the
// decorators of the application need, such as signatures.
type Tx interface {
	Persistent

	GetMsg() (Msg, error)
}

// GetPath returns the message path of tx, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg copies the message of tx into destination and validates it.
// destination must be a pointer to a message of the same path.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	dst, ok := destination.(Msg)
	if !ok {
		return errors.Wrapf(errors.ErrHuman, "destination must be a message, got %T", destination)
	}
	if got, want := msg.Path(), dst.Path(); got != want {
		return errors.Wrapf(errors.ErrType, "want %q message, got %q", want, got)
	}

	raw, err := msg.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize message")
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "cannot deserialize message")
	}
	return errors.Wrap(dst.Validate(), "invalid message")
}
