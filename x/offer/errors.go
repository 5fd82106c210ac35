package offer

import (
	"github.com/iov-one/dex/errors"
)

// x/offer reserves 1000 ~ 1009.
var (
	// ErrDuplicateOffer is returned when the maker already has an open
	// offer with the same id.
	ErrDuplicateOffer = errors.Register(1000, "duplicate offer")
	// ErrRecordMismatch is returned when the offer record does not exist
	// or does not match the maker and mints of a take.
	ErrRecordMismatch = errors.Register(1001, "offer record mismatch")
	// ErrAuthorityMismatch is returned when the presented authority or
	// vault do not recompute from the offer record.
	ErrAuthorityMismatch = errors.Register(1002, "offer authority mismatch")
)
