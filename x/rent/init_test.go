package rent

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Genesis funds the listed rent accounts", t, func() {
		alice := dextest.SequenceKey(t, 1)
		bob := dextest.SequenceKey(t, 2)
		db := store.MemStore()

		load := func(genesis string) error {
			var opts dex.Options
			So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)
			return Initializer{}.FromGenesis(opts, db)
		}

		err := load(`{"rent": [
			{"owner": "` + alice.String() + `", "lamports": 5000},
			{"owner": "` + bob.String() + `", "lamports": 1}
		]}`)
		So(err, ShouldBeNil)

		Convey("Balances are loaded", func() {
			bal, err := NewController().Balance(db, alice)
			So(err, ShouldBeNil)
			So(bal, ShouldEqual, uint64(5000))

			bal, err = NewController().Balance(db, bob)
			So(err, ShouldBeNil)
			So(bal, ShouldEqual, uint64(1))
		})

		Convey("An account cannot be declared twice", func() {
			err := load(`{"rent": [{"owner": "` + alice.String() + `", "lamports": 1}]}`)
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
		})

		Convey("A broken section is rejected", func() {
			err := load(`{"rent": {"owner": 7}}`)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})

		Convey("A missing section loads nothing", func() {
			So(load(`{}`), ShouldBeNil)
		})
	})
}
