package app

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
)

// ResultSet is the list of keys or values returned by a query
type ResultSet struct {
	Results [][]byte
}

var _ dex.Persistent = (*ResultSet)(nil)

func (r *ResultSet) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	for _, res := range r.Results {
		e.AppendBytes(1, res)
	}
	return e.Data(), nil
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	r.Results = nil
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		if field == 1 {
			var res []byte
			if res, err = d.ReadBytes(); err == nil {
				r.Results = append(r.Results, res)
			}
		} else {
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "result set")
		}
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []dex.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []dex.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]dex.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]dex.Model, len(kref))
	for i := range mods {
		mods[i] = dex.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(raw []byte, o dex.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	return o.Unmarshal(res.Results[0])
}
