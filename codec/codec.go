/*
Package codec provides the protobuf wire format encoding used by all
messages, transactions and most models.

Messages implement Marshal and Unmarshal by hand on top of an Encoder and a
Decoder, keeping the field numbers stable so that any protobuf client can
talk to the application. Proto3 rules apply: zero values are not written and
unknown fields are skipped on decode.
*/
package codec

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/dex/errors"
)

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Encoder writes fields in protobuf wire format.
type Encoder struct {
	buf *proto.Buffer
}

// NewEncoder returns an encoder writing to a fresh buffer.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) key(field int, wire int) {
	// EncodeVarint on a buffer never fails.
	_ = e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// PutUint64 writes a varint field. Zero is skipped.
func (e *Encoder) PutUint64(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, proto.WireVarint)
	_ = e.buf.EncodeVarint(v)
}

// PutBool writes a boolean field. False is skipped.
func (e *Encoder) PutBool(field int, v bool) {
	if v {
		e.PutUint64(field, 1)
	}
}

// PutBytes writes a length delimited field. Empty values are skipped.
func (e *Encoder) PutBytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.key(field, proto.WireBytes)
	_ = e.buf.EncodeRawBytes(b)
}

// AppendBytes writes one element of a repeated bytes field. Unlike PutBytes
// an empty element is written.
func (e *Encoder) AppendBytes(field int, b []byte) {
	e.key(field, proto.WireBytes)
	_ = e.buf.EncodeRawBytes(b)
}

// PutString writes a string field. Empty strings are skipped.
func (e *Encoder) PutString(field int, s string) {
	if s == "" {
		return
	}
	e.key(field, proto.WireBytes)
	_ = e.buf.EncodeStringBytes(s)
}

// PutMessage writes an embedded message. A nil message is skipped.
func (e *Encoder) PutMessage(field int, m Marshaller) error {
	if m == nil || isNil(m) {
		return nil
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "field %d", field)
	}
	e.key(field, proto.WireBytes)
	_ = e.buf.EncodeRawBytes(raw)
	return nil
}

// Data returns the encoded bytes.
func (e *Encoder) Data() []byte {
	return e.buf.Bytes()
}

// Decoder reads fields in protobuf wire format, one at a time.
//
//   d := codec.NewDecoder(raw)
//   for d.More() {
//     field, err := d.Field()
//     ...
//     switch field {
//     case 1:
//       m.ID, err = d.ReadUint64()
//     default:
//       err = d.Skip()
//     }
//   }
type Decoder struct {
	data []byte
	pos  int
	wire int
}

// NewDecoder returns a decoder over raw.
func NewDecoder(raw []byte) *Decoder {
	return &Decoder{data: raw}
}

// More returns true if there is at least one more field to read.
func (d *Decoder) More() bool {
	return d.pos < len(d.data)
}

// Field reads the next field key and returns the field number.
func (d *Decoder) Field() (int, error) {
	k, err := d.varint()
	if err != nil {
		return 0, errors.Wrap(err, "field key")
	}
	field := int(k >> 3)
	if field <= 0 {
		return 0, errors.Wrapf(errors.ErrInput, "illegal field number %d", field)
	}
	d.wire = int(k & 7)
	return field, nil
}

func (d *Decoder) varint() (uint64, error) {
	v, n := proto.DecodeVarint(d.data[d.pos:])
	if n == 0 {
		return 0, errors.Wrap(errors.ErrInput, "malformed varint")
	}
	d.pos += n
	return v, nil
}

func (d *Decoder) expect(wire int) error {
	if d.wire != wire {
		return errors.Wrapf(errors.ErrInput, "wire type %d, want %d", d.wire, wire)
	}
	return nil
}

// ReadUint64 reads a varint value of the current field.
func (d *Decoder) ReadUint64() (uint64, error) {
	if err := d.expect(proto.WireVarint); err != nil {
		return 0, err
	}
	return d.varint()
}

// ReadBool reads a boolean value of the current field.
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadUint64()
	return v != 0, err
}

// ReadBytes reads a length delimited value of the current field. Returned
// slice is a copy and can be retained.
func (d *Decoder) ReadBytes() ([]byte, error) {
	raw, err := d.raw()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), raw...), nil
}

// ReadString reads a string value of the current field.
func (d *Decoder) ReadString() (string, error) {
	raw, err := d.raw()
	return string(raw), err
}

// ReadMessage decodes the current embedded message field into m.
func (d *Decoder) ReadMessage(m interface{ Unmarshal([]byte) error }) error {
	raw, err := d.raw()
	if err != nil {
		return err
	}
	return m.Unmarshal(raw)
}

func (d *Decoder) raw() ([]byte, error) {
	if err := d.expect(proto.WireBytes); err != nil {
		return nil, err
	}
	size, err := d.varint()
	if err != nil {
		return nil, err
	}
	if size > uint64(len(d.data)-d.pos) {
		return nil, errors.Wrap(errors.ErrInput, "length exceeds buffer")
	}
	end := d.pos + int(size)
	raw := d.data[d.pos:end]
	d.pos = end
	return raw, nil
}

// Skip advances over the value of the current field. It must be called for
// all unknown fields.
func (d *Decoder) Skip() error {
	switch d.wire {
	case proto.WireVarint:
		_, err := d.varint()
		return err
	case proto.WireBytes:
		_, err := d.raw()
		return err
	case proto.WireFixed64:
		return d.advance(8)
	case proto.WireFixed32:
		return d.advance(4)
	default:
		return errors.Wrapf(errors.ErrInput, "unsupported wire type %d", d.wire)
	}
}

func (d *Decoder) advance(n int) error {
	if len(d.data)-d.pos < n {
		return errors.Wrap(errors.ErrInput, "unexpected end of buffer")
	}
	d.pos += n
	return nil
}

// Uint64LE encodes v as 8 little endian bytes.
func Uint64LE(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// Uint64BE encodes v as 8 big endian bytes, preserving the ordering of
// numbers when compared as bytes.
func Uint64BE(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
