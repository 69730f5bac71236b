package frame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldText protowire.Number = 1
	fieldDone protowire.Number = 2

	// maxRecordSize bounds a single decoded message.
	maxRecordSize = 16 << 20
)

// ProtoEncoder writes length-delimited protobuf records.
type ProtoEncoder struct {
	w   io.Writer
	buf []byte
	msg []byte
}

// NewProtoEncoder creates a ProtoEncoder.
func NewProtoEncoder(w io.Writer) *ProtoEncoder {
	return &ProtoEncoder{w: w}
}

// Encode writes r as a varint-prefixed message. Fields holding their zero
// value are omitted, as proto3 does.
func (e *ProtoEncoder) Encode(r Record) error {
	e.msg = appendRecord(e.msg[:0], r)

	e.buf = protowire.AppendVarint(e.buf[:0], uint64(len(e.msg)))
	e.buf = append(e.buf, e.msg...)

	if _, err := e.w.Write(e.buf); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// ContentType returns the protobuf content type with the delimited marker.
func (e *ProtoEncoder) ContentType() string {
	return ContentTypeProtobuf + "; delim=true"
}

func appendRecord(b []byte, r Record) []byte {
	if r.Text != "" {
		b = protowire.AppendTag(b, fieldText, protowire.BytesType)
		b = protowire.AppendString(b, r.Text)
	}
	if r.Done {
		b = protowire.AppendTag(b, fieldDone, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

// ProtoDecoder reads records written by ProtoEncoder.
type ProtoDecoder struct {
	r   *bufio.Reader
	buf []byte
}

// NewProtoDecoder creates a ProtoDecoder.
func NewProtoDecoder(r io.Reader) *ProtoDecoder {
	return &ProtoDecoder{r: bufio.NewReader(r)}
}

// Decode reads the next record. It returns io.EOF at a clean end of
// stream and io.ErrUnexpectedEOF if the stream stops mid-record.
func (d *ProtoDecoder) Decode() (Record, error) {
	size, err := binary.ReadUvarint(d.r)
	if err != nil {
		return Record{}, err
	}
	if size > maxRecordSize {
		return Record{}, fmt.Errorf("record of %d bytes exceeds limit", size)
	}

	if cap(d.buf) < int(size) {
		d.buf = make([]byte, size)
	}
	d.buf = d.buf[:size]
	if _, err := io.ReadFull(d.r, d.buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Record{}, err
	}

	return parseRecord(d.buf)
}

func parseRecord(b []byte) (Record, error) {
	var r Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Record{}, fmt.Errorf("parsing tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldText && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return Record{}, fmt.Errorf("parsing text: %w", protowire.ParseError(n))
			}
			r.Text = s
			b = b[n:]
		case num == fieldDone && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Record{}, fmt.Errorf("parsing done: %w", protowire.ParseError(n))
			}
			r.Done = protowire.DecodeBool(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Record{}, fmt.Errorf("skipping field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return r, nil
}
