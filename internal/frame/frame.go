// Package frame encodes segment records for streaming to clients.
//
// Two framings are supported. NDJSON writes one compact JSON object per
// line:
//
//	{"text":"First sentence.","done":false}
//	{"text":"Done","done":true}
//
// Protobuf writes each record as a varint length prefix followed by a
// message with field 1 text (string) and field 2 done (bool), the layout
// produced by protodelim for
//
//	message Record {
//	  string text = 1;
//	  bool done = 2;
//	}
//
// Both streams end with exactly one Done record.
package frame

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
)

// DoneText is the text carried by the terminating record.
const DoneText = "Done"

// Content types for each framing.
const (
	ContentTypeNDJSON   = "application/x-ndjson"
	ContentTypeProtobuf = "application/x-protobuf"
)

// ErrUnknownFormat indicates a format name that is not supported.
var ErrUnknownFormat = errors.New("frame: unknown format")

// Record is one framed message.
type Record struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Done returns the terminating record.
func Done() Record {
	return Record{Text: DoneText, Done: true}
}

// Encoder writes records to an underlying stream.
type Encoder interface {
	Encode(Record) error
	ContentType() string
}

// Decoder reads records written by the matching Encoder. It returns
// io.EOF after the last record.
type Decoder interface {
	Decode() (Record, error)
}

// Format names a framing.
type Format string

const (
	FormatNDJSON   Format = "ndjson"
	FormatProtobuf Format = "protobuf"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatNDJSON, FormatProtobuf:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FromAccept picks the framing for an HTTP Accept header. Protobuf is used
// only when explicitly listed; everything else gets NDJSON.
func FromAccept(accept string) Format {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mediaType == ContentTypeProtobuf {
			return FormatProtobuf
		}
	}
	return FormatNDJSON
}

// NewEncoder returns an encoder for f writing to w.
func NewEncoder(f Format, w io.Writer) Encoder {
	if f == FormatProtobuf {
		return NewProtoEncoder(w)
	}
	return NewNDJSONEncoder(w)
}

// NewDecoder returns a decoder for f reading from r.
func NewDecoder(f Format, r io.Reader) Decoder {
	if f == FormatProtobuf {
		return NewProtoDecoder(r)
	}
	return NewNDJSONDecoder(r)
}
