package frame

import (
	"encoding/json"
	"io"
)

// NDJSONEncoder writes one JSON record per line.
type NDJSONEncoder struct {
	enc *json.Encoder
}

// NewNDJSONEncoder creates an NDJSONEncoder. HTML characters are written
// as-is rather than escaped.
func NewNDJSONEncoder(w io.Writer) *NDJSONEncoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONEncoder{enc: enc}
}

// Encode writes r followed by a newline.
func (e *NDJSONEncoder) Encode(r Record) error {
	return e.enc.Encode(r)
}

// ContentType returns ContentTypeNDJSON.
func (e *NDJSONEncoder) ContentType() string {
	return ContentTypeNDJSON
}

// NDJSONDecoder reads records written by NDJSONEncoder.
type NDJSONDecoder struct {
	dec *json.Decoder
}

// NewNDJSONDecoder creates an NDJSONDecoder.
func NewNDJSONDecoder(r io.Reader) *NDJSONDecoder {
	return &NDJSONDecoder{dec: json.NewDecoder(r)}
}

// Decode reads the next record.
func (d *NDJSONDecoder) Decode() (Record, error) {
	var r Record
	if err := d.dec.Decode(&r); err != nil {
		return Record{}, err
	}
	return r, nil
}
