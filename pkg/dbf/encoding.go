package dbf

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// charsetDecoder converts raw field bytes into text for one character set.
// Decoders are resolved once at open time so unknown names fail before any
// record is read.
type charsetDecoder struct {
	name string
	dec  *encoding.Decoder
}

func newCharsetDecoder(name string) (*charsetDecoder, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	var enc encoding.Encoding
	switch normalized {
	case "", "latin1", "latin-1", "iso8859-1", "iso-8859-1":
		// htmlindex aliases latin1 to windows-1252; DBF files mean the
		// real ISO 8859-1.
		enc = charmap.ISO8859_1
	default:
		e, err := htmlindex.Get(normalized)
		if err != nil {
			return nil, &EncodingError{Name: name, Err: err}
		}
		enc = e
	}

	return &charsetDecoder{name: name, dec: enc.NewDecoder()}, nil
}

func (d *charsetDecoder) decode(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	out, err := d.dec.Bytes(b)
	if err != nil {
		return "", &EncodingError{Name: d.name, Err: err}
	}
	return string(out), nil
}

// encodingResolver maps field names to their decoders, falling back to the
// default character set for fields without an override.
type encodingResolver struct {
	fallback *charsetDecoder
	fields   map[string]*charsetDecoder
}

func newEncodingResolver(defaultCharset string, overrides map[string]string) (*encodingResolver, error) {
	fallback, err := newCharsetDecoder(defaultCharset)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]*charsetDecoder, len(overrides))
	for field, charset := range overrides {
		dec, err := newCharsetDecoder(charset)
		if err != nil {
			return nil, err
		}
		fields[field] = dec
	}

	return &encodingResolver{fallback: fallback, fields: fields}, nil
}

func (r *encodingResolver) forField(name string) *charsetDecoder {
	if dec, ok := r.fields[name]; ok {
		return dec
	}
	return r.fallback
}
