package dbf

import "time"

// ReadMode selects how the decoder treats malformed input.
type ReadMode string

const (
	// ModeStrict fails fast on any schema, type or memo violation.
	ModeStrict ReadMode = "strict"
	// ModeLoose recovers best-effort: validation is skipped, unsupported
	// field types are omitted and broken memo references resolve empty.
	ModeLoose ReadMode = "loose"
)

// Options configures an open table. The zero value means strict mode,
// latin1 text and deleted records excluded.
type Options struct {
	// Encoding is the default character set for field names and values.
	// Empty means "latin1".
	Encoding string

	// FieldEncodings overrides the character set per field name.
	FieldEncodings map[string]string

	// Mode is the read mode; empty means ModeStrict.
	Mode ReadMode

	// IncludeDeleted returns records flagged as deleted instead of
	// silently skipping them.
	IncludeDeleted bool
}

// Table is an open read handle over one DBF buffer and its optional memo
// buffer. It owns the read cursor exclusively: concurrent use of the same
// Table must be serialized by the caller. The underlying buffers are never
// written to.
type Table struct {
	schema  *Schema
	data    []byte
	decoder *recordDecoder
	opts    Options

	// recordsRead counts raw records consumed, including skipped
	// deletions. It only ever advances.
	recordsRead uint32
}

// Open parses the header and field descriptor table from data and returns
// a read handle positioned at the first record. memo may be nil when the
// table has no memo fields; options may be the zero value.
func Open(data []byte, memo []byte, opts Options) (*Table, error) {
	if opts.Encoding == "" {
		opts.Encoding = "latin1"
	}
	if opts.Mode == "" {
		opts.Mode = ModeStrict
	}
	if opts.Mode != ModeStrict && opts.Mode != ModeLoose {
		return nil, formatErrorf("unknown read mode %q", opts.Mode)
	}

	encodings, err := newEncodingResolver(opts.Encoding, opts.FieldEncodings)
	if err != nil {
		return nil, err
	}

	schema, err := parseSchema(data, encodings.fallback, opts.Mode)
	if err != nil {
		return nil, err
	}

	var memos *memoFile
	if memo != nil {
		memos, err = newMemoFile(memo, schema.Version, opts.Mode)
		if err != nil {
			return nil, err
		}
	}

	return &Table{
		schema: schema,
		data:   data,
		opts:   opts,
		decoder: &recordDecoder{
			schema:    schema,
			encodings: encodings,
			memo:      memos,
			mode:      opts.Mode,
		},
	}, nil
}

// Schema returns the decoded header. The returned value is shared and must
// not be modified.
func (t *Table) Schema() *Schema {
	return t.schema
}

// RecordCount returns the number of raw records the header declares,
// including deleted ones.
func (t *Table) RecordCount() uint32 {
	return t.schema.RecordCount
}

// LastUpdated returns the file's last-update stamp from the header.
func (t *Table) LastUpdated() time.Time {
	return t.schema.LastUpdated
}
