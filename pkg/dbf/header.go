package dbf

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"
)

const (
	headerSize       = 32
	descriptorSize   = 32
	headerTerminator = 0x0D
)

// Schema is the decoded file header: the ordered field descriptors plus the
// fixed header values. It is computed once at open time and read-only
// thereafter.
type Schema struct {
	Version      Version
	LastUpdated  time.Time
	RecordCount  uint32
	HeaderLength uint16
	RecordLength uint16
	Fields       []FieldDescriptor
}

// Field returns the descriptor with the given name, or nil.
func (s *Schema) Field(name string) *FieldDescriptor {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// parseSchema decodes the fixed 32-byte header and the field descriptor
// table. Field names are decoded with the caller's default character set.
//
// Layout: byte 0 version tag; bytes 1-3 last update as year-since-1900,
// month, day; bytes 4-7 record count (LE); bytes 8-9 header length (LE);
// bytes 10-11 record length (LE). Descriptor entries follow from offset 32
// until the 0x0D terminator or the declared header length.
func parseSchema(data []byte, headerDec *charsetDecoder, mode ReadMode) (*Schema, error) {
	if len(data) < headerSize {
		return nil, formatErrorf("file too short for header: %d bytes", len(data))
	}

	schema := &Schema{
		Version:      Version(data[0]),
		RecordCount:  binary.LittleEndian.Uint32(data[4:8]),
		HeaderLength: binary.LittleEndian.Uint16(data[8:10]),
		RecordLength: binary.LittleEndian.Uint16(data[10:12]),
	}
	schema.LastUpdated = time.Date(1900+int(data[1]), time.Month(data[2]), int(data[3]), 0, 0, 0, 0, time.UTC)

	if mode == ModeStrict && !schema.Version.valid() {
		return nil, formatErrorf("unsupported file version 0x%02x", data[0])
	}

	seen := make(map[string]struct{})
	offset := headerSize
	for offset < int(schema.HeaderLength) && offset < len(data) && data[offset] != headerTerminator {
		if offset+descriptorSize > len(data) {
			return nil, formatErrorf("truncated field descriptor at offset %d", offset)
		}

		desc, err := parseDescriptor(data[offset:offset+descriptorSize], headerDec)
		if err != nil {
			return nil, err
		}
		if mode == ModeStrict {
			if err := validateDescriptor(desc, schema.Version, seen); err != nil {
				return nil, err
			}
		}
		schema.Fields = append(schema.Fields, desc)
		offset += descriptorSize
	}

	// The terminator denotes the end of the descriptor table. Its absence
	// means catastrophic corruption and is fatal even in loose mode.
	if offset >= len(data) || data[offset] != headerTerminator {
		return nil, formatErrorf("missing field descriptor terminator at offset %d", offset)
	}

	computed := 1
	for _, f := range schema.Fields {
		computed += f.Size
	}
	if computed > 0xFFFF {
		return nil, formatErrorf("field sizes sum to %d, beyond the record length limit", computed)
	}
	if mode == ModeStrict {
		if int(schema.RecordLength) != computed {
			return nil, formatErrorf("header record length %d does not match field sizes (%d)", schema.RecordLength, computed)
		}
	} else {
		// Loose mode trusts the field sizes over the stated header value.
		schema.RecordLength = uint16(computed)
	}

	return schema, nil
}

func parseDescriptor(entry []byte, headerDec *charsetDecoder) (FieldDescriptor, error) {
	raw := entry[0:11]
	if i := bytes.IndexByte(raw, 0x00); i >= 0 {
		raw = raw[:i]
	}
	name, err := headerDec.decode(raw)
	if err != nil {
		return FieldDescriptor{}, err
	}

	return FieldDescriptor{
		Name:     strings.TrimSpace(name),
		Type:     FieldType(entry[11]),
		Size:     int(entry[16]),
		Decimals: int(entry[17]),
	}, nil
}
