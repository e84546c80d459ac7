package dbf

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"time"
)

const deletedFlag = 0x2A

// Record is one decoded row: a field-name to value mapping plus a dedicated
// deleted marker. The marker is deliberately not a map key so it can never
// collide with a real field of the same name. Records are never mutated
// after construction.
type Record struct {
	Deleted bool
	Fields  map[string]interface{}
}

// recordDecoder turns one record's raw byte window into a Record. It holds
// everything resolved at open time: the schema, the per-field character
// decoders and the memo resolver.
type recordDecoder struct {
	schema    *Schema
	encodings *encodingResolver
	memo      *memoFile
	mode      ReadMode
}

// unixEpochJulianDay is the Julian day number of 1970-01-01, the pivot for
// FoxPro 'T' datetime fields.
const unixEpochJulianDay = 2440588

func (d *recordDecoder) decode(raw []byte) (*Record, error) {
	rec := &Record{
		Deleted: raw[0] == deletedFlag,
		Fields:  make(map[string]interface{}, len(d.schema.Fields)),
	}

	pos := 1
	for _, field := range d.schema.Fields {
		window := raw[pos : pos+field.Size]
		pos += field.Size

		value, err := d.decodeField(field, window)
		if err != nil {
			if _, unsupported := err.(*TypeError); unsupported && d.mode == ModeLoose {
				// Unknown type in loose mode: skip the bytes, omit the field.
				continue
			}
			return nil, err
		}
		rec.Fields[field.Name] = value
	}

	return rec, nil
}

func (d *recordDecoder) decodeField(field FieldDescriptor, b []byte) (interface{}, error) {
	// Loose mode accepts descriptors strict validation would reject, so the
	// fixed-width types guard their own windows.
	if len(b) == 0 {
		return nil, nil
	}
	if want, ok := fixedSizes[field.Type]; ok && len(b) < want {
		return nil, nil
	}

	switch field.Type {
	case TypeCharacter:
		return d.decodeCharacter(field, b)
	case TypeNumeric, TypeFloat:
		return decodeNumber(field, b), nil
	case TypeLogical:
		return decodeLogical(b), nil
	case TypeDate:
		return decodeDate(b), nil
	case TypeDateTime:
		return decodeDateTime(b), nil
	case TypeDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case TypeInteger:
		return int32(binary.LittleEndian.Uint32(b)), nil
	case TypeCurrency:
		return float64(int64(binary.LittleEndian.Uint64(b))) / 10000, nil
	case TypeMemo:
		return d.decodeMemo(field, b)
	default:
		return nil, &TypeError{Field: field.Name, Type: field.Type}
	}
}

func (d *recordDecoder) decodeCharacter(field FieldDescriptor, b []byte) (interface{}, error) {
	trimmed := bytes.TrimRight(b, " ")
	if len(trimmed) == 0 {
		return "", nil
	}
	return d.encodings.forField(field.Name).decode(trimmed)
}

func decodeNumber(field FieldDescriptor, b []byte) interface{} {
	text := strings.TrimSpace(string(b))
	if field.Decimals == 0 && !strings.Contains(text, ".") {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return int64(0)
		}
		return n
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return float64(0)
	}
	return f
}

func decodeLogical(b []byte) interface{} {
	switch b[0] {
	case 'T', 't', 'Y', 'y':
		return true
	case 'F', 'f', 'N', 'n':
		return false
	}
	return nil
}

func decodeDate(b []byte) interface{} {
	text := string(b)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	t, err := time.Parse("20060102", text)
	if err != nil {
		return nil
	}
	return t
}

// decodeDateTime reads the FoxPro 'T' layout: a little-endian Julian day
// followed by little-endian milliseconds since midnight, off by one.
func decodeDateTime(b []byte) interface{} {
	if b[0] == ' ' {
		return nil
	}
	julian := int32(binary.LittleEndian.Uint32(b[0:4]))
	msecs := int32(binary.LittleEndian.Uint32(b[4:8]))

	days := int64(julian - unixEpochJulianDay)
	return time.Unix(days*86400, 0).UTC().Add(time.Duration(msecs+1) * time.Millisecond)
}

func (d *recordDecoder) decodeMemo(field FieldDescriptor, b []byte) (interface{}, error) {
	block, ok := parseMemoPointer(b, d.schema.Version)
	if !ok || block == 0 {
		return nil, nil
	}

	if d.memo == nil {
		if d.mode == ModeStrict {
			return nil, memoErrorf("field %q references block %d but no memo file was supplied", field.Name, block)
		}
		return nil, nil
	}

	payload, err := d.memo.resolve(block)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		// Non-text FoxPro memo, or a broken reference in loose mode.
		return "", nil
	}
	return d.encodings.forField(field.Name).decode(payload)
}

// parseMemoPointer extracts the block index from an 'M' field: numeric text
// in the dBase dialects, a 4-byte little-endian integer in Visual FoxPro.
// A zero or unparsable pointer means "no memo".
func parseMemoPointer(b []byte, version Version) (int, bool) {
	if version == VersionVisualFoxPro && len(b) == 4 {
		return int(int32(binary.LittleEndian.Uint32(b))), true
	}

	text := strings.TrimSpace(string(b))
	if text == "" {
		return 0, false
	}
	block, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return block, true
}
