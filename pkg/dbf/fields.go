package dbf

import "fmt"

// Version identifies the DBF dialect from the header's first byte. The
// dialect determines which memo encoding applies and which field types are
// legal.
type Version byte

const (
	VersionDBase3       Version = 0x03 // dBase III, no memo file
	VersionDBase3Memo   Version = 0x83 // dBase III with .dbt memo
	VersionDBase4Memo   Version = 0x8b // dBase IV with .dbt memo
	VersionVisualFoxPro Version = 0x30 // Visual FoxPro 9
	VersionFoxPro2Memo  Version = 0xf5 // FoxPro 2.x with .fpt memo
)

func (v Version) valid() bool {
	switch v {
	case VersionDBase3, VersionDBase3Memo, VersionDBase4Memo, VersionVisualFoxPro, VersionFoxPro2Memo:
		return true
	}
	return false
}

func (v Version) String() string {
	switch v {
	case VersionDBase3:
		return "dBase III"
	case VersionDBase3Memo:
		return "dBase III with memo"
	case VersionDBase4Memo:
		return "dBase IV with memo"
	case VersionVisualFoxPro:
		return "Visual FoxPro"
	case VersionFoxPro2Memo:
		return "FoxPro 2.x with memo"
	}
	return fmt.Sprintf("unknown (0x%02x)", byte(v))
}

// FieldType is the one-character type tag from a field descriptor.
type FieldType byte

const (
	TypeCharacter FieldType = 'C'
	TypeNumeric   FieldType = 'N'
	TypeFloat     FieldType = 'F'
	TypeLogical   FieldType = 'L'
	TypeDate      FieldType = 'D'
	TypeDateTime  FieldType = 'T'
	TypeDouble    FieldType = 'B'
	TypeInteger   FieldType = 'I'
	TypeMemo      FieldType = 'M'
	TypeCurrency  FieldType = 'Y'
)

// FieldDescriptor describes one column of the table: its decoded name
// (at most 10 bytes in the file, NUL padded), type tag, byte width within
// a record and declared decimal places.
type FieldDescriptor struct {
	Name     string
	Type     FieldType
	Size     int
	Decimals int
}

// legalTypes lists the field types each dialect accepts. Visual FoxPro adds
// the fixed-width binary types; the dBase and FoxPro 2.x dialects are text
// based.
var legalTypes = map[Version]string{
	VersionDBase3:       "CDFLMN",
	VersionDBase3Memo:   "CDFLMN",
	VersionDBase4Memo:   "CDFLMN",
	VersionVisualFoxPro: "BCDFILMNTY",
	VersionFoxPro2Memo:  "CDFLMN",
}

// fixedSizes maps types that only ever occupy one width in a record.
var fixedSizes = map[FieldType]int{
	TypeLogical:  1,
	TypeDate:     8,
	TypeDateTime: 8,
	TypeInteger:  4,
	TypeDouble:   8,
	TypeCurrency: 8,
}

// validateDescriptor enforces the version-specific descriptor rules. It is
// called incrementally as descriptors are parsed; seen accumulates the
// names already accepted for the schema. Loose mode skips it entirely.
func validateDescriptor(desc FieldDescriptor, version Version, seen map[string]struct{}) error {
	if desc.Name == "" {
		return formatErrorf("field descriptor with empty name")
	}
	if _, dup := seen[desc.Name]; dup {
		return formatErrorf("duplicate field name %q", desc.Name)
	}

	legal := legalTypes[version]
	if !containsType(legal, desc.Type) {
		return formatErrorf("field %q: type %q is not valid for %s files", desc.Name, byte(desc.Type), version)
	}

	if want, ok := fixedSizes[desc.Type]; ok && desc.Size != want {
		return formatErrorf("field %q: type %q requires size %d, got %d", desc.Name, byte(desc.Type), want, desc.Size)
	}
	if desc.Type == TypeMemo && desc.Size != 4 && desc.Size != 10 {
		return formatErrorf("field %q: memo fields must be 4 or 10 bytes, got %d", desc.Name, desc.Size)
	}
	if desc.Size <= 0 {
		return formatErrorf("field %q: invalid size %d", desc.Name, desc.Size)
	}

	seen[desc.Name] = struct{}{}
	return nil
}

func containsType(set string, t FieldType) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == byte(t) {
			return true
		}
	}
	return false
}
