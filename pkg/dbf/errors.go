package dbf

import "fmt"

// FormatError reports structural corruption in the DBF header or field
// descriptor table. It is always fatal and surfaces from Open regardless of
// read mode.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "dbf: invalid format: " + e.Reason
}

func formatErrorf(format string, args ...interface{}) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// TypeError reports a field whose type tag cannot be decoded. Fatal in
// strict mode; in loose mode the field is omitted from the record instead.
type TypeError struct {
	Field string
	Type  FieldType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("dbf: field %q has unsupported type %q", e.Field, byte(e.Type))
}

// MemoError reports a memo reference that cannot be resolved: a block
// outside the memo buffer, an unsupported memo encoding, or a memo pointer
// with no memo buffer supplied. Fatal in strict mode; loose mode resolves
// the value to empty/nil instead.
type MemoError struct {
	Reason string
}

func (e *MemoError) Error() string {
	return "dbf: memo: " + e.Reason
}

func memoErrorf(format string, args ...interface{}) *MemoError {
	return &MemoError{Reason: fmt.Sprintf(format, args...)}
}

// EncodingError reports a character set name the decoding service does not
// support. It is always fatal, independent of read mode.
type EncodingError struct {
	Name string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("dbf: unsupported encoding %q", e.Name)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
