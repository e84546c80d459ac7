package dbf

import (
	"bytes"
	"encoding/binary"
)

const (
	defaultMemoBlockSize = 512
	memoFieldTerminator  = 0x1A

	// dBase IV memo blocks open with this big-endian marker.
	dbase4MemoMarker = 0x0008FFFF

	// FoxPro memo type tag for text payloads. Any other tag (binary,
	// image) resolves to an empty value.
	foxProTextMemo = 1
)

// memoFile resolves block indexes from 'M' fields into raw memo payloads.
// The three dialects use mutually incompatible layouts, so the resolution
// protocol is fixed by the DBF version at open time. Payloads are returned
// as raw bytes; character decoding happens once over the assembled payload
// so multi-byte characters may straddle block boundaries.
type memoFile struct {
	data      []byte
	version   Version
	blockSize int
	mode      ReadMode
}

// newMemoFile derives the block size from the memo header. FoxPro stores it
// as a 16-bit value at offset 6, dBase IV as a 32-bit value at offset 4;
// dBase III blocks are always 512 bytes. A zero stored size falls back to
// 512.
func newMemoFile(data []byte, version Version, mode ReadMode) (*memoFile, error) {
	m := &memoFile{data: data, version: version, mode: mode, blockSize: defaultMemoBlockSize}

	switch version {
	case VersionDBase3, VersionDBase3Memo:
		// Fixed 512-byte blocks, no usable header field.
	case VersionDBase4Memo:
		if len(data) >= 8 {
			if size := int(int32(binary.LittleEndian.Uint32(data[4:8]))); size > 0 {
				m.blockSize = size
			}
		}
	case VersionVisualFoxPro, VersionFoxPro2Memo:
		if len(data) >= 8 {
			if size := int(binary.LittleEndian.Uint16(data[6:8])); size > 0 {
				m.blockSize = size
			}
		}
	default:
		if mode == ModeStrict {
			return nil, memoErrorf("unsupported memo format for version %s", version)
		}
		// Loose mode keeps the handle usable; every lookup resolves empty.
		m.version = 0
	}

	return m, nil
}

// resolve returns the raw payload for one block index. Out-of-range
// references fail in strict mode and resolve to an empty payload in loose
// mode; a partial or garbage read is never returned.
func (m *memoFile) resolve(block int) ([]byte, error) {
	if m.version == 0 {
		return nil, nil
	}

	start := block * m.blockSize
	if block <= 0 || start >= len(m.data) {
		return m.fail("block %d is outside the memo buffer", block)
	}

	switch m.version {
	case VersionDBase3, VersionDBase3Memo:
		return m.resolveDBase3(start), nil
	case VersionDBase4Memo:
		return m.resolveDBase4(start)
	case VersionVisualFoxPro, VersionFoxPro2Memo:
		return m.resolveFoxPro(start)
	}
	return m.fail("unsupported memo format for version %s", m.version)
}

// resolveDBase3 scans from the block start to the first 0x1A terminator.
// The terminator may appear singly or doubled; only the first occurrence
// matters. Without one the payload runs to the end of the buffer.
func (m *memoFile) resolveDBase3(start int) []byte {
	payload := m.data[start:]
	if i := bytes.IndexByte(payload, memoFieldTerminator); i >= 0 {
		payload = payload[:i]
	}
	return payload
}

// resolveDBase4 reads a length-prefixed chain: a 4-byte big-endian marker,
// then the total payload length (little-endian, including the 8-byte
// header). The payload continues across consecutive blocks until the
// declared length is exhausted.
func (m *memoFile) resolveDBase4(start int) ([]byte, error) {
	if start+8 > len(m.data) {
		return m.fail("block header at %d is outside the memo buffer", start)
	}
	if binary.BigEndian.Uint32(m.data[start:start+4]) != dbase4MemoMarker {
		return m.fail("block at %d has no dBase IV memo marker", start)
	}

	total := int(binary.LittleEndian.Uint32(m.data[start+4 : start+8]))
	if total < 8 {
		return m.fail("block at %d declares length %d", start, total)
	}
	end := start + total
	if end > len(m.data) {
		return m.fail("memo of %d bytes at %d runs past the buffer", total, start)
	}
	return m.data[start+8 : end], nil
}

// resolveFoxPro reads a typed chain: a 4-byte big-endian type tag and a
// 4-byte big-endian payload length. Non-text memos resolve to an empty
// payload without error in either mode.
func (m *memoFile) resolveFoxPro(start int) ([]byte, error) {
	if start+8 > len(m.data) {
		return m.fail("block header at %d is outside the memo buffer", start)
	}
	if binary.BigEndian.Uint32(m.data[start:start+4]) != foxProTextMemo {
		return nil, nil
	}

	length := int(binary.BigEndian.Uint32(m.data[start+4 : start+8]))
	end := start + 8 + length
	if end > len(m.data) {
		return m.fail("memo of %d bytes at %d runs past the buffer", length, start)
	}
	return m.data[start+8 : end], nil
}

func (m *memoFile) fail(format string, args ...interface{}) ([]byte, error) {
	if m.mode == ModeStrict {
		return nil, memoErrorf(format, args...)
	}
	return nil, nil
}
