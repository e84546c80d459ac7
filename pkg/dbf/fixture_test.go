package dbf

import "encoding/binary"

// Test fixtures are assembled byte by byte so every layout detail the
// decoder depends on is explicit in the test.

type testField struct {
	name     string
	typ      byte
	size     byte
	decimals byte
}

// buildDBF assembles a complete DBF buffer: fixed header, descriptor table,
// 0x0D terminator and the given raw records. Records must already include
// their deletion-flag byte; they are padded to the computed record length.
func buildDBF(version byte, fields []testField, records [][]byte) []byte {
	headerLen := 32 + 32*len(fields) + 1
	recordLen := 1
	for _, f := range fields {
		recordLen += int(f.size)
	}

	buf := make([]byte, 0, headerLen+recordLen*len(records))

	header := make([]byte, 32)
	header[0] = version
	header[1], header[2], header[3] = 99, 2, 14 // 1999-02-14
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(records)))
	binary.LittleEndian.PutUint16(header[8:10], uint16(headerLen))
	binary.LittleEndian.PutUint16(header[10:12], uint16(recordLen))
	buf = append(buf, header...)

	for _, f := range fields {
		entry := make([]byte, 32)
		copy(entry[0:11], f.name)
		entry[11] = f.typ
		entry[16] = f.size
		entry[17] = f.decimals
		buf = append(buf, entry...)
	}
	buf = append(buf, 0x0D)

	for _, rec := range records {
		padded := make([]byte, recordLen)
		for i := range padded {
			padded[i] = ' '
		}
		copy(padded, rec)
		buf = append(buf, padded...)
	}

	return buf
}

// record builds one raw record from the deletion flag and field values,
// space-padding each value to its declared size.
func record(deleted bool, fields []testField, values ...[]byte) []byte {
	raw := []byte{' '}
	if deleted {
		raw[0] = deletedFlag
	}
	for i, f := range fields {
		cell := make([]byte, f.size)
		for j := range cell {
			cell[j] = ' '
		}
		if i < len(values) {
			copy(cell, values[i])
		}
		raw = append(raw, cell...)
	}
	return raw
}

// text right-pads a string cell; num left-pads a numeric cell, matching how
// dBase writers lay the two out.
func text(s string, size int) []byte {
	cell := make([]byte, size)
	for i := range cell {
		cell[i] = ' '
	}
	copy(cell, s)
	return cell
}

func num(s string, size int) []byte {
	cell := make([]byte, size)
	for i := range cell {
		cell[i] = ' '
	}
	copy(cell[size-len(s):], s)
	return cell
}

// buildDBase3Memo lays text out from the given block index in fixed
// 512-byte blocks, 0x1A terminated.
func buildDBase3Memo(blocks map[int][]byte) []byte {
	size := 512
	for block, payload := range blocks {
		if end := block*512 + len(payload) + 1; end > size {
			size = end
		}
	}
	buf := make([]byte, size)
	for block, payload := range blocks {
		copy(buf[block*512:], payload)
		buf[block*512+len(payload)] = memoFieldTerminator
	}
	return buf
}

// buildDBase4Memo writes the dBase IV header (block size at offset 4, LE)
// and one marker-prefixed entry per block index.
func buildDBase4Memo(blockSize int, blocks map[int][]byte) []byte {
	size := blockSize
	for block, payload := range blocks {
		if end := block*blockSize + 8 + len(payload); end > size {
			size = end
		}
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(blockSize))
	for block, payload := range blocks {
		start := block * blockSize
		binary.BigEndian.PutUint32(buf[start:start+4], dbase4MemoMarker)
		binary.LittleEndian.PutUint32(buf[start+4:start+8], uint32(len(payload)+8))
		copy(buf[start+8:], payload)
	}
	return buf
}

// buildFoxProMemo writes the FoxPro header (block size at offset 6, LE per
// the decoder's contract) and type-tagged entries.
func buildFoxProMemo(blockSize int, blocks map[int]foxProMemoEntry) []byte {
	size := blockSize
	if size < 8 {
		size = 8
	}
	for block, entry := range blocks {
		if end := block*blockSize + 8 + len(entry.payload); end > size {
			size = end
		}
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(blockSize))
	for block, entry := range blocks {
		start := block * blockSize
		binary.BigEndian.PutUint32(buf[start:start+4], entry.kind)
		binary.BigEndian.PutUint32(buf[start+4:start+8], uint32(len(entry.payload)))
		copy(buf[start+8:], entry.payload)
	}
	return buf
}

type foxProMemoEntry struct {
	kind    uint32
	payload []byte
}
