// Package dbf decodes DBF tabular files (dBase III/IV and Visual FoxPro 9
// dialects) and their companion memo files (.dbt/.fpt) into structured
// records. The package never writes or mutates the source bytes; the caller
// supplies whole files as in-memory buffers and receives fully decoded
// records back.
//
// # File Format
//
// A DBF file opens with a fixed 32-byte header:
//
//	[Version(1)][LastUpdate(3)][RecordCount(4,LE)][HeaderLength(2,LE)][RecordLength(2,LE)][Reserved(20)]
//
// followed by a table of 32-byte field descriptors terminated by 0x0D:
//
//	[Name(11, NUL padded)][Type(1)][Reserved(4)][Size(1)][Decimals(1)][Reserved(14)]
//
// Records start at HeaderLength. Each record is one deletion-flag byte
// (0x2A marks a deleted record) followed by every field's bytes in
// descriptor order, each occupying exactly its declared size.
//
// Memo ('M') fields hold a block index into the companion memo file. Three
// incompatible memo encodings exist and are selected by the DBF version
// byte: dBase III (0x83) terminator-scanned blocks, dBase IV (0x8b)
// length-prefixed block chains, and FoxPro (0x30/0xf5) typed block chains.
//
// # Usage
//
//	table, err := dbf.Open(dbfBytes, memoBytes, dbf.Options{Encoding: "cp1252"})
//	if err != nil {
//	    return err
//	}
//
//	it := table.Iterator()
//	for it.Next() {
//	    rec := it.Record()
//	    fmt.Println(rec.Fields["NAME"], rec.Deleted)
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// # Read Modes
//
// Strict mode (the default) fails fast: unknown versions, illegal field
// descriptors, record-length mismatches, unsupported field types and
// out-of-range memo references all surface as errors. Loose mode is the
// recovery path for malformed or dialect-ambiguous files: version and
// descriptor validation are skipped, the record length is recomputed from
// the field sizes, unsupported field types are omitted from records, and
// broken memo references resolve to empty values.
//
// # Thread Safety
//
// A Table owns a mutable read cursor and is not safe for concurrent use;
// serialize access externally or open one Table per goroutine. The input
// buffers are never written to and may be shared freely.
package dbf
