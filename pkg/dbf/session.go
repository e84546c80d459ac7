package dbf

// rawPageSize bounds how many raw records a batch slices at once. Paging
// only caps peak memory; it is invisible to the ReadBatch contract.
const rawPageSize = 1000

// iteratorPageSize is the batch size the lazy iterator reads with.
const iteratorPageSize = 64

// ReadBatch returns up to max records starting at the current cursor,
// advancing the cursor by every raw record scanned, including deleted ones
// that were skipped. It returns fewer than max only when the table is
// exhausted. max <= 0 means "all remaining". Repeated calls are resumable
// and collectively consume exactly RecordCount raw records.
func (t *Table) ReadBatch(max int) ([]*Record, error) {
	want := max
	if want <= 0 {
		want = int(t.schema.RecordCount)
	}

	recLen := int(t.schema.RecordLength)
	records := make([]*Record, 0, min(want, rawPageSize))

	for t.recordsRead < t.schema.RecordCount && len(records) < want {
		remaining := int(t.schema.RecordCount - t.recordsRead)
		page := min(remaining, rawPageSize)

		start := int(t.schema.HeaderLength) + int(t.recordsRead)*recLen
		if start+page*recLen > len(t.data) {
			page = (len(t.data) - start) / recLen
			if page <= 0 {
				if t.opts.Mode == ModeStrict {
					return nil, formatErrorf("record data truncated at record %d", t.recordsRead)
				}
				// Loose mode treats a short file as exhausted.
				t.recordsRead = t.schema.RecordCount
				break
			}
		}
		window := t.data[start : start+page*recLen]

		for i := 0; i < page && len(records) < want; i++ {
			raw := window[i*recLen : (i+1)*recLen]
			t.recordsRead++

			if raw[0] == deletedFlag && !t.opts.IncludeDeleted {
				continue
			}
			rec, err := t.decoder.decode(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// Iterator returns a lazy view over the remaining records. The sequence is
// finite, forward only and not restartable: a second pass requires opening
// a new Table. The iterator shares the table's cursor, so interleaving it
// with ReadBatch calls consumes from the same position.
func (t *Table) Iterator() *RecordIterator {
	return &RecordIterator{table: t}
}

// RecordIterator streams records batch by batch. Usage follows the usual
// scanner shape: Next, then Record, then Err after the loop.
type RecordIterator struct {
	table *Table
	buf   []*Record
	pos   int
	err   error
	done  bool
}

// Next advances to the next record, fetching another batch from the table
// when the buffered one is drained. It returns false at the end of the
// table or on the first error.
func (it *RecordIterator) Next() bool {
	if it.err != nil || it.done {
		return false
	}
	if it.pos >= len(it.buf) {
		it.buf, it.err = it.table.ReadBatch(iteratorPageSize)
		it.pos = 0
		if it.err != nil || len(it.buf) == 0 {
			it.done = true
			return false
		}
	}
	it.pos++
	return true
}

// Record returns the record Next advanced to.
func (it *RecordIterator) Record() *Record {
	if it.pos == 0 || it.pos > len(it.buf) {
		return nil
	}
	return it.buf[it.pos-1]
}

// Err reports the first error the iteration hit, if any.
func (it *RecordIterator) Err() error {
	return it.err
}

// Close ends the iteration early. The underlying table stays open and keeps
// its cursor position.
func (it *RecordIterator) Close() error {
	it.done = true
	return it.err
}
