package buffer

// Snapshot is a read-only view of a buffer's current content at one
// revision. It does not change when the buffer is modified.
type Snapshot struct {
	text       string
	revisionID RevisionID
}

// Text returns the snapshot content.
func (s Snapshot) Text() string {
	return s.text
}

// Len returns the byte length of the snapshot.
func (s Snapshot) Len() int {
	return len(s.text)
}

// RevisionID returns the revision this snapshot was taken at.
func (s Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// OffsetToPoint converts a byte offset to line/column.
func (s Snapshot) OffsetToPoint(offset ByteOffset) Point {
	return offsetToPoint(s.text, offset)
}
