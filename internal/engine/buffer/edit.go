package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Start   ByteOffset // Inclusive start of the replaced range
	End     ByteOffset // Exclusive end of the replaced range
	NewText string     // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(start, end ByteOffset, newText string) Edit {
	return Edit{Start: start, End: end, NewText: newText}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Start == e.End {
		return fmt.Sprintf("Insert(%d, %q)", e.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete[%d:%d)", e.Start, e.End)
	}
	return fmt.Sprintf("Replace[%d:%d) with %q", e.Start, e.End, e.NewText)
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return e.Start != e.End && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return len(e.NewText) - (e.End - e.Start)
}

// EditResult contains information about an applied edit.
type EditResult struct {
	Edit        Edit       // The edit as applied
	OldText     string     // The text that was replaced
	NewEnd      ByteOffset // End offset of the inserted text
	OldRevision RevisionID // Revision before the edit
	NewRevision RevisionID // Revision after the edit
}

// Delta returns the change in buffer length caused by the edit.
func (r EditResult) Delta() int {
	return r.Edit.Delta()
}
