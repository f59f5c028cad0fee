package app

import "testing"

func TestFieldEditing(t *testing.T) {
	var f field
	for _, r := range "héllo" {
		f.insert(r)
	}
	if f.String() != "héllo" || f.cursor != 5 {
		t.Fatalf("field = %q cursor %d", f.String(), f.cursor)
	}

	f.home()
	if f.backspace() {
		t.Error("backspace at start reported a change")
	}
	f.moveRight()
	f.moveRight()
	if !f.backspace() || f.String() != "hllo" {
		t.Errorf("after backspace = %q", f.String())
	}
	f.end()
	if f.delete() {
		t.Error("delete at end reported a change")
	}
	f.moveLeft()
	f.insert('X')
	if f.String() != "hllXo" {
		t.Errorf("after insert = %q", f.String())
	}
	if !f.clear() || f.String() != "" || f.cursor != 0 {
		t.Errorf("after clear = %q cursor %d", f.String(), f.cursor)
	}
	if f.clear() {
		t.Error("clear on empty field reported a change")
	}
}
