package app

// field is a single-line text input.
type field struct {
	label  string
	runes  []rune
	cursor int // Rune index in [0, len(runes)]
}

func (f *field) String() string {
	return string(f.runes)
}

func (f *field) insert(r rune) {
	f.runes = append(f.runes, 0)
	copy(f.runes[f.cursor+1:], f.runes[f.cursor:])
	f.runes[f.cursor] = r
	f.cursor++
}

// backspace deletes the rune before the cursor. It reports whether the
// text changed.
func (f *field) backspace() bool {
	if f.cursor == 0 {
		return false
	}
	f.runes = append(f.runes[:f.cursor-1], f.runes[f.cursor:]...)
	f.cursor--
	return true
}

// delete removes the rune under the cursor.
func (f *field) delete() bool {
	if f.cursor >= len(f.runes) {
		return false
	}
	f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
	return true
}

func (f *field) clear() bool {
	if len(f.runes) == 0 {
		return false
	}
	f.runes = f.runes[:0]
	f.cursor = 0
	return true
}

func (f *field) moveLeft() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *field) moveRight() {
	if f.cursor < len(f.runes) {
		f.cursor++
	}
}

func (f *field) home() { f.cursor = 0 }

func (f *field) end() { f.cursor = len(f.runes) }
