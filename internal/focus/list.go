package focus

// List is the item focus of a list: Unfocused, or Focused(index).
// The zero value is Unfocused.
type List struct {
	focused bool
	index   int
}

// Focused returns a List focused on item i.
func Focused(i int) List {
	return List{focused: true, index: i}
}

// IsFocused reports whether an item is highlighted.
func (l List) IsFocused() bool { return l.focused }

// Selected returns the focused index and whether an item is focused.
func (l List) Selected() (int, bool) {
	return l.index, l.focused
}

// Down focuses the first item when unfocused, otherwise moves one item down
// without wrapping. n is the list length.
func (l *List) Down(n int) {
	if n <= 0 {
		return
	}
	if !l.focused {
		*l = Focused(0)
		return
	}
	if l.index < n-1 {
		l.index++
	}
}

// Up focuses the last item when unfocused, otherwise moves one item up
// without wrapping. n is the list length.
func (l *List) Up(n int) {
	if n <= 0 {
		return
	}
	if !l.focused {
		*l = Focused(n - 1)
		return
	}
	if l.index > 0 {
		l.index--
	}
}

// Escape unfocuses a focused list and returns false. From Unfocused it
// returns true: the caller leaves the screen.
func (l *List) Escape() bool {
	if l.focused {
		*l = List{}
		return false
	}
	return true
}

// Clamp keeps the focus valid for a list of length n: Unfocused when the
// list is empty, otherwise the index is capped at n-1.
func (l *List) Clamp(n int) {
	if !l.focused {
		return
	}
	if n <= 0 {
		*l = List{}
		return
	}
	if l.index > n-1 {
		l.index = n - 1
	}
	if l.index < 0 {
		l.index = 0
	}
}
