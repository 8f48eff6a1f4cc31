// Package focus models nested keyboard focus in the daily view: which
// section receives action keys, which sub-field or list item inside it is
// highlighted, and how long-text sections scroll and expand.
package focus

// Section is one focusable region of the daily view.
type Section int

const (
	Measurements Section = iota
	Running
	Food
	Sokay
	StrengthMobility
	Notes

	sectionCount
)

// Sections lists every section in cycling order.
var Sections = []Section{Measurements, Running, Food, Sokay, StrengthMobility, Notes}

func (s Section) String() string {
	switch s {
	case Measurements:
		return "Measurements"
	case Running:
		return "Running"
	case Food:
		return "Food Items"
	case Sokay:
		return "Sokay"
	case StrengthMobility:
		return "Strength & Mobility"
	case Notes:
		return "Notes"
	}
	return "Unknown"
}

// IsList reports whether the section is backed by an item list.
func (s Section) IsList() bool { return s == Food || s == Sokay }

// IsLongText reports whether the section is backed by free text.
func (s Section) IsLongText() bool { return s == StrengthMobility || s == Notes }

// HasFields reports whether the section holds two toggleable sub-fields.
func (s Section) HasFields() bool { return s == Measurements || s == Running }

// Field selects one of the two sub-fields of a two-field section:
// weight/waist for Measurements, miles/elevation for Running.
type Field int

const (
	First Field = iota
	Second
)

// LongText is the display state of a long-text section.
type LongText struct {
	Scroll   int
	Expanded bool
}

// FitFunc reports whether a section's content fits its compact height.
type FitFunc func(Section) bool

// Model is the focus state of the daily view.
type Model struct {
	section Section
	fields  [sectionCount]Field
	lists   [sectionCount]List
	texts   [sectionCount]LongText
}

// New returns a model focused on Measurements with every list unfocused.
func New() Model {
	return Model{}
}

// Section returns the section holding focus.
func (m Model) Section() Section { return m.section }

// Field returns the focused sub-field of s.
func (m Model) Field(s Section) Field { return m.fields[s] }

// List returns the item focus of list section s.
func (m Model) List(s Section) List { return m.lists[s] }

// Text returns the display state of long-text section s.
func (m Model) Text(s Section) LongText { return m.texts[s] }

// Focus jumps to section s, applying the same reset rules as cycling.
func (m *Model) Focus(s Section, fits FitFunc) {
	m.enter(s, fits)
}

// Next moves focus to the following section, wrapping around.
func (m *Model) Next(fits FitFunc) {
	m.enter((m.section+1)%sectionCount, fits)
}

// Prev moves focus to the preceding section, wrapping around.
func (m *Model) Prev(fits FitFunc) {
	m.enter((m.section+sectionCount-1)%sectionCount, fits)
}

// enter collapses every long text, resets the destination's scroll and
// expands it when its content does not fit the compact height.
func (m *Model) enter(s Section, fits FitFunc) {
	for i := range m.texts {
		m.texts[i].Expanded = false
	}
	m.section = s
	m.texts[s].Scroll = 0
	if s.IsLongText() && fits != nil && !fits(s) {
		m.texts[s].Expanded = true
	}
}

// ToggleField flips the sub-field of the focused section. No-op elsewhere.
func (m *Model) ToggleField() {
	if !m.section.HasFields() {
		return
	}
	if m.fields[m.section] == First {
		m.fields[m.section] = Second
	} else {
		m.fields[m.section] = First
	}
}

// SetField focuses field f of section s.
func (m *Model) SetField(s Section, f Field) {
	m.fields[s] = f
}

// Down moves item focus down in the focused list section. n is the list length.
func (m *Model) Down(n int) {
	if m.section.IsList() {
		m.lists[m.section].Down(n)
	}
}

// Up moves item focus up in the focused list section. n is the list length.
func (m *Model) Up(n int) {
	if m.section.IsList() {
		m.lists[m.section].Up(n)
	}
}

// ScrollDown scrolls the focused long text one line, up to max.
func (m *Model) ScrollDown(max int) {
	if !m.section.IsLongText() {
		return
	}
	if t := &m.texts[m.section]; t.Scroll < max {
		t.Scroll++
	}
}

// ScrollUp scrolls the focused long text back one line.
func (m *Model) ScrollUp() {
	if !m.section.IsLongText() {
		return
	}
	if t := &m.texts[m.section]; t.Scroll > 0 {
		t.Scroll--
	}
}

// Escape applies the two-stage escape to the focused section and reports
// whether the screen should be left. Only a list with a focused item
// absorbs the first escape.
func (m *Model) Escape() bool {
	if m.section.IsList() {
		return m.lists[m.section].Escape()
	}
	return true
}

// Selected returns the focused item index of the focused list section.
func (m Model) Selected() (int, bool) {
	if !m.section.IsList() {
		return 0, false
	}
	return m.lists[m.section].Selected()
}

// Clamp re-bounds the item focus of list section s after its length
// changed to n.
func (m *Model) Clamp(s Section, n int) {
	m.lists[s].Clamp(n)
}

// Unfocus clears the item focus of list section s.
func (m *Model) Unfocus(s Section) {
	m.lists[s] = List{}
}

// SetItem focuses item i of list section s.
func (m *Model) SetItem(s Section, i int) {
	m.lists[s] = Focused(i)
}

// Reset returns every list to Unfocused and collapses long texts while
// keeping the focused section. Used when the daily view switches day.
func (m *Model) Reset() {
	section := m.section
	fields := m.fields
	*m = Model{section: section, fields: fields}
}
