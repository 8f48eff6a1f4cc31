// Package router maps key events to screen transitions. Dispatch is a pure
// function of the active screen, the key and a read-only view of focus
// state; applying the resulting Transition is left to the caller.
package router

import "github.com/papadavis47/mountains-tui/internal/focus"

// Screen is one named screen of the application.
type Screen int

const (
	Startup Screen = iota
	Home
	Daily
	AddFood
	EditFood
	AddSokay
	EditSokay
	EditWeight
	EditWaist
	EditMiles
	EditElevation
	EditStrength
	EditNotes
	ConfirmDeleteDay
	ConfirmDeleteFood
	ConfirmDeleteSokay
	Help
	Syncing
)

var screenNames = map[Screen]string{
	Startup:            "startup",
	Home:               "home",
	Daily:              "daily",
	AddFood:            "add-food",
	EditFood:           "edit-food",
	AddSokay:           "add-sokay",
	EditSokay:          "edit-sokay",
	EditWeight:         "edit-weight",
	EditWaist:          "edit-waist",
	EditMiles:          "edit-miles",
	EditElevation:      "edit-elevation",
	EditStrength:       "edit-strength",
	EditNotes:          "edit-notes",
	ConfirmDeleteDay:   "confirm-delete-day",
	ConfirmDeleteFood:  "confirm-delete-food",
	ConfirmDeleteSokay: "confirm-delete-sokay",
	Help:               "help",
	Syncing:            "syncing",
}

func (s Screen) String() string {
	if n, ok := screenNames[s]; ok {
		return n
	}
	return "unknown"
}

// IsEdit reports whether the screen hosts a text editor.
func (s Screen) IsEdit() bool { return s >= AddFood && s <= EditNotes }

// IsNumeric reports whether the screen edits a numeric field.
func (s Screen) IsNumeric() bool { return s >= EditWeight && s <= EditElevation }

// IsLongText reports whether the screen edits a multi-line field.
func (s Screen) IsLongText() bool { return s == EditStrength || s == EditNotes }

// IsConfirm reports whether the screen is a delete confirmation.
func (s Screen) IsConfirm() bool { return s >= ConfirmDeleteDay && s <= ConfirmDeleteSokay }

// Kind classifies a transition.
type Kind int

const (
	// Stay leaves everything untouched.
	Stay Kind = iota
	// Switch changes the active screen, after applying Action if one is set.
	Switch
	// Mutate applies Action in place on the current screen.
	Mutate
)

// Action names the in-place work a transition carries.
type Action int

const (
	None Action = iota
	ListDown
	ListUp
	ListUnfocus
	ScrollDown
	ScrollUp
	NextSection
	PrevSection
	ToggleField
	HomeDown
	HomeUp
	HomeUnfocus
	PrevDay
	NextDay
	OpenDay   // open the home list day at Index
	OpenToday // open (creating if needed) today's entry
	EditBuffer
	Commit // a failed commit cancels the accompanying Switch
	Confirm
	ExternalEditor
	Quit
)

// Transition is the result of dispatching one key.
type Transition struct {
	Kind   Kind
	Screen Screen
	Index  int
	Action Action
}

// View is the read-only state Dispatch consults.
type View struct {
	Focus      focus.Model
	Home       focus.List
	FoodCount  int
	SokayCount int
	DayCount   int
	HelpReturn Screen
}

func stay() Transition { return Transition{Kind: Stay} }

func mutate(a Action) Transition { return Transition{Kind: Mutate, Action: a} }

func to(s Screen) Transition { return Transition{Kind: Switch, Screen: s} }

func toWith(s Screen, a Action, index int) Transition {
	return Transition{Kind: Switch, Screen: s, Action: a, Index: index}
}

func quit() Transition { return Transition{Kind: Switch, Screen: Syncing, Action: Quit} }

func isHelpKey(key string) bool { return key == " " || key == "space" || key == "?" }

// Dispatch resolves key on screen to a transition. Undefined pairs yield Stay.
func Dispatch(screen Screen, key string, v View) Transition {
	switch {
	case screen == Startup:
		return startup(key)
	case screen == Home:
		return home(key, v)
	case screen == Daily:
		return daily(key, v)
	case screen.IsEdit():
		return edit(key)
	case screen.IsConfirm():
		return confirm(screen, key)
	case screen == Help:
		return to(v.HelpReturn)
	}
	return stay()
}

func startup(key string) Transition {
	switch {
	case key == "q" || key == "ctrl+c":
		return quit()
	case key == "n":
		return toWith(Daily, OpenToday, 0)
	case key == "l":
		return to(Home)
	case isHelpKey(key):
		return to(Help)
	}
	return stay()
}

func home(key string, v View) Transition {
	switch key {
	case "q", "ctrl+c":
		return quit()
	case "j", "down":
		if v.DayCount == 0 {
			return stay()
		}
		return mutate(HomeDown)
	case "k", "up":
		if v.DayCount == 0 {
			return stay()
		}
		return mutate(HomeUp)
	case "enter":
		if i, ok := v.Home.Selected(); ok && i < v.DayCount {
			return toWith(Daily, OpenDay, i)
		}
		return toWith(Daily, OpenToday, 0)
	case "n":
		return toWith(Daily, OpenToday, 0)
	case "d", "D":
		if i, ok := v.Home.Selected(); ok && i < v.DayCount {
			return toWith(ConfirmDeleteDay, None, i)
		}
		return stay()
	case "esc":
		if v.Home.IsFocused() {
			return mutate(HomeUnfocus)
		}
		return to(Startup)
	case "S":
		return to(Startup)
	}
	if isHelpKey(key) {
		return to(Help)
	}
	return stay()
}

func daily(key string, v View) Transition {
	section := v.Focus.Section()
	selected, focused := v.Focus.Selected()

	switch key {
	case "J":
		return mutate(NextSection)
	case "K":
		return mutate(PrevSection)
	case "tab":
		if section.HasFields() {
			return mutate(ToggleField)
		}
		return stay()
	case "j", "down":
		switch {
		case section.IsList() && listLen(section, v) > 0:
			return mutate(ListDown)
		case section.IsLongText():
			return mutate(ScrollDown)
		}
		return stay()
	case "k", "up":
		switch {
		case section.IsList() && listLen(section, v) > 0:
			return mutate(ListUp)
		case section.IsLongText():
			return mutate(ScrollUp)
		}
		return stay()
	case "enter":
		return enterSection(section, v.Focus)
	case "e", "E":
		if focused {
			return toWith(editScreen(section), None, selected)
		}
		return stay()
	case "d", "D":
		if !focused {
			return stay()
		}
		if section == focus.Food {
			return toWith(ConfirmDeleteFood, None, selected)
		}
		return toWith(ConfirmDeleteSokay, None, selected)
	case "f":
		return to(AddFood)
	case "c":
		return to(AddSokay)
	case "w":
		return to(EditWeight)
	case "s":
		return to(EditWaist)
	case "m":
		return to(EditMiles)
	case "l":
		return to(EditElevation)
	case "t":
		return to(EditStrength)
	case "n":
		return to(EditNotes)
	case "left", "h":
		return mutate(PrevDay)
	case "right":
		return mutate(NextDay)
	case "ctrl+e":
		if section.IsLongText() {
			return mutate(ExternalEditor)
		}
		return stay()
	case "S":
		return to(Startup)
	case "esc":
		if focused {
			return mutate(ListUnfocus)
		}
		return to(Home)
	}
	if isHelpKey(key) {
		return to(Help)
	}
	return stay()
}

func listLen(s focus.Section, v View) int {
	if s == focus.Food {
		return v.FoodCount
	}
	return v.SokayCount
}

func enterSection(s focus.Section, f focus.Model) Transition {
	switch s {
	case focus.Measurements:
		if f.Field(s) == focus.Second {
			return to(EditWaist)
		}
		return to(EditWeight)
	case focus.Running:
		if f.Field(s) == focus.Second {
			return to(EditElevation)
		}
		return to(EditMiles)
	case focus.Food, focus.Sokay:
		if i, ok := f.Selected(); ok {
			return toWith(editScreen(s), None, i)
		}
		if s == focus.Food {
			return to(AddFood)
		}
		return to(AddSokay)
	case focus.StrengthMobility:
		return to(EditStrength)
	case focus.Notes:
		return to(EditNotes)
	}
	return stay()
}

func editScreen(s focus.Section) Screen {
	if s == focus.Food {
		return EditFood
	}
	return EditSokay
}

func edit(key string) Transition {
	switch key {
	case "enter":
		return toWith(Daily, Commit, 0)
	case "esc":
		return to(Daily)
	}
	return mutate(EditBuffer)
}

func confirm(screen Screen, key string) Transition {
	back := Daily
	if screen == ConfirmDeleteDay {
		back = Home
	}
	switch key {
	case "y", "Y":
		return toWith(back, Confirm, 0)
	case "n", "N", "esc":
		return to(back)
	}
	return stay()
}
