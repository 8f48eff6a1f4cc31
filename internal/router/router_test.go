package router_test

import (
	"testing"

	"github.com/papadavis47/mountains-tui/internal/focus"
	"github.com/papadavis47/mountains-tui/internal/router"
)

func fitsAll(focus.Section) bool { return true }

func viewOn(s focus.Section) router.View {
	m := focus.New()
	m.Focus(s, fitsAll)
	return router.View{Focus: m, FoodCount: 3, SokayCount: 2, DayCount: 4}
}

func TestQuitOnlyFromTopLevel(t *testing.T) {
	for _, screen := range []router.Screen{router.Startup, router.Home} {
		for _, key := range []string{"q", "ctrl+c"} {
			tr := router.Dispatch(screen, key, router.View{})
			if tr.Kind != router.Switch || tr.Screen != router.Syncing || tr.Action != router.Quit {
				t.Errorf("Dispatch(%v,%q) = %+v, want switch to syncing", screen, key, tr)
			}
		}
	}

	v := viewOn(focus.Measurements)
	if tr := router.Dispatch(router.Daily, "q", v); tr.Action == router.Quit {
		t.Error("daily view quit directly")
	}
	if tr := router.Dispatch(router.EditNotes, "q", v); tr.Kind != router.Mutate || tr.Action != router.EditBuffer {
		t.Errorf("q in editor = %+v, want buffer edit", tr)
	}
	if tr := router.Dispatch(router.EditNotes, "ctrl+c", v); tr.Action == router.Quit {
		t.Error("ctrl+c in editor quit")
	}
}

func TestUndefinedKeysStay(t *testing.T) {
	tests := []struct {
		screen router.Screen
		key    string
	}{
		{router.Startup, "x"},
		{router.Home, "z"},
		{router.Daily, "ctrl+z"},
		{router.ConfirmDeleteFood, "x"},
		{router.Syncing, "q"},
		{router.Syncing, "esc"},
		{router.Screen(99), "enter"},
	}
	for _, tt := range tests {
		if tr := router.Dispatch(tt.screen, tt.key, viewOn(focus.Food)); tr.Kind != router.Stay {
			t.Errorf("Dispatch(%v,%q) = %+v, want Stay", tt.screen, tt.key, tr)
		}
	}
}

func TestDailyTwoStageEscape(t *testing.T) {
	v := viewOn(focus.Sokay)
	v.Focus.Down(v.SokayCount)

	tr := router.Dispatch(router.Daily, "esc", v)
	if tr.Kind != router.Mutate || tr.Action != router.ListUnfocus {
		t.Fatalf("first escape = %+v, want ListUnfocus", tr)
	}

	v.Focus.Escape()
	tr = router.Dispatch(router.Daily, "esc", v)
	if tr.Kind != router.Switch || tr.Screen != router.Home {
		t.Errorf("second escape = %+v, want switch to home", tr)
	}
}

func TestHomeTwoStageEscape(t *testing.T) {
	v := router.View{DayCount: 2}
	v.Home.Down(2)
	if tr := router.Dispatch(router.Home, "esc", v); tr.Action != router.HomeUnfocus {
		t.Fatalf("first escape = %+v", tr)
	}
	v.Home.Escape()
	if tr := router.Dispatch(router.Home, "esc", v); tr.Screen != router.Startup {
		t.Errorf("second escape = %+v, want startup", tr)
	}
}

func TestHomeEnter(t *testing.T) {
	v := router.View{DayCount: 3}
	if tr := router.Dispatch(router.Home, "enter", v); tr.Action != router.OpenToday {
		t.Errorf("enter unfocused = %+v, want OpenToday", tr)
	}
	v.Home.Up(3)
	tr := router.Dispatch(router.Home, "enter", v)
	if tr.Screen != router.Daily || tr.Action != router.OpenDay || tr.Index != 2 {
		t.Errorf("enter focused = %+v, want OpenDay(2)", tr)
	}
	if tr := router.Dispatch(router.Home, "d", v); tr.Screen != router.ConfirmDeleteDay || tr.Index != 2 {
		t.Errorf("d focused = %+v", tr)
	}
}

func TestHomeDeleteNeedsFocus(t *testing.T) {
	if tr := router.Dispatch(router.Home, "D", router.View{DayCount: 3}); tr.Kind != router.Stay {
		t.Errorf("delete with no focused day = %+v", tr)
	}
}

func TestDailyEnterBySection(t *testing.T) {
	waist := viewOn(focus.Measurements)
	waist.Focus.ToggleField()
	elevation := viewOn(focus.Running)
	elevation.Focus.ToggleField()
	focusedFood := viewOn(focus.Food)
	focusedFood.Focus.Up(3)

	tests := []struct {
		name  string
		view  router.View
		want  router.Screen
		index int
	}{
		{"weight", viewOn(focus.Measurements), router.EditWeight, 0},
		{"waist", waist, router.EditWaist, 0},
		{"miles", viewOn(focus.Running), router.EditMiles, 0},
		{"elevation", elevation, router.EditElevation, 0},
		{"add food", viewOn(focus.Food), router.AddFood, 0},
		{"edit food", focusedFood, router.EditFood, 2},
		{"add sokay", viewOn(focus.Sokay), router.AddSokay, 0},
		{"strength", viewOn(focus.StrengthMobility), router.EditStrength, 0},
		{"notes", viewOn(focus.Notes), router.EditNotes, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := router.Dispatch(router.Daily, "enter", tt.view)
			if tr.Kind != router.Switch || tr.Screen != tt.want || tr.Index != tt.index {
				t.Errorf("enter = %+v, want switch to %v index %d", tr, tt.want, tt.index)
			}
		})
	}
}

func TestDailyEditDeleteNeedFocusedItem(t *testing.T) {
	v := viewOn(focus.Food)
	for _, key := range []string{"e", "E", "d", "D"} {
		if tr := router.Dispatch(router.Daily, key, v); tr.Kind != router.Stay {
			t.Errorf("%q on unfocused list = %+v, want Stay", key, tr)
		}
	}

	v.Focus.Down(v.FoodCount)
	if tr := router.Dispatch(router.Daily, "d", v); tr.Screen != router.ConfirmDeleteFood || tr.Index != 0 {
		t.Errorf("d = %+v", tr)
	}
	if tr := router.Dispatch(router.Daily, "e", v); tr.Screen != router.EditFood || tr.Index != 0 {
		t.Errorf("e = %+v", tr)
	}
}

func TestDailyArrowsByKind(t *testing.T) {
	if tr := router.Dispatch(router.Daily, "down", viewOn(focus.Sokay)); tr.Action != router.ListDown {
		t.Errorf("down on list = %+v", tr)
	}
	if tr := router.Dispatch(router.Daily, "j", viewOn(focus.Notes)); tr.Action != router.ScrollDown {
		t.Errorf("j on notes = %+v", tr)
	}
	if tr := router.Dispatch(router.Daily, "up", viewOn(focus.Measurements)); tr.Kind != router.Stay {
		t.Errorf("up on measurements = %+v", tr)
	}
	empty := viewOn(focus.Food)
	empty.FoodCount = 0
	if tr := router.Dispatch(router.Daily, "down", empty); tr.Kind != router.Stay {
		t.Errorf("down on empty list = %+v", tr)
	}
}

func TestDailyShortcuts(t *testing.T) {
	want := map[string]router.Screen{
		"f": router.AddFood,
		"c": router.AddSokay,
		"w": router.EditWeight,
		"s": router.EditWaist,
		"m": router.EditMiles,
		"l": router.EditElevation,
		"t": router.EditStrength,
		"n": router.EditNotes,
		"S": router.Startup,
		"?": router.Help,
	}
	for key, screen := range want {
		if tr := router.Dispatch(router.Daily, key, viewOn(focus.Food)); tr.Kind != router.Switch || tr.Screen != screen {
			t.Errorf("%q = %+v, want switch to %v", key, tr, screen)
		}
	}
}

func TestEditScreens(t *testing.T) {
	v := viewOn(focus.Notes)
	if tr := router.Dispatch(router.EditWeight, "enter", v); tr.Screen != router.Daily || tr.Action != router.Commit {
		t.Errorf("enter = %+v, want commit", tr)
	}
	if tr := router.Dispatch(router.AddFood, "esc", v); tr.Screen != router.Daily || tr.Action != router.None {
		t.Errorf("esc = %+v, want cancel", tr)
	}
	if tr := router.Dispatch(router.EditNotes, "alt+enter", v); tr.Action != router.EditBuffer {
		t.Errorf("alt+enter = %+v, want buffer edit", tr)
	}
}

func TestConfirmScreens(t *testing.T) {
	tests := []struct {
		screen router.Screen
		key    string
		back   router.Screen
		action router.Action
	}{
		{router.ConfirmDeleteDay, "y", router.Home, router.Confirm},
		{router.ConfirmDeleteDay, "esc", router.Home, router.None},
		{router.ConfirmDeleteFood, "Y", router.Daily, router.Confirm},
		{router.ConfirmDeleteSokay, "N", router.Daily, router.None},
	}
	for _, tt := range tests {
		tr := router.Dispatch(tt.screen, tt.key, router.View{})
		if tr.Kind != router.Switch || tr.Screen != tt.back || tr.Action != tt.action {
			t.Errorf("Dispatch(%v,%q) = %+v", tt.screen, tt.key, tr)
		}
	}
}

func TestHelpReturns(t *testing.T) {
	v := router.View{HelpReturn: router.Daily}
	if tr := router.Dispatch(router.Help, "x", v); tr.Screen != router.Daily {
		t.Errorf("help any key = %+v, want return to daily", tr)
	}
}
