package state_test

import (
	"errors"
	"testing"
	"time"

	"github.com/papadavis47/mountains-tui/internal/daylog"
	"github.com/papadavis47/mountains-tui/internal/focus"
	"github.com/papadavis47/mountains-tui/internal/state"
	"github.com/papadavis47/mountains-tui/internal/storage"
)

func date(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.Local) }

func fitsAll(focus.Section) bool { return true }

func TestAddFoodScenario(t *testing.T) {
	s := state.New(nil, date(3, 9))
	if _, created := s.EnsureDay(); !created {
		t.Fatal("EnsureDay should create the missing day")
	}

	snap, changed := s.AddFood("Oatmeal")
	if !changed {
		t.Fatal("AddFood reported no change")
	}
	if len(snap.Food) != 1 || snap.Food[0].Name != "Oatmeal" {
		t.Errorf("snapshot food = %+v", snap.Food)
	}
	cur, ok := s.Current()
	if !ok || len(cur.Food) != 1 || cur.Food[0].Name != "Oatmeal" {
		t.Errorf("state food = %+v", cur.Food)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := state.New(nil, date(3, 9))
	snap, _ := s.AddFood("Oatmeal")
	snap.Food[0].Name = "changed"
	cur, _ := s.Current()
	if cur.Food[0].Name != "Oatmeal" {
		t.Error("mutating a snapshot leaked into state")
	}
}

func TestBlankNamesIgnored(t *testing.T) {
	s := state.New(nil, date(3, 9))
	if _, changed := s.AddFood("   "); changed {
		t.Error("blank food accepted")
	}
	if _, changed := s.AddSokay(""); changed {
		t.Error("blank sokay accepted")
	}
	if s.DayCount() != 0 {
		t.Error("rejected add created a day")
	}
	s.AddFood("Rice")
	if _, changed := s.EditFood(0, " "); changed {
		t.Error("blank rename accepted")
	}
}

func TestDeleteClampsFocus(t *testing.T) {
	s := state.New(nil, date(3, 9))
	s.AddSokay("a")
	s.AddSokay("b")
	s.Focus.Focus(focus.Sokay, fitsAll)
	s.Focus.Up(2) // Focused(1)

	if _, changed := s.DeleteSokay(1); !changed {
		t.Fatal("DeleteSokay reported no change")
	}
	if i, ok := s.Focus.Selected(); !ok || i != 0 {
		t.Errorf("focus after delete = (%d,%v), want Focused(0)", i, ok)
	}

	s.DeleteSokay(0)
	if _, ok := s.Focus.Selected(); ok {
		t.Error("focus should be Unfocused on an empty list")
	}
}

func TestIdempotentDeletes(t *testing.T) {
	s := state.New(nil, date(3, 9))
	s.AddFood("Oatmeal")
	if _, changed := s.DeleteFood(0); !changed {
		t.Fatal("first delete reported no change")
	}
	if _, changed := s.DeleteFood(0); changed {
		t.Error("deleting an absent item reported a change")
	}
	if _, changed := s.DeleteSokay(3); changed {
		t.Error("deleting out of range reported a change")
	}

	if !s.DeleteDay(date(3, 9)) {
		t.Fatal("DeleteDay of existing day returned false")
	}
	if s.DeleteDay(date(3, 9)) {
		t.Error("second DeleteDay returned true")
	}
}

func TestDeleteDayClampsHome(t *testing.T) {
	days := []daylog.DailyEntry{daylog.New(date(3, 1)), daylog.New(date(3, 2))}
	s := state.New(days, date(3, 9))
	s.Home.Up(2) // Focused(1), the oldest

	s.DeleteDay(date(3, 1))
	if i, ok := s.Home.Selected(); !ok || i != 0 {
		t.Errorf("home focus = (%d,%v), want Focused(0)", i, ok)
	}
	s.DeleteDay(date(3, 2))
	if s.Home.IsFocused() {
		t.Error("home focus should be Unfocused once empty")
	}
}

func TestSetMeasurement(t *testing.T) {
	s := state.New(nil, date(3, 9))

	snap, changed, err := s.SetMeasurement(state.Weight, "180.5")
	if err != nil || !changed || snap.Weight == nil || *snap.Weight != 180.5 {
		t.Fatalf("SetMeasurement weight = %v, %v, %v", snap.Weight, changed, err)
	}
	snap, _, err = s.SetMeasurement(state.Elevation, "1200")
	if err != nil || snap.Elevation == nil || *snap.Elevation != 1200 {
		t.Errorf("elevation = %v, %v", snap.Elevation, err)
	}

	_, changed, err = s.SetMeasurement(state.Weight, ".")
	if !errors.Is(err, storage.ErrValidation) || changed {
		t.Errorf("invalid input: changed=%v err=%v", changed, err)
	}
	cur, _ := s.Current()
	if cur.Weight == nil || *cur.Weight != 180.5 {
		t.Error("rejected input changed the stored weight")
	}

	snap, _, _ = s.SetMeasurement(state.Weight, "")
	if snap.Weight != nil {
		t.Error("empty input should clear the weight")
	}
}

func TestSetLongText(t *testing.T) {
	s := state.New(nil, date(3, 9))
	snap, _ := s.SetLongText(state.Notes, "Felt good")
	if snap.Notes == nil || *snap.Notes != "Felt good" {
		t.Errorf("notes = %v", snap.Notes)
	}
	snap, _ = s.SetLongText(state.Notes, "  \n")
	if snap.Notes != nil {
		t.Error("whitespace should clear notes")
	}
}

func TestDaysNewestFirst(t *testing.T) {
	days := []daylog.DailyEntry{
		daylog.New(date(1, 5)),
		daylog.New(date(3, 1)),
		daylog.New(date(2, 14)),
	}
	s := state.New(days, date(3, 9))
	got := s.Days()
	want := []string{"2024-03-01", "2024-02-14", "2024-01-05"}
	for i, k := range want {
		if got[i].Key() != k {
			t.Errorf("Days()[%d] = %s, want %s", i, got[i].Key(), k)
		}
	}
}

func TestStepDay(t *testing.T) {
	days := []daylog.DailyEntry{
		daylog.New(date(1, 5)),
		daylog.New(date(3, 1)),
		daylog.New(date(2, 14)),
	}
	s := state.New(days, date(2, 14))

	if !s.StepDay(-1) || daylog.KeyFor(s.Selected) != "2024-01-05" {
		t.Errorf("older = %s", daylog.KeyFor(s.Selected))
	}
	if s.StepDay(-1) {
		t.Error("stepped past the oldest day")
	}
	s.StepDay(1)
	s.StepDay(1)
	if daylog.KeyFor(s.Selected) != "2024-03-01" {
		t.Errorf("newer = %s", daylog.KeyFor(s.Selected))
	}
	if s.StepDay(1) {
		t.Error("stepped past the newest day")
	}

	// From an unlogged date the nearest logged day in the direction is chosen.
	s.Select(date(2, 20))
	if !s.StepDay(-1) || daylog.KeyFor(s.Selected) != "2024-02-14" {
		t.Errorf("older from gap = %s", daylog.KeyFor(s.Selected))
	}
}

func TestOpenHomeDay(t *testing.T) {
	days := []daylog.DailyEntry{daylog.New(date(1, 5)), daylog.New(date(3, 1))}
	s := state.New(days, date(3, 9))
	if !s.OpenHomeDay(1) || daylog.KeyFor(s.Selected) != "2024-01-05" {
		t.Errorf("OpenHomeDay(1) selected %s", daylog.KeyFor(s.Selected))
	}
	if s.OpenHomeDay(5) {
		t.Error("OpenHomeDay out of range succeeded")
	}
}

func TestView(t *testing.T) {
	s := state.New(nil, date(3, 9))
	s.AddFood("a")
	s.AddFood("b")
	s.AddSokay("c")
	v := s.View()
	if v.FoodCount != 2 || v.SokayCount != 1 || v.DayCount != 1 {
		t.Errorf("View() = %+v", v)
	}
}
