package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/papadavis47/mountains-tui/internal/backup"
	"github.com/papadavis47/mountains-tui/internal/daylog"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		width        int
		wantContains []string
	}{
		{
			name:         "empty string",
			input:        "",
			width:        80,
			wantContains: []string{""},
		},
		{
			name:         "heading",
			input:        "# Mountains Training Log - March 09, 2024",
			width:        80,
			wantContains: []string{"Mountains Training Log"},
		},
		{
			name:         "list",
			input:        "## Food\n- Oatmeal\n- Rice\n",
			width:        80,
			wantContains: []string{"Food", "Oatmeal", "Rice"},
		},
		{
			name:         "bold labels",
			input:        "- **Weight:** 180.5 lbs\n",
			width:        80,
			wantContains: []string{"Weight:", "180.5 lbs"},
		},
		{
			name:         "small width",
			input:        "Hill repeats then a long easy shakeout",
			width:        20,
			wantContains: []string{"Hill repeats"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderMarkdown(tt.input, tt.width, "dark"))
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderMarkdown() output should contain %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderMarkdownBackupDay(t *testing.T) {
	day := daylog.New(time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local))
	day.AddFood("Oatmeal")
	day.SetNotes("Felt strong on the climbs")

	got := stripANSI(RenderMarkdown(backup.Render(day), 80, "notty"))
	for _, want := range []string{"March 09, 2024", "Oatmeal", "Notes", "Felt strong"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered day missing %q:\n%s", want, got)
		}
	}
}

func TestRenderMarkdownStyleChange(t *testing.T) {
	content := "# Test"

	dark := RenderMarkdown(content, 80, "dark")
	notty := RenderMarkdown(content, 80, "notty")
	if dark == "" || notty == "" {
		t.Fatal("expected output for both styles")
	}
	if mdCache.style != "notty" {
		t.Errorf("cached style = %q, want notty after switching", mdCache.style)
	}
}
