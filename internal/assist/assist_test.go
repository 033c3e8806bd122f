package assist

import (
	"reflect"
	"testing"
)

func TestParseSteps(t *testing.T) {
	raw := "1. Empty the shelves\n2) Sort into keep/donate\n- Wipe everything down\n* Put keepers back\n\n  \n5. Drop off donations"
	got := parseSteps(raw, 10)
	want := []string{
		"Empty the shelves",
		"Sort into keep/donate",
		"Wipe everything down",
		"Put keepers back",
		"Drop off donations",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseSteps=%v, want %v", got, want)
	}
}

func TestParseStepsCapsAtMax(t *testing.T) {
	raw := "a\nb\nc\nd"
	got := parseSteps(raw, 2)
	if len(got) != 2 {
		t.Fatalf("%d steps, want 2", len(got))
	}
}

func TestParseStepsEmptyInput(t *testing.T) {
	if got := parseSteps("   \n\n", 5); got != nil {
		t.Fatalf("parseSteps on blank input=%v, want nil", got)
	}
}

func TestNormalizeKind(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"quest", "quest"},
		{"Quest.", "quest"},
		{"this is a task", "quest"},
		{"note", "note"},
		{"source_document", "source_document"},
		{"Reference material", "source_document"},
		{"item", "item"},
		{"inventory", "item"},
		{"no idea", "note"},
		{"", "note"},
	}
	for _, tc := range cases {
		if got := normalizeKind(tc.raw); got != tc.want {
			t.Fatalf("normalizeKind(%q)=%q, want %q", tc.raw, got, tc.want)
		}
	}
}
