package textstat

import (
	"math"
	"testing"
)

func TestSentences(t *testing.T) {
	text := "Cells divide. Why? See e.g. the skin.\n\nNew paragraph"
	got := Sentences(text)
	want := []string{"Cells divide.", "Why?", "See e.g. the skin.", "New paragraph"}
	if len(got) != len(want) {
		t.Fatalf("Sentences = %+v", got)
	}
	for i, s := range got {
		if s.Text != want[i] {
			t.Fatalf("sentence %d = %q, want %q", i, s.Text, want[i])
		}
		if text[s.Start:s.End] != s.Text {
			t.Fatalf("sentence %d offsets do not match its text", i)
		}
	}
}

func TestIsPrompt(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Explain mitosis.", true},
		{"1. List three cell types", true},
		{`He asked "why?"`, true},
		{"# Explain", false},
		{"Cells divide.", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsPrompt(tc.in); got != tc.want {
			t.Fatalf("IsPrompt(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWordsAndTechnicalTokens(t *testing.T) {
	if n := WordCount("well-known cell's DNA 2x"); n != 4 {
		t.Fatalf("WordCount = %d", n)
	}
	for tok, want := range map[string]bool{
		"photosynthesis": true,
		"ATP":            false,
		"H2O":            true,
		"cell-cycle":     true,
	} {
		if got := IsTechnicalToken(tok); got != want {
			t.Fatalf("IsTechnicalToken(%q) = %v", tok, got)
		}
	}
	if got := AverageSentenceLength("One two three. Four five."); got != 2.5 {
		t.Fatalf("AverageSentenceLength = %v", got)
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := Median([]float64{3, 1, 2, 4}); got != 2.5 {
		t.Fatalf("Median = %v", got)
	}
	if got := Variance([]float64{2, 4}); got != 1 {
		t.Fatalf("Variance = %v", got)
	}
	if Ratio(1, 0) != 0 || Ratio(1, math.NaN()) != 0 {
		t.Fatalf("Ratio should guard zero and NaN")
	}
	if Clamp01(1.5) != 1 || Clamp01(-1) != 0 || Clamp01(math.NaN()) != 0 {
		t.Fatalf("Clamp01 out of range")
	}
	if Round(1.23456, 2) != 1.23 {
		t.Fatalf("Round = %v", Round(1.23456, 2))
	}
	if PerThousand(5, 500) != 10 || PerThousand(5, 0) != 0 {
		t.Fatalf("PerThousand wrong")
	}
}
