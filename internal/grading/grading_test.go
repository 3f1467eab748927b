package grading

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dog runs.", "dog runs"},
		{"  Hello, World!  ", "hello world"},
		{"well-known (really)", "wellknown really"},
		{"a_b`c~d{e}f=g", "abcdefg"},
		{"It's", "it's"}, // apostrophes are kept
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCheck_CaseAndPunctuationInsensitive(t *testing.T) {
	res := Check("Dog runs.", "dog runs")
	if !res.Correct {
		t.Fatal("expected correct")
	}
	for i, d := range res.Diff {
		if !d.Correct {
			t.Errorf("diff[%d] = %+v, expected correct", i, d)
		}
	}
}

func TestCheck_WordDiff(t *testing.T) {
	res := Check("The necessary rhythm returned.", "the neccesary rythm returned")
	if res.Correct {
		t.Fatal("expected incorrect")
	}
	want := []WordDiff{
		{Part: "The", Correct: true, UserAttempt: "the"},
		{Part: "necessary", Correct: false, UserAttempt: "neccesary"},
		{Part: "rhythm", Correct: false, UserAttempt: "rythm"},
		{Part: "returned.", Correct: true, UserAttempt: "returned"},
	}
	if len(res.Diff) != len(want) {
		t.Fatalf("diff length = %d, want %d", len(res.Diff), len(want))
	}
	for i := range want {
		if res.Diff[i] != want[i] {
			t.Errorf("diff[%d] = %+v, want %+v", i, res.Diff[i], want[i])
		}
	}
}

func TestCheck_MissingWordsAreEmpty(t *testing.T) {
	res := Check("one two three", "one")
	if len(res.Diff) != 3 {
		t.Fatalf("diff length = %d", len(res.Diff))
	}
	for _, d := range res.Diff[1:] {
		if d.Correct || d.UserAttempt != "" {
			t.Errorf("expected missing attempt, got %+v", d)
		}
	}
}

func TestCheck_SplitsOnAnyWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		attempt  string
	}{
		{"double space", "Dog runs.", "dog  runs"},
		{"tab", "Dog runs.", "dog\truns"},
		{"newline", "Dog runs.", "dog\nruns"},
		{"padded", "  Dog   runs. ", "\tdog runs\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(tt.expected, tt.attempt)
			want := []WordDiff{
				{Part: "Dog", Correct: true, UserAttempt: "dog"},
				{Part: "runs.", Correct: true, UserAttempt: "runs"},
			}
			if len(res.Diff) != len(want) {
				t.Fatalf("diff length = %d, want %d: %+v", len(res.Diff), len(want), res.Diff)
			}
			for i := range want {
				if res.Diff[i] != want[i] {
					t.Errorf("diff[%d] = %+v, want %+v", i, res.Diff[i], want[i])
				}
			}
			if missed := IncorrectWords(res.Diff); len(missed) != 0 {
				t.Errorf("no word should be recorded as missed, got %+v", missed)
			}
		})
	}
}

func TestCheck_IndexComparisonMisreportsShift(t *testing.T) {
	// An inserted word shifts every later comparison.
	res := Check("the cat sat", "the big cat sat")
	if res.Correct {
		t.Fatal("expected incorrect")
	}
	if !res.Diff[0].Correct || res.Diff[1].Correct || res.Diff[2].Correct {
		t.Errorf("unexpected diff: %+v", res.Diff)
	}
}

func TestCheck_ExtraTrailingWordsIgnoredInDiff(t *testing.T) {
	res := Check("go home", "go home now")
	if res.Correct {
		t.Error("extra words make the sentence incorrect")
	}
	if len(res.Diff) != 2 || !res.Diff[0].Correct || !res.Diff[1].Correct {
		t.Errorf("unexpected diff: %+v", res.Diff)
	}
}

func TestIncorrectWords(t *testing.T) {
	diff := []WordDiff{
		{Part: "ok", Correct: true, UserAttempt: "ok"},
		{Part: "weird", Correct: false, UserAttempt: "wierd"},
		{Part: "--", Correct: false, UserAttempt: "x"},
		{Part: "", Correct: false},
	}
	got := IncorrectWords(diff)
	if len(got) != 1 || got[0].Part != "weird" {
		t.Errorf("IncorrectWords = %+v", got)
	}
}

func TestCleanWord(t *testing.T) {
	if got := CleanWord("Dog."); got != "Dog" {
		t.Errorf("CleanWord = %q", got)
	}
	if got := CleanWord("(rhythm),"); got != "rhythm" {
		t.Errorf("CleanWord = %q", got)
	}
}
