package core

import "testing"

func TestNewClassification(t *testing.T) {
	c := NewClassification(
		[]string{"Fitness", " Climbing ", ""},
		[]string{"Reading", "Fitness"}, // later list wins on duplicates
	)

	cases := []struct {
		category string
		want     Tag
		tagged   bool
	}{
		{"Climbing", TagExercise, true},
		{"Reading", TagImprovement, true},
		{"Fitness", TagImprovement, true},
		{"Work", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		tag, ok := c.Tag(tc.category)
		if ok != tc.tagged {
			t.Fatalf("case %d tagged = %v, want %v", i, ok, tc.tagged)
		}
		if ok && tag != tc.want {
			t.Fatalf("case %d tag = %q, want %q", i, tag, tc.want)
		}
	}
}

func TestNewClassificationEmpty(t *testing.T) {
	c := NewClassification(nil, nil)
	if len(c) != 0 {
		t.Fatalf("expected empty classification, got %d entries", len(c))
	}
	if _, ok := c.Tag("Anything"); ok {
		t.Fatal("empty classification should tag nothing")
	}
}
