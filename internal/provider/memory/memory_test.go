package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tempo/internal/core"
)

func TestProviderSetAndFetch(t *testing.T) {
	ctx := context.Background()
	p := New()
	p.SetDay("2024-06-01", core.ProviderActivity{Name: "Running", Hours: 1.25})

	got, err := p.FetchDay(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Running" || got[0].Hours != 1.25 {
		t.Errorf("got %+v, want [{Running 1.25}]", got)
	}

	empty, err := p.FetchDay(ctx, "2024-06-02")
	if err != nil {
		t.Fatalf("fetch empty day: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %+v, want empty", empty)
	}
}

func TestProviderFail(t *testing.T) {
	p := New()
	boom := errors.New("boom")
	p.Fail(boom)

	if _, err := p.FetchDay(context.Background(), "2024-06-01"); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}

	p.Fail(nil)
	if _, err := p.FetchDay(context.Background(), "2024-06-01"); err != nil {
		t.Fatalf("got %v after clearing failure", err)
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.txt")
	seed := "# comment\n2024-06-01 Running 1.5\n2024-06-01 Cycling 2\nbad line\n2024-06-02 Swim 0.5\n"
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	p := NewFromFile(path)

	day1, _ := p.FetchDay(context.Background(), "2024-06-01")
	if len(day1) != 2 {
		t.Fatalf("day1 = %+v, want 2 entries", day1)
	}
	day2, _ := p.FetchDay(context.Background(), "2024-06-02")
	if len(day2) != 1 || day2[0].Name != "Swim" {
		t.Fatalf("day2 = %+v, want [{Swim 0.5}]", day2)
	}
}

func TestNewFromFileMissing(t *testing.T) {
	p := NewFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	got, err := p.FetchDay(context.Background(), "2024-06-01")
	if err != nil || len(got) != 0 {
		t.Fatalf("missing seed file should give an empty provider, got %v %v", got, err)
	}
}
