// Package memory is an in-process ActivityProvider for tests and offline use.
package memory

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"sync"

	"tempo/internal/core"
)

// Provider serves canned activities keyed by date.
type Provider struct {
	mu   sync.Mutex
	days map[string][]core.ProviderActivity
	err  error
}

func New() *Provider {
	return &Provider{days: make(map[string][]core.ProviderActivity)}
}

// NewFromFile seeds a provider from a text file of "date activity hours"
// lines (whitespace separated, activity names may not contain spaces there).
// A missing file yields an empty provider.
func NewFromFile(path string) *Provider {
	p := New()
	f, err := os.Open(path)
	if err != nil {
		return p
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		hours, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		p.days[fields[0]] = append(p.days[fields[0]], core.ProviderActivity{Name: fields[1], Hours: hours})
	}
	return p
}

// SetDay replaces the canned response for a date.
func (p *Provider) SetDay(date string, activities ...core.ProviderActivity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.days[date] = activities
}

// Fail makes every FetchDay return err until cleared with Fail(nil).
func (p *Provider) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *Provider) FetchDay(_ context.Context, date string) ([]core.ProviderActivity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	out := append([]core.ProviderActivity(nil), p.days[date]...)
	return out, nil
}
