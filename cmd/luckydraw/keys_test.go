package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/abrezinsky/luckydraw/internal/draw"
	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/internal/models"
	"github.com/abrezinsky/luckydraw/internal/services"
)

type stubDraws struct {
	services.DrawServicer
	categories []models.CategoryCount
	outcome    *services.DrawOutcome
	drawErr    error
	selected   string
	draws      int
}

func (s *stubDraws) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	return s.categories, nil
}

func (s *stubDraws) Select(ctx context.Context, category string) error {
	s.selected = category
	return nil
}

func (s *stubDraws) Draw(ctx context.Context) (*services.DrawOutcome, error) {
	s.draws++
	return s.outcome, s.drawErr
}

func newTestKeys() (*keyHandler, *stubDraws, *bytes.Buffer) {
	draws := &stubDraws{
		categories: []models.CategoryCount{{Name: "A", Count: 2}, {Name: "B"}, {Name: "None", Skip: true}},
		outcome:    &services.DrawOutcome{Winner: &models.Winner{Category: "A", FileName: "x.jpg", Remaining: 4}},
	}
	var out bytes.Buffer
	return &keyHandler{
		draws:       draws,
		log:         logger.Discard(),
		operatorURL: "http://localhost:8082/",
		out:         &out,
		open:        func(string) error { return nil },
	}, draws, &out
}

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"d", []string{"d"}},
		{"D", []string{"d"}},
		{"\x1b[C", []string{keyRight}},
		{"\x1b[A", nil},
		{"\r", []string{keyEnter}},
		{"1\x1b[C ", []string{"1", keyRight, " "}},
		{"\x03", []string{keyCtrlC}},
	}

	for _, tt := range tests {
		if got := splitKeys([]byte(tt.in)); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitKeys(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeyHandler_DrawKeys(t *testing.T) {
	for _, key := range []string{"d", " ", keyEnter, keyRight} {
		k, draws, out := newTestKeys()
		if k.handle(key) {
			t.Errorf("%q requested quit", key)
		}
		if draws.draws != 1 {
			t.Errorf("%q: draws = %d", key, draws.draws)
		}
		if !strings.Contains(out.String(), "x.jpg") {
			t.Errorf("%q: output = %q", key, out.String())
		}
	}
}

func TestKeyHandler_DrawErrors(t *testing.T) {
	k, draws, out := newTestKeys()

	draws.drawErr = draw.ErrCooldown
	k.handle("d")
	if out.Len() != 0 {
		t.Errorf("cooldown should be silent, got %q", out.String())
	}

	draws.drawErr = draw.ErrEmptyPool
	k.handle("d")
	if !strings.Contains(out.String(), "no candidates") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	draws.drawErr = nil
	draws.outcome = &services.DrawOutcome{Skipped: true}
	k.handle("d")
	if !strings.Contains(out.String(), "No draw") {
		t.Errorf("output = %q", out.String())
	}
}

func TestKeyHandler_SelectByDigit(t *testing.T) {
	k, draws, _ := newTestKeys()

	k.handle("2")
	if draws.selected != "B" {
		t.Errorf("selected = %q, want B", draws.selected)
	}

	k.handle("9")
	if draws.selected != "B" {
		t.Errorf("out-of-range digit changed selection to %q", draws.selected)
	}
}

func TestKeyHandler_Counts(t *testing.T) {
	k, _, out := newTestKeys()
	k.handle("c")
	if !strings.Contains(out.String(), "A") || !strings.Contains(out.String(), "None") {
		t.Errorf("output = %q", out.String())
	}
}

func TestKeyHandler_LogControls(t *testing.T) {
	k, _, _ := newTestKeys()

	before := k.log.GetLevel()
	k.handle("l")
	if got := k.log.GetLevel(); got != logger.NextLevel(before) {
		t.Errorf("level = %v", got)
	}

	k.log.SetLevel(slog.LevelError)
	k.handle("l")
	if k.log.GetLevel() != slog.LevelDebug {
		t.Errorf("level after error = %v", k.log.GetLevel())
	}

	was := k.log.IsHTTPLoggingEnabled()
	k.handle("h")
	if k.log.IsHTTPLoggingEnabled() == was {
		t.Error("h did not toggle HTTP logging")
	}
}

func TestKeyHandler_Open(t *testing.T) {
	k, _, out := newTestKeys()
	var opened string
	k.open = func(url string) error { opened = url; return nil }

	k.handle("o")
	if opened != "http://localhost:8082/" {
		t.Errorf("opened %q", opened)
	}

	k.open = func(string) error { return errors.New("no browser") }
	k.handle("o")
	if !strings.Contains(out.String(), "no browser") {
		t.Errorf("output = %q", out.String())
	}
}

func TestKeyHandler_Quit(t *testing.T) {
	k, _, _ := newTestKeys()
	if !k.handle("q") || !k.handle(keyCtrlC) {
		t.Error("quit keys should stop the listener")
	}
	if k.handle("x") {
		t.Error("unbound key requested quit")
	}
}
