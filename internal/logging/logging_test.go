package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("debug msg")
	log.Info().Msg("info msg")
	if buf.Len() != 0 {
		t.Errorf("debug/info should be filtered at warn level, got: %s", buf.String())
	}

	log.Warn().Msg("warn msg")
	if !strings.Contains(buf.String(), "warn msg") {
		t.Errorf("expected warn msg, got: %s", buf.String())
	}
}

func TestSub(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").Sub("api")

	log.Debug().Msg("request sent")
	out := buf.String()
	if !strings.Contains(out, "request sent") || !strings.Contains(out, "api") {
		t.Errorf("expected subsystem-tagged message, got: %s", out)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error().Msg("dropped")
}
