package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_StampsServiceAndComponent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Service: "marketplace-api", Output: &buf})
	jobs := Component("jobs")
	jobs.Debug().Str("job_id", "j1").Msg("created")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	for key, want := range map[string]string{"service": "marketplace-api", "component": "jobs", "job_id": "j1", "level": "debug"} {
		if line[key] != want {
			t.Errorf("%s: expected %q, got %v", key, want, line[key])
		}
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "error", Output: &first})
	l := Init(Options{Level: "debug", Output: &second})

	l.Info().Msg("dropped")
	if first.Len() != 0 || second.Len() != 0 {
		t.Fatalf("info must be filtered by the first call's level")
	}
}

func TestGet_BeforeInitIsDisabled(t *testing.T) {
	Reset()
	if got := Get().GetLevel(); got != zerolog.Disabled {
		t.Fatalf("expected disabled logger, got %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}
}
