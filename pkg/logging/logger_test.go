package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("DefaultConfig().Level = %s, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("DefaultConfig().Pretty = true, want JSON output")
	}
}

func TestSetupLevels(t *testing.T) {
	emit := map[LogLevel]func(zerolog.Logger, string){
		LevelDebug: func(l zerolog.Logger, m string) { l.Debug().Msg(m) },
		LevelInfo:  func(l zerolog.Logger, m string) { l.Info().Msg(m) },
		LevelWarn:  func(l zerolog.Logger, m string) { l.Warn().Msg(m) },
		LevelError: func(l zerolog.Logger, m string) { l.Error().Msg(m) },
	}

	for level, write := range emit {
		t.Run(string(level), func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: level, Output: buf})

			write(logger, "batch wave done")

			if !strings.Contains(buf.String(), "batch wave done") {
				t.Errorf("level %s: message missing from %q", level, buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[LogLevel]zerolog.Level{
		LevelDebug: zerolog.DebugLevel,
		LevelInfo:  zerolog.InfoLevel,
		LevelWarn:  zerolog.WarnLevel,
		LevelError: zerolog.ErrorLevel,
		"verbose":  zerolog.InfoLevel,
	}

	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelWarn, Output: buf})

	logger := NewLogger("pagination")
	logger.Debug().Msg("record fetched")
	logger.Info().Msg("batch complete")
	logger.Warn().Msg("record dropped")
	logger.Error().Msg("page failed")

	output := buf.String()
	for _, hidden := range []string{"record fetched", "batch complete"} {
		if strings.Contains(output, hidden) {
			t.Errorf("%q should be filtered at warn level", hidden)
		}
	}
	for _, shown := range []string{"record dropped", "page failed"} {
		if !strings.Contains(output, shown) {
			t.Errorf("%q should be logged at warn level", shown)
		}
	}
}

func TestParseLevelInput(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"trace", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetupAppField(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger("explore")
	logger.Info().Int("page", 2).Msg("Explore page loaded")

	output := buf.String()
	for _, want := range []string{`"app":"arcivia"`, `"component":"explore"`, `"page":2`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %s, got %q", want, output)
		}
	}
}

func TestSetupPretty(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Pretty: true, Output: buf})

	logger := NewLogger("theme")
	logger.Info().Msg("Theme changed")

	output := buf.String()
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("Expected console output, got JSON %q", output)
	}
	if !strings.Contains(output, "Theme changed") {
		t.Errorf("Expected output to contain message, got %q", output)
	}
}
