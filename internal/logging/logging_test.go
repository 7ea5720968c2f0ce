package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup(&buf, Config{Level: "info", Format: "json"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))) })

	l.Info("hello", "category", "Dairy")
	l.Debug("hidden")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("output is not a single JSON record: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "hello" || rec["category"] != "Dairy" {
		t.Errorf("record = %v", rec)
	}
	if L() != l {
		t.Error("L() did not return the configured logger")
	}
}

func TestSetupUnknownFormat(t *testing.T) {
	if _, err := Setup(&bytes.Buffer{}, Config{Level: "info", Format: "xml"}); err == nil {
		t.Error("Setup() expected error for unknown format")
	}
}

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := NewGormLogger(l, 50*time.Millisecond)
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("record not found is quiet", func(t *testing.T) {
		buf.Reset()
		g.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
		if strings.Contains(buf.String(), "query failed") {
			t.Errorf("record not found logged as failure: %s", buf.String())
		}
	})

	t.Run("errors", func(t *testing.T) {
		buf.Reset()
		g.Trace(ctx, time.Now(), sql, errors.New("boom"))
		if !strings.Contains(buf.String(), "query failed") {
			t.Errorf("expected failure log, got %q", buf.String())
		}
	})

	t.Run("slow", func(t *testing.T) {
		buf.Reset()
		g.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
		if !strings.Contains(buf.String(), "slow query") {
			t.Errorf("expected slow query log, got %q", buf.String())
		}
	})

	t.Run("silent", func(t *testing.T) {
		buf.Reset()
		g.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), sql, errors.New("boom"))
		if buf.Len() != 0 {
			t.Errorf("silent logger wrote %q", buf.String())
		}
	})
}
