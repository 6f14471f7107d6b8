package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short", in: "hello", limit: 10, want: "hello"},
		{name: "cut", in: "hello world", limit: 5, want: "hello..."},
		{name: "zero limit", in: "hello", limit: 0, want: ""},
		{name: "multibyte", in: "नमस्ते दुनिया", limit: 2, want: "नम..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.limit); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestStringFields_SkipsBlank(t *testing.T) {
	fields := StringFields(
		StringField{Key: FieldProvider, Value: "primary"},
		StringField{Key: "", Value: "x"},
		StringField{Key: FieldStage, Value: "  "},
	)
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
}

func TestWithFields_NilLogger(t *testing.T) {
	l := WithFields(nil, zap.String("k", "v"))
	if l == nil {
		t.Fatalf("expected non-nil logger")
	}
}

func TestWithFields_AttachesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := WithFields(zap.New(core), StringFields(StringField{Key: FieldRequestID, Value: "rid-1"})...)
	l.Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()[FieldRequestID] != "rid-1" {
		t.Fatalf("expected request id field, got %v", entries[0].ContextMap())
	}
}
