package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := NewLogger()
	l.SetWriter(buf)
	l.hostname = "idrepo-0"
	l.pid = 42
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 6000000, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)

	logger.Log(DeleteEvent{
		Collection: "applications",
		Key:        "billing",
		ClientIP:   "192.168.1.1",
		Success:    true,
	})

	want := `<85>1 2026-01-02T03:04:05.006Z idrepo-0 idrepo 42 delete ` +
		`[action@32473 operation="delete" result="success"]` +
		`[client@32473 ip="192.168.1.1"]` +
		`[subject@32473 collection="applications" key="billing"] ` +
		"deleted applications billing\n"
	if got := buf.String(); got != want {
		t.Errorf("Log() =\n%q\nwant\n%q", got, want)
	}
}

func TestLoggerEmptyHostname(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)
	logger.hostname = ""

	logger.Log(ReapEvent{Deleted: 1})

	if !strings.Contains(buf.String(), " - idrepo 42 reap ") {
		t.Errorf("expected nil hostname marker, got %q", buf.String())
	}
}

func TestDeleteEvent(t *testing.T) {
	tests := []struct {
		name         string
		event        DeleteEvent
		wantMessage  string
		wantSeverity Severity
		wantResult   string
	}{
		{
			name:         "success",
			event:        DeleteEvent{Collection: "users", Key: "u1", Success: true},
			wantMessage:  "deleted users u1",
			wantSeverity: SeverityNotice,
			wantResult:   "success",
		},
		{
			name:         "failure with error",
			event:        DeleteEvent{Collection: "any-types", Key: "USER", ErrorMessage: "builtin any type"},
			wantMessage:  "failed to delete any-types USER: builtin any type",
			wantSeverity: SeverityWarning,
			wantResult:   "failure",
		},
		{
			name:         "failure without error",
			event:        DeleteEvent{Collection: "roles", Key: "r1"},
			wantMessage:  "failed to delete roles r1",
			wantSeverity: SeverityWarning,
			wantResult:   "failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.MessageID(); got != "delete" {
				t.Errorf("MessageID() = %v, want 'delete'", got)
			}
			if got := tt.event.Message(); got != tt.wantMessage {
				t.Errorf("Message() = %v, want %v", got, tt.wantMessage)
			}
			if got := tt.event.Severity(); got != tt.wantSeverity {
				t.Errorf("Severity() = %v, want %v", got, tt.wantSeverity)
			}
			if got := tt.event.Facility(); got != FacilityAuthPriv {
				t.Errorf("Facility() = %v, want %v", got, FacilityAuthPriv)
			}
			sd := tt.event.StructuredData()
			if sd[SDIDAction]["result"] != tt.wantResult {
				t.Errorf("action.result = %v, want %v", sd[SDIDAction]["result"], tt.wantResult)
			}
			if sd[SDIDSubject]["key"] != tt.event.Key {
				t.Errorf("subject.key = %v, want %v", sd[SDIDSubject]["key"], tt.event.Key)
			}
		})
	}
}

func TestReapEvent(t *testing.T) {
	event := ReapEvent{ClientIP: "10.0.0.1", Deleted: 3}

	if got := event.MessageID(); got != "reap" {
		t.Errorf("MessageID() = %v, want 'reap'", got)
	}
	if got := event.Message(); got != "reaped 3 expired batch(es)" {
		t.Errorf("Message() = %v", got)
	}
	if got := event.Severity(); got != SeverityInfo {
		t.Errorf("Severity() = %v, want %v", got, SeverityInfo)
	}
	if got := event.StructuredData()[SDIDSubject]["deleted"]; got != "3" {
		t.Errorf("subject.deleted = %v, want '3'", got)
	}
}

func TestFormatStructuredDataEmpty(t *testing.T) {
	if got := formatStructuredData(nil); got != "" {
		t.Errorf("formatStructuredData(nil) = %q, want empty", got)
	}
}

func TestAuditToggle(t *testing.T) {
	originalEnabled := auditEnabled
	defer func() {
		auditEnabled = originalEnabled
	}()

	SetEnabled(false)
	if IsEnabled() {
		t.Error("Expected audit to be disabled")
	}

	SetEnabled(true)
	if !IsEnabled() {
		t.Error("Expected audit to be enabled")
	}
}

func TestLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	originalLogger, originalEnabled := DefaultLogger, auditEnabled
	defer func() {
		DefaultLogger, auditEnabled = originalLogger, originalEnabled
	}()
	DefaultLogger = fixedLogger(&buf)

	SetEnabled(false)
	Log(ReapEvent{Deleted: 1})

	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", `"simple"`},
		{`with"quote`, `"with\"quote"`},
		{`with\backslash`, `"with\\backslash"`},
		{`with]bracket`, `"with\]bracket"`},
		{`all"special\chars]`, `"all\"special\\chars\]"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeSDValue(tt.input)
			if got != tt.want {
				t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
