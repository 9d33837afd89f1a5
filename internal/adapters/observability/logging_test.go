package observability_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"hotel_admin/internal/adapters/observability"
)

func TestNewLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := observability.NewLogger("prod", "warn", &buf)

	l.Info().Msg("hidden")
	l.Warn().Str("hotel_id", "7").Msg("assign failed")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "assign failed" || line["hotel_id"] != "7" || line["level"] != "warn" {
		t.Fatalf("unexpected line: %v", line)
	}
}
