package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    interface{}
	}{
		{"RunID", KeyRunID, "123", RunID("123")},
		{"Document", KeyDocument, "/documentation/acme", Document("/documentation/acme")},
		{"Stage", KeyStage, "render_pages", Stage("render_pages")},
		{"Target", KeyTarget, "doc://Acme/widget", Target("doc://Acme/widget")},
		{"Output", KeyOutput, "./site", Output("./site")},
	}

	for _, tc := range cases {
		a := tc.attr.(slog.Attr)
		if a.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, a.Key)
		}
		if a.Value.String() != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, a.Value.String())
		}
	}
}

func TestErrorHelper(t *testing.T) {
	if Error(nil).Value.String() != "" {
		t.Fatalf("nil error should stringify empty")
	}
	if Error(errors.New("boom")).Value.String() != "boom" {
		t.Fatalf("error value mismatch")
	}
}
