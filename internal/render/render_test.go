package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/derickschaefer/biapi/internal/render"
)

func init() {
	color.NoColor = true
}

const accounts = `{"accounts":[{"id":1},{"id":2}]}`

func mustFormat(t *testing.T, data, mode string) string {
	t.Helper()
	out, err := render.Format(json.RawMessage(data), mode)
	if err != nil {
		t.Fatalf("Format(%s): %v", mode, err)
	}
	return out
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func TestJSONRoundTrip(t *testing.T) {
	out := mustFormat(t, accounts, render.FormatJSON)

	var got, want any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	_ = json.Unmarshal([]byte(accounts), &want)
	gb, _ := json.Marshal(got)
	wb, _ := json.Marshal(want)
	if !bytes.Equal(gb, wb) {
		t.Errorf("structure changed:\n  want %s\n  got  %s", wb, gb)
	}
}

func TestJSONPreservesFieldOrder(t *testing.T) {
	out := mustFormat(t, `{"zeta":1,"alpha":2}`, render.FormatJSON)
	if strings.Index(out, "zeta") > strings.Index(out, "alpha") {
		t.Errorf("field order not preserved:\n%s", out)
	}
	if !strings.Contains(out, "\n  ") {
		t.Errorf("expected indented output:\n%s", out)
	}
}

func TestJSONPreservesLargeNumbers(t *testing.T) {
	out := mustFormat(t, `{"id":12345678901234567890}`, render.FormatJSON)
	if !strings.Contains(out, "12345678901234567890") {
		t.Errorf("number altered: %s", out)
	}
}

// ─── Pretty ───────────────────────────────────────────────────────────────────

func TestPrettyMentionsBothIDs(t *testing.T) {
	out := mustFormat(t, accounts, render.FormatPretty)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected multi-line output, got %q", out)
	}
	if !strings.Contains(out, "id: 1") || !strings.Contains(out, "id: 2") {
		t.Errorf("expected both ids in output:\n%s", out)
	}
}

func TestPrettyLayout(t *testing.T) {
	out := mustFormat(t, `{"name":"Checking","balance":12.5,"bank":{"id":4,"tags":[]},"owners":["a","b"],"closed":null,"active":true,"meta":{}}`, render.FormatPretty)
	want := strings.Join([]string{
		"name: Checking",
		"balance: 12.5",
		"bank:",
		"  id: 4",
		"  tags: []",
		"owners:",
		"  [1] a",
		"  [2] b",
		"closed: null",
		"active: true",
		"meta: {}",
	}, "\n")
	if out != want {
		t.Errorf("unexpected layout:\n--- want\n%s\n--- got\n%s", want, out)
	}
}

func TestPrettyTopLevelArray(t *testing.T) {
	out := mustFormat(t, `[{"id":1,"ok":false},{"id":2,"label":""}]`, render.FormatPretty)
	want := "[1]\n  id: 1\n  ok: false\n[2]\n  id: 2\n  label: \"\""
	if out != want {
		t.Errorf("unexpected layout:\n--- want\n%s\n--- got\n%s", want, out)
	}
}

func TestPrettyScalar(t *testing.T) {
	if out := mustFormat(t, `"done"`, "pretty"); out != "done" {
		t.Errorf("expected done, got %q", out)
	}
}

func TestUnknownModeIsPretty(t *testing.T) {
	a := mustFormat(t, accounts, "table")
	b := mustFormat(t, accounts, render.FormatPretty)
	if a != b {
		t.Errorf("unknown mode should render pretty:\n%s\nvs\n%s", a, b)
	}
}

func TestFormatDoesNotMutateInput(t *testing.T) {
	data := json.RawMessage(`{"accessToken":"abcdefghijklmnopqrstuvwxyz"}`)
	orig := string(data)
	out := mustFormat(t, string(data), render.FormatPretty)
	if string(data) != orig {
		t.Error("input was mutated")
	}
	if !strings.Contains(out, "abcdefghijklmnopqrstuvwxyz") {
		t.Error("formatter must not mask values")
	}
}

func TestFormatNil(t *testing.T) {
	out, err := render.Format(nil, render.FormatJSON)
	if err != nil || out != "" {
		t.Errorf("nil data: expected empty output, got %q (%v)", out, err)
	}
}

func TestFormatInvalidJSON(t *testing.T) {
	if _, err := render.Format(json.RawMessage(`{"a":`), render.FormatPretty); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

// ─── Writers ──────────────────────────────────────────────────────────────────

func TestWriteAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Write(&buf, json.RawMessage(`{"a":1}`), render.FormatPretty); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "a: 1\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestKVTable(t *testing.T) {
	var buf bytes.Buffer
	render.KVTable(&buf, []string{"KEY", "VALUE"}, [][]string{
		{"accessToken", "abcdefghij***"},
		{"baseUrl", "https://demo.biapi.pro/2.0"},
	})
	out := buf.String()
	for _, s := range []string{"KEY", "accessToken", "abcdefghij***", "https://demo.biapi.pro/2.0"} {
		if !strings.Contains(out, s) {
			t.Errorf("table missing %q:\n%s", s, out)
		}
	}
}
