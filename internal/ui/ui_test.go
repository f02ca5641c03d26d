package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestC_DisabledReturnsPlain(t *testing.T) {
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)
	if got := C(fgRed, "x"); got != "x" {
		t.Errorf("C with colour disabled = %q", got)
	}
}

func TestC_Forced(t *testing.T) {
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)
	if got := C(fgRed, "x"); got != fgRed+"x"+reset {
		t.Errorf("C forced = %q", got)
	}
	if got := C("", "x"); got != "x" {
		t.Errorf("C with empty colour = %q", got)
	}
}

func TestOKAndFail(t *testing.T) {
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	if got := buf.String(); got != "✔ added\n✖ nope\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestPanel_AlignsColouredAndWideLines(t *testing.T) {
	SetTheme("mono")
	defer func() {
		SetTheme("classic")
		SetColorForcing(false, false)
	}()

	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "\033[31m日本\033[0m", "abcdef"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "+--------+" {
		t.Errorf("top border = %q", lines[0])
	}
	for _, ln := range lines[1:4] {
		if visibleWidth(ln) != 10 {
			t.Errorf("row %q has width %d, want 10", ln, visibleWidth(ln))
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"longer text", 6, "longe…"},
		{"日本語テキスト", 6, "日本…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestSetTheme_UnknownFallsBackToClassic(t *testing.T) {
	SetTheme("rainbow")
	if Current().CornerTL != "┌" {
		t.Errorf("expected classic corners, got %q", Current().CornerTL)
	}
}
