package helpers

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/organize-desk/internal/domain"
)

func TestFormatTable(t *testing.T) {
	got := FormatTable([]string{"ID", "NAME"}, [][]string{{"1", "Downloads"}, {"22", "PDF"}})
	want := "ID  NAME\n──  ─────────\n1   Downloads\n22  PDF\n"
	assert.Equal(t, want, got)
	assert.Empty(t, FormatTable(nil, nil))
}

func TestPrinterPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	assert.False(t, p.Color)
	assert.Equal(t, "[OK]", p.Status(domain.HealthOK))
	assert.Equal(t, "error", p.Severity(domain.SeverityError))
}

func TestStreamWriterSplitsStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewStreamWriter(&out, &errOut)

	w.Write("moved a.pdf\n", domain.StreamStdout)
	w.Write("boom\n", domain.StreamStderr)
	w.Write("", domain.StreamStdout)

	assert.Equal(t, "moved a.pdf\n", out.String())
	assert.Equal(t, "boom\n", errOut.String())
}

func TestPromptForConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "\n", want: false},
		{input: "nope\n", want: false},
		{input: "", want: false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := PromptForConfirmation(&out, bufio.NewReader(strings.NewReader(tt.input)), "Run?")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Run? [y/N]: ", out.String())
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "checking")
	s.Start()
	s.Stop()
	s.Stop()
	assert.Empty(t, buf.String())
}
