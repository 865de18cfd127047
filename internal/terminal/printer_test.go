package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter_NoColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Notice("Skipped `/data/README`: no extension")
	p.Success("Moved `a` to `b`")
	p.Failure("Error: failed")
	p.Info("Finished")
	p.Plain("plain")

	expected := "Skipped `/data/README`: no extension\nMoved `a` to `b`\nError: failed\nFinished\nplain\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestPrinter_Color(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Failure("boom")

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Expected ANSI colour codes, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("Expected text to be kept, got %q", buf.String())
	}
}

func TestShouldColorize_NonFile(t *testing.T) {
	if ShouldColorize(&bytes.Buffer{}) {
		t.Error("A buffer is never a terminal")
	}
}

func TestRenderPlan(t *testing.T) {
	out := RenderPlan([]PlanRow{
		{Extension: "pdf", Source: "/data/report.pdf", Destination: "/data/pdf/report.pdf"},
		{Extension: "gz", Source: "/data/archive.tar.gz", Destination: "/data/gz/archive.tar.gz"},
	})

	for _, want := range []string{"Extension", "Source", "Destination", "/data/pdf/report.pdf", "/data/gz/archive.tar.gz"} {
		// Headers are upper-cased by the table style.
		if !strings.Contains(strings.ToLower(out), strings.ToLower(want)) {
			t.Errorf("Expected table to contain %q:\n%s", want, out)
		}
	}
}
