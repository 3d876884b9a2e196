package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestTextPassthrough(t *testing.T) {
	src := "# Title\n\n$x^2$"
	for _, name := range []string{"notes.md", "notes.markdown", "notes.txt", "notes"} {
		got, err := Text(name, strings.NewReader(src))
		if err != nil {
			t.Errorf("Text(%q): %v", name, err)
			continue
		}
		if got != src {
			t.Errorf("Text(%q) = %q", name, got)
		}
	}
}

func TestTextUnsupported(t *testing.T) {
	_, err := Text("image.png", strings.NewReader("x"))
	var unsup *ErrUnsupported
	if !errors.As(err, &unsup) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if unsup.Ext != ".png" {
		t.Errorf("Ext = %q", unsup.Ext)
	}
}

func TestHTMLText(t *testing.T) {
	src := `<html><head><title>t</title><script>evil()</script></head>
<body><h1>Top</h1><p>first para</p><h2>Sub</h2><p>second</p></body></html>`
	got, err := Text("page.html", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "# Top\n\nfirst para\n\n## Sub\n\nsecond"
	if got != want {
		t.Errorf("html text = %q, want %q", got, want)
	}
}

func TestHTMLTextNoBody(t *testing.T) {
	got, err := Text("frag.htm", strings.NewReader("<p>only</p>"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "only" {
		t.Errorf("fragment text = %q", got)
	}
}

func TestHeadingLevel(t *testing.T) {
	if headingLevel("h3") != 3 || headingLevel("h7") != 0 || headingLevel("p") != 0 {
		t.Error("headingLevel mismatch")
	}
}
