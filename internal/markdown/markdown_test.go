package markdown

import (
	"strings"
	"testing"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/render"
	"github.com/dshills/mathdown/internal/widget"
)

func mgr() *widget.Manager {
	return widget.NewManager(render.NewTextEngine())
}

func TestImportBasicBlocks(t *testing.T) {
	src := "# Title\n\nfirst paragraph\n\n```go\nfmt.Println()\n```\n\nsecond"
	doc, err := Import(src, mgr())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if doc.Len() != 4 {
		t.Fatalf("got %d blocks, want 4", doc.Len())
	}

	h := doc.Block(0)
	if h.Kind() != doctree.BlockHeading || h.Level() != 1 || h.Raw() != "Title" {
		t.Errorf("heading = kind %v level %d raw %q", h.Kind(), h.Level(), h.Raw())
	}
	if doc.Block(1).Raw() != "first paragraph" {
		t.Errorf("para = %q", doc.Block(1).Raw())
	}
	code := doc.Block(2)
	if code.Kind() != doctree.BlockCode || code.Fence() != "go" || code.Raw() != "fmt.Println()" {
		t.Errorf("code = kind %v fence %q raw %q", code.Kind(), code.Fence(), code.Raw())
	}
}

func TestImportMaterializesMath(t *testing.T) {
	doc, err := Import("before $x^2$ after", mgr())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	b := doc.Block(0)
	if b.Len() != 3 {
		t.Fatalf("block children = %d, want 3", b.Len())
	}
	w, ok := b.Child(1).(*doctree.Widget)
	if !ok {
		t.Fatalf("child 1 is %T, want widget", b.Child(1))
	}
	if w.Tex() != "x^2" || w.Display() {
		t.Errorf("widget = %q display=%v", w.Tex(), w.Display())
	}
}

func TestImportDisplayMath(t *testing.T) {
	doc, err := Import("$$\n1+1\n$$", mgr())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	var found *doctree.Widget
	for _, b := range doc.Blocks() {
		for _, c := range b.Children() {
			if w, ok := c.(*doctree.Widget); ok {
				found = w
			}
		}
	}
	if found == nil {
		t.Fatal("no widget materialized")
	}
	if found.Tex() != "1+1" || !found.Display() {
		t.Errorf("widget = %q display=%v", found.Tex(), found.Display())
	}
}

func TestImportCodeNeverScanned(t *testing.T) {
	src := "```\n$x$\n```\n\nuse `$y$` inline"
	doc, err := Import(src, mgr())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	for _, b := range doc.Blocks() {
		for _, c := range b.Children() {
			if _, ok := c.(*doctree.Widget); ok {
				t.Fatal("math inside code was materialized")
			}
		}
	}
}

func TestImportCodeSpanSegments(t *testing.T) {
	doc, err := Import("a `code` b", nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	b := doc.Block(0)
	if b.Len() != 3 {
		t.Fatalf("children = %d, want 3", b.Len())
	}
	mid, ok := b.Child(1).(*doctree.Text)
	if !ok || !mid.IsCode() || mid.Text() != "`code`" {
		t.Errorf("child 1 = %#v", b.Child(1))
	}
	if b.Raw() != "a `code` b" {
		t.Errorf("raw = %q", b.Raw())
	}
}

func TestImportListKeepsSource(t *testing.T) {
	src := "- one\n- two"
	doc, err := Import(src, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if doc.Len() != 1 {
		t.Fatalf("blocks = %d", doc.Len())
	}
	if got := doc.Block(0).Raw(); got != "- one\n- two" {
		t.Errorf("list raw = %q", got)
	}
}

func TestExportMathRule(t *testing.T) {
	doc := doctree.NewDocument()
	b := doctree.NewBlock(doctree.BlockParagraph)
	b.Append(doctree.NewText("inline "))
	b.Append(doctree.NewWidget("x^2", false))
	b.Append(doctree.NewText(" done"))
	doc.Append(b)

	got := Export(doc)
	if got != "inline $x^2$ done" {
		t.Errorf("Export = %q", got)
	}
}

func TestExportDisplayWidget(t *testing.T) {
	doc := doctree.NewDocument()
	b := doctree.NewBlock(doctree.BlockParagraph)
	b.Append(doctree.NewWidget("1+1", true))
	doc.Append(b)

	got := Export(doc)
	if got != "$$\n1+1\n$$" {
		t.Errorf("Export = %q", got)
	}
}

func TestExportHeadingAndCode(t *testing.T) {
	doc := doctree.NewDocument()
	h := doctree.NewHeading(2)
	h.Append(doctree.NewText("Section"))
	doc.Append(h)
	c := doctree.NewBlock(doctree.BlockCode)
	c.SetFence("go")
	c.Append(doctree.NewText("x := 1"))
	doc.Append(c)

	got := Export(doc)
	want := "## Section\n\n```go\nx := 1\n```"
	if got != want {
		t.Errorf("Export = %q, want %q", got, want)
	}
}

// Round trip: text plus well-formed widgets must survive export and
// re-import with identical semantics.
func TestRoundTrip(t *testing.T) {
	src := "# Notes\n\nenergy $E=mc^2$ classic\n\n$$\n\\frac{a}{b}\n$$\n\ntail"
	m := mgr()
	doc, err := Import(src, m)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	out := Export(doc)

	doc2, err := Import(out, m)
	if err != nil {
		t.Fatalf("re-Import: %v", err)
	}
	out2 := Export(doc2)
	if out != out2 {
		t.Errorf("round trip diverged:\nfirst:  %q\nsecond: %q", out, out2)
	}
	if !strings.Contains(out, "$E=mc^2$") {
		t.Errorf("inline math lost: %q", out)
	}
	if !strings.Contains(out, "$$\n\\frac{a}{b}\n$$") {
		t.Errorf("display math lost: %q", out)
	}
}

func TestSerializerRuleFallthrough(t *testing.T) {
	s := NewSerializer()
	s.AddRule(func(n doctree.Node) (string, bool) { return "", false })
	s.AddRule(MathRule)

	doc := doctree.NewDocument()
	b := doctree.NewBlock(doctree.BlockParagraph)
	b.Append(doctree.NewWidget("y", false))
	doc.Append(b)
	if got := s.Serialize(doc); got != "$y$" {
		t.Errorf("Serialize = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "script stripped with content",
			in:   "before <script>alert(1)</script> after",
			want: "before  after",
		},
		{
			name: "iframe stripped",
			in:   "a<iframe src=\"x\"></iframe>b",
			want: "ab",
		},
		{
			name: "embed self-closing",
			in:   "a<embed src=\"x\"/>b",
			want: "ab",
		},
		{
			name: "object with nested content",
			in:   "x<object><param name=\"a\">inner</object>y",
			want: "xy",
		},
		{
			name: "plain markdown untouched",
			in:   "# hi\n\n$x$ and `code`",
			want: "# hi\n\n$x$ and `code`",
		},
		{
			name: "benign tags kept",
			in:   "a <b>bold</b> c",
			want: "a <b>bold</b> c",
		},
		{
			name: "case insensitive",
			in:   "a<SCRIPT>x</SCRIPT>b",
			want: "ab",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitCodeSpans(t *testing.T) {
	segs := splitCodeSpans("a `b` c ``d`` e")
	var raws []string
	for _, s := range segs {
		raws = append(raws, s.text)
	}
	joined := strings.Join(raws, "")
	if joined != "a `b` c ``d`` e" {
		t.Errorf("segments do not reassemble: %q", joined)
	}
	if !segs[1].code || segs[1].text != "`b`" {
		t.Errorf("seg 1 = %+v", segs[1])
	}
	if !segs[3].code || segs[3].text != "``d``" {
		t.Errorf("seg 3 = %+v", segs[3])
	}

	// Unclosed opener stays literal.
	segs = splitCodeSpans("broken `span")
	if len(segs) != 1 || segs[0].code {
		t.Errorf("unclosed span = %+v", segs)
	}
}
