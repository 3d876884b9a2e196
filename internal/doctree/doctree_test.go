package doctree

import "testing"

func TestDocumentBlockOrder(t *testing.T) {
	doc := NewDocument()
	a := NewBlock(BlockParagraph)
	b := NewHeading(2)
	c := NewBlock(BlockCode)

	doc.Append(a)
	doc.Append(c)
	doc.InsertAt(1, b)

	if doc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", doc.Len())
	}
	want := []*Block{a, b, c}
	for i, blk := range want {
		if doc.Block(i) != blk {
			t.Errorf("Block(%d) = %v, want %v", i, doc.Block(i), blk)
		}
		if doc.Index(blk) != i {
			t.Errorf("Index() = %d, want %d", doc.Index(blk), i)
		}
		if blk.Parent() != Node(doc) {
			t.Errorf("block %d has wrong parent", i)
		}
	}

	if !doc.Remove(b) {
		t.Fatal("Remove(b) = false, want true")
	}
	if b.Parent() != nil {
		t.Error("removed block still has a parent")
	}
	if doc.Len() != 2 || doc.Block(1) != c {
		t.Errorf("after remove: Len() = %d, Block(1) = %v", doc.Len(), doc.Block(1))
	}
	if doc.Remove(b) {
		t.Error("second Remove(b) = true, want false")
	}
}

func TestBlockInlineChildren(t *testing.T) {
	blk := NewBlock(BlockParagraph)
	a := NewText("a")
	w := NewWidget("x^2", false)
	b := NewText("b")

	blk.Append(a)
	blk.Append(b)
	blk.InsertAt(1, w)

	if got := blk.Raw(); got != "a$x^2$b" {
		t.Errorf("Raw() = %q, want %q", got, "a$x^2$b")
	}
	if blk.Index(w) != 1 {
		t.Errorf("Index(w) = %d, want 1", blk.Index(w))
	}
	if w.Parent() != Node(blk) {
		t.Error("widget has wrong parent")
	}
}

func TestBlockReplace(t *testing.T) {
	blk := NewBlock(BlockParagraph)
	orig := NewText("pre$x$post")
	blk.Append(orig)

	pre := NewText("pre")
	w := NewWidget("x", false)
	post := NewText("post")
	if !blk.Replace(orig, pre, w, post) {
		t.Fatal("Replace returned false")
	}
	if orig.Parent() != nil {
		t.Error("replaced segment still attached")
	}
	if got := blk.Raw(); got != "pre$x$post" {
		t.Errorf("Raw() = %q, want %q", got, "pre$x$post")
	}
	if blk.Len() != 3 || blk.Child(1) != Inline(w) {
		t.Errorf("unexpected children after replace: len=%d", blk.Len())
	}
}

func TestBlockIsBlank(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Block
		want  bool
	}{
		{"empty", func() *Block { return NewBlock(BlockParagraph) }, true},
		{"whitespace", func() *Block {
			b := NewBlock(BlockParagraph)
			b.Append(NewText("  \t"))
			return b
		}, true},
		{"text", func() *Block {
			b := NewBlock(BlockParagraph)
			b.Append(NewText("hi"))
			return b
		}, false},
		{"widget only", func() *Block {
			b := NewBlock(BlockParagraph)
			b.Append(NewWidget("x", false))
			return b
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().IsBlank(); got != tt.want {
				t.Errorf("IsBlank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScannable(t *testing.T) {
	para := NewBlock(BlockParagraph)
	plain := NewText("a $x$ b")
	para.Append(plain)
	if !Scannable(plain) {
		t.Error("plain paragraph text should be scannable")
	}

	code := NewCodeText("`$x$`")
	para.Append(code)
	if Scannable(code) {
		t.Error("inline code span should not be scannable")
	}

	cb := NewBlock(BlockCode)
	inCode := NewText("$x$")
	cb.Append(inCode)
	if Scannable(inCode) {
		t.Error("code block text should not be scannable")
	}

	raw := NewBlock(BlockRaw)
	inRaw := NewText("$x$")
	raw.Append(inRaw)
	if Scannable(inRaw) {
		t.Error("raw block text should not be scannable")
	}
}

func TestAttached(t *testing.T) {
	doc := NewDocument()
	blk := NewBlock(BlockParagraph)
	txt := NewText("hello")
	doc.Append(blk)
	blk.Append(txt)

	if !Attached(doc, txt) {
		t.Error("Attached(txt) = false, want true")
	}
	blk.Remove(txt)
	if Attached(doc, txt) {
		t.Error("Attached(removed txt) = true, want false")
	}

	other := NewText("elsewhere")
	if Attached(doc, other) {
		t.Error("Attached(detached) = true, want false")
	}
}

func TestRawForm(t *testing.T) {
	if got := RawForm("x^2", false); got != "$x^2$" {
		t.Errorf("RawForm inline = %q", got)
	}
	if got := RawForm("1+1", true); got != "$$1+1$$" {
		t.Errorf("RawForm display = %q", got)
	}
	if DelimLen(false) != 1 || DelimLen(true) != 2 {
		t.Error("DelimLen mismatch")
	}
}

func TestWidgetRawRoundTrip(t *testing.T) {
	w := NewWidget("\\frac{a}{b}", true)
	if w.Raw() != "$$\\frac{a}{b}$$" {
		t.Errorf("Raw() = %q", w.Raw())
	}
	if w.Rendered() != w.Raw() {
		t.Errorf("fresh widget should display raw form, got %q", w.Rendered())
	}
}

func TestPointValid(t *testing.T) {
	txt := NewText("abc")
	if !(Point{Container: txt, Offset: 3}).Valid() {
		t.Error("offset at end should be valid")
	}
	if (Point{Container: txt, Offset: 4}).Valid() {
		t.Error("offset past end should be invalid")
	}
	if (Point{}).Valid() {
		t.Error("zero point should be invalid")
	}
}

func TestCaret(t *testing.T) {
	c := NewCaret()
	if _, ok := c.Collapsed(); ok {
		t.Error("fresh caret should have no position")
	}
	txt := NewText("abc")
	c.SetCollapsed(Point{Container: txt, Offset: 1})
	p, ok := c.Collapsed()
	if !ok || p.Container != Node(txt) || p.Offset != 1 {
		t.Errorf("Collapsed() = %+v, %v", p, ok)
	}
	c.Clear()
	if _, ok := c.Collapsed(); ok {
		t.Error("cleared caret should have no position")
	}
}

func TestNodeIDs(t *testing.T) {
	nodes := []Node{
		NewDocument(),
		NewBlock(BlockParagraph),
		NewText("a"),
		NewCodeText("b"),
		NewWidget("x", false),
	}
	seen := make(map[string]bool)
	for _, n := range nodes {
		id := n.ID()
		if id == "" {
			t.Errorf("%T has empty ID", n)
		}
		if seen[id] {
			t.Errorf("%T shares ID %s with another node", n, id)
		}
		seen[id] = true
	}
	// Identity is stable across reads.
	txt := NewText("c")
	if txt.ID() != txt.ID() {
		t.Error("ID changed between reads")
	}
}
