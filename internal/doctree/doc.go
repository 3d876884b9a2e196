// Package doctree provides the in-memory document tree for mathdown.
//
// A Document is an ordered sequence of Block elements (paragraphs,
// headings, code blocks). Each block holds an ordered inline sequence of
// Text segments and atomic Widget leaves. The tree is mutated in place by
// a single writer at a time; there is no internal locking.
//
// # Structure
//
//	Document
//	  └── Block (paragraph | heading | code | raw)
//	        ├── Text   — editable text segment, optionally a code span
//	        └── Widget — rendered math expression, an indivisible leaf
//
// Widgets are never directly editable: editing requires collapsing the
// widget back into a Text segment holding its raw delimited form. That
// conversion is owned by the widget package; doctree only models the
// shapes.
//
// # Positions
//
// A Point is a (container, offset) pair. For a Text container the offset
// is a byte offset into the segment's content. For a Block or Document
// container the offset is a child index. The Selection interface exposes
// the host surface's collapsed caret in these terms.
package doctree
