// Package markdown converts between markup text and the document tree.
//
// Import parses markup with goldmark and builds blocks whose inline
// content preserves the raw source bytes, then materializes math runs
// into widgets. Export walks the tree through a rule table; the only
// non-default rule is the math widget substitution. Sanitize strips
// script-bearing HTML elements from imported text before it reaches
// the tree.
package markdown
