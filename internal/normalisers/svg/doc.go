// Package svg normalises SVG logos into a canonical form.
//
// Normalisation removes everything that does not affect rendering:
// the XML declaration, processing instructions, comments, doctype,
// editor metadata and whitespace-only text. Attributes are sorted and
// childless elements are self-closed, so logos that only differ in
// formatting produce identical bytes and therefore the same digest.
package svg
