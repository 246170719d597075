/*
Package linelayout implements LineLayout (spec §4.6): it scales shaped
glyph streams from font design units to device pixels, expands tabs,
breaks text into lines at hard and soft break points, applies a
per-line horizontal alignment, and lays out right-to-left runs in
visual order.

This component has no single direct teacher file to ground on (the
teacher's line breaking lives deep inside a typesetting package this
exercise's core deliberately excludes, spec §1/§6 "external
collaborators"); it is written in the teacher's general package idiom
(tracer-per-package logging, struct-returning pure functions) instead.
*/
package linelayout

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("shaping.linelayout")
}
