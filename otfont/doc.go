/*
Package otfont defines the read-only contract the shaping pipeline uses to
query a single font: codepoint-to-glyph mapping, glyph metrics, and the
GSUB/GPOS-equivalent lookup tables a font declares for a script and
language.

The package intentionally does not parse OpenType binaries itself — that
is the job of an external table parser (see the [Adapter] doc comment).
otfont only describes the narrow surface the shaping engine consumes,
so that any parser can plug in by implementing [Adapter].
*/
package otfont

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("shaping.otfont")
}
