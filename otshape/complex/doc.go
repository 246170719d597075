/*
Package complex implements per-script pre-processing that the default
OpenType feature pipeline cannot express on its own: Arabic joining-form
feature assignment and a reduced Devanagari syllable reorder (spec §4.4
"Complex-script pre-processing", supplementing the distilled spec per the
original implementation's dedicated per-script shaper dispatch).

Grounded on the teacher's otshape/otarabic package (joining-type state
machine) for Arabic; the teacher carries no Indic shaper, so the
Devanagari reorder is grounded on the enrichment source's ot/indic.go
reduced reordering pass instead, written in the teacher's otshape idiom.
*/
package complex

import (
	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
)

// Shaper runs before GSUB substitution to prepare a run for its script's
// shaping model: assigning positional features (Arabic) or reordering
// slots (Indic) that the generic lookup-order engine cannot derive from
// lookup data alone.
type Shaper interface {
	Name() string
	Reorder(stream *gbuffer.Stream, font otfont.Adapter)
}

// Default is the no-op shaper used for scripts with no dedicated
// pre-processing (spec §4.4: most scripts need only the generic
// lookup-order engine).
type Default struct{}

func (Default) Name() string { return "default" }

func (Default) Reorder(*gbuffer.Stream, otfont.Adapter) {}

// For selects the complex shaper for an OpenType script tag, per spec
// §4.4's script-keyed dispatch.
func For(script otfont.Tag) Shaper {
	switch script {
	case otfont.T("arab"):
		return Arabic{}
	case otfont.T("deva"), otfont.T("beng"):
		return Indic{}
	default:
		return Default{}
	}
}
