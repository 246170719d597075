package otfont

import "golang.org/x/image/font/sfnt"

// Units re-exports the sfnt design-unit type so that adapters built on
// top of golang.org/x/image/font/sfnt (as the reference parser in this
// ecosystem does) can report metrics without a conversion shim at every
// call site. It is a plain int32 under the hood, matching sfnt.Units.
type Units = sfnt.Units

// ScaleToPixels converts a design-unit value to a pixel-space value given
// a point size and device resolution: designUnits * sizePt * dpi /
// (72 * unitsPerEm), the 72 converting points to inches.
func ScaleToPixels(designUnits int32, sizePt float64, dpi float64, unitsPerEm int32) float64 {
	if unitsPerEm == 0 {
		return 0
	}
	return float64(designUnits) * sizePt * dpi / (72.0 * float64(unitsPerEm))
}
