// Package style parses CSS-like style values into a typed representation,
// blends them and renders them back to strings.
//
// A [Value] is one of [Number], [Unit], [Color], [Keyword] or [Composite].
// Composite values cover transform lists ("scale(1.5) rotateZ(90deg)"),
// spacing shorthands ("10px 20px" for padding) and comma-separated
// multi-entry properties such as box-shadow.
//
// Interpolation is only defined between values of the same shape. When the
// shapes differ, [Interpolate] returns the target unchanged; this is a
// defined fallback, not an error.
//
//	from, _ := style.Parse("0px", "left")
//	to, _ := style.Parse("100px", "left")
//	style.Stringify(style.Interpolate(from, to, 0.25)) // "25px"
package style
