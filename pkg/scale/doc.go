// Package scale maps data values to pixel positions, radii, and colors.
//
// Four scale kinds cover the charts in chartkit:
//
//   - [Linear]: continuous position (axes, line vertices, bubble centers).
//     Mapping and tick generation delegate to go-moremath's scale.Linear.
//   - [Sqrt]: bubble radius. The radius grows with the square root of the
//     value so that the drawn area is linear in the value.
//   - [Ordinal]: category to palette color, assigned in first-seen order and
//     wrapping past the palette length.
//   - [Ramp]: sequential light-to-dark color for tile fills, blended in RGB
//     space with go-colorful.
//
// # Degenerate Domains
//
// Scales never produce NaN or Inf. Empty or all-equal inputs fall back to a
// documented per-chart upper bound via [MaxDomain] and [ExtentDomain], and a
// zero-width domain passed straight to [NewLinear] maps every value to the
// middle of the range.
package scale
