// Package render draws charts onto a [surface.Surface].
//
// # Overview
//
// A [Renderer] turns one [Input] (dataset, viewport, selection) into a set of
// surface elements and a [Pass] describing what it drew. Three renderers are
// provided:
//
//   - [NewLine]: multi-series line chart with right-hand series labels, a
//     hover guide line and a tracking rectangle
//   - [NewBubble]: bubble plot with square-root radius encoding, labels above
//     each bubble and a group legend
//   - [NewTile]: grouped small-multiple tiles with a sequential fill ramp
//
// # Render Passes
//
// Every call to Render begins by clearing the surface. There is no
// incremental update: the element list after a pass depends only on the
// input, so rendering twice with equal input yields equal surfaces. Axes are
// rebuilt on every pass from the current scales.
//
// When the input is not ready (nil or empty dataset, or an unmeasured
// viewport) the surface is left empty and [Pass.Ready] is false.
//
// # Element Classes
//
// Elements carry a class (such as [ClassBubble] or [ClassSeriesLabel]) and a
// key. The interaction controller in package interact selects elements by
// class and key; sinks use classes for styling.
//
// # Format Conversion
//
// [ToPDF] converts SVG output to PDF using the external rsvg-convert tool.
//
//	svg := sink.RenderSVG(s)
//	pdf, err := render.ToPDF(svg)
package render
