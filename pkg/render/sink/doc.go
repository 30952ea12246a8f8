// Package sink serializes a rendered [surface.Surface] to output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG written with svgo. With [WithInteraction]
//     the document embeds a small script reproducing the hover behavior of
//     the interactive chart: bubble and legend highlighting, series label
//     highlighting, and the line chart's tooltip and guide line.
//   - [RenderPNG]: raster image drawn with fogleman/gg using the Go fonts.
//   - [RenderJSON]: the element list and chart size, for other tools or for
//     caching.
//   - [RenderPDF]: the SVG output converted by rsvg-convert.
//
// Sinks only read the surface. Calling a sink twice on an unchanged surface
// yields identical bytes.
//
// [surface.Surface]: github.com/matzehuels/chartkit/pkg/surface.Surface
package sink
