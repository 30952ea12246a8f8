// Package surface is the per-chart drawing surface and the shared tooltip.
//
// A [Surface] is an ordered list of [Element] values: lines, rectangles,
// circles, paths, and text. The render engine owns the element list. It
// clears the surface and appends a fresh element set on every pass. The
// interaction controller never adds or removes elements; it only changes
// the [Style] of elements that already exist and can always restore them to
// the [Element.Base] style recorded when they were added.
//
// Sinks in [render/sink] serialize a surface to SVG, PNG, or JSON.
//
// # Tooltip
//
// The tooltip is not part of any chart's surface because it must escape the
// chart's clipping box. [TooltipRegistry] models it as a single process-wide
// resource. It is created on the first Mount, shown by at most one owner at a
// time, hidden (not destroyed) between events, and torn down when the last
// chart unmounts.
//
// [render/sink]: github.com/matzehuels/chartkit/pkg/render/sink
package surface
