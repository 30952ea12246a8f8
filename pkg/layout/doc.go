// Package layout computes geometric placement for chart elements.
//
// Layouts are pure: they take a dataset and prebuilt scales and return
// positions in surface pixels. Nothing here draws.
//
// # Scatter
//
// [Scatter] places one [Entry] per record at (x(X), y(Y)) with radius
// size(Size). Overlapping bubbles are allowed and labels sit [LabelGap]
// pixels above each bubble with no collision avoidance.
//
// # Lines
//
// [Lines] groups records by category, sorts each group by X and maps it to a
// polyline of [Vertex] values. Series are returned in the order of the
// requested keys; keys with no records produce no series at all.
//
// # Tiles
//
// [TileGrid] bins records of each group into a row-major grid and stacks the
// groups vertically. Sizing ([TileGrid.Measure]) and drawing
// ([TileGrid.Place]) go through the same [TileGrid.GroupHeight] so the two
// passes cannot disagree.
package layout
