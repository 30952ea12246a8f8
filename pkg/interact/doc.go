// Package interact implements the pointer interaction state machine of a
// chart: highlight and dim sets, the shared tooltip, and the line chart's
// hover guide.
//
// A [Controller] is re-attached to the surface after every render pass.
// Hosts drive it either with element-level events ([Controller.Enter],
// [Controller.Move], [Controller.Leave]) or with raw coordinates through
// [Controller.PointerAt], which hit-tests the surface and dispatches the
// same transitions.
//
// # States
//
// Hover is Idle or Hovering(element). Entering an element always restores
// every element to its base style before applying the new highlight, so
// effects never stack. The tooltip is hidden or visible independently;
// visibility is held in a [surface.TooltipRegistry] shared by all charts.
//
// Pointer positions that are not finite or fall outside the surface (or the
// tracking rectangle, for line chart moves) are ignored before any state
// changes and reported through [observability.InteractionHooks].
package interact
