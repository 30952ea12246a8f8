package layout

import "github.com/matzehuels/chartkit/pkg/dataset"

// Entry is the computed placement of one record.
//
// Scatter entries use X, Y as the bubble center and Radius. Tile entries use
// X, Y as the top-left of the tile cell, Width and Height as the tile size,
// and fill Row, Col and Group.
type Entry struct {
	Key      string  `json:"key"`
	Group    string  `json:"group,omitempty"`
	ColorKey string  `json:"color_key"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`

	Record dataset.Record `json:"record"`
}
