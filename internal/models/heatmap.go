package models

// HeatPoint is one weighted location on the analytics heatmap.
type HeatPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Count float64 `json:"count"`
	Label string  `json:"label,omitempty"`
}
