// Package analytics turns the backend's heatmap aggregate into the points,
// chart series and summary figures rendered on the analytics page.
package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"frontend-gin/internal/models"
)

// number accepts a JSON number, a numeric string or null.
type number struct {
	value float64
	valid bool
}

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		*n = number{value: v, valid: err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		// Booleans and objects are not coordinates.
		*n = number{}
		return nil
	}
	*n = number{value: v, valid: true}
	return nil
}

type rawPoint struct {
	Lat   number `json:"lat"`
	Lng   number `json:"lng"`
	Count number `json:"count"`
	Label string `json:"label"`
	City  string `json:"city"`
}

// ReferencePoints are drawn on every heatmap alongside the backend's points.
var ReferencePoints = []models.HeatPoint{
	{Lat: 28.6139, Lng: 77.2090, Count: 20, Label: "Delhi"},
	{Lat: 19.0760, Lng: 72.8777, Count: 18, Label: "Mumbai"},
	{Lat: 22.5726, Lng: 88.3639, Count: 15, Label: "Kolkata"},
	{Lat: 23.0225, Lng: 72.5714, Count: 13, Label: "Ahmedabad"},
	{Lat: 26.9124, Lng: 75.7873, Count: 12, Label: "Jaipur"},
	{Lat: 25.5941, Lng: 85.1376, Count: 8, Label: "Patna"},
	{Lat: 15.4989, Lng: 73.8278, Count: 6, Label: "Goa"},
	{Lat: 11.0168, Lng: 76.9558, Count: 8, Label: "Coimbatore"},
	{Lat: 9.9312, Lng: 76.2673, Count: 7, Label: "Kochi"},
	{Lat: 8.5241, Lng: 76.9366, Count: 5, Label: "Trivandrum"},
	{Lat: 20.2961, Lng: 85.8245, Count: 6, Label: "Bhubaneswar"},
}

// ParsePoints reads the aggregate, which is either a bare array of points or
// an envelope whose data holds the array. Points without a usable lat/lng are
// dropped and a missing or zero count weighs 1.
func ParsePoints(raw json.RawMessage) ([]models.HeatPoint, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode heatmap envelope: %w", err)
		}
		raw = bytes.TrimSpace(env.Data)
		if len(raw) == 0 || raw[0] != '[' {
			return nil, nil
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode heatmap points: %w", err)
	}

	points := make([]models.HeatPoint, 0, len(items))
	for _, item := range items {
		var p rawPoint
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		if !p.Lat.valid || !p.Lng.valid {
			continue
		}
		count := p.Count.value
		if !p.Count.valid || count == 0 {
			count = 1
		}
		label := p.Label
		if label == "" {
			label = p.City
		}
		points = append(points, models.HeatPoint{Lat: p.Lat.value, Lng: p.Lng.value, Count: count, Label: label})
	}
	return points, nil
}

// MapConfig is handed to the page's Leaflet heat layer as JSON.
type MapConfig struct {
	Center   [2]float64        `json:"center"`
	Zoom     int               `json:"zoom"`
	Radius   int               `json:"radius"`
	Blur     int               `json:"blur"`
	MaxZoom  int               `json:"maxZoom"`
	Max      float64           `json:"max"`
	Gradient map[string]string `json:"gradient"`
}

// DefaultMapConfig centres the map on India.
var DefaultMapConfig = MapConfig{
	Center:  [2]float64{20.5937, 78.9629},
	Zoom:    5,
	Radius:  40,
	Blur:    25,
	MaxZoom: 10,
	Max:     1.0,
	Gradient: map[string]string{
		"0.4": "blue",
		"0.6": "lime",
		"0.8": "yellow",
		"1.0": "red",
	},
}

// Chart is a bar series of the heaviest locations.
type Chart struct {
	Labels []string  `json:"labels"`
	Counts []float64 `json:"counts"`
}

const chartSize = 10

// Summary is everything the analytics page renders.
type Summary struct {
	Points         []models.HeatPoint
	ReportedPoints int
	TotalCount     float64
	MeanCount      float64
	StdDevCount    float64
	Chart          Chart
	Map            MapConfig
	// Pretty is the aggregate as received, indented for display.
	Pretty string
}

// Build parses raw and combines it with the reference points.
func Build(raw json.RawMessage) (Summary, error) {
	reported, err := ParsePoints(raw)
	if err != nil {
		return Summary{}, err
	}

	points := make([]models.HeatPoint, 0, len(reported)+len(ReferencePoints))
	points = append(points, reported...)
	points = append(points, ReferencePoints...)

	counts := make([]float64, 0, len(points))
	total := 0.0
	for _, p := range points {
		counts = append(counts, p.Count)
		total += p.Count
	}
	mean, stdDev := CalculateStats(counts)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(raw)
	}

	return Summary{
		Points:         points,
		ReportedPoints: len(reported),
		TotalCount:     roundFloat(total, 4),
		MeanCount:      mean,
		StdDevCount:    stdDev,
		Chart:          TopLocations(points, chartSize),
		Map:            DefaultMapConfig,
		Pretty:         pretty.String(),
	}, nil
}

// TopLocations returns the n heaviest points, heaviest first.
func TopLocations(points []models.HeatPoint, n int) Chart {
	sorted := make([]models.HeatPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	chart := Chart{Labels: []string{}, Counts: []float64{}}
	for _, p := range sorted {
		label := p.Label
		if label == "" {
			label = fmt.Sprintf("%.2f, %.2f", p.Lat, p.Lng)
		}
		chart.Labels = append(chart.Labels, label)
		chart.Counts = append(chart.Counts, p.Count)
	}
	return chart
}
