package models

// DefaultZoom is the zoom level every search result is shown at.
const DefaultZoom = 16

// Marker is a single pin placed on a map view.
type Marker struct {
	Position Coordinates `json:"position"`
}

// MapView describes what the map widget should render: the element it mounts into,
// the viewport center and zoom, and the markers placed on it.
type MapView struct {
	Container string      `json:"container"`
	Center    Coordinates `json:"center"`
	Zoom      int         `json:"zoom"`
	Markers   []Marker    `json:"markers"`
}

// NewMapView builds a view centered on coords with a single marker at the same point.
func NewMapView(container string, coords Coordinates) MapView {
	return MapView{
		Container: container,
		Center:    coords,
		Zoom:      DefaultZoom,
		Markers:   []Marker{{Position: coords}},
	}
}
