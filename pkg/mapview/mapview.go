package mapview

import (
	"bytes"
	"fmt"
	"html/template"
	"math"

	"go.uber.org/zap"
)

// Marker is one pin: coordinates plus the popup content.
type Marker struct {
	Lat   float64
	Lng   float64
	Title string
	Price string
	Link  string
}

type point struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
}

var mapTemplate = template.Must(template.New("map").Parse(`<div id="{{.ID}}" class="listing-map" style="height: 420px;"></div>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
(function () {
  var map = L.map({{.ID}}).setView([{{.Lat}}, {{.Lng}}], {{.Zoom}});
  L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);
  {{.Points}}.forEach(function (p) {
    L.marker([p.lat, p.lng]).addTo(map).bindPopup(p.popup);
  });
})();
</script>`))

// Renderer builds embeddable Leaflet markup centred on a fixed point.
type Renderer struct {
	lat  float64
	lng  float64
	zoom int
	log  *zap.Logger
}

func NewRenderer(lat, lng float64, zoom int, log *zap.Logger) *Renderer {
	return &Renderer{
		lat:  lat,
		lng:  lng,
		zoom: zoom,
		log:  log.With(zap.String("component", "mapview")),
	}
}

// Render skips markers that cannot be placed and keeps the rest.
func (r *Renderer) Render(id string, markers []Marker) template.HTML {
	points := make([]point, 0, len(markers))
	for _, m := range markers {
		p, err := buildPoint(m)
		if err != nil {
			r.log.Warn("Skipping map marker", zap.Error(err), zap.String("title", m.Title))
			continue
		}
		points = append(points, p)
	}

	var buf bytes.Buffer
	err := mapTemplate.Execute(&buf, map[string]any{
		"ID":     id,
		"Lat":    r.lat,
		"Lng":    r.lng,
		"Zoom":   r.zoom,
		"Points": points,
	})
	if err != nil {
		r.log.Error("Failed to render map", zap.Error(err))
		return ""
	}

	return template.HTML(buf.String())
}

func buildPoint(m Marker) (point, error) {
	if !validCoordinate(m.Lat, 90) || !validCoordinate(m.Lng, 180) {
		return point{}, fmt.Errorf("invalid coordinates %v,%v", m.Lat, m.Lng)
	}

	popup := fmt.Sprintf(`<strong>%s</strong><br>%s<br><a href="%s">View details</a>`,
		template.HTMLEscapeString(m.Title),
		template.HTMLEscapeString(m.Price),
		template.HTMLEscapeString(m.Link),
	)

	return point{Lat: m.Lat, Lng: m.Lng, Popup: popup}, nil
}

func validCoordinate(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}
