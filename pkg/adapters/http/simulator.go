package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/domain"
)

// SimulatedBorehole describes the geometry of one simulated borehole.
type SimulatedBorehole struct {
	// Elevation is the MASL of the borehole head.
	Elevation float64 `yaml:"elevation" json:"elevation"`
	// Inclination is the constant deviation from vertical, in degrees.
	Inclination float64 `yaml:"inclination" json:"inclination"`
}

// SimulatorTable is the structure of a simulator file (boreholes.yaml).
type SimulatorTable struct {
	Boreholes map[string]SimulatedBorehole `yaml:"boreholes" json:"boreholes"`
}

// LoadSimulatorTable reads a simulator file (YAML or JSON).
func LoadSimulatorTable(path string) (SimulatorTable, error) {
	var table SimulatorTable
	data, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("failed to read simulator table: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &table); err != nil {
			return table, fmt.Errorf("failed to parse simulator table: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &table); err != nil {
			return table, fmt.Errorf("failed to parse simulator table: %w", err)
		}
	}
	return table, nil
}

// LV95 false origin minus LV03 false origin.
const (
	lvEastingShift  = 2000000.0
	lvNorthingShift = 1000000.0
)

type simulatorOptions struct {
	metrics http.Handler
}

// SimulatorOption configures NewSimulatorHandler.
type SimulatorOption func(*simulatorOptions)

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) SimulatorOption {
	return func(o *simulatorOptions) {
		o.metrics = h
	}
}

// Simulator serves local stand-ins for the geometry API and the reframe service.
// Geometry assumes straight boreholes; reframe applies the nominal false-origin
// shift between LV95 and LV03.
type Simulator struct {
	table SimulatorTable
}

// NewSimulatorHandler creates the HTTP handler of the simulator.
func NewSimulatorHandler(table SimulatorTable, opts ...SimulatorOption) http.Handler {
	var o simulatorOptions
	for _, opt := range opts {
		opt(&o)
	}
	s := &Simulator{table: table}

	r := chi.NewRouter()
	r.Get(PathDepthInMasl, s.DepthInMasl)
	r.Get(PathDepthMD, s.DepthMD)
	r.Get(PathReframe+"{direction}", s.Reframe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	if o.metrics != nil {
		r.Handle("/metrics", o.metrics)
	}
	return r
}

// DepthInMasl handles GET /boreholegeometry/getDepthInMasl.
func (s *Simulator) DepthInMasl(w http.ResponseWriter, r *http.Request) {
	b, depth, ok := s.geometryRequest(w, r, "depth")
	if !ok {
		return
	}
	writeJSON(w, b.Elevation-depth*math.Cos(b.Inclination*math.Pi/180))
}

// DepthMD handles GET /boreholegeometry/getDepthMD.
func (s *Simulator) DepthMD(w http.ResponseWriter, r *http.Request) {
	b, masl, ok := s.geometryRequest(w, r, "depthMasl")
	if !ok {
		return
	}
	cos := math.Cos(b.Inclination * math.Pi / 180)
	if cos <= 0 {
		http.Error(w, "Horizontal borehole has no depth mapping", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, (b.Elevation-masl)/cos)
}

func (s *Simulator) geometryRequest(w http.ResponseWriter, r *http.Request, param string) (SimulatedBorehole, float64, bool) {
	id := r.URL.Query().Get("boreholeId")
	b, ok := s.table.Boreholes[id]
	if !ok {
		http.Error(w, fmt.Sprintf("Borehole %q not found", id), http.StatusNotFound)
		slog.Warn("Simulator: unknown borehole", "borehole_id", id)
		return b, 0, false
	}
	v, err := strconv.ParseFloat(r.URL.Query().Get(param), 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid %s", param), http.StatusBadRequest)
		return b, 0, false
	}
	return b, v, true
}

// Reframe handles GET /reframe/{direction}.
func (s *Simulator) Reframe(w http.ResponseWriter, r *http.Request) {
	direction := chi.URLParam(r, "direction")
	easting, errE := strconv.ParseFloat(r.URL.Query().Get("easting"), 64)
	northing, errN := strconv.ParseFloat(r.URL.Query().Get("northing"), 64)
	if errE != nil || errN != nil {
		http.Error(w, "Invalid coordinates", http.StatusBadRequest)
		return
	}

	var sign float64
	switch direction {
	case "lv95tolv03":
		sign = -1
	case "lv03tolv95":
		sign = 1
	default:
		http.Error(w, fmt.Sprintf("Unknown direction %q", direction), http.StatusNotFound)
		return
	}

	writeJSON(w, domain.Coordinate{
		Easting:  easting + sign*lvEastingShift,
		Northing: northing + sign*lvNorthingShift,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Simulator: response encode failed", "error", err)
	}
}
