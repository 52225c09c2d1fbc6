package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ecodyn/lotkasim/internal/config"
	"github.com/ecodyn/lotkasim/internal/experiment"
)

func sampleRun(t *testing.T) (*config.Config, *experiment.Result) {
	t.Helper()
	cfg := config.GetPreset("classic")
	cfg.TMax = 10
	cfg.NumPoints = 100

	result, err := experiment.Run(cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return cfg, result
}

func TestJSON(t *testing.T) {
	cfg, result := sampleRun(t)

	var sb strings.Builder
	if err := JSON(&sb, cfg, result); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var data RunData
	if err := json.Unmarshal([]byte(sb.String()), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if data.Alpha != cfg.Alpha {
		t.Errorf("alpha mismatch: got %v, want %v", data.Alpha, cfg.Alpha)
	}
	if len(data.Times) != cfg.NumPoints {
		t.Errorf("expected %d time samples, got %d", cfg.NumPoints, len(data.Times))
	}
	if data.Equilibria.Coexistence.Prey != 4.0 {
		t.Errorf("coexistence prey mismatch: %v", data.Equilibria.Coexistence.Prey)
	}
	if len(data.PreyRates) != len(data.Prey) {
		t.Error("rate series length mismatch")
	}
}

func TestPhaseSVG(t *testing.T) {
	_, result := sampleRun(t)

	svg := PhaseSVG(result, 800, 600)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("missing orbit path")
	}
	// Initial condition plus coexistence marker.
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 markers, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated SVG")
	}
}

func TestPhaseSVG_InfiniteEquilibrium(t *testing.T) {
	cfg := config.GetPreset("classic")
	cfg.Delta = 0
	cfg.TMax = 5
	cfg.NumPoints = 50

	result, err := experiment.Run(cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	svg := PhaseSVG(result, 800, 600)
	// Only the initial condition marker; the coexistence point is at
	// infinity and must not be drawn.
	if strings.Count(svg, "<circle") != 1 {
		t.Errorf("expected 1 marker, got %d", strings.Count(svg, "<circle"))
	}
	if strings.Contains(svg, "Inf") || strings.Contains(svg, "NaN") {
		t.Error("non-finite coordinates leaked into SVG")
	}
}

func TestTimeSeriesSVG(t *testing.T) {
	_, result := sampleRun(t)

	svg := TimeSeriesSVG(result, 800, 400)
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 series paths, got %d", strings.Count(svg, "<path"))
	}
}

func TestSVGEmptyTrajectory(t *testing.T) {
	result := &experiment.Result{}
	if PhaseSVG(result, 100, 100) != "" {
		t.Error("expected empty output for nil trajectory")
	}
	if TimeSeriesSVG(result, 100, 100) != "" {
		t.Error("expected empty output for nil trajectory")
	}
}
