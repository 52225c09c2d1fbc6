package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ecodyn/lotkasim/internal/analysis"
	"github.com/ecodyn/lotkasim/internal/config"
	"github.com/ecodyn/lotkasim/internal/experiment"
	"github.com/ecodyn/lotkasim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Delta float64 `json:"delta"`

	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	TMax      float64 `json:"t_max"`
	NumPoints int     `json:"num_points"`

	CoexistencePrey     float64 `json:"coexistence_prey"`
	CoexistencePredator float64 `json:"coexistence_predator"`

	Summary        analysis.Summary `json:"summary"`
	InvariantDrift float64          `json:"invariant_drift"`
}

// Save writes one run as a directory holding metadata.json and a
// trajectory.csv with one row per time sample. Run IDs carry nanosecond
// timestamps and bump a suffix on collision, so rapid successive saves
// never overwrite each other.
func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	for n := 1; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("run_%d-%d", time.Now().UnixNano(), n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta := RunMetadata{
		ID:                  runID,
		Timestamp:           time.Now(),
		Alpha:               cfg.Alpha,
		Beta:                cfg.Beta,
		Gamma:               cfg.Gamma,
		Delta:               cfg.Delta,
		X0:                  cfg.X0,
		Y0:                  cfg.Y0,
		TMax:                cfg.TMax,
		NumPoints:           cfg.NumPoints,
		CoexistencePrey:     result.Equilibria.Coexistence.Prey,
		CoexistencePredator: result.Equilibria.Coexistence.Predator,
		Summary:             result.Summary,
		InvariantDrift:      result.InvariantDrift,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "prey", "predator", "prey_rate", "predator_rate"}); err != nil {
		return "", err
	}

	traj := result.Trajectory
	for i := 0; i < traj.Len(); i++ {
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Prey[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Predator[i], 'f', 6, 64),
			strconv.FormatFloat(traj.PreyRate[i], 'f', 6, 64),
			strconv.FormatFloat(traj.PredatorRate[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*sim.Trajectory, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		traj.Times = append(traj.Times, vals[0])
		traj.Prey = append(traj.Prey, vals[1])
		traj.Predator = append(traj.Predator, vals[2])
		traj.PreyRate = append(traj.PreyRate, vals[3])
		traj.PredatorRate = append(traj.PredatorRate, vals[4])
	}

	return traj, nil
}
