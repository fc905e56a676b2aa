// Package testutil provides shared test infrastructure for the matching engine.
// It holds the golden scenario types and the loader used across match/ and
// cmd/ test packages.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// GoldenFile represents the structure of testdata/golden_scenarios.yaml.
type GoldenFile struct {
	Scenarios []GoldenScenario `yaml:"scenarios"`
}

// GoldenScenario is one input pair with its expected terminal state.
type GoldenScenario struct {
	Name          string       `yaml:"name"`
	MaxIterations int          `yaml:"max_iterations"` // 0 = engine default
	Projects      string       `yaml:"projects"`
	Applicants    string       `yaml:"applicants"`
	Want          GoldenResult `yaml:"want"`
}

// GoldenResult is the expected terminal state of a scenario.
type GoldenResult struct {
	Assignments map[string]string `yaml:"assignments"` // applicant -> project
	Unmatched   []string          `yaml:"unmatched"`
	Reason      string            `yaml:"reason"`
	Iterations  int               `yaml:"iterations"`
	Evictions   int               `yaml:"evictions"`
	Rejections  int               `yaml:"rejections"`
}

// LoadGoldenScenarios loads the golden scenarios from the testdata directory.
// The path is resolved relative to this source file: internal/testutil/ → testdata/.
func LoadGoldenScenarios(t *testing.T) []GoldenScenario {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "golden_scenarios.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden scenarios: %v", err)
	}

	var file GoldenFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("Failed to parse golden scenarios: %v", err)
	}
	if len(file.Scenarios) == 0 {
		t.Fatal("Golden file contains no scenarios")
	}
	return file.Scenarios
}

// WriteTempFile writes content to a fresh file under t.TempDir and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
