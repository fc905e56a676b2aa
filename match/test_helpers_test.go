package match

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// captureLogOutput runs fn at the given level and returns the log output.
func captureLogOutput(level logrus.Level, fn func()) string {
	var buf bytes.Buffer
	origOutput := logrus.StandardLogger().Out
	origLevel := logrus.GetLevel()
	logrus.SetOutput(&buf)
	logrus.SetLevel(level)
	defer func() {
		if origOutput != nil {
			logrus.SetOutput(origOutput)
		} else {
			logrus.SetOutput(os.Stderr)
		}
		logrus.SetLevel(origLevel)
	}()
	fn()
	return buf.String()
}

// loadStore builds a store from inline record text.
func loadStore(t *testing.T, projects, applicants string) *Store {
	t.Helper()
	s := NewStore()
	_, err := s.Load(strings.NewReader(applicants), strings.NewReader(projects))
	require.NoError(t, err)
	return s
}

// mustEngine creates an engine or fails the test.
func mustEngine(t *testing.T, s *Store, cfg EngineConfig) *Engine {
	t.Helper()
	e, err := NewEngine(s, cfg)
	require.NoError(t, err)
	return e
}

// generateInputs produces a deterministic population shaped like the yearly
// call: numProjects projects with 1-3 seats and minimum 3-5, numApplicants
// applicants with scores 3-5 and up to MaxPreferences distinct preferences.
func generateInputs(seed uint64, numProjects, numApplicants int) (projects, applicants string) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var pb, ab strings.Builder
	for i := 1; i <= numProjects; i++ {
		fmt.Fprintf(&pb, "(P%d, %d, %d)\n", i, 1+rng.IntN(3), 3+rng.IntN(3))
	}
	for i := 1; i <= numApplicants; i++ {
		n := 1 + rng.IntN(3)
		perm := rng.Perm(numProjects)[:n]
		prefs := make([]string, n)
		for k, p := range perm {
			prefs[k] = fmt.Sprintf("P%d", p+1)
		}
		fmt.Fprintf(&ab, "(A%d):(%s) (%d)\n", i, strings.Join(prefs, ", "), 3+rng.IntN(3))
	}
	return pb.String(), ab.String()
}
