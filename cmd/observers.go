package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/projmatch/projmatch/match"
)

// observerChain fans a snapshot out to several observers in order.
type observerChain []match.SnapshotObserver

func (c observerChain) OnSnapshot(view match.AssignmentView) {
	for _, o := range c {
		o.OnSnapshot(view)
	}
}

// logObserver reports snapshot sizes through logrus.
type logObserver struct{}

func (logObserver) OnSnapshot(view match.AssignmentView) {
	if view.Final {
		logrus.Infof("[iter %05d] final assignment: %d edges", view.Iteration, view.Len())
		return
	}
	logrus.Infof("[iter %05d] snapshot: %d edges, %d applicants queued", view.Iteration, view.Len(), len(view.Queue))
}

// snapshotWriter streams every snapshot as its own YAML document.
// The first encoding error is kept and later snapshots are dropped.
type snapshotWriter struct {
	enc *yaml.Encoder
	err error
}

func newSnapshotWriter(w io.Writer) *snapshotWriter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &snapshotWriter{enc: enc}
}

func (sw *snapshotWriter) OnSnapshot(view match.AssignmentView) {
	if sw.err != nil {
		return
	}
	sw.err = sw.enc.Encode(view)
}

// Close flushes the stream and returns the first error seen.
func (sw *snapshotWriter) Close() error {
	if err := sw.enc.Close(); err != nil && sw.err == nil {
		sw.err = err
	}
	return sw.err
}
