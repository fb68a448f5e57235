package proc

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

// StaticSnapshotter replays a fixed process table.
type StaticSnapshotter []model.Process

func (s StaticSnapshotter) Snapshot(context.Context) ([]model.Process, error) {
	out := make([]model.Process, len(s))
	copy(out, s)
	return out, nil
}

// snapshotRecord is the on-disk form of a process. A missing or null ppid
// marks a root process. JSON files parse too, being valid YAML.
type snapshotRecord struct {
	PID  int      `yaml:"pid"`
	PPID *int     `yaml:"ppid,omitempty"`
	Args []string `yaml:"args,flow"`
}

// LoadSnapshotFile reads a process table captured with WriteSnapshot.
func LoadSnapshotFile(path string) (StaticSnapshotter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

func ReadSnapshot(r io.Reader) (StaticSnapshotter, error) {
	var records []snapshotRecord
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if err == io.EOF {
			return StaticSnapshotter{}, nil
		}
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	snap := make(StaticSnapshotter, 0, len(records))
	for _, rec := range records {
		if rec.PPID == nil {
			snap = append(snap, model.NewRootProcess(rec.PID, rec.Args...))
			continue
		}
		snap = append(snap, model.NewProcess(rec.PID, *rec.PPID, rec.Args...))
	}
	return snap, nil
}

// WriteSnapshot encodes procs in the format ReadSnapshot accepts.
func WriteSnapshot(w io.Writer, procs []model.Process) error {
	records := make([]snapshotRecord, 0, len(procs))
	for _, p := range procs {
		rec := snapshotRecord{PID: p.PID(), Args: p.Args()}
		if ppid, ok := p.Parent(); ok {
			rec.PPID = &ppid
		}
		records = append(records, rec)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}
