package proc

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

// GopsutilSnapshotter lists processes through gopsutil, which covers every
// platform gopsutil supports without shelling out.
type GopsutilSnapshotter struct {
	log zerolog.Logger
}

func NewGopsutilSnapshotter(log zerolog.Logger) *GopsutilSnapshotter {
	return &GopsutilSnapshotter{log: log}
}

func (s *GopsutilSnapshotter) Snapshot(ctx context.Context) ([]model.Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("gopsutil process list: %w", err)
	}

	processes := make([]model.Process, 0, len(procs))
	for _, p := range procs {
		ppid, err := p.PpidWithContext(ctx)
		if err != nil {
			s.log.Debug().Int32("pid", p.Pid).Err(err).Msg("skip process")
			continue
		}

		args, err := p.CmdlineSliceWithContext(ctx)
		if err != nil || len(args) == 0 {
			name, nerr := p.NameWithContext(ctx)
			if nerr != nil {
				s.log.Debug().Int32("pid", p.Pid).Err(nerr).Msg("skip process")
				continue
			}
			args = []string{name}
		}

		processes = append(processes, newRecord(int(p.Pid), int(ppid), args))
	}

	return processes, nil
}
