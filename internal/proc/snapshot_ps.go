package proc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

var psSnapshotArgs = []string{"-A", "-ww", "-o", "pid=,ppid=,args="}

// PSSnapshotter lists processes with ps(1). Works on darwin, the BSDs and
// linux. ps joins argv with spaces, so arguments containing spaces are split.
type PSSnapshotter struct {
	log zerolog.Logger
}

func NewPSSnapshotter(log zerolog.Logger) *PSSnapshotter {
	return &PSSnapshotter{log: log}
}

func (s *PSSnapshotter) Snapshot(ctx context.Context) ([]model.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := executor.Run("ps", psSnapshotArgs...)
	if err != nil {
		return nil, fmt.Errorf("ps process list: %w", err)
	}
	return parsePSOutput(string(out), s.log), nil
}

func parsePSOutput(out string, log zerolog.Logger) []model.Process {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	processes := make([]model.Process, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			log.Debug().Str("line", line).Msg("short ps line")
			continue
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			log.Debug().Str("line", line).Msg("bad pid in ps line")
			continue
		}
		ppid, err := strconv.Atoi(fields[1])
		if err != nil {
			log.Debug().Str("line", line).Msg("bad ppid in ps line")
			continue
		}

		processes = append(processes, newRecord(pid, ppid, fields[2:]))
	}

	return processes
}
