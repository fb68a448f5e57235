package proc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

const defaultProcRoot = "/proc"

// ProcfsSnapshotter reads the process table from a procfs mount.
type ProcfsSnapshotter struct {
	root string
	log  zerolog.Logger
}

// NewProcfsSnapshotter reads from root, or /proc when root is empty.
func NewProcfsSnapshotter(root string, log zerolog.Logger) *ProcfsSnapshotter {
	if root == "" {
		root = defaultProcRoot
	}
	return &ProcfsSnapshotter{root: root, log: log}
}

func (s *ProcfsSnapshotter) Snapshot(ctx context.Context) ([]model.Process, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.root, err)
	}

	processes := make([]model.Process, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}

		p, err := s.readProcess(pid)
		if err != nil {
			// exited between ReadDir and now
			s.log.Debug().Int("pid", pid).Err(err).Msg("skip process")
			continue
		}
		processes = append(processes, p)
	}

	return processes, nil
}

func (s *ProcfsSnapshotter) readProcess(pid int) (model.Process, error) {
	dir := filepath.Join(s.root, strconv.Itoa(pid))

	stat, err := os.ReadFile(filepath.Join(dir, "stat"))
	if err != nil {
		return model.Process{}, err
	}
	comm, ppid, err := parseStat(string(stat))
	if err != nil {
		return model.Process{}, err
	}

	cmdline, err := os.ReadFile(filepath.Join(dir, "cmdline"))
	if err != nil {
		return model.Process{}, err
	}
	args := parseCmdline(cmdline)
	if len(args) == 0 && comm != "" {
		// kernel threads and zombies have an empty cmdline
		args = []string{comm}
	}

	return newRecord(pid, ppid, args), nil
}

// parseStat extracts comm and ppid from /proc/<pid>/stat. comm may contain
// spaces and parentheses, so fields are read after the last ')'.
func parseStat(stat string) (string, int, error) {
	open := strings.IndexByte(stat, '(')
	end := strings.LastIndexByte(stat, ')')
	if open < 0 || end < open {
		return "", 0, fmt.Errorf("malformed stat: %q", stat)
	}
	comm := stat[open+1 : end]

	fields := strings.Fields(stat[end+1:])
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("malformed stat: %q", stat)
	}
	ppid, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("malformed stat ppid: %w", err)
	}
	return comm, ppid, nil
}

func parseCmdline(data []byte) []string {
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte{0})
	args := make([]string, len(parts))
	for i, part := range parts {
		args[i] = string(part)
	}
	return args
}
