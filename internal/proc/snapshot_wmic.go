package proc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

var wmicSnapshotArgs = []string{"process", "get", "CommandLine,Name,ParentProcessId,ProcessId", "/format:csv"}

// WMICSnapshotter lists processes through wmic on windows.
type WMICSnapshotter struct {
	log zerolog.Logger
}

func NewWMICSnapshotter(log zerolog.Logger) *WMICSnapshotter {
	return &WMICSnapshotter{log: log}
}

func (s *WMICSnapshotter) Snapshot(ctx context.Context) ([]model.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := executor.Run("wmic", wmicSnapshotArgs...)
	if err != nil {
		return nil, fmt.Errorf("wmic process list: %w", err)
	}
	return parseWMICOutput(string(out), s.log)
}

func parseWMICOutput(out string, log zerolog.Logger) ([]model.Process, error) {
	// wmic terminates rows with \r\r\n and never quotes fields, so rows are
	// split on commas by hand rather than with encoding/csv.
	out = strings.ReplaceAll(out, "\r", "")

	var records [][]string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, strings.Split(line, ","))
	}

	if len(records) < 2 {
		return []model.Process{}, nil
	}

	headers := records[0]
	cmdIdx, nameIdx, ppidIdx, pidIdx := -1, -1, -1, -1
	for i, h := range headers {
		switch strings.TrimSpace(h) {
		case "CommandLine":
			cmdIdx = i
		case "Name":
			nameIdx = i
		case "ParentProcessId":
			ppidIdx = i
		case "ProcessId":
			pidIdx = i
		}
	}
	if cmdIdx == -1 || nameIdx == -1 || ppidIdx == -1 || pidIdx == -1 {
		return nil, fmt.Errorf("invalid wmic output headers: %v", headers)
	}

	processes := make([]model.Process, 0, len(records)-1)
	for _, record := range records[1:] {
		record = mergeCommandLine(record, len(headers), cmdIdx)
		if len(record) != len(headers) {
			log.Debug().Strs("record", record).Msg("short wmic record")
			continue
		}

		pid, err := strconv.Atoi(strings.TrimSpace(record[pidIdx]))
		if err != nil {
			continue
		}
		ppid, err := strconv.Atoi(strings.TrimSpace(record[ppidIdx]))
		if err != nil {
			continue
		}

		args := SplitWindowsCommandLine(record[cmdIdx])
		if len(args) == 0 {
			if name := strings.TrimSpace(record[nameIdx]); name != "" {
				args = []string{name}
			}
		}

		processes = append(processes, newRecord(pid, ppid, args))
	}

	return processes, nil
}

// mergeCommandLine rejoins a record whose unquoted CommandLine column was
// split on embedded commas.
func mergeCommandLine(record []string, width, cmdIdx int) []string {
	extra := len(record) - width
	if extra <= 0 {
		return record
	}
	merged := make([]string, 0, width)
	merged = append(merged, record[:cmdIdx]...)
	merged = append(merged, strings.Join(record[cmdIdx:cmdIdx+extra+1], ","))
	merged = append(merged, record[cmdIdx+extra+1:]...)
	return merged
}

// SplitWindowsCommandLine splits a command line the way the Microsoft C
// runtime builds argv: whitespace separates arguments, double quotes group,
// 2n backslashes before a quote yield n backslashes and a quote toggle, and
// 2n+1 backslashes yield n backslashes and a literal quote.
func SplitWindowsCommandLine(line string) []string {
	var args []string
	var cur strings.Builder
	inQuotes := false
	inArg := false
	backslashes := 0

	flushBackslashes := func() {
		for ; backslashes > 0; backslashes-- {
			cur.WriteByte('\\')
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\':
			backslashes++
			inArg = true
		case c == '"':
			for ; backslashes >= 2; backslashes -= 2 {
				cur.WriteByte('\\')
			}
			if backslashes == 1 {
				cur.WriteByte('"')
				backslashes = 0
			} else {
				inQuotes = !inQuotes
			}
			inArg = true
		case (c == ' ' || c == '\t') && !inQuotes:
			flushBackslashes()
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			flushBackslashes()
			cur.WriteByte(c)
			inArg = true
		}
	}
	flushBackslashes()
	if inArg {
		args = append(args, cur.String())
	}
	return args
}
