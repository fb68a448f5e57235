package completion

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pranshuparmar/whichshell/internal/shell"
	"github.com/pranshuparmar/whichshell/pkg/model"
)

// shellMetaChars contains characters that are unsafe in shell completion contexts.
// Names containing these characters are filtered out to prevent command injection.
const shellMetaChars = " \t\n$`\\\"';&|<>(){}[]!*?~"

// PIDs returns the pids of a snapshot as completion candidates, skipping
// the ones listed in exclude (typically the completing process and its parent).
func PIDs(procs []model.Process, exclude ...int) []string {
	skip := make(map[int]bool, len(exclude))
	for _, pid := range exclude {
		skip[pid] = true
	}
	var pids []int
	for _, p := range procs {
		if !skip[p.PID()] {
			pids = append(pids, p.PID())
		}
	}
	return uniqueSortedInts(pids)
}

// ShellPIDs narrows PIDs to the processes that are shells themselves, each
// annotated with its name for shells that show descriptions.
func ShellPIDs(procs []model.Process, m shell.Matcher) []string {
	byPID := make(map[int]string)
	var pids []int
	for _, p := range procs {
		c := shell.ParseCandidate(p.Argv0())
		if c.Name == "" || !m.Match(c.Name) || !isShellSafe(c.Name) {
			continue
		}
		if _, ok := byPID[p.PID()]; !ok {
			pids = append(pids, p.PID())
		}
		byPID[p.PID()] = c.Name
	}

	out := make([]string, 0, len(pids))
	for _, pid := range uniqueSortedInts(pids) {
		n, _ := strconv.Atoi(pid)
		out = append(out, pid+"\t"+byPID[n])
	}
	return out
}

// Names returns the distinct values that start with prefix.
func Names(names []string, prefix string) []string {
	var match []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			match = append(match, n)
		}
	}
	return uniqueSorted(match)
}

// isShellSafe returns true if the string contains no shell metacharacters
func isShellSafe(s string) bool {
	return !strings.ContainsAny(s, shellMetaChars)
}

// uniqueSorted returns a sorted slice with duplicates removed
func uniqueSorted(items []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !seen[item] && isShellSafe(item) {
			seen[item] = true
			result = append(result, item)
		}
	}
	sort.Strings(result)
	return result
}

// uniqueSortedInts returns a sorted slice of ints as strings with duplicates removed
func uniqueSortedInts(items []int) []string {
	seen := make(map[int]bool)
	var nums []int
	for _, item := range items {
		if item > 0 && !seen[item] {
			seen[item] = true
			nums = append(nums, item)
		}
	}
	sort.Ints(nums)
	result := make([]string, len(nums))
	for i, n := range nums {
		result[i] = strconv.Itoa(n)
	}
	return result
}
