package shell

import (
	"regexp"
	"strings"

	"github.com/pranshuparmar/whichshell/pkg/model"
)

const pathSeparators = `/\`

// Candidate is the shell guess derived from a single command-line token.
type Candidate struct {
	Name  string
	Path  string
	Login bool
}

// ParseCandidate normalizes an argv[0] token. A single leading "-" marks a
// login shell. Name is the lowercased final path component without ".exe";
// Path is the token itself when it names a path, otherwise Name.
func ParseCandidate(token string) Candidate {
	var c Candidate
	if strings.HasPrefix(token, "-") {
		token = token[1:]
		c.Login = true
	}
	c.Name = normalizeName(token)
	c.Path = c.Name
	if strings.ContainsAny(token, pathSeparators) {
		c.Path = token
	}
	return c
}

func normalizeName(token string) string {
	if i := strings.LastIndexAny(token, pathSeparators); i >= 0 {
		token = token[i+1:]
	}
	name := strings.ToLower(token)
	return strings.TrimSuffix(name, ".exe")
}

// Interpreter describes shells that run as a script of another program,
// e.g. xonsh under python.
type Interpreter struct {
	Pattern *regexp.Regexp
	Shells  []string
}

var DefaultInterpreters = []Interpreter{
	{Pattern: regexp.MustCompile(`^python(\d+(\.\d+)?)?$`), Shells: []string{"xonsh"}},
}

// ExactInterpreter matches the program name literally.
func ExactInterpreter(program string, shells ...string) Interpreter {
	return Interpreter{
		Pattern: regexp.MustCompile("^" + regexp.QuoteMeta(strings.ToLower(program)) + "$"),
		Shells:  shells,
	}
}

// Translation layers that run the real program as their first argument.
var emulatorPattern = regexp.MustCompile(`^(rosetta|qemu-[a-z0-9_]+(-static)?)$`)

func (r *Resolver) candidate(p model.Process) (Candidate, bool) {
	args := p.Args()
	if len(args) == 0 {
		return Candidate{}, false
	}

	c := ParseCandidate(args[0])
	if emulatorPattern.MatchString(c.Name) && len(args) > 1 {
		args = args[1:]
		c = ParseCandidate(args[0])
	}
	if r.matcher.Match(c.Name) {
		return c, true
	}

	operand, module := scriptOperand(args[1:])
	if operand == "" {
		return c, false
	}
	name := normalizeName(operand)
	if module {
		name = strings.ToLower(operand)
	}
	for _, in := range r.interpreters {
		if in.Pattern == nil || !in.Pattern.MatchString(c.Name) {
			continue
		}
		for _, sh := range in.Shells {
			if name != sh {
				continue
			}
			hosted := Candidate{Name: name, Path: name, Login: c.Login}
			if !module && strings.ContainsAny(operand, pathSeparators) {
				hosted.Path = operand
			}
			return hosted, true
		}
	}
	return c, false
}

// Interpreter options that consume the following argument.
var optionsWithValue = map[string]bool{
	"-W":                      true,
	"-X":                      true,
	"--check-hash-based-pycs": true,
}

// scriptOperand returns what an interpreter invocation runs: the first
// argument that is not an option, or the module named by -m. Inline code
// (-c) and stdin (-) run no script.
func scriptOperand(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			if i+1 < len(args) {
				return args[i+1], false
			}
			return "", false
		case a == "-m":
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", false
		case strings.HasPrefix(a, "-m"):
			return a[2:], true
		case a == "-" || strings.HasPrefix(a, "-c"):
			return "", false
		case optionsWithValue[a]:
			i++
		case strings.HasPrefix(a, "-"):
		default:
			return a, false
		}
	}
	return "", false
}
