package analyzer

import (
	"strings"
)

// Candidate is one way of launching the analyzer script: a command plus the
// arguments that go before the script path.
type Candidate struct {
	Command string
	Prefix  []string
}

// String renders the candidate as it would be typed in a shell.
func (c Candidate) String() string {
	if len(c.Prefix) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Prefix, " ")
}

func (c Candidate) argv(script string, args []string) []string {
	out := make([]string, 0, len(c.Prefix)+1+len(args))
	out = append(out, c.Prefix...)
	out = append(out, script)
	out = append(out, args...)
	return out
}

// DefaultCandidates returns the launcher list tried in order: container and
// system interpreter paths, the PATH-resolved name, the operator override,
// and the Windows launcher aliases.
func DefaultCandidates(pythonPath string) []Candidate {
	override := strings.TrimSpace(pythonPath)
	if override == "" {
		override = "python3"
	}
	return dedupe([]Candidate{
		{Command: "/usr/local/bin/python3"},
		{Command: "/usr/bin/python3"},
		{Command: "python3"},
		{Command: override},
		{Command: "py", Prefix: []string{"-3"}},
		{Command: "py"},
		{Command: "python"},
	})
}

// ParseCandidates turns command lines such as "py -3" into candidates.
// Blank entries are skipped.
func ParseCandidates(lines []string) []Candidate {
	out := make([]Candidate, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		c := Candidate{Command: fields[0]}
		if len(fields) > 1 {
			c.Prefix = fields[1:]
		}
		out = append(out, c)
	}
	return dedupe(out)
}

func dedupe(in []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(in))
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		key := c.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
