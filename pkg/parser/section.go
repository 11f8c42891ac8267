/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"strings"
)

// Mode selects how strictly a Grammar must match a block.
type Mode int

const (
	// Strict requires every non-optional header, anchored at the first line
	// and in grammar order. Any deviation fails the whole match.
	Strict Mode = iota

	// Lenient locates each header independently anywhere in the block and
	// only requires the grammar's key headers.
	Lenient
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// Header is one labeled section of a Grammar. A header line is the header
// name followed by ':' in the first column.
type Header struct {
	Name string

	// Literal, when set, is the value the header line must carry.
	Literal string

	// Adjacent requires the header on the line right after the previous one.
	Adjacent bool

	// Optional headers may be missing in Strict mode.
	Optional bool

	// Key headers must be present in Lenient mode.
	Key bool
}

// Grammar is an ordered sequence of headers.
type Grammar struct {
	Name    string
	Headers []Header
}

// Section is the body of one header: the remainder of the header line and
// every following line up to the next recognized header.
type Section struct {
	Inline string
	Lines  []string
}

// Text returns the section body as a newline-joined block.
func (s Section) Text() string {
	if len(s.Lines) == 0 {
		return s.Inline
	}
	return s.Inline + "\n" + strings.Join(s.Lines, "\n")
}

// Entries returns one trimmed entry per body line, starting with the inline
// value. Blank lines inside the body are kept as empty entries. An empty
// inline value and the blank lines right after it are skipped, the way a
// "Header:<whitespace>" prefix swallows them.
func (s Section) Entries() []string {
	out := make([]string, 0, len(s.Lines)+1)
	leading := s.Inline == ""
	if !leading {
		out = append(out, s.Inline)
	}
	for _, l := range s.Lines {
		t := strings.TrimSpace(l)
		if leading && t == "" {
			continue
		}
		leading = false
		out = append(out, t)
	}
	return out
}

// Sections maps header names to their bodies.
type Sections map[string]Section

// Has reports whether the named section was located.
func (s Sections) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Split carves block into the sections of g. The boolean result reports
// whether the match satisfied g under mode; when it is false the returned
// Sections must not be used.
func Split(block string, g Grammar, mode Mode) (Sections, bool) {
	lines := splitLines(block)
	index := indexHeaders(lines, g)

	var positions map[string]int
	if mode == Lenient {
		positions = locateLenient(index, g)
	} else {
		positions = locateStrict(index, g)
	}
	if positions == nil {
		return nil, false
	}

	sections := make(Sections, len(positions))
	for name, pos := range positions {
		end := len(lines)
		for i := pos + 1; i < len(lines); i++ {
			if index[i] != "" {
				end = i
				break
			}
		}
		sections[name] = Section{
			Inline: strings.TrimSpace(strings.TrimPrefix(lines[pos], name+":")),
			Lines:  lines[pos+1 : end],
		}
	}

	for _, h := range g.Headers {
		if h.Literal == "" {
			continue
		}
		s, ok := sections[h.Name]
		if !ok || s.Inline != h.Literal {
			return nil, false
		}
	}

	return sections, true
}

func splitLines(block string) []string {
	block = strings.ReplaceAll(block, "\r\n", "\n")
	block = strings.TrimSuffix(block, "\n")
	return strings.Split(block, "\n")
}

// indexHeaders returns, per line, the name of the grammar header it opens
// or "" for body lines.
func indexHeaders(lines []string, g Grammar) []string {
	index := make([]string, len(lines))
	for i, l := range lines {
		for _, h := range g.Headers {
			if strings.HasPrefix(l, h.Name+":") {
				index[i] = h.Name
				break
			}
		}
	}
	return index
}

func locateStrict(index []string, g Grammar) map[string]int {
	positions := make(map[string]int, len(g.Headers))
	prev := -1
	for n, h := range g.Headers {
		pos := -1
		switch {
		case n == 0 || h.Adjacent:
			if prev+1 < len(index) && index[prev+1] == h.Name {
				pos = prev + 1
			}
		default:
			for i := prev + 1; i < len(index); i++ {
				if index[i] == h.Name {
					pos = i
					break
				}
			}
		}

		if pos < 0 {
			if h.Optional {
				continue
			}
			return nil
		}
		positions[h.Name] = pos
		prev = pos
	}
	return positions
}

func locateLenient(index []string, g Grammar) map[string]int {
	positions := make(map[string]int, len(g.Headers))
	for i, name := range index {
		if name == "" {
			continue
		}
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}
	for _, h := range g.Headers {
		if _, ok := positions[h.Name]; h.Key && !ok {
			return nil
		}
	}
	return positions
}

// Block returns the body nested under the first line declaring key in
// text. The body ends at the first line indented no deeper than the key
// line, or at a line starting with one of stops. The boolean result is
// false when no line declares key.
func Block(text, key string, stops ...string) (string, bool) {
	lines := splitLines(text)

	start, depth := -1, 0
	for i, l := range lines {
		content, indent := stripIndent(l)
		if strings.HasPrefix(content, key+":") {
			start, depth = i, indent
			break
		}
	}
	if start < 0 {
		return "", false
	}

	var body []string
	for _, l := range lines[start+1:] {
		content, indent := stripIndent(l)
		if content == "" {
			body = append(body, l)
			continue
		}
		if indent <= depth || hasAnyPrefix(content, stops) {
			break
		}
		body = append(body, l)
	}
	return strings.Join(body, "\n"), true
}

// stripIndent returns the line content without indentation or a YAML list
// marker, and the column at which the content starts.
func stripIndent(l string) (string, int) {
	trimmed := strings.TrimLeft(l, " \t")
	indent := len(l) - len(trimmed)
	if strings.HasPrefix(trimmed, "- ") {
		trimmed = strings.TrimLeft(trimmed[2:], " ")
		indent = len(l) - len(trimmed)
	}
	return strings.TrimRight(trimmed, " \t"), indent
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
