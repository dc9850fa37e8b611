// Package candidatelist parses declarative candidate lists.
//
// Three formats are accepted, all producing an ordered []Entry:
//
//	properties  name = description     (# and ! start comments)
//	yaml        a sequence of names or {name, description} mappings
//	text        one name per line      (# starts a comment)
package candidatelist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a candidate list encoding.
type Format string

const (
	FormatProperties Format = "properties"
	FormatYAML       Format = "yaml"
	FormatText       Format = "text"
)

// Entry is one candidate line: a fully-qualified type name and an optional
// human description.
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// UnmarshalYAML accepts either a bare scalar name or a mapping.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Name = strings.TrimSpace(node.Value)
		return nil
	}
	type plain Entry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)
	return nil
}

// Names returns the entry names in order.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// FormatFor picks a format from a file name's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		return FormatProperties
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// ReadFile parses the list at path, choosing the format by extension.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidate list: %w", err)
	}
	return Parse(bytes.NewReader(data), FormatFor(path))
}

// Parse decodes r in the given format.
func Parse(r io.Reader, format Format) ([]Entry, error) {
	switch format {
	case FormatProperties:
		return parseProperties(r)
	case FormatYAML:
		return parseYAML(r)
	case FormatText:
		return parseText(r)
	default:
		return nil, fmt.Errorf("unknown candidate list format %q", format)
	}
}

func parseYAML(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse candidate YAML: %w", err)
	}
	out := entries[:0]
	for _, e := range entries {
		if e.Name != "" {
			out = append(out, e)
		}
	}
	return out, nil
}

func parseText(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Name: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading candidate list: %w", err)
	}
	return entries, nil
}

func parseProperties(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	var logical strings.Builder
	for sc.Scan() {
		line := strings.TrimLeft(sc.Text(), " \t\f")
		if logical.Len() == 0 && (line == "" || line[0] == '#' || line[0] == '!') {
			continue
		}
		// Odd count of trailing backslashes continues onto the next line.
		if trailingBackslashes(line)%2 == 1 {
			logical.WriteString(line[:len(line)-1])
			continue
		}
		logical.WriteString(line)
		if e, ok := splitProperty(logical.String()); ok {
			entries = append(entries, e)
		}
		logical.Reset()
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading candidate properties: %w", err)
	}
	if logical.Len() > 0 {
		if e, ok := splitProperty(logical.String()); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// splitProperty splits at the first unescaped '=', ':' or whitespace.
func splitProperty(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}
	var key strings.Builder
	i := 0
	for ; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			i++
			key.WriteByte(line[i])
			continue
		}
		if c == '=' || c == ':' || c == ' ' || c == '\t' {
			break
		}
		key.WriteByte(c)
	}
	rest := strings.TrimLeft(line[i:], " \t")
	if rest != "" && (rest[0] == '=' || rest[0] == ':') {
		rest = rest[1:]
	}
	return Entry{Name: key.String(), Description: strings.TrimSpace(rest)}, key.Len() > 0
}
