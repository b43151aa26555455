package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"
)

// Entry is one parsed log line.
type Entry struct {
	Time      time.Time
	Level     string
	Message   string
	Component string
	HostID    string
	Attrs     map[string]any
}

// String renders the entry on one line: time, level, component, message and
// the remaining attributes sorted by key.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Time.Local().Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s", e.Level)
	if e.Component != "" {
		fmt.Fprintf(&b, " [%s]", e.Component)
	}
	b.WriteString(" " + e.Message)
	for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
		fmt.Fprintf(&b, " %s=%v", k, e.Attrs[k])
	}
	return b.String()
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	// Level is the minimum level, case-insensitive.
	Level     string
	Component string
	Since     time.Time
	// Contains matches a substring of the message.
	Contains string
}

// Match reports whether e passes every criterion of f.
func (f Filter) Match(e Entry) bool {
	if f.Level != "" {
		floor, ok := levelOrder[strings.ToUpper(f.Level)]
		if got, known := levelOrder[e.Level]; ok && known && got < floor {
			return false
		}
	}
	if f.Component != "" && e.Component != f.Component {
		return false
	}
	if !f.Since.IsZero() && e.Time.Before(f.Since) {
		return false
	}
	if f.Contains != "" && !strings.Contains(e.Message, f.Contains) {
		return false
	}
	return true
}

// ReadEntries parses the JSON log at path together with its uncompressed
// rotated backups, oldest first. Lines that are not JSON objects are skipped.
// A missing current file yields no entries and no error.
func ReadEntries(path string, backups int) ([]Entry, error) {
	var entries []Entry
	for n := backups; n >= 1; n-- {
		e, err := readFile(fmt.Sprintf("%s.%d", path, n))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		entries = append(entries, e...)
	}
	e, err := readFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return append(entries, e...), nil
}

func readFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if e, ok := parseEntry(scanner.Bytes()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, nil
}

func parseEntry(line []byte) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		return Entry{}, false
	}

	take := func(key string) string {
		v, _ := raw[key].(string)
		delete(raw, key)
		return v
	}
	e := Entry{
		Level:     take("level"),
		Message:   take("msg"),
		Component: take("component"),
		HostID:    take("host_id"),
	}
	if t, err := time.Parse(time.RFC3339Nano, take("time")); err == nil {
		e.Time = t
	}
	if len(raw) > 0 {
		e.Attrs = raw
	}
	return e, true
}
