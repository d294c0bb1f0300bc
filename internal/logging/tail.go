package logging

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/stratusctl/stratus/pkg/types"
)

var lineRe = regexp.MustCompile(`^\[([^\]]+)\] \[([A-Z]+)\] (.*)$`)

const followInterval = 500 * time.Millisecond

// ParseLine parses one log file line into a LogEntry.
func ParseLine(line string) (types.LogEntry, error) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return types.LogEntry{}, fmt.Errorf("malformed log line: %q", line)
	}
	ts, err := time.ParseInLocation(TimeLayout, m[1], time.Local)
	if err != nil {
		return types.LogEntry{}, fmt.Errorf("malformed timestamp in log line: %w", err)
	}
	level, ok := types.ParseLevel(m[2])
	if !ok {
		return types.LogEntry{}, fmt.Errorf("unknown log level %q", m[2])
	}
	return types.LogEntry{Timestamp: ts, Level: level, Message: m[3]}, nil
}

// Tail returns the last n entries of the log file at path, oldest first.
// A missing file reads as no entries. Lines that do not parse are skipped.
// n <= 0 returns all entries.
func Tail(path string, n int) ([]types.LogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	var entries []types.LogEntry
	for _, line := range lines {
		if line == "" {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Follow reports entries appended to the log file at path, starting from the
// current end of file, until ctx is cancelled. Each parsed entry is passed
// to fn; lines that do not parse are skipped. The file is polled, so entries
// arrive within one poll interval of being written.
func Follow(ctx context.Context, path string, fn func(types.LogEntry)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return err
	}

	r := bufio.NewReader(f)
	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()

	// Holds an incomplete trailing line between polls
	var partial strings.Builder

	for {
		for {
			chunk, err := r.ReadString('\n')
			if err != nil {
				if !errors.Is(err, io.EOF) {
					return err
				}
				partial.WriteString(chunk)
				break
			}
			line := partial.String() + strings.TrimRight(chunk, "\n")
			partial.Reset()
			if entry, perr := ParseLine(line); perr == nil {
				fn(entry)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
