package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/durparse/internal/models"
)

// StdinSource names entries read from standard input.
const StdinSource = "<stdin>"

const maxLineBytes = 1024 * 1024

// ReadEntries reads one duration expression per line. Blank lines and lines
// starting with '#' are skipped; line numbers are 1-based.
func ReadEntries(source string, r io.Reader) ([]models.Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	entries := make([]models.Entry, 0)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entries = append(entries, models.Entry{
			Source: source,
			Line:   line,
			Input:  text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	return entries, nil
}

// ReadSources reads entries from each path in order. "-" reads stdin.
func ReadSources(paths []string, stdin io.Reader) ([]models.Entry, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var entries []models.Entry
	for _, path := range paths {
		if path == "-" {
			read, err := ReadEntries(StdinSource, stdin)
			if err != nil {
				return nil, err
			}
			entries = append(entries, read...)
			continue
		}

		read, err := readFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, read...)
	}

	return entries, nil
}

func readFile(path string) ([]models.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return ReadEntries(path, f)
}
