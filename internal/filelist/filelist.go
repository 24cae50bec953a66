// Package filelist reads lists of input sample files.
package filelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the file list at path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file list: %w", err)
	}
	defer f.Close()

	files, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading file list %s: %w", path, err)
	}
	return files, nil
}

// Read returns one entry per line. Surrounding whitespace is trimmed; blank
// lines and lines starting with '#' are skipped.
func Read(r io.Reader) ([]string, error) {
	var files []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
