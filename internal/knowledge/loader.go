package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnavailable is matched by every UnavailableError.
var ErrUnavailable = errors.New("knowledge unavailable")

var errNoCandidate = errors.New("knowledge.json not found in any candidate path")

// UnavailableError reports that no candidate file produced a usable document.
type UnavailableError struct {
	Paths   []string
	LastErr error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("knowledge unavailable (tried %s): %v", strings.Join(e.Paths, ", "), e.LastErr)
}

func (e *UnavailableError) Unwrap() error {
	return e.LastErr
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// DefaultCandidates lists the locations searched when no explicit path is
// configured: api/knowledge.json and knowledge.json under the working
// directory, then knowledge.json next to the running executable.
func DefaultCandidates() []string {
	candidates := []string{
		filepath.Join("api", "knowledge.json"),
		"knowledge.json",
	}
	if cwd, err := os.Getwd(); err == nil {
		for i, c := range candidates {
			candidates[i] = filepath.Join(cwd, c)
		}
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "knowledge.json"))
	}
	return candidates
}

// Load returns the first candidate that exists, parses and validates.
func Load(candidates []string) (*Document, error) {
	var lastErr error
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		doc, err := LoadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		return doc, nil
	}
	if lastErr == nil {
		lastErr = errNoCandidate
	}
	return nil, &UnavailableError{Paths: candidates, LastErr: lastErr}
}

// LoadFile parses and validates a single knowledge file.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &doc, nil
}
