package bookmarkfile

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Loader handles loading and parsing of the bookmarks.json export
type Loader struct {
	filePath string
}

// NewLoader creates a new bookmark export loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the bookmarks.json file
func (l *Loader) Load() (Export, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks json: %w", err)
	}

	return export, nil
}
