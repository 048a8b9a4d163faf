// Package env loads environment variables from dotenv files.
package env

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
)

// Ensure DotenvSource implements the interface.
var _ driven.EnvSource = (*DotenvSource)(nil)

// DotenvSource reads dotenv files with godotenv.
type DotenvSource struct{}

// NewDotenvSource creates a new dotenv source.
func NewDotenvSource() *DotenvSource {
	return &DotenvSource{}
}

// Load parses the given files in order, later files overriding earlier
// ones. Missing files are skipped silently; a file that exists but
// does not parse is an error.
func (s *DotenvSource) Load(files ...string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		for key, value := range values {
			merged[key] = value
		}
	}
	return merged, nil
}
