// Package export renders a project for download and for print.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

var whitespace = regexp.MustCompile(`\s+`)

// Filename derives the download name from the project's display name.
func Filename(p models.Project) string {
	name := whitespace.ReplaceAllString(strings.ToLower(p.ProjectName), "-")
	return fmt.Sprintf("plan-stratyx-%s.json", name)
}

// WriteJSON writes p as an indented JSON document shaped exactly like Project.
func WriteJSON(w io.Writer, p models.Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return nil
}
