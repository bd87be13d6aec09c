package rsf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UniqueIDToken is the literal placeholder replaced with the game's unique ID.
const UniqueIDToken = "{{UNIQUE_ID}}"

// outputPermissions for materialized RSF files.
const outputPermissions = 0o644

// Render substitutes every token with its value.
// It is a pure text transformation with no hidden state.
func Render(template string, values map[string]string) string {
	for token, value := range values {
		template = strings.ReplaceAll(template, token, value)
	}

	return template
}

// Materialize reads the template file, substitutes the unique ID
// and writes the result to outputPath.
func Materialize(templatePath, outputPath, uniqueID string) error {
	contents, err := os.ReadFile(filepath.Clean(templatePath))
	if err != nil {
		return fmt.Errorf("read RSF template: %w", err)
	}

	rendered := Render(string(contents), map[string]string{
		UniqueIDToken: uniqueID,
	})

	if err := os.WriteFile(outputPath, []byte(rendered), outputPermissions); err != nil {
		return fmt.Errorf("write RSF: %w", err)
	}

	return nil
}
