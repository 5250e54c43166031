package i18n

import (
	"fmt"
	"strings"
)

// M is a placeholder map passed to T and Tn.
type M map[string]any

// ReplacePlaceholders replaces {{name}} placeholders with values from the map.
// Unknown placeholders remain unchanged.
//
//	ReplacePlaceholders("Hello, {{name}}!", M{"name": "Sara"}) // "Hello, Sara!"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) < 1 {
		return template
	}

	result := template
	for key, value := range placeholders {
		result = strings.ReplaceAll(result, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}
	return result
}
