package empowerment

import (
	"fmt"
	"strings"
)

// GenerateReflection formats session takeaways as reflection points.
func GenerateReflection(entries []string) string {
	bullets := make([]string, len(entries))
	for i, entry := range entries {
		bullets[i] = fmt.Sprintf("- %s", entry)
	}
	return fmt.Sprintf("Reflection Points:\n%s", strings.Join(bullets, "\n"))
}
