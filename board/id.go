package board

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a short random id such as "item-3f9a1c2e".
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + raw[:8]
}
