package catalog

import (
	"strconv"

	"forwardicons/internal/domain"
)

// ResolveName returns requested if no icon already uses it, otherwise the
// first of requested+"1", requested+"2", ... that is free.
func ResolveName(requested string, icons []domain.IconRecord) string {
	taken := make(map[string]struct{}, len(icons))
	for _, icon := range icons {
		taken[icon.Name] = struct{}{}
	}
	if _, ok := taken[requested]; !ok {
		return requested
	}
	for n := 1; ; n++ {
		candidate := requested + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
