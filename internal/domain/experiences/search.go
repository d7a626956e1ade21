package experiences

import "strings"

// Search filters experiences by a case-insensitive substring match against
// name, location and description. A blank query returns the input as is.
func Search(list []Experience, query string) []Experience {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	out := make([]Experience, 0, len(list))
	for _, e := range list {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Location), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out
}
