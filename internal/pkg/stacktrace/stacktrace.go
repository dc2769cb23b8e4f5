package stacktrace

import "strings"

// InternalPaths extracts the file:line entries of this module's internal
// packages from a runtime stack dump, trimmed to start at "internal/". Used
// to keep panic logs readable.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines))

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "/internal/") {
			continue
		}

		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		end := strings.Index(line[idx:], " ")
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		if start := strings.Index(line[:end], "/internal/"); start != -1 {
			paths = append(paths, line[start+1:end])
		}
	}

	return paths
}
