package discovery

import (
	"path"
	"strings"
)

// Excluded reports whether the slash-separated relative path matches any of
// the patterns.
func Excluded(relPath string, patterns []string) bool {
	relPath = toSlash(relPath)
	for _, pattern := range patterns {
		if globMatch(relPath, toSlash(pattern)) {
			return true
		}
	}
	return false
}

// globMatch matches a path against a glob pattern with ** support. A "**"
// pattern matches its suffix against the remainder of the path below the
// prefix directory; a pattern without a directory matches the basename.
func globMatch(filePath, pattern string) bool {
	if matched, _ := path.Match(pattern, filePath); matched {
		return true
	}

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		remaining := filePath
		if prefix != "" {
			switch {
			case strings.HasPrefix(filePath, prefix+"/"):
				remaining = filePath[len(prefix)+1:]
			case strings.Contains(filePath, "/"+prefix+"/"):
				idx := strings.Index(filePath, "/"+prefix+"/")
				remaining = filePath[idx+len(prefix)+2:]
			default:
				return false
			}
		}
		if suffix == "" {
			return true
		}
		if matched, _ := path.Match(suffix, path.Base(remaining)); matched {
			return true
		}
		matched, _ := path.Match(suffix, remaining)
		return matched
	}

	if !strings.Contains(pattern, "/") {
		matched, _ := path.Match(pattern, path.Base(filePath))
		return matched
	}
	return false
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
