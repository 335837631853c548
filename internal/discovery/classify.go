package discovery

import (
	"path"
	"strings"
)

// DefaultGroups maps directory names of the atomic design convention to
// group labels.
var DefaultGroups = map[string]string{
	"atoms":     "Atoms",
	"molecules": "Molecules",
	"organisms": "Organisms",
	"templates": "Templates",
	"pages":     "Pages",
	"base":      "Base",
	"layouts":   "Layouts",
}

// DefaultGroup is used when no directory matches a convention.
const DefaultGroup = "Components"

// Classifier maps a template path to its group label.
type Classifier struct {
	groups   map[string]string
	fallback string
}

// NewClassifier creates a classifier. Keys of groups are matched against
// directory names case-insensitively, after stripping ordering prefixes such
// as "01-".
func NewClassifier(groups map[string]string, fallback string) *Classifier {
	if groups == nil {
		groups = DefaultGroups
	}
	if fallback == "" {
		fallback = DefaultGroup
	}
	normalized := make(map[string]string, len(groups))
	for dir, label := range groups {
		normalized[strings.ToLower(dir)] = label
	}
	return &Classifier{groups: normalized, fallback: fallback}
}

// Group returns the label for relPath, a path relative to the scan root.
// The outermost matching directory wins.
func (c *Classifier) Group(relPath string) string {
	dir := path.Dir(toSlash(relPath))
	if dir == "." {
		return c.fallback
	}
	for _, segment := range strings.Split(dir, "/") {
		if label, ok := c.groups[strings.ToLower(stripOrdinal(segment))]; ok {
			return label
		}
	}
	return c.fallback
}

// stripOrdinal removes a leading "01-" or "2_" style prefix.
func stripOrdinal(segment string) string {
	i := 0
	for i < len(segment) && segment[i] >= '0' && segment[i] <= '9' {
		i++
	}
	if i == 0 || i == len(segment) {
		return segment
	}
	if segment[i] == '-' || segment[i] == '_' || segment[i] == '.' {
		return segment[i+1:]
	}
	return segment
}
