package schema

import (
	"bytes"
	"strings"
)

// Format applies the presentation layout to an encoded document: a blank
// line around top-level blocks and between the entries of props.properties.
// It only inserts blank lines, so formatting formatted output is a no-op.
func Format(data []byte) []byte {
	lines := strings.SplitAfter(string(data), "\n")
	var out bytes.Buffer

	var section, subsection, prev string
	for i, line := range lines {
		if line == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		indent := len(line) - len(trimmed)
		blank := strings.TrimSpace(line) == ""

		if !blank {
			switch {
			case indent == 0:
				opens := strings.HasSuffix(strings.TrimRight(trimmed, "\n"), ":")
				if i > 0 && !isBlank(prev) && (opens || strings.HasPrefix(prev, " ")) {
					out.WriteString("\n")
				}
				section = keyOf(trimmed)
				subsection = ""
			case indent == 2 && section == "props":
				subsection = keyOf(trimmed)
			case indent == 4 && section == "props" && subsection == "properties" && isKey(trimmed):
				if !isBlank(prev) && strings.TrimSpace(prev) != "properties:" {
					out.WriteString("\n")
				}
			}
		}

		out.WriteString(line)
		prev = line
	}
	return out.Bytes()
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isKey(trimmed string) bool {
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "#") {
		return false
	}
	return strings.Contains(trimmed, ":")
}

func keyOf(trimmed string) string {
	key, _, _ := strings.Cut(trimmed, ":")
	return strings.TrimSpace(key)
}
