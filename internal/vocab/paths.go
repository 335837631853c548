package vocab

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileName is the vocabulary file looked up in each search directory.
const FileName = "vocabulary.yaml"

// SearchPaths returns vocabulary file candidates in precedence order.
func SearchPaths(projectDir string) []string {
	paths := make([]string, 0, 2)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".sdcgen", FileName))
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "sdcgen", FileName))
	}
	return paths
}

// Resolve returns the vocabulary to use: the explicit file when given,
// otherwise the first existing file on the search paths, otherwise the
// builtin vocabulary.
func Resolve(fs afero.Fs, explicit, projectDir string) (*Vocabulary, error) {
	if explicit != "" {
		return Load(fs, explicit)
	}

	for _, path := range SearchPaths(projectDir) {
		if ok, _ := afero.Exists(fs, path); !ok {
			continue
		}
		return Load(fs, path)
	}

	return Builtin()
}
