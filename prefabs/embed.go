package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a prefab spec. A file under ./prefabs on disk overrides the
// embedded copy so specs can be tuned without rebuilding.
func Load(name string) ([]byte, error) {
	return readOverride(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript reads a badnik script by bare name or prefabs/scripts path.
func LoadScript(name string) ([]byte, error) {
	return readOverride(ScriptsFS, cleanScriptPath(name))
}

// List returns the embedded prefab names.
func List() ([]string, error) {
	matches, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: list: %w", err)
	}
	return matches, nil
}

// ModTime reports when the on-disk override was last written. False means
// the embedded copy is in use.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func readOverride(embedded embed.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return embedded.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "prefabs/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return "scripts/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
