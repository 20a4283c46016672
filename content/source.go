package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml scripts/*.tengo
var contentFS embed.FS

// Source reads content files. A copy under Dir on disk wins over the
// embedded one so edited files are picked up without a rebuild.
type Source struct {
	Dir string
}

func (s Source) Load(name string) ([]byte, error) {
	clean := cleanContentPath(name)
	if s.Dir != "" {
		if data, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return contentFS.ReadFile(clean)
}

func (s Source) ModTime(name string) (time.Time, bool) {
	if s.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(s.diskPath(cleanContentPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// LoadScript reads a script from scripts/.
func (s Source) LoadScript(name string) ([]byte, error) {
	base := path.Base(filepath.ToSlash(name))
	return s.Load(path.Join("scripts", base))
}

// List returns the names of every file in dir, disk copies included.
func (s Source) List(dir string) ([]string, error) {
	names := map[string]bool{}
	entries, err := fs.ReadDir(contentFS, dir)
	if err != nil {
		return nil, fmt.Errorf("content: list %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			names[path.Join(dir, e.Name())] = true
		}
	}
	if s.Dir != "" {
		if disk, err := os.ReadDir(s.diskPath(dir)); err == nil {
			for _, e := range disk {
				if !e.IsDir() {
					names[path.Join(dir, e.Name())] = true
				}
			}
		}
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	return out, nil
}

func LoadSpec[T any](src Source, name string) (T, error) {
	var zero T
	data, err := src.Load(name)
	if err != nil {
		return zero, fmt.Errorf("content: load %s: %w", name, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("content: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

func cleanContentPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "content/"); ok {
		s = after
	}
	return path.Clean(s)
}

func (s Source) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}
