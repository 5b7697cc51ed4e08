// Package fonts finds the TTF or OTF file the viewer should use for its overlays.
package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the font file extensions considered.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns the directories searched for fonts, relative to the working directory.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns the paths of all font files under dir, relative to dir with forward
// slashes. A missing dir yields no paths.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases s and drops spaces, dashes and underscores so "Open Sans" matches
// "OpenSans-Regular.ttf".
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find returns the path of the first font under BaseDirs whose relative path contains the
// family name. A "Regular" face wins when a family has several.
func Find(family string) (string, bool) {
	want := normalize(strings.TrimSuffix(strings.TrimSuffix(family, ".ttf"), ".otf"))
	if want == "" {
		return "", false
	}
	var found []string
	for _, base := range BaseDirs() {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), want) {
				found = append(found, base+"/"+rel)
			}
		}
	}
	for _, p := range found {
		if strings.Contains(strings.ToLower(filepath.Base(p)), "regular") {
			return p, true
		}
	}
	if len(found) == 0 {
		return "", false
	}
	return found[0], true
}
