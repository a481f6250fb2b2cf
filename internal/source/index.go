package source

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Entry describes one panorama found on disk.
type Entry struct {
	Path string
	Name string // path below the scanned root without extension, names outputs
	Ext  string // lowercase, with dot
}

// Extensions lists the panorama formats Load understands.
var Extensions = map[string]bool{
	".hdr":  true,
	".tga":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Walk calls visit for every panorama under dir in lexical order.
// Directories listed in exclude (typically the output directory) are not
// entered. A non-nil error from visit stops the walk and is returned.
func Walk(dir string, visit func(Entry) error, exclude ...string) error {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if e == "" {
			continue
		}
		if abs, err := filepath.Abs(e); err == nil {
			skip[abs] = true
		}
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && skip[abs] && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !Extensions[ext] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		return visit(Entry{
			Path: path,
			Name: strings.TrimSuffix(rel, filepath.Ext(rel)),
			Ext:  ext,
		})
	})
}

// Scan collects the panoramas under dir, skipping the exclude directories.
// Names keep their subdirectory, so outputs never collide. When both an .hdr
// and an LDR file share a stem in the same directory, the .hdr wins.
func Scan(dir string, exclude ...string) ([]Entry, error) {
	byKey := make(map[string]Entry)
	err := Walk(dir, func(e Entry) error {
		key := strings.ToLower(e.Name)
		if prev, ok := byKey[key]; ok && prev.Ext == ".hdr" {
			return nil
		}
		byKey[key] = e
		return nil
	}, exclude...)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(byKey))
	for _, e := range byKey {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
