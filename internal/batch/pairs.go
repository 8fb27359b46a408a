package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Manifest lists pairs to compare.
//
//	pairs:
//	  - original: v1/config.txt
//	    modified: v2/config.txt
type Manifest struct {
	Pairs []Pair `yaml:"pairs"`
}

// LoadManifest reads a YAML manifest. Relative paths are resolved against
// the manifest's directory.
func LoadManifest(fs afero.Fs, path string) ([]Pair, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	if len(m.Pairs) == 0 {
		return nil, fmt.Errorf("manifest %s lists no pairs", path)
	}

	base := filepath.Dir(path)
	for i, p := range m.Pairs {
		if p.Original == "" || p.Modified == "" {
			return nil, fmt.Errorf("manifest %s: pair %d needs both original and modified", path, i+1)
		}
		m.Pairs[i] = Pair{
			Original: resolve(base, p.Original),
			Modified: resolve(base, p.Modified),
		}
	}
	return m.Pairs, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// PairDirs pairs files by relative path across two directory trees. A file
// present on one side only is paired with its missing counterpart, which
// loads as empty text. Hidden directories are skipped.
func PairDirs(fs afero.Fs, originalDir, modifiedDir string) ([]Pair, error) {
	seen := make(map[string]bool)
	for _, dir := range []string{originalDir, modifiedDir} {
		files, err := listFiles(fs, dir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			seen[f] = true
		}
	}

	rels := make([]string, 0, len(seen))
	for rel := range seen {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	pairs := make([]Pair, len(rels))
	for i, rel := range rels {
		pairs[i] = Pair{
			Original: filepath.Join(originalDir, rel),
			Modified: filepath.Join(modifiedDir, rel),
		}
	}
	return pairs, nil
}

func listFiles(fs afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", root, err)
	}
	return files, nil
}
