package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/frherrer/docx2testlink/internal/domain"
)

// Scanner discovers source documents to convert.
type Scanner interface {
	Scan(rootDir string, include []string, exclude []string) ([]string, error)
	ScanAll(rootDirs []string, include []string, exclude []string) ([]string, error)
}

// FileScanner implements Scanner using filepath.WalkDir.
type FileScanner struct {
	Recursive bool
}

// NewScanner creates a new FileScanner.
func NewScanner(recursive bool) *FileScanner {
	return &FileScanner{Recursive: recursive}
}

// Scan walks rootDir and returns sorted file paths matching any include
// pattern and no exclude pattern. Directories matching an exclude pattern are
// not entered.
func (s *FileScanner) Scan(rootDir string, include []string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Patterns match the path relative to rootDir
		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			relPath = path
		}

		if d.IsDir() {
			if relPath == "." {
				return nil
			}
			if !s.Recursive || matchAny(relPath, exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(relPath, exclude) {
			return nil
		}
		if matchAny(relPath, include) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, domain.NewErrorWithSuggestion("scan", rootDir, "failed to scan directory",
			"check input.directories in the config file", err)
	}

	sort.Strings(files)
	return files, nil
}

// ScanAll scans every root directory and returns the union of the results,
// sorted, each path once.
func (s *FileScanner) ScanAll(rootDirs []string, include []string, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, dir := range rootDirs {
		found, err := s.Scan(dir, include, exclude)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			key := filepath.Clean(f)
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}

func matchAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if matchGlob(path, p) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a glob pattern, supporting ** for recursive matching.
func matchGlob(path, pattern string) bool {
	// Handle ** patterns by splitting and matching parts
	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")
		path = filepath.ToSlash(path)

		if prefix != "" {
			if path != prefix && !strings.HasPrefix(path, prefix+"/") {
				return false
			}
			path = strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
		}

		if suffix == "" {
			return true
		}

		// Try matching suffix against each possible subpath
		pathParts := strings.Split(path, "/")
		for i := range pathParts {
			matched, _ := filepath.Match(suffix, strings.Join(pathParts[i:], "/"))
			if matched {
				return true
			}
		}
		return false
	}

	// Simple glob match on the base name first
	matched, _ := filepath.Match(pattern, filepath.Base(path))
	if matched {
		return true
	}
	matched, _ = filepath.Match(pattern, filepath.ToSlash(path))
	return matched
}
