// Package check verifies that committed generated sources match what the
// current generator produces for the same batch.
package check

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/mutigen/driver"
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/gen"
	"github.com/teranos/mutigen/model"
)

// Result holds the outcome of an up-to-date check. Paths are relative to
// the compared roots.
type Result struct {
	UpToDate bool
	// Changed files exist on both sides with different content
	Changed []string
	// Missing files are generated but not committed
	Missing []string
	// Stale files carry the generated header but are no longer produced
	Stale []string
}

// Layout maps an output root to a unit path policy
type Layout func(root string) func(*gen.Unit) string

// PostProcess runs over the freshly written files before comparison, so
// committed files that went through a formatter still compare equal
type PostProcess func(ctx context.Context, files []string) error

// Run regenerates classes into a temporary directory and compares the result
// with committedDir. Generation failures are returned in the report; the
// comparison only covers units that were generated. post may be nil.
func Run(ctx context.Context, cfg driver.Config, classes []model.ClassModel, committedDir string, layout Layout, post PostProcess) (*Result, *driver.Report, error) {
	tempDir, err := os.MkdirTemp("", "mutigen-check-*")
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	// Stamps differ between checkouts; comparison ignores them anyway.
	cfg.Options.Stamp = ""
	report, err := driver.Run(ctx, cfg, classes, driver.NewFileSink(layout(tempDir)))
	if err != nil {
		return nil, report, err
	}

	if post != nil && len(report.Units) > 0 {
		path := layout(tempDir)
		files := make([]string, len(report.Units))
		for i, u := range report.Units {
			files[i] = path(&gen.Unit{Class: u.Class, Name: u.Name})
		}
		if err := post(ctx, files); err != nil {
			return nil, report, errors.Wrap(err, "failed to post-process generated files")
		}
	}

	result, err := CompareDirectories(tempDir, committedDir)
	if err != nil {
		return nil, report, err
	}
	return result, report, nil
}

// CompareDirectories compares freshly generated files with committed ones,
// ignoring source version stamps.
func CompareDirectories(generatedDir, committedDir string) (*Result, error) {
	result := &Result{}
	produced := make(map[string]bool)

	err := filepath.Walk(generatedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(generatedDir, path)
		if err != nil {
			return err
		}
		produced[rel] = true

		existing := filepath.Join(committedDir, rel)
		if _, err := os.Stat(existing); os.IsNotExist(err) {
			result.Missing = append(result.Missing, rel)
			return nil
		}
		different, err := filesAreDifferent(path, existing)
		if err != nil {
			return err
		}
		if different {
			result.Changed = append(result.Changed, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compare %s", generatedDir)
	}

	if _, err := os.Stat(committedDir); err == nil {
		err = filepath.Walk(committedDir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			rel, err := filepath.Rel(committedDir, path)
			if err != nil {
				return err
			}
			if produced[rel] {
				return nil
			}
			generated, err := isGenerated(path)
			if err != nil {
				return err
			}
			if generated {
				result.Stale = append(result.Stale, rel)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", committedDir)
		}
	}

	sort.Strings(result.Changed)
	sort.Strings(result.Missing)
	sort.Strings(result.Stale)
	result.UpToDate = len(result.Changed) == 0 && len(result.Missing) == 0 && len(result.Stale) == 0
	return result, nil
}

// filesAreDifferent compares two files, ignoring metadata lines
func filesAreDifferent(file1, file2 string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}
	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}
	if bytes.Equal(content1, content2) {
		return false, nil
	}
	lines1, err := filterMetadataLines(content1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to scan %s", file1)
	}
	lines2, err := filterMetadataLines(content2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to scan %s", file2)
	}
	return lines1 != lines2, nil
}

// filterMetadataLines drops the "// Source version:" stamp
func filterMetadataLines(content []byte) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), strings.TrimSpace(gen.StampPrefix)) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return result.String(), nil
}

// isGenerated reports whether the file starts with the generated header
func isGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	first, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && first == "" {
		return false, nil
	}
	return strings.HasPrefix(first, gen.HeaderPrefix), nil
}
