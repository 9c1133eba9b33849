package commands

import (
	"path/filepath"
	"strings"

	"github.com/teranos/mutigen/driver"
	"github.com/teranos/mutigen/gen"
)

// JavaLayout places each unit at root/<package path>/<Name>.java
func JavaLayout(root string) func(*gen.Unit) string {
	return func(unit *gen.Unit) string {
		return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(unit.Name, ".", "/"))+".java")
	}
}

// unitPaths lists the files a report's units were written to
func unitPaths(report *driver.Report, path func(*gen.Unit) string) []string {
	files := make([]string, len(report.Units))
	for i, u := range report.Units {
		files[i] = path(&gen.Unit{Class: u.Class, Name: u.Name})
	}
	return files
}
