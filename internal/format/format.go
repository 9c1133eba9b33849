// Package format runs an optional external formatter over generated files.
package format

import (
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/mutigen/errors"
)

// Formatter is a parsed formatter command line. The written files are
// appended as trailing arguments.
type Formatter struct {
	argv []string
}

// Parse splits command with shell quoting rules. An empty command yields a
// nil Formatter, which formats nothing.
func Parse(command string) (*Formatter, error) {
	if strings.TrimSpace(command) == "" {
		return nil, nil
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid formatter command %q", command)
	}
	return &Formatter{argv: argv}, nil
}

// Command returns the program name, or "" for a nil Formatter
func (f *Formatter) Command() string {
	if f == nil {
		return ""
	}
	return f.argv[0]
}

// Run formats files in one invocation. Formatter output is attached to the
// error as detail.
func (f *Formatter) Run(ctx context.Context, files []string) error {
	if f == nil || len(files) == 0 {
		return nil
	}
	args := make([]string, 0, len(f.argv)-1+len(files))
	args = append(args, f.argv[1:]...)
	args = append(args, files...)

	cmd := exec.CommandContext(ctx, f.argv[0], args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "formatter %s failed on %d files", f.argv[0], len(files))
		if len(out) > 0 {
			err = errors.WithDetail(err, strings.TrimSpace(string(out)))
		}
		return err
	}
	return nil
}
