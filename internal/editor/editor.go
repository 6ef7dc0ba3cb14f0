// Package editor implements the manual-edit escape hatch: a payment is
// written to a temp file, opened in the operator's editor, and read back.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sift-dev/sift/internal/model"
	"github.com/sift-dev/sift/internal/snapshot"
)

// Editor launches an external editor on a JSON rendering of a payment.
type Editor struct {
	command string
	args    []string
}

// New returns an Editor for the given command line (e.g. "vim" or
// "code --wait"). Resolving $EDITOR is the caller's job; an empty command is
// only an error once an edit is attempted.
func New(command string) *Editor {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return &Editor{}
	}
	return &Editor{command: fields[0], args: fields[1:]}
}

// Edit writes p to a temp file, runs the editor synchronously on it, and
// decodes the result. The temp file is removed on every path. A missing
// editor, nonzero exit, or unparsable output returns an error and leaves the
// caller's record untouched.
func (e *Editor) Edit(p model.Payment) (model.Payment, error) {
	if e.command == "" {
		return model.Payment{}, fmt.Errorf("no editor configured and $EDITOR is unset")
	}

	data, err := snapshot.EncodeOne(p)
	if err != nil {
		return model.Payment{}, err
	}

	f, err := os.CreateTemp("", "sift-edit-*.json")
	if err != nil {
		return model.Payment{}, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return model.Payment{}, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return model.Payment{}, fmt.Errorf("closing temp file: %w", err)
	}

	cmd := exec.Command(e.command, append(e.args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return model.Payment{}, fmt.Errorf("editor %s: %w", e.command, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return model.Payment{}, fmt.Errorf("reading edited file: %w", err)
	}

	result, err := snapshot.DecodeOne(edited)
	if err != nil {
		return model.Payment{}, fmt.Errorf("edited payment: %w", err)
	}
	return result, nil
}
