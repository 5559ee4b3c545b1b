package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// DefaultCommand is the dumper run when none is configured.
var DefaultCommand = []string{"refurb-dump-ast"} //nolint:gochecknoglobals

// Command runs an external dumper with the file paths appended to its
// arguments and decodes the document it writes to stdout.
type Command struct {
	argv   []string
	format string
	logE   *logrus.Entry
}

func NewCommand(logE *logrus.Entry, argv []string, format string) (*Command, error) {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatMsgpack {
		return nil, fmt.Errorf("unknown engine format: %s", format)
	}
	return &Command{argv: argv, format: format, logE: logE}, nil
}

// Key identifies the trees this command produces. Trees built by commands
// with different keys must not be mixed.
func (c *Command) Key() string {
	return c.format + "\x00" + strings.Join(c.argv, "\x00")
}

func (c *Command) Build(ctx context.Context, files []string) (*Result, error) {
	if len(files) == 0 {
		return &Result{}, nil
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, c.argv[0], append(c.argv[1:], files...)...) //nolint:gosec
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	c.logE.WithFields(logrus.Fields{
		"command":   c.argv,
		"num_files": len(files),
	}).Debug("run the engine")
	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("run the engine: %w", logerr.WithFields(runErr, logrus.Fields{
				"command": c.argv[0],
			}))
		}
	}
	doc, err := c.decode(stdout.Bytes())
	if err != nil {
		if runErr != nil {
			return nil, &CompileError{Messages: failureMessages(runErr, stderr.String())}
		}
		return nil, err
	}
	if len(doc.Errors) != 0 {
		return nil, &CompileError{Messages: doc.Errors}
	}
	if runErr != nil {
		return nil, &CompileError{Messages: failureMessages(runErr, stderr.String())}
	}
	return NewResult(files, doc)
}

func (c *Command) decode(b []byte) (*Doc, error) {
	doc := &Doc{}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, errors.New("the engine wrote nothing to stdout")
	}
	switch c.format {
	case FormatMsgpack:
		if err := msgpack.Unmarshal(b, doc); err != nil {
			return nil, fmt.Errorf("decode the engine output as msgpack: %w", err)
		}
	default:
		if err := json.Unmarshal(b, doc); err != nil {
			return nil, fmt.Errorf("decode the engine output as JSON: %w", err)
		}
	}
	return doc, nil
}

func failureMessages(err error, stderr string) []string {
	var msgs []string
	for line := range strings.Lines(stderr) {
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			msgs = append(msgs, line)
		}
	}
	if len(msgs) == 0 {
		msgs = []string{"engine failed: " + err.Error()}
	}
	return msgs
}

// NewResult orders the modules of doc by files. A file the document doesn't
// mention gets a module without a tree.
func NewResult(files []string, doc *Doc) (*Result, error) {
	byPath := make(map[string]*WireModule, len(doc.Modules))
	for _, m := range doc.Modules {
		if m == nil {
			continue
		}
		byPath[m.Path] = m
	}
	result := &Result{Modules: make([]*Module, len(files))}
	for i, file := range files {
		mod := &Module{Path: file}
		if m, ok := byPath[file]; ok {
			tree, err := DecodeFile(file, m.Tree)
			if err != nil {
				return nil, fmt.Errorf("decode the tree of a file: %w", logerr.WithFields(err, logrus.Fields{
					"file": file,
				}))
			}
			mod.Tree = tree
		}
		result.Modules[i] = mod
	}
	return result, nil
}
