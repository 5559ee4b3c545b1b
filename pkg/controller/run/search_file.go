package run

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// searchFiles returns the files to analyze. Positional arguments win over
// files[].pattern. A directory argument contributes every Python file under
// it. Excluded files are dropped and duplicates are removed.
func (c *Controller) searchFiles(logE *logrus.Entry) ([]string, error) {
	var files []string
	if len(c.param.Files) != 0 {
		for _, arg := range c.param.Files {
			found, err := c.expandArg(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	} else {
		found, err := c.searchFilesByConfig()
		if err != nil {
			return nil, err
		}
		files = found
	}
	seen := make(map[string]struct{}, len(files))
	ret := make([]string, 0, len(files))
	for _, file := range files {
		if _, ok := seen[file]; ok {
			continue
		}
		seen[file] = struct{}{}
		if c.cfg.Excluded(file) {
			logE.WithField("file", file).Debug("the file is excluded")
			continue
		}
		ret = append(ret, file)
	}
	return ret, nil
}

func isPython(p string) bool {
	switch filepath.Ext(p) {
	case ".py", ".pyi":
		return true
	}
	return false
}

// expandArg passes a file, or a path which doesn't exist, through as is so
// the engine reports it.
func (c *Controller) expandArg(arg string) ([]string, error) {
	fi, err := c.fs.Stat(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{arg}, nil
		}
		return nil, fmt.Errorf("get file info: %w", err)
	}
	if !fi.IsDir() {
		return []string{arg}, nil
	}
	var files []string
	if err := afero.Walk(c.fs, arg, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isPython(p) {
			return nil
		}
		files = append(files, p)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("walk a directory: %w", err)
	}
	return files, nil
}

func (c *Controller) searchFilesByConfig() ([]string, error) {
	fsys := afero.NewIOFS(c.fs)
	var files []string
	for _, file := range c.cfg.Files {
		matches, err := doublestar.Glob(fsys, file.Pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("search files by files[].pattern: %w", err)
		}
		files = append(files, matches...)
	}
	return files, nil
}
