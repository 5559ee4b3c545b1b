package run

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin"
	"github.com/suzuki-shunsuke/refurb/pkg/check/pack"
	"github.com/suzuki-shunsuke/refurb/pkg/config"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/engine"
	"github.com/suzuki-shunsuke/refurb/pkg/output"
	"github.com/suzuki-shunsuke/refurb/pkg/suppress"
	"github.com/suzuki-shunsuke/refurb/pkg/syntax"
	"github.com/suzuki-shunsuke/refurb/pkg/visitor"
	"golang.org/x/sync/errgroup"
)

// ErrDiagnostics is returned when the report isn't empty.
var ErrDiagnostics = errors.New("refurbishments are found")

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if err := c.readConfig(); err != nil {
		return err
	}
	reg, err := pack.NewRegistry(c.fs, builtin.All(), c.cfg.Load)
	if err != nil {
		return fmt.Errorf("load checks: %w", err)
	}
	checks := reg.Active(c.cfg.IgnoreSet())
	files, err := c.searchFiles(logE)
	if err != nil {
		return fmt.Errorf("search target files: %w", err)
	}
	if len(files) == 0 {
		return errors.New("no source file is given")
	}
	eng, err := c.newEngine(logE, c.fs, c.cfg)
	if err != nil {
		return err
	}
	items, err := c.Analyze(ctx, logE, eng, files, checks)
	if err != nil {
		return err
	}
	if err := output.Write(c.param.Stdout, c.cfg.Format, items, &output.Options{
		Quiet:   c.cfg.Quiet,
		Color:   c.param.Color,
		Checks:  checks,
		Version: c.param.Version,
	}); err != nil {
		return fmt.Errorf("output the report: %w", err)
	}
	if len(items) != 0 {
		return ErrDiagnostics
	}
	return nil
}

func (c *Controller) readConfig() error {
	p, err := c.cfgFinder.Find(c.param.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	c.param.ConfigFilePath = p
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, c.param.ConfigFilePath); err != nil {
		return fmt.Errorf("read a config file: %w", err)
	}
	if c.param.Flags != nil {
		cfg.Merge(c.param.Flags)
	}
	if err := cfg.Init(); err != nil {
		return fmt.Errorf("initialize the configuration: %w", err)
	}
	c.cfg = cfg
	return nil
}

// Analyze builds every file and runs checks on it. The result is filtered by
// suppression comments and sorted. A compile error becomes raw messages and
// no file is analyzed.
func (c *Controller) Analyze(ctx context.Context, logE *logrus.Entry, eng engine.Engine, files []string, checks []check.Check) ([]diag.Item, error) {
	result, err := eng.Build(ctx, files)
	if err != nil {
		compileErr := &engine.CompileError{}
		if errors.As(err, &compileErr) {
			items := compileErrorItems(compileErr)
			diag.Sort(items)
			return items, nil
		}
		return nil, fmt.Errorf("build syntax trees: %w", err)
	}

	dispatcher := visitor.New(checks)
	slots := make([][]diag.Item, len(result.Modules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs())
	for i, mod := range result.Modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}
			slots[i] = c.analyzeModule(logE, dispatcher, mod)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze files: %w", err)
	}

	var items []diag.Item
	for _, slot := range slots {
		items = append(items, slot...)
	}
	items = suppress.Filter(logE, suppress.NewSourceCache(c.fs), items)
	diag.Sort(items)
	return items, nil
}

func (c *Controller) analyzeModule(logE *logrus.Entry, dispatcher *visitor.Dispatcher, mod *engine.Module) []diag.Item {
	logE = logE.WithField("file", mod.Path)
	if mod.Tree == nil {
		logE.Debug("the engine skipped the file")
		return nil
	}
	var items []diag.Item
	if c.cfg.Debug {
		items = append(items, diag.Raw(syntax.Dump(mod.Tree)))
	}
	diags := dispatcher.Run(mod.Tree)
	for _, d := range diags {
		d.Filename = mod.Path
		items = append(items, d)
	}
	logE.WithField("num_diagnostics", len(diags)).Debug("analyzed a file")
	return items
}

func (c *Controller) jobs() int {
	if c.cfg.Jobs > 0 {
		return c.cfg.Jobs
	}
	return runtime.NumCPU()
}

var enginePrefix = regexp.MustCompile(`^mypy: `)

func compileErrorItems(e *engine.CompileError) []diag.Item {
	items := make([]diag.Item, len(e.Messages))
	for i, msg := range e.Messages {
		items[i] = diag.Raw(enginePrefix.ReplaceAllString(msg, "refurb: "))
	}
	return items
}
