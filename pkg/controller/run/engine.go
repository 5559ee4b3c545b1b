package run

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/suzuki-shunsuke/refurb/pkg/config"
	"github.com/suzuki-shunsuke/refurb/pkg/engine"
)

// NewEngine runs the configured dumper command. Its trees are cached unless
// the cache is disabled or no cache directory is available.
func NewEngine(logE *logrus.Entry, fs afero.Fs, cfg *config.Config) (engine.Engine, error) {
	ecfg := cfg.Engine
	if ecfg == nil {
		ecfg = &config.Engine{}
	}
	cmd, err := engine.NewCommand(logE, ecfg.Command, ecfg.Format)
	if err != nil {
		return nil, fmt.Errorf("set up the engine: %w", err)
	}
	if ecfg.NoCache {
		return cmd, nil
	}
	dir := ecfg.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			logerr.WithError(logE, err).Debug("the tree cache is disabled because the cache directory is unknown")
			return cmd, nil
		}
		dir = filepath.Join(base, "refurb")
	}
	logE.WithField("cache_dir", dir).Debug("use the tree cache")
	return engine.NewCached(logE, fs, cmd, cmd.Key(), engine.NewCache(fs, dir)), nil
}
