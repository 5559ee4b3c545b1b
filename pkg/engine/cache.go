package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the payload or the wire node format changes.
const cacheSchemaVersion uint16 = 1

// Cache stores built trees on disk, keyed by the content of the source file.
// It is safe for concurrent use.
type Cache struct {
	fs  afero.Fs
	dir string
	mu  sync.RWMutex
}

type cachePayload struct {
	Schema uint16
	Path   string
	Tree   *Node
}

func NewCache(fs afero.Fs, dir string) *Cache {
	return &Cache{fs: fs, dir: dir}
}

// CacheKey digests everything a tree depends on.
func CacheKey(engineKey, path string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(engineKey))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, "trees", key+".mp")
}

// Get returns the cached tree. ok is false on a miss, including a payload
// written with another schema version.
func (c *Cache) Get(key string) (*Node, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, err := afero.ReadFile(c.fs, c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read a cache file: %w", err)
	}
	payload := &cachePayload{}
	if err := msgpack.Unmarshal(b, payload); err != nil {
		return nil, false, fmt.Errorf("decode a cache file: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return payload.Tree, true, nil
}

// Put writes a tree atomically.
func (c *Cache) Put(key, path string, tree *Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pathFor(key)
	dir := filepath.Dir(p)
	if err := c.fs.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("create a cache directory: %w", err)
	}
	b, err := msgpack.Marshal(&cachePayload{
		Schema: cacheSchemaVersion,
		Path:   path,
		Tree:   tree,
	})
	if err != nil {
		return fmt.Errorf("encode a cache payload: %w", err)
	}
	f, err := afero.TempFile(c.fs, dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("create a temporary file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		c.fs.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("write a cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		c.fs.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("close a cache file: %w", err)
	}
	if err := c.fs.Rename(tmp, p); err != nil {
		c.fs.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("rename a cache file: %w", err)
	}
	return nil
}

// Keyer is implemented by engines whose output can be cached.
type Keyer interface {
	Key() string
}

// Cached serves trees from a Cache and builds only the files which miss.
// Cache failures are logged and treated as misses.
type Cached struct {
	engine Engine
	key    string
	cache  *Cache
	fs     afero.Fs
	logE   *logrus.Entry
}

func NewCached(logE *logrus.Entry, fs afero.Fs, engine Engine, key string, cache *Cache) *Cached {
	return &Cached{engine: engine, key: key, cache: cache, fs: fs, logE: logE}
}

func (c *Cached) Build(ctx context.Context, files []string) (*Result, error) { //nolint:cyclop
	result := &Result{Modules: make([]*Module, len(files))}
	keys := make([]string, len(files))
	var misses []string
	missIndex := map[string]int{}
	for i, file := range files {
		logE := c.logE.WithField("file", file)
		content, err := afero.ReadFile(c.fs, file)
		if err != nil {
			// the engine reports unreadable files
			misses = append(misses, file)
			missIndex[file] = i
			continue
		}
		keys[i] = CacheKey(c.key, file, content)
		node, ok, err := c.cache.Get(keys[i])
		if err != nil {
			logerr.WithError(logE, err).Warn("read the tree cache")
		}
		if ok {
			tree, err := DecodeFile(file, node)
			if err == nil {
				logE.Debug("use the cached tree")
				result.Modules[i] = &Module{Path: file, Tree: tree}
				continue
			}
			logerr.WithError(logE, err).Warn("decode a cached tree")
		}
		misses = append(misses, file)
		missIndex[file] = i
	}
	if len(misses) == 0 {
		return result, nil
	}
	built, err := c.engine.Build(ctx, misses)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	for _, mod := range built.Modules {
		i, ok := missIndex[mod.Path]
		if !ok {
			continue
		}
		result.Modules[i] = mod
		if mod.Tree == nil || keys[i] == "" {
			continue
		}
		c.put(keys[i], mod)
	}
	for i, file := range files {
		if result.Modules[i] == nil {
			result.Modules[i] = &Module{Path: file}
		}
	}
	return result, nil
}

func (c *Cached) put(key string, mod *Module) {
	logE := c.logE.WithField("file", mod.Path)
	node, err := EncodeFile(mod.Tree)
	if err != nil {
		logerr.WithError(logE, err).Warn("encode a tree for the cache")
		return
	}
	if err := c.cache.Put(key, mod.Path, node); err != nil {
		logerr.WithError(logE, err).Warn("write the tree cache")
	}
}
