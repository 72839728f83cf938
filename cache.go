package doclink

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.dw1.io/fastcache"
)

const (
	cacheMaxEntries = 256
)

// cacheMetadata identifies the registry file version an entry was decoded
// from.
type cacheMetadata struct {
	Size    int64
	ModTime time.Time
}

// cacheEntry represents a decoded registry snapshot.
type cacheEntry struct {
	Symbols []Symbol
	Meta    cacheMetadata
}

// LoadRegistryFile decodes the registry snapshot stored at path.
func LoadRegistryFile(path string) (*MapRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	reg, err := DecodeRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return reg, nil
}

// OpenRegistry is like [LoadRegistryFile] but keeps decoded snapshots in a
// cache persisted under the user cache directory. A cached snapshot is reused
// while the file's size and modification time are unchanged.
func OpenRegistry(path string) (*MapRegistry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve registry path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}

	cache, err := getCache()
	if err != nil {
		return nil, err
	}

	meta := cacheMetadata{Size: info.Size(), ModTime: info.ModTime().UTC()}
	key := getCacheKey(abs)

	if entry, ok := getValidCacheEntry(cache, key); ok {
		if entry.Meta.Size == meta.Size && entry.Meta.ModTime.Equal(meta.ModTime) {
			return NewRegistry(entry.Symbols...)
		}

		// stale entry; fall through to decode
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	symbols, err := decodeSymbols(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	reg, err := NewRegistry(symbols...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := setCacheEntry(cache, cacheEntry{Symbols: reg.Symbols(), Meta: meta}, key); err != nil {
		return nil, err
	}

	return reg, nil
}

// getCache initializes and returns the global cache instance.
func getCache() (*fastcache.Cache[string, cacheEntry], error) {
	var cacheInitErr error

	cacheOnce.Do(func() {
		dir, err := getCacheDir()
		if err != nil {
			cacheInitErr = err

			return
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			cacheInitErr = fmt.Errorf("could not create cache directory: %w", err)

			return
		}

		cacheFilePath = filepath.Join(dir, "registry.gob")
		cachePersistent = true

		cache, err := loadCacheFromFile(cacheFilePath, cacheMaxEntries)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				cachePersistent = false
				cacheFilePath = ""
			}

			cache = fastcache.New[string, cacheEntry](cacheMaxEntries)
		}

		globalCache = cache
	})

	if cacheInitErr != nil {
		return nil, cacheInitErr
	}

	return globalCache, nil
}

func getCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not get user cache directory: %w", err)
	}

	return filepath.Join(dir, "doclink"), nil
}

func getCacheKey(absPath string) string {
	hash := fnv.New64a()
	hash.Write([]byte(absPath))

	return fmt.Sprintf("%x", hash.Sum64())
}

func getValidCacheEntry(cache *fastcache.Cache[string, cacheEntry], key string) (cacheEntry, bool) {
	if cache == nil || key == "" {
		return cacheEntry{}, false
	}

	entry, ok := cache.Get(key)

	return entry, ok
}

func setCacheEntry(cache *fastcache.Cache[string, cacheEntry], entry cacheEntry, key string) error {
	if key == "" {
		return nil
	}

	cache.Set(key, entry)

	if !cachePersistent || cacheFilePath == "" {
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if err := cache.SaveToFile(cacheFilePath); err != nil {
		if errors.Is(err, fs.ErrPermission) || os.IsPermission(err) || strings.Contains(strings.ToLower(err.Error()), "permission denied") {
			return fmt.Errorf("cache persistence permission error: %w", fs.ErrPermission)
		}

		return err
	}

	return nil
}

func loadCacheFromFile(path string, maxEntries int) (_ *fastcache.Cache[string, cacheEntry], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load cache panic: %v", r)
		}
	}()

	cache, err := fastcache.LoadFromFile[string, cacheEntry](path)
	if err != nil {
		return nil, err
	}

	if cache == nil {
		cache = fastcache.New[string, cacheEntry](maxEntries)
	}

	return cache, nil
}
