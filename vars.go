package doclink

import (
	"regexp"
	"sync"

	"go.dw1.io/fastcache"
)

var (
	cacheOnce       sync.Once
	globalCache     *fastcache.Cache[string, cacheEntry]
	cacheFilePath   string
	cachePersistent bool
	cacheMu         sync.Mutex

	linkTagRegex     = regexp.MustCompile(`(?i)\{@link ([^}\s]+)\s*\}`)
	symbolTokenRegex = regexp.MustCompile(`(?i)(?:^|[^a-z$0-9_])(#[\w.#$-]+|[\w.#$-]+)\b`)
	relPathRegex     = regexp.MustCompile(`\.\.?[\\/]`)
	pathSepRegex     = regexp.MustCompile(`[\\/]`)
	summaryRegex     = regexp.MustCompile(`(?is)^(.+?\.)[^a-z0-9]`)
)
