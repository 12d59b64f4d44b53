package addon

import (
	"github.com/dbytex91/debridcfg/internal/catalog"
)

func WithID(id string) Option {
	return func(a *Addon) {
		a.id = id
	}
}

func WithName(name string) Option {
	return func(a *Addon) {
		a.name = name
	}
}

func WithVersion(version string) Option {
	return func(a *Addon) {
		a.version = version
	}
}

// WithDebridKey marks the addon as usable without a per-user debrid key.
func WithDebridKey(apiKey string) Option {
	return func(a *Addon) {
		a.debridAPIKey = apiKey
	}
}

func WithCatalogs(defs []catalog.Definition) Option {
	return func(a *Addon) {
		a.catalogs = defs
	}
}

// WithCacheSize sets the size in bytes of the manifest and QR code cache.
// freecache raises anything below 512KB to 512KB.
func WithCacheSize(size int) Option {
	return func(a *Addon) {
		if size > 0 {
			a.cacheSize = size
		}
	}
}
