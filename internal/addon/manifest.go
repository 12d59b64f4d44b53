package addon

import (
	"strings"

	"github.com/dbytex91/debridcfg/internal/catalog"
)

type ContentType = catalog.ContentType

const (
	ContentTypeMovie  = catalog.ContentTypeMovie
	ContentTypeSeries = catalog.ContentTypeSeries
)

// Resource refers to https://github.com/Stremio/stremio-addon-sdk/blob/master/docs/api/responses/manifest.md#filtering-properties
type Resource string

const (
	ResourceStream Resource = "stream"
)

type Manifest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`

	ResourceItems []ResourceItem `json:"resources,omitempty"`

	Types    []ContentType `json:"types"`
	Catalogs []CatalogItem `json:"catalogs"`

	IDPrefixes    []string       `json:"idPrefixes,omitempty"`
	Logo          string         `json:"logo,omitempty"`
	BehaviorHints *BehaviorHints `json:"behaviorHints,omitempty"`
}

type ResourceItem struct {
	Name  Resource      `json:"name"`
	Types []ContentType `json:"types"`

	IDPrefixes []string `json:"idPrefixes,omitempty"`
}

type BehaviorHints struct {
	Configurable          bool `json:"configurable,omitempty"`
	ConfigurationRequired bool `json:"configurationRequired,omitempty"`
}

// CatalogItem is a catalog advertised in the manifest.
type CatalogItem struct {
	Type ContentType `json:"type"`
	ID   string      `json:"id"`
	Name string      `json:"name"`
}

// manifestVersion turns builds like "dev-abc1234" into semver, which Stremio
// requires.
func manifestVersion(version string) string {
	if version == "" {
		version = "dev"
	}
	if version[0] >= '0' && version[0] <= '9' {
		return version
	}

	return "0.0.0-" + strings.ReplaceAll(version, "-", ".")
}
