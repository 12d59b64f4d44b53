package userconfig

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	DebridEnabled           = "true"
	MetadataProviderDefault = "cinemeta"

	ServiceRealDebrid = "realdebrid"
	ServiceAllDebrid  = "alldebrid"
)

// Services lists the debrid providers offered by the configure form.
var Services = []string{ServiceRealDebrid, ServiceAllDebrid}

// Configuration is the payload carried by an install URL token.
//
// A nil SelectedCatalogs means the token does not pick catalogs and the
// defaults apply. An empty one means every catalog is turned off.
type Configuration struct {
	AddonHost                string    `json:"addonHost"`
	Service                  string    `json:"service"`
	DebridKey                string    `json:"debridKey" validate:"required"`
	DebridHTTP               string    `json:"debridHttp,omitempty"`
	Debrid                   string    `json:"debrid"`
	MetadataProvider         string    `json:"metadataProvider"`
	TMDBAPI                  string    `json:"tmdbApi" validate:"required"`
	MaxSize                  string    `json:"maxSize" validate:"required"`
	SelectedQualityExclusion []Quality `json:"selectedQualityExclusion"`
	SelectedCatalogs         []string  `json:"selectedCatalogs"`
}

// Normalize fills the constant fields and puts the exclusions in scan order.
func (c *Configuration) Normalize() {
	c.Debrid = DebridEnabled
	c.MetadataProvider = MetadataProviderDefault
	c.SelectedQualityExclusion = canonicalQualities(c.SelectedQualityExclusion)
	if c.SelectedQualityExclusion == nil {
		c.SelectedQualityExclusion = []Quality{}
	}
}

func (c *Configuration) ExclusionSet() mapset.Set[Quality] {
	return mapset.NewThreadUnsafeSet(c.SelectedQualityExclusion...)
}

// Excludes reports whether releases of quality q are filtered out.
func (c *Configuration) Excludes(q Quality) bool {
	return slices.Contains(c.SelectedQualityExclusion, q)
}

// Equal compares two configurations. Exclusions are compared as sets, catalogs
// by exact order, and an absent catalog list differs from an empty one.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.AddonHost == other.AddonHost &&
		c.Service == other.Service &&
		c.DebridKey == other.DebridKey &&
		c.DebridHTTP == other.DebridHTTP &&
		c.Debrid == other.Debrid &&
		c.MetadataProvider == other.MetadataProvider &&
		c.TMDBAPI == other.TMDBAPI &&
		c.MaxSize == other.MaxSize &&
		c.ExclusionSet().Equal(other.ExclusionSet()) &&
		(c.SelectedCatalogs == nil) == (other.SelectedCatalogs == nil) &&
		slices.Equal(c.SelectedCatalogs, other.SelectedCatalogs)
}

// MaxSizeBytes converts the size cap, expressed in GB, to bytes.
func (c *Configuration) MaxSizeBytes() (uint64, error) {
	gb, err := strconv.ParseFloat(strings.TrimSpace(c.MaxSize), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid maxSize %q: %w", c.MaxSize, err)
	}
	if gb < 0 {
		return 0, fmt.Errorf("invalid maxSize %q: negative", c.MaxSize)
	}

	return uint64(gb * GIBIBYTE), nil
}

// MaxSizeLabel is the human readable size cap, "?" when it is not a number.
func (c *Configuration) MaxSizeLabel() string {
	size, err := c.MaxSizeBytes()
	if err != nil {
		return "?"
	}

	return bytesConvert(size)
}
