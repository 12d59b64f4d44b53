package configure

import (
	"errors"
	"fmt"
	"net/url"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/dbytex91/debridcfg/internal/catalog"
	"github.com/dbytex91/debridcfg/internal/userconfig"
)

var ErrInvalidPageURL = errors.New("configure: invalid page url")

// Form is the typed state behind the configure page.
type Form struct {
	DebridKey  string
	DebridHTTP string
	TMDBAPI    string
	Service    string
	MaxSize    string

	// Excluded holds the checked quality boxes.
	Excluded mapset.Set[userconfig.Quality]
	Catalogs *catalog.Orderer
}

// NewForm returns a form at its default state with every catalog of defs
// checked in definition order.
func NewForm(defs []catalog.Definition) *Form {
	return &Form{
		Service:  userconfig.ServiceRealDebrid,
		Excluded: mapset.NewThreadUnsafeSet[userconfig.Quality](),
		Catalogs: catalog.NewOrderer(catalog.IDs(defs)...),
	}
}

// Load fills the form from the token carried by a /<token>/configure page URL.
// It reports false and leaves the form untouched when there is no usable token.
func (f *Form) Load(pageURL string) bool {
	c, ok := userconfig.ParseConfigureURL(pageURL)
	if !ok {
		return false
	}

	f.Apply(c)
	return true
}

// Apply copies a decoded configuration into the form controls. Unknown quality
// identifiers are ignored. A configuration without a catalog list keeps the
// current catalogs, an empty list unchecks them all.
func (f *Form) Apply(c *userconfig.Configuration) {
	f.DebridKey = c.DebridKey
	f.DebridHTTP = c.DebridHTTP
	f.TMDBAPI = c.TMDBAPI
	f.Service = c.Service
	if c.MaxSize != "" {
		f.MaxSize = c.MaxSize
	}

	f.Excluded.Clear()
	for _, q := range c.SelectedQualityExclusion {
		if q.Valid() {
			f.Excluded.Add(q)
		}
	}

	if c.SelectedCatalogs != nil {
		f.Catalogs.Restore(c.SelectedCatalogs)
	}
}

// CheckedQualities scans the quality boxes in their fixed order.
func (f *Form) CheckedQualities() []userconfig.Quality {
	checked := []userconfig.Quality{}
	for _, q := range userconfig.Qualities {
		if f.Excluded.Contains(q) {
			checked = append(checked, q)
		}
	}

	return checked
}

// Configuration assembles the record described by the form for a page served
// from addonHost.
func (f *Form) Configuration(addonHost string) *userconfig.Configuration {
	c := &userconfig.Configuration{
		AddonHost:                addonHost,
		Service:                  f.Service,
		DebridKey:                f.DebridKey,
		DebridHTTP:               f.DebridHTTP,
		TMDBAPI:                  f.TMDBAPI,
		MaxSize:                  f.MaxSize,
		SelectedQualityExclusion: f.CheckedQualities(),
	}
	if f.Catalogs.Len() > 0 {
		c.SelectedCatalogs = f.Catalogs.CheckedOrder()
	}
	c.Normalize()

	return c
}

// Compose validates the form and builds the install link for the page at
// pageURL.
func (f *Form) Compose(pageURL string) (*Link, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPageURL, pageURL)
	}

	c := f.Configuration(u.Scheme + "://" + u.Host)
	if err := userconfig.Validate(c); err != nil {
		return nil, err
	}

	token, err := userconfig.Encode(c)
	if err != nil {
		return nil, err
	}

	return &Link{
		Token:  token,
		Target: u.Host + userconfig.ManifestPath(token),
		Scheme: u.Scheme,
	}, nil
}
