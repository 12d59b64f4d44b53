package catalog

// ContentType refers to https://github.com/Stremio/stremio-addon-sdk/blob/master/docs/api/responses/content.types.md
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Definition describes a catalog the addon can expose.
type Definition struct {
	ID   string
	Type ContentType
	Name string
}

var defaults = []Definition{
	{ID: "latest_movies", Type: ContentTypeMovie, Name: "Latest movies"},
	{ID: "popular_movies", Type: ContentTypeMovie, Name: "Popular movies"},
	{ID: "4k_movies", Type: ContentTypeMovie, Name: "4K movies"},
	{ID: "latest_series", Type: ContentTypeSeries, Name: "Latest series"},
	{ID: "popular_series", Type: ContentTypeSeries, Name: "Popular series"},
}

// Defaults returns the built-in catalogs in their initial display order.
func Defaults() []Definition {
	out := make([]Definition, len(defaults))
	copy(out, defaults)
	return out
}

func Lookup(id string) (Definition, bool) {
	for _, d := range defaults {
		if d.ID == id {
			return d, true
		}
	}

	return Definition{}, false
}

// IDs returns the identifiers of defs, keeping their order.
func IDs(defs []Definition) []string {
	ids := make([]string, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}

	return ids
}
