package configure

const StremioScheme = "stremio"

// Link is a generated install link. Target is <host>/<token>/manifest.json.
type Link struct {
	Token  string
	Target string
	Scheme string
}

// StremioURL hands the manifest to the Stremio app.
func (l *Link) StremioURL() string {
	return StremioScheme + "://" + l.Target
}

// HTTPURL is the absolute manifest URL using the page scheme.
func (l *Link) HTTPURL() string {
	return l.Scheme + "://" + l.Target
}
