package userconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	mapset "github.com/deckarep/golang-set/v2"
)

// Quality is a release quality that can be excluded from results.
type Quality string

const (
	Quality4K      Quality = "4k"
	Quality1080p   Quality = "1080p"
	Quality720p    Quality = "720p"
	Quality480p    Quality = "480p"
	QualityRips    Quality = "rips"
	QualityCam     Quality = "cam"
	QualityUnknown Quality = "unknown"
)

var ErrUnknownQuality = errors.New("unknown quality")

// Qualities is the fixed scan order used when collecting checked exclusions.
var Qualities = []Quality{
	Quality4K,
	Quality1080p,
	Quality720p,
	Quality480p,
	QualityRips,
	QualityCam,
	QualityUnknown,
}

var knownQualities = mapset.NewThreadUnsafeSet(Qualities...)

func (q Quality) Valid() bool {
	return knownQualities.Contains(q)
}

// ParseQuality resolves a user supplied identifier. The error names the closest
// known quality when there is a reasonable one.
func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.ToLower(strings.TrimSpace(s)))
	if q.Valid() {
		return q, nil
	}

	if suggestion, ok := closestQuality(string(q)); ok {
		return "", fmt.Errorf("%w %q, did you mean %q?", ErrUnknownQuality, s, suggestion)
	}

	return "", fmt.Errorf("%w %q", ErrUnknownQuality, s)
}

func closestQuality(s string) (Quality, bool) {
	lev := metrics.NewLevenshtein()
	best := 0.0
	var match Quality
	for _, q := range Qualities {
		similarity := strutil.Similarity(s, string(q), lev)
		if similarity > best {
			best = similarity
			match = q
		}
	}

	return match, best >= 0.5
}

// canonicalQualities drops unknown and duplicate entries and sorts the rest in
// scan order.
func canonicalQualities(in []Quality) []Quality {
	set := mapset.NewThreadUnsafeSet(in...)
	out := make([]Quality, 0, set.Cardinality())
	for _, q := range Qualities {
		if set.Contains(q) {
			out = append(out, q)
		}
	}

	return out
}
