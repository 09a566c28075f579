// Package bias estimates the political leaning of news articles by fusing
// a static per-source prior with per-article content classification.
package bias

// SourceEntry is a publisher's prior bias and how much we trust it.
// Bias runs -2 (far left) to +2 (far right).
type SourceEntry struct {
	Bias       float64
	Confidence float64
}

// sourceTable maps known publishers to their prior. Values follow public
// media-bias chart placements; confidence reflects how consistently the
// charts agree on the outlet.
var sourceTable = map[string]SourceEntry{
	// Left-leaning sources
	"CNN":                 {Bias: -1.5, Confidence: 0.8},
	"MSNBC":               {Bias: -1.8, Confidence: 0.9},
	"The New York Times":  {Bias: -1.2, Confidence: 0.7},
	"The Washington Post": {Bias: -1.3, Confidence: 0.8},
	"HuffPost":            {Bias: -1.7, Confidence: 0.9},
	"Vox":                 {Bias: -1.6, Confidence: 0.8},

	// Center sources
	"Reuters":          {Bias: 0.1, Confidence: 0.9},
	"Associated Press": {Bias: 0.0, Confidence: 0.9},
	"BBC News":         {Bias: 0.2, Confidence: 0.8},
	"PBS NewsHour":     {Bias: 0.1, Confidence: 0.8},
	"NPR":              {Bias: -0.3, Confidence: 0.7},

	// Right-leaning sources
	"Fox News":       {Bias: 1.6, Confidence: 0.9},
	"Breitbart":      {Bias: 2.0, Confidence: 0.9},
	"The Daily Wire": {Bias: 1.8, Confidence: 0.8},
	"Newsmax":        {Bias: 1.7, Confidence: 0.8},
	"The Blaze":      {Bias: 1.9, Confidence: 0.8},
	"OAN":            {Bias: 1.8, Confidence: 0.7},
}

// Lookup returns the bias prior for a source. Unknown sources get a
// weak-neutral (0, 0.5) prior, never an error.
func Lookup(sourceName string) SourceEntry {
	if entry, ok := sourceTable[sourceName]; ok {
		return entry
	}
	return SourceEntry{Bias: 0, Confidence: 0.5}
}

// Preference is a user's stated leaning filter.
type Preference string

const (
	PreferenceAll    Preference = "all"
	PreferenceLeft   Preference = "left"
	PreferenceCenter Preference = "center"
	PreferenceRight  Preference = "right"
)

// preferenceSources maps a leaning preference to representative outlets.
var preferenceSources = map[Preference][]string{
	PreferenceLeft:   {"CNN", "MSNBC", "The New York Times", "The Washington Post"},
	PreferenceCenter: {"Reuters", "Associated Press", "BBC News", "PBS NewsHour"},
	PreferenceRight:  {"Fox News", "Breitbart", "The Daily Wire", "Newsmax"},
}

// FilteredSources returns the source names matching the leaning preference,
// unioned with preferred and minus blocked. PreferenceAll starts from an
// empty list, so only preferred sources survive.
func FilteredSources(pref Preference, preferred, blocked []string) []string {
	var sources []string
	if pref != PreferenceAll {
		sources = append(sources, preferenceSources[pref]...)
	}

	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		seen[s] = true
	}
	for _, s := range preferred {
		if !seen[s] {
			sources = append(sources, s)
			seen[s] = true
		}
	}

	blockedSet := make(map[string]bool, len(blocked))
	for _, s := range blocked {
		blockedSet[s] = true
	}

	result := sources[:0]
	for _, s := range sources {
		if !blockedSet[s] {
			result = append(result, s)
		}
	}
	return result
}
