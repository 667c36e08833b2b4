package wizard

import "strings"

// Step is one page of the wizard. Stem is the navigation identifier
// ("010-plex"); Section is the persistence key ("plex").
type Step struct {
	Stem    string
	Num     string
	Section string
	Title   string
	Prev    string
	Next    string
}

// Steps lists every wizard page in walk order. Prev/Next are filled in at
// package init so the table stays easy to edit.
var Steps = []Step{
	{Stem: "001-start", Num: "001", Section: "start", Title: "Start"},
	{Stem: "010-plex", Num: "010", Section: "plex", Title: "Plex"},
	{Stem: "020-tmdb", Num: "020", Section: "tmdb", Title: "TMDb"},
	{Stem: "025-libraries", Num: "025", Section: "libraries", Title: "Libraries"},
	{Stem: "027-playlist_files", Num: "027", Section: "playlist_files", Title: "Playlists"},
	{Stem: "030-tautulli", Num: "030", Section: "tautulli", Title: "Tautulli"},
	{Stem: "040-github", Num: "040", Section: "github", Title: "GitHub"},
	{Stem: "050-omdb", Num: "050", Section: "omdb", Title: "OMDb"},
	{Stem: "060-mdblist", Num: "060", Section: "mdblist", Title: "MDBList"},
	{Stem: "070-notifiarr", Num: "070", Section: "notifiarr", Title: "Notifiarr"},
	{Stem: "080-gotify", Num: "080", Section: "gotify", Title: "Gotify"},
	{Stem: "085-ntfy", Num: "085", Section: "ntfy", Title: "ntfy"},
	{Stem: "090-anidb", Num: "090", Section: "anidb", Title: "AniDB"},
	{Stem: "100-radarr", Num: "100", Section: "radarr", Title: "Radarr"},
	{Stem: "110-sonarr", Num: "110", Section: "sonarr", Title: "Sonarr"},
	{Stem: "120-trakt", Num: "120", Section: "trakt", Title: "Trakt"},
	{Stem: "130-mal", Num: "130", Section: "mal", Title: "MyAnimeList"},
	{Stem: "140-webhooks", Num: "140", Section: "webhooks", Title: "Webhooks"},
	{Stem: "150-settings", Num: "150", Section: "settings", Title: "Settings"},
	{Stem: "900-final", Num: "900", Section: "final", Title: "Final Validation"},
}

func init() {
	for i := range Steps {
		if i > 0 {
			Steps[i].Prev = Steps[i-1].Stem
		}
		if i < len(Steps)-1 {
			Steps[i].Next = Steps[i+1].Stem
		}
	}
}

// StepByStem looks a step up by its navigation identifier.
func StepByStem(stem string) (Step, bool) {
	for _, s := range Steps {
		if s.Stem == stem {
			return s, true
		}
	}
	return Step{}, false
}

// ExtractNames resolves a step reference (a bare stem, or a referrer URL
// ending in one) into its stem and section name.
func ExtractNames(rawSource string) (source, sectionName string) {
	source = rawSource
	if strings.HasPrefix(rawSource, "http") {
		parts := strings.Split(rawSource, "/")
		source = parts[len(parts)-1]
		source = strings.SplitN(source, "?", 2)[0]
	}
	idx := strings.Index(source, "-")
	if idx >= 0 {
		sectionName = source[idx+1:]
	} else {
		sectionName = source
	}
	return source, sectionName
}
