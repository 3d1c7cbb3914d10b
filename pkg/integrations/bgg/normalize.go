package bgg

import (
	"github.com/matzehuels/kallax/pkg/core/game"
)

const (
	thingExpansion   = "boardgameexpansion"
	linkCategory     = "boardgamecategory"
	linkFamily       = "boardgamefamily"
	linkMechanic     = "boardgamemechanic"
	linkExpansion    = "boardgameexpansion"
	linkLanguage     = "language"
	pollLanguageDeps = "language_dependence"
)

// Normalize turns collection entries into items, enriching each with its
// thing data when present.
//
// The selected version, if any, yields a version record; BGG reports unknown
// sizes as zeros, which become a record marked missing. When no usable
// version size exists the best other version yields a guessed record:
// complete sizes only, English editions first, then the most recent.
func Normalize(coll []CollectionItem, things map[int]Thing) []game.Item {
	items := make([]game.Item, 0, len(coll))
	for _, ci := range coll {
		th, ok := things[ci.ObjectID]
		items = append(items, normalizeOne(ci, th, ok))
	}
	return items
}

func normalizeOne(ci CollectionItem, th Thing, haveThing bool) game.Item {
	it := game.Item{
		GameID:      ci.ObjectID,
		Name:        ci.Name,
		Statuses:    ci.Status.Names(),
		IsExpansion: ci.Subtype == thingExpansion,
		NumPlays:    ci.NumPlays,
		GameYear:    ci.YearPublished,
		MinPlayers:  ci.Stats.MinPlayers,
		MaxPlayers:  ci.Stats.MaxPlayers,
		MinPlaytime: ci.Stats.MinPlaytime,
		MaxPlaytime: ci.Stats.MaxPlaytime,
		Rank:        ci.Stats.Rating.BoardGameRank(),
		Rating:      ci.Stats.Rating.Average.Float(),
		BayesRating: ci.Stats.Rating.BayesAverage.Float(),
	}

	selectedID := 0
	versionUsable := false
	if v := ci.Version; v != nil && v.ID > 0 {
		selectedID = v.ID
		it.VersionID = v.ID
		it.VersionName = primaryName(v.Names)
		it.VersionYear = v.YearPublished.Int()
		rec := record(*v, game.KindVersion)
		if !rec.Complete() {
			rec = game.DimensionRecord{Kind: game.KindVersion, Missing: true}
		}
		versionUsable = !rec.Missing
		it.Dimensions = append(it.Dimensions, rec)
	}

	if !haveThing {
		return it
	}
	enrich(&it, th)

	if !versionUsable {
		if best, ok := bestVersion(th.Versions, selectedID); ok {
			it.Dimensions = append(it.Dimensions, record(best, game.KindGuessed))
		}
	}
	return it
}

func enrich(it *game.Item, th Thing) {
	if it.Name == "" {
		it.Name = primaryName(th.Names)
	}
	it.IsExpansion = it.IsExpansion || th.Type == thingExpansion
	for _, l := range th.Links {
		switch l.Type {
		case linkCategory:
			it.Categories = append(it.Categories, l.Value)
		case linkFamily:
			it.Families = append(it.Families, l.Value)
		case linkMechanic:
			it.Mechanics = append(it.Mechanics, l.Value)
		case linkExpansion:
			if it.IsExpansion && l.Inbound {
				it.ExpansionOf = append(it.ExpansionOf, l.ID)
			}
		}
	}

	it.Weight = th.Ratings.AverageWeight.Float()
	it.MinAge = th.MinAge.Int()
	it.LanguageDependence = languageDependence(th.Polls)
	fill(&it.GameYear, th.YearPublished.Int())
	fill(&it.MinPlayers, th.MinPlayers.Int())
	fill(&it.MaxPlayers, th.MaxPlayers.Int())
	fill(&it.MinPlaytime, th.MinPlaytime.Int())
	fill(&it.MaxPlaytime, th.MaxPlaytime.Int())
	if it.Rank == nil {
		it.Rank = th.Ratings.BoardGameRank()
	}
	if it.Rating == 0 {
		it.Rating = th.Ratings.Average.Float()
	}
	if it.BayesRating == 0 {
		it.BayesRating = th.Ratings.BayesAverage.Float()
	}
}

func fill(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

func record(v Version, kind game.DimensionKind) game.DimensionRecord {
	rec := game.DimensionRecord{
		Kind:   kind,
		Length: v.Length.Float(),
		Width:  v.Width.Float(),
		Depth:  v.Depth.Float(),
	}
	if w := v.Weight.Float(); w > 0 {
		rec.Weight = &w
	}
	return rec
}

// bestVersion picks the version a guessed size is taken from. skipID is the
// user's own version, already known to be unusable.
func bestVersion(versions []Version, skipID int) (Version, bool) {
	var (
		best    Version
		found   bool
		bestEng bool
	)
	for _, v := range versions {
		if v.ID == skipID || !record(v, game.KindGuessed).Complete() {
			continue
		}
		eng := isEnglish(v)
		switch {
		case !found:
		case eng && !bestEng:
		case eng == bestEng && v.YearPublished.Int() > best.YearPublished.Int():
		default:
			continue
		}
		best, found, bestEng = v, true, eng
	}
	return best, found
}

func isEnglish(v Version) bool {
	for _, l := range v.Links {
		if l.Type == linkLanguage && l.Value == "English" {
			return true
		}
	}
	return false
}

// languageDependence returns the poll level (1-5) with the most votes, or 0
// when nobody voted.
func languageDependence(polls []Poll) int {
	for _, p := range polls {
		if p.Name != pollLanguageDeps {
			continue
		}
		level, votes := 0, 0
		for _, r := range p.Results {
			if r.NumVotes > votes {
				level, votes = r.Level, r.NumVotes
			}
		}
		return level
	}
	return 0
}
