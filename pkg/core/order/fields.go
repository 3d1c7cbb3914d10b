package order

import (
	"slices"

	"github.com/matzehuels/kallax/pkg/core/game"
)

// Field names an item attribute rules can sort on.
type Field string

const (
	FieldName               Field = "name"
	FieldVersionName        Field = "versionName"
	FieldCategory           Field = "category"
	FieldFamily             Field = "family"
	FieldMechanic           Field = "mechanic"
	FieldRank               Field = "rank"
	FieldRating             Field = "rating"
	FieldBayesRating        Field = "bayesRating"
	FieldWeight             Field = "weight"
	FieldMinPlayers         Field = "minPlayers"
	FieldMaxPlayers         Field = "maxPlayers"
	FieldMinPlaytime        Field = "minPlaytime"
	FieldMaxPlaytime        Field = "maxPlaytime"
	FieldMinAge             Field = "minAge"
	FieldNumPlays           Field = "numPlays"
	FieldGameYear           Field = "gameYear"
	FieldVersionYear        Field = "versionYear"
	FieldLanguageDependence Field = "languageDependence"
)

type field struct {
	compare func(a, b *game.Item, desc bool) int
}

// List fields (category, family, mechanic) sort on their first entry.
func textField(get func(*game.Item) string) field {
	return field{compare: func(a, b *game.Item, desc bool) int {
		return compareText(get(a), get(b), desc)
	}}
}

func intField(get func(*game.Item) int) field {
	return field{compare: func(a, b *game.Item, desc bool) int {
		return compareNumber(get(a), get(b), desc)
	}}
}

func floatField(get func(*game.Item) float64) field {
	return field{compare: func(a, b *game.Item, desc bool) int {
		return compareNumber(get(a), get(b), desc)
	}}
}

var fields = map[Field]field{
	FieldName:        textField(func(it *game.Item) string { return it.Name }),
	FieldVersionName: textField(func(it *game.Item) string { return it.VersionName }),
	FieldCategory:    textField(func(it *game.Item) string { return first(it.Categories) }),
	FieldFamily:      textField(func(it *game.Item) string { return first(it.Families) }),
	FieldMechanic:    textField(func(it *game.Item) string { return first(it.Mechanics) }),
	FieldRank: {compare: func(a, b *game.Item, desc bool) int {
		return compareRank(a.Rank, b.Rank, desc)
	}},
	FieldRating:             floatField(func(it *game.Item) float64 { return it.Rating }),
	FieldBayesRating:        floatField(func(it *game.Item) float64 { return it.BayesRating }),
	FieldWeight:             floatField(func(it *game.Item) float64 { return it.Weight }),
	FieldMinPlayers:         intField(func(it *game.Item) int { return it.MinPlayers }),
	FieldMaxPlayers:         intField(func(it *game.Item) int { return it.MaxPlayers }),
	FieldMinPlaytime:        intField(func(it *game.Item) int { return it.MinPlaytime }),
	FieldMaxPlaytime:        intField(func(it *game.Item) int { return it.MaxPlaytime }),
	FieldMinAge:             intField(func(it *game.Item) int { return it.MinAge }),
	FieldNumPlays:           intField(func(it *game.Item) int { return it.NumPlays }),
	FieldGameYear:           intField(func(it *game.Item) int { return it.GameYear }),
	FieldVersionYear:        intField(func(it *game.Item) int { return it.VersionYear }),
	FieldLanguageDependence: intField(func(it *game.Item) int { return it.LanguageDependence }),
}

// Fields returns every sortable field name, sorted.
func Fields() []Field {
	out := make([]Field, 0, len(fields))
	for f := range fields {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
