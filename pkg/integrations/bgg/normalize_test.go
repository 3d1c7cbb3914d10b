package bgg

import (
	"encoding/xml"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kallax/pkg/core/game"
)

func decodeFixtures(t *testing.T) ([]CollectionItem, map[int]Thing) {
	t.Helper()
	var coll Collection
	require.NoError(t, xml.Unmarshal([]byte(collectionXML), &coll))
	require.False(t, coll.IsError())
	require.Equal(t, 3, coll.Total)

	var things Things
	require.NoError(t, xml.Unmarshal([]byte(thingsXML), &things))
	byID := make(map[int]Thing)
	for _, th := range things.Items {
		byID[th.ID] = th
	}
	return coll.Items, byID
}

func TestNormalizeSelectedVersion(t *testing.T) {
	coll, things := decodeFixtures(t)
	it := Normalize(coll, things)[0]

	assert.Equal(t, game.Key{GameID: 13, VersionID: 346745}, it.Key())
	assert.Equal(t, "Fifth Edition", it.VersionName)
	assert.Equal(t, 2015, it.VersionYear)
	assert.Equal(t, []string{"own", "wanttoplay"}, it.Statuses)
	assert.Equal(t, []string{"Negotiation"}, it.Categories)
	assert.Equal(t, []string{"Series: Catan"}, it.Families)
	assert.Equal(t, []string{"Dice Rolling"}, it.Mechanics)
	assert.False(t, it.IsExpansion)
	assert.Empty(t, it.ExpansionOf, "outbound expansion links are not parents")

	require.NotNil(t, it.Rank)
	assert.Equal(t, 512, *it.Rank)
	assert.Equal(t, 7.1, it.Rating)
	assert.Equal(t, 6.9, it.BayesRating)
	assert.Equal(t, 2.3, it.Weight)
	assert.Equal(t, 10, it.MinAge)
	assert.Equal(t, 12, it.NumPlays)
	assert.Equal(t, 1, it.LanguageDependence)

	require.Len(t, it.Dimensions, 1)
	rec := it.Dimensions[0]
	assert.Equal(t, game.KindVersion, rec.Kind)
	assert.Equal(t, 11.6, rec.Length)
	assert.Equal(t, 2.9, rec.Depth)
	require.NotNil(t, rec.Weight)
	assert.Equal(t, 2.6, *rec.Weight)
}

func TestNormalizeMissingVersionDims(t *testing.T) {
	coll, things := decodeFixtures(t)
	it := Normalize(coll, things)[1]

	assert.True(t, it.IsExpansion)
	assert.Equal(t, []int{13}, it.ExpansionOf)
	assert.Nil(t, it.Rank, "Not Ranked maps to nil")
	assert.Equal(t, 9001, it.VersionID)

	require.Len(t, it.Dimensions, 2)
	assert.Equal(t, game.KindVersion, it.Dimensions[0].Kind)
	assert.True(t, it.Dimensions[0].Missing)

	guessed := it.Dimensions[1]
	assert.Equal(t, game.KindGuessed, guessed.Kind)
	assert.Equal(t, 11.7, guessed.Width, "English edition beats the newer German one")
	assert.Equal(t, 2.8, guessed.Depth)
}

func TestNormalizeNoVersion(t *testing.T) {
	coll, things := decodeFixtures(t)
	it := Normalize(coll, things)[2]

	assert.Equal(t, 0, it.VersionID)
	assert.Equal(t, []string{"wishlist"}, it.Statuses)
	require.Len(t, it.Dimensions, 1)
	assert.Equal(t, game.KindGuessed, it.Dimensions[0].Kind)
	assert.Equal(t, 11.0, it.Dimensions[0].Length, "most recent version wins")
	assert.Equal(t, 1.9, it.Weight)
	assert.Equal(t, 7, it.MinAge)
}

func TestNormalizeWithoutThing(t *testing.T) {
	coll, _ := decodeFixtures(t)
	items := Normalize(coll, nil)

	require.Len(t, items, 3)
	assert.Equal(t, "Carcassonne", items[2].Name)
	assert.Empty(t, items[2].Dimensions)
	assert.Equal(t, 2, items[2].MinPlayers)
}

func TestBestVersion(t *testing.T) {
	v := func(id, year int, size string, lang string) Version {
		out := Version{
			ID:            id,
			YearPublished: Value{strconv.Itoa(year)},
			Width:         Value{size},
			Length:        Value{size},
			Depth:         Value{"3"},
		}
		if lang != "" {
			out.Links = []Link{{Type: "language", Value: lang}}
		}
		return out
	}

	tests := []struct {
		name     string
		versions []Version
		skip     int
		wantID   int
		wantOK   bool
	}{
		{"none", nil, 0, 0, false},
		{"incomplete only", []Version{v(1, 2000, "0", "")}, 0, 0, false},
		{"newest", []Version{v(1, 2000, "11", ""), v(2, 2010, "11", ""), v(3, 2005, "11", "")}, 0, 2, true},
		{"english first", []Version{v(1, 2020, "11", "German"), v(2, 2001, "11", "English")}, 0, 2, true},
		{"first on tie", []Version{v(1, 2000, "11", ""), v(2, 2000, "12", "")}, 0, 1, true},
		{"skips selected", []Version{v(1, 2020, "11", ""), v(2, 2000, "11", "")}, 1, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bestVersion(tt.versions, tt.skip)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestLanguageDependence(t *testing.T) {
	assert.Equal(t, 0, languageDependence(nil))
	assert.Equal(t, 0, languageDependence([]Poll{{Name: "language_dependence"}}))
	assert.Equal(t, 4, languageDependence([]Poll{
		{Name: "suggested_numplayers", Results: []PollResult{{Level: 1, NumVotes: 99}}},
		{Name: "language_dependence", Results: []PollResult{{Level: 3, NumVotes: 2}, {Level: 4, NumVotes: 5}}},
	}))
}

func TestUnknownUserDocument(t *testing.T) {
	var coll Collection
	require.NoError(t, xml.Unmarshal([]byte(unknownUserXML), &coll))
	assert.True(t, coll.IsError())
	assert.Equal(t, []string{"Invalid username specified"}, coll.Messages)
}
