package game

import (
	"fmt"
	"slices"
)

// Item is one physical version of a game to be placed on the shelf.
//
// Numeric attributes are only read by the sorter; zero means "unknown" for
// all of them except Rank, where nil (or 0) means "not ranked".
type Item struct {
	GameID      int    `json:"gameId"`
	VersionID   int    `json:"versionId"`
	Name        string `json:"name"`
	VersionName string `json:"versionName,omitempty"`

	Statuses   []string `json:"statuses,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Families   []string `json:"families,omitempty"`
	Mechanics  []string `json:"mechanics,omitempty"`

	IsExpansion bool  `json:"isExpansion,omitempty"`
	ExpansionOf []int `json:"expansionOf,omitempty"` // base game ids

	Rank               *int    `json:"rank,omitempty"`
	Rating             float64 `json:"rating,omitempty"`
	BayesRating        float64 `json:"bayesRating,omitempty"`
	Weight             float64 `json:"weight,omitempty"`
	MinPlayers         int     `json:"minPlayers,omitempty"`
	MaxPlayers         int     `json:"maxPlayers,omitempty"`
	MinPlaytime        int     `json:"minPlaytime,omitempty"`
	MaxPlaytime        int     `json:"maxPlaytime,omitempty"`
	MinAge             int     `json:"minAge,omitempty"`
	NumPlays           int     `json:"numPlays,omitempty"`
	GameYear           int     `json:"gameYear,omitempty"`
	VersionYear        int     `json:"versionYear,omitempty"`
	LanguageDependence int     `json:"languageDependence,omitempty"`

	Dimensions []DimensionRecord `json:"dimensions"`
}

// Key returns the item's identity.
func (it Item) Key() Key {
	return Key{GameID: it.GameID, VersionID: it.VersionID}
}

// DisplayName returns the game name, qualified with the version name when
// there is one.
func (it Item) DisplayName() string {
	if it.VersionName == "" {
		return it.Name
	}
	return fmt.Sprintf("%s (%s)", it.Name, it.VersionName)
}

// HasStatus reports whether the item carries the given collection status.
func (it Item) HasStatus(status string) bool {
	return slices.Contains(it.Statuses, status)
}

// VersionsURL returns the BGG page where the user can pick a version.
func (it Item) VersionsURL() string {
	return fmt.Sprintf("https://boardgamegeek.com/boardgame/%d/versions", it.GameID)
}
