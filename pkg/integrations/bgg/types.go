package bgg

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Collection is a decoded /xmlapi2/collection reply.
type Collection struct {
	XMLName  xml.Name
	Total    int              `xml:"totalitems,attr"`
	Items    []CollectionItem `xml:"item"`
	Messages []string         `xml:"error>message"`
}

// IsError reports whether BGG answered with an <errors> document.
func (c Collection) IsError() bool {
	return c.XMLName.Local == "errors" || len(c.Messages) > 0
}

// CollectionItem is one entry of a user's collection.
type CollectionItem struct {
	ObjectID      int             `xml:"objectid,attr"`
	Subtype       string          `xml:"subtype,attr"`
	CollID        int             `xml:"collid,attr"`
	Name          string          `xml:"name"`
	YearPublished int             `xml:"yearpublished"`
	Status        Status          `xml:"status"`
	NumPlays      int             `xml:"numplays"`
	Stats         CollectionStats `xml:"stats"`
	Version       *Version        `xml:"version>item"`
}

// Status holds the collection flags, each "0" or "1" on the wire.
type Status struct {
	Own        int `xml:"own,attr"`
	PrevOwned  int `xml:"prevowned,attr"`
	ForTrade   int `xml:"fortrade,attr"`
	Want       int `xml:"want,attr"`
	WantToPlay int `xml:"wanttoplay,attr"`
	WantToBuy  int `xml:"wanttobuy,attr"`
	Wishlist   int `xml:"wishlist,attr"`
	Preordered int `xml:"preordered,attr"`
}

// Names returns the set flags in a fixed order.
func (s Status) Names() []string {
	flags := []struct {
		name string
		set  int
	}{
		{"own", s.Own},
		{"prevowned", s.PrevOwned},
		{"fortrade", s.ForTrade},
		{"want", s.Want},
		{"wanttoplay", s.WantToPlay},
		{"wanttobuy", s.WantToBuy},
		{"wishlist", s.Wishlist},
		{"preordered", s.Preordered},
	}
	var out []string
	for _, f := range flags {
		if f.set == 1 {
			out = append(out, f.name)
		}
	}
	return out
}

// CollectionStats are the per-game figures the collection endpoint inlines.
type CollectionStats struct {
	MinPlayers  int    `xml:"minplayers,attr"`
	MaxPlayers  int    `xml:"maxplayers,attr"`
	MinPlaytime int    `xml:"minplaytime,attr"`
	MaxPlaytime int    `xml:"maxplaytime,attr"`
	Rating      Rating `xml:"rating"`
}

// Rating is the community rating block shared by both endpoints.
type Rating struct {
	Average       Value  `xml:"average"`
	BayesAverage  Value  `xml:"bayesaverage"`
	AverageWeight Value  `xml:"averageweight"`
	Ranks         []Rank `xml:"ranks>rank"`
}

// BoardGameRank returns the overall board game rank, or nil when the game
// is not ranked.
func (r Rating) BoardGameRank() *int {
	for _, rk := range r.Ranks {
		if rk.Name != "boardgame" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rk.Value))
		if err != nil || n <= 0 {
			return nil
		}
		return &n
	}
	return nil
}

// Rank is one ranking list entry. Value is "Not Ranked" for unranked games.
type Rank struct {
	Type  string `xml:"type,attr"`
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Value is BGG's <x value="..."/> idiom.
type Value struct {
	Value string `xml:"value,attr"`
}

// Float parses the value, returning 0 for blanks and "N/A".
func (v Value) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
	if err != nil {
		return 0
	}
	return f
}

// Int parses the value, returning 0 for blanks.
func (v Value) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return 0
	}
	return n
}

// Name is a primary or alternate title.
type Name struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// Link is a typed reference to another BGG entity.
type Link struct {
	Type    string `xml:"type,attr"`
	ID      int    `xml:"id,attr"`
	Value   string `xml:"value,attr"`
	Inbound bool   `xml:"inbound,attr"`
}

// Version is one published edition with its box size in inches.
type Version struct {
	ID            int    `xml:"id,attr"`
	Names         []Name `xml:"name"`
	YearPublished Value  `xml:"yearpublished"`
	Width         Value  `xml:"width"`
	Length        Value  `xml:"length"`
	Depth         Value  `xml:"depth"`
	Weight        Value  `xml:"weight"`
	Links         []Link `xml:"link"`
}

// Things is a decoded /xmlapi2/thing reply.
type Things struct {
	Items []Thing `xml:"item"`
}

// Thing is a game or expansion with its versions and statistics.
type Thing struct {
	Type          string    `xml:"type,attr"`
	ID            int       `xml:"id,attr"`
	Names         []Name    `xml:"name"`
	YearPublished Value     `xml:"yearpublished"`
	MinPlayers    Value     `xml:"minplayers"`
	MaxPlayers    Value     `xml:"maxplayers"`
	MinPlaytime   Value     `xml:"minplaytime"`
	MaxPlaytime   Value     `xml:"maxplaytime"`
	MinAge        Value     `xml:"minage"`
	Links         []Link    `xml:"link"`
	Polls         []Poll    `xml:"poll"`
	Versions      []Version `xml:"versions>item"`
	Ratings       Rating    `xml:"statistics>ratings"`
}

// Poll is a community poll. Only language_dependence is read.
type Poll struct {
	Name    string       `xml:"name,attr"`
	Results []PollResult `xml:"results>result"`
}

// PollResult is one answer with its vote count.
type PollResult struct {
	Level    int `xml:"level,attr"`
	NumVotes int `xml:"numvotes,attr"`
}

func primaryName(names []Name) string {
	for _, n := range names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}
