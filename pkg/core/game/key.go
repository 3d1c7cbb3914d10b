package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies one version of one game within a packing run.
type Key struct {
	GameID    int
	VersionID int
}

// String returns the "gameId:versionId" form used in JSON payloads.
func (k Key) String() string {
	return strconv.Itoa(k.GameID) + ":" + strconv.Itoa(k.VersionID)
}

// MarshalText implements encoding.TextMarshaler so keys can be used as JSON
// object keys.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKey parses a "gameId:versionId" string. The game id must be positive
// and the version id non-negative (0 means no version selected).
func ParseKey(s string) (Key, error) {
	gameStr, versionStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Key{}, fmt.Errorf("invalid key %q: want gameId:versionId", s)
	}
	gameID, err := strconv.Atoi(gameStr)
	if err != nil || gameID <= 0 {
		return Key{}, fmt.Errorf("invalid key %q: bad game id", s)
	}
	versionID, err := strconv.Atoi(versionStr)
	if err != nil || versionID < 0 {
		return Key{}, fmt.Errorf("invalid key %q: bad version id", s)
	}
	return Key{GameID: gameID, VersionID: versionID}, nil
}
