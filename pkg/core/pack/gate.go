package pack

// GateState is the outcome of the version check.
type GateState int

const (
	GateChecking GateState = iota
	GateResolved
	GateHalted
)

func (s GateState) String() string {
	switch s {
	case GateChecking:
		return "checking"
	case GateResolved:
		return "resolved"
	case GateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// MissingVersion describes an item the user has not picked a BGG version
// for, with the page where they can do so.
type MissingVersion struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	VersionsURL string `json:"versionsUrl"`
}

// checkVersions halts when any item was sized from a guessed record because
// no version was selected, unless bypass is set. With bypass set it always
// resolves, so re-running a halted request with the flag is safe.
func checkVersions(entries []*entry, bypass bool) (GateState, []MissingVersion) {
	if bypass {
		return GateResolved, nil
	}
	var missing []MissingVersion
	for _, e := range entries {
		if !e.resolved.Flags.MissingVersion {
			continue
		}
		missing = append(missing, MissingVersion{
			ID:          e.item.Key().String(),
			DisplayName: e.item.DisplayName(),
			VersionsURL: e.item.VersionsURL(),
		})
	}
	if len(missing) > 0 {
		return GateHalted, missing
	}
	return GateResolved, nil
}
