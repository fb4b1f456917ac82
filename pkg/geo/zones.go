package geo

// Zone identifies one of the six Nigerian geo-political zones used to
// tier delivery pricing.
type Zone string

const (
	ZoneNorthCentral Zone = "NC"
	ZoneNorthEast    Zone = "NE"
	ZoneNorthWest    Zone = "NW"
	ZoneSouthEast    Zone = "SE"
	ZoneSouthSouth   Zone = "SS"
	ZoneSouthWest    Zone = "SW"
)

// statesByZone is the authoritative assignment of states to zones. The
// sets are static and pairwise disjoint; every serviceable state appears
// exactly once.
var statesByZone = map[Zone][]string{
	ZoneNorthCentral: {"Benue", "FCT", "Kogi", "Kwara", "Nasarawa", "Niger", "Plateau"},
	ZoneNorthEast:    {"Adamawa", "Bauchi", "Borno", "Gombe", "Taraba", "Yobe"},
	ZoneNorthWest:    {"Jigawa", "Kaduna", "Kano", "Katsina", "Kebbi", "Sokoto", "Zamfara"},
	ZoneSouthEast:    {"Abia", "Anambra", "Ebonyi", "Enugu", "Imo"},
	ZoneSouthSouth:   {"Akwa Ibom", "Bayelsa", "Cross River", "Delta", "Edo", "Rivers"},
	ZoneSouthWest:    {"Ekiti", "Lagos", "Ogun", "Ondo", "Osun", "Oyo"},
}

var zoneByState = buildReverseMap()

func buildReverseMap() map[string]Zone {
	reverse := make(map[string]Zone)
	for zone, states := range statesByZone {
		for _, state := range states {
			reverse[state] = zone
		}
	}
	return reverse
}

// ZoneOf maps a state name to its zone. The lookup is exact; unknown
// names report ok=false and callers must treat the route as unserviceable.
func ZoneOf(state string) (Zone, bool) {
	zone, ok := zoneByState[state]
	return zone, ok
}

// Zones returns the six zones in a stable order.
func Zones() []Zone {
	return []Zone{
		ZoneNorthCentral,
		ZoneNorthEast,
		ZoneNorthWest,
		ZoneSouthEast,
		ZoneSouthSouth,
		ZoneSouthWest,
	}
}

// StatesIn returns the states assigned to the given zone.
func StatesIn(zone Zone) []string {
	states := statesByZone[zone]
	out := make([]string, len(states))
	copy(out, states)
	return out
}

// String implements fmt.Stringer.
func (z Zone) String() string {
	return string(z)
}

// IsValid reports whether the value is a known Zone.
func (z Zone) IsValid() bool {
	_, ok := statesByZone[z]
	return ok
}
