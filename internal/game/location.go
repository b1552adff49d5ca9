package game

import "fmt"

// Location is a place the player can occupy.
type Location string

const (
	LocationCrossroads    Location = "CROSSROADS"
	LocationEasternJungle Location = "EASTERN_JUNGLE"
	LocationWesternCaves  Location = "WESTERN_CAVES"
)

// StartLocation is where every new game begins.
const StartLocation = LocationCrossroads

// Direction names a move the player can request.
type Direction string

const (
	DirectionEast Direction = "east"
	DirectionWest Direction = "west"
)

// destinations maps each legal direction to its target. Targets do not depend
// on the current location.
var destinations = map[Direction]Location{
	DirectionEast: LocationEasternJungle,
	DirectionWest: LocationWesternCaves,
}

func (l Location) String() string {
	return string(l)
}

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool {
	switch l {
	case LocationCrossroads, LocationEasternJungle, LocationWesternCaves:
		return true
	default:
		return false
	}
}

// Destination resolves a raw direction to its target location.
func Destination(direction string) (Location, error) {
	loc, ok := destinations[Direction(direction)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
	return loc, nil
}
