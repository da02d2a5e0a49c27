package ga

// DefaultPosMap returns the lineup slot structure (as a PositionMap plus
// its FLEX-eligible positions) for a known sport/platform pair, so a caller
// can build a pool without hand-listing posmap slots. Grounded on
// slots.go's GetPositionSlots/getXxxSlots table, collapsed from
// SlotName/AllowedPositions/Priority/IsRequired records into the posmap
// entries this engine's operators actually key on.
//
// Every multi-eligible (union) slot — NFL's FLEX, NBA's G/F/UTIL, MLB's
// C/1B and UTIL, NHL's UTIL — is represented as "FLEX" in the returned
// PositionMap, with flexPositions set to the union of real positions any
// of that sport's union slots accept. BuildPositionPool, Populate,
// Validate, and Mutate already support multiple "FLEX" columns per lineup
// (each filled independently, without replacement, per row), so this
// reuses that machinery instead of inventing a second union-slot concept.
// It is looser than the true per-slot rule (e.g. a true "G" slot should
// reject PF/C), but no operator in this engine enforces finer-grained
// multi-position eligibility than FLEX already does, so further precision
// here wouldn't be exercised. Slots with a single real eligible position
// (NHL's literal "G" goalie slot, "PG"/"SG"/etc.) are left as themselves.
func DefaultPosMap(sport, platform string) (PositionMap, []Position, bool) {
	switch sport {
	case "nfl":
		return nflPosMap(platform)
	case "nba":
		return nbaPosMap(platform)
	case "mlb":
		return mlbPosMap(platform)
	case "nhl":
		return nhlPosMap(platform)
	case "golf":
		return golfPosMap(), nil, true
	default:
		return nil, nil, false
	}
}

func nflPosMap(platform string) (PositionMap, []Position, bool) {
	dst := Position("DST")
	if platform == "fanduel" {
		dst = Position("D/ST")
	}
	return PositionMap{"QB", "RB", "RB", "WR", "WR", "WR", "TE", "FLEX", dst},
		[]Position{"RB", "WR", "TE"}, true
}

func nbaPosMap(platform string) (PositionMap, []Position, bool) {
	if platform == "fanduel" {
		return PositionMap{"PG", "PG", "SG", "SG", "SF", "SF", "PF", "PF", "C"}, nil, true
	}
	// G, F, and UTIL are all union slots (G: PG/SG, F: SF/PF, UTIL: any);
	// collapsed to shared FLEX columns, see DefaultPosMap's doc comment.
	return PositionMap{"PG", "SG", "SF", "PF", "C", "FLEX", "FLEX", "FLEX"},
		[]Position{"PG", "SG", "SF", "PF", "C"}, true
}

func mlbPosMap(platform string) (PositionMap, []Position, bool) {
	if platform == "fanduel" {
		// C/1B and UTIL are both union slots; collapsed to shared FLEX columns.
		return PositionMap{"P", "FLEX", "2B", "3B", "SS", "OF", "OF", "OF", "FLEX"},
			[]Position{"C", "1B", "2B", "3B", "SS", "OF"}, true
	}
	return PositionMap{"P", "P", "C", "1B", "2B", "3B", "SS", "OF", "OF", "OF"}, nil, true
}

func nhlPosMap(platform string) (PositionMap, []Position, bool) {
	if platform == "fanduel" {
		return PositionMap{"C", "C", "W", "W", "W", "W", "D", "D", "G"}, nil, true
	}
	// UTIL is a union slot; G is the literal goalie position, left as-is.
	return PositionMap{"C", "C", "W", "W", "W", "D", "D", "G", "FLEX"},
		[]Position{"C", "W", "D"}, true
}

func golfPosMap() PositionMap {
	slots := make(PositionMap, 6)
	for i := range slots {
		slots[i] = "G"
	}
	return slots
}
