package symbols

// distance scores how good a conversion from 'from' to 'to' is: 0 for an
// exact type-and-referenceness match, 1 for an implicit reference
// dereference, and "not applicable" for anything else. Lower is better.
// With no numeric promotion and no subtyping, these two distances are
// the whole scale.
func distance(from, to TypeSymbol) (int, bool) {
	if from == nil || to == nil {
		return 0, false
	}
	if from.Underlying() == Unknown || to.Underlying() == Unknown {
		return 0, true
	}
	if from.Underlying() == to.Underlying() && from.IsReference() == to.IsReference() {
		return 0, true
	}
	if ConvertibleTo(from, to) {
		return 1, true
	}
	return 0, false
}

// Match is one candidate's result from ResolveOverload: the candidate
// itself and its total argument-conversion distance.
type Match struct {
	Candidate Signature
	Distance  int
}

// ResolveOverload picks the best-matching candidate for a call whose
// arguments have the given types. A candidate is applicable only if its
// parameter count matches and every argument converts to its
// corresponding parameter type; among applicable candidates the one with
// the lowest total distance wins. If more than one candidate ties for the
// lowest distance, the call is ambiguous and both (all) tied candidates
// are returned for the diagnostic to list.
func ResolveOverload(candidates []Signature, args []TypeSymbol) (best *Match, tied []Signature) {
	var matches []Match
	for _, c := range candidates {
		params := c.Params()
		if len(params) != len(args) {
			continue
		}
		total := 0
		applicable := true
		for i, param := range params {
			d, ok := distance(args[i], param.Type)
			if !ok {
				applicable = false
				break
			}
			total += d
		}
		if applicable {
			matches = append(matches, Match{Candidate: c, Distance: total})
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	minDist := matches[0].Distance
	for _, m := range matches[1:] {
		if m.Distance < minDist {
			minDist = m.Distance
		}
	}

	var winners []Signature
	for _, m := range matches {
		if m.Distance == minDist {
			winners = append(winners, m.Candidate)
		}
	}
	if len(winners) > 1 {
		return nil, winners
	}
	return &Match{Candidate: winners[0], Distance: minDist}, nil
}
