package routes

import "fmt"

// bucketState is the fold accumulator for Bucketize.
type bucketState struct {
	phase      Phase
	collection *Collection
}

// step consumes one rule: markers switch the phase, other rules are appended
// to the current bucket.
func (s bucketState) step(index int, r Rule) (bucketState, error) {
	if r.IsPhaseMarker() {
		p, err := ParsePhase(r.Handle)
		if err != nil {
			return s, fmt.Errorf("route %d: %w", index, err)
		}
		s.phase = p
		return s, nil
	}
	s.collection.add(s.phase, r)
	return s, nil
}

// Bucketize splits an ordered route list into phase buckets.
// Rules before the first marker land in PhaseNone. An empty list yields seven
// empty buckets.
func Bucketize(rules []Rule) (*Collection, error) {
	state := bucketState{phase: PhaseNone, collection: NewCollection()}
	for i, r := range rules {
		var err error
		state, err = state.step(i, r)
		if err != nil {
			return nil, err
		}
	}
	return state.collection, nil
}
