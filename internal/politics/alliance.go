package politics

// AllianceType distinguishes full coalitions from looser pacts.
type AllianceType string

const (
	// AllianceFull is a unified seat strategy: members divide constituencies
	// between themselves and never contest against each other.
	AllianceFull AllianceType = "Alliance"
	// AlliancePact is a non-aggression seat-sharing arrangement only.
	AlliancePact AllianceType = "Pact"
)

// Alliance is a bloc of parties. It needs at least two members to exist.
// The engine enforces that a party belongs to at most one AllianceFull
// bloc at a time.
type Alliance struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	MemberPartyIDs []string     `json:"member_party_ids"`
	Type           AllianceType `json:"type"`
	LeaderPartyID  string       `json:"leader_party_id"`
}

// HasMember reports whether the party is in the bloc.
func (a *Alliance) HasMember(partyID string) bool {
	for _, id := range a.MemberPartyIDs {
		if id == partyID {
			return true
		}
	}
	return false
}

// RemoveMember strips a party from the bloc, if present.
func (a *Alliance) RemoveMember(partyID string) {
	out := a.MemberPartyIDs[:0]
	for _, id := range a.MemberPartyIDs {
		if id != partyID {
			out = append(out, id)
		}
	}
	a.MemberPartyIDs = out
}
