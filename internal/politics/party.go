package politics

import "time"

// SeatPlan is a party's electoral strategy for one constituency: which
// member affiliation contests it and who carries the flag.
type SeatPlan struct {
	AllocatedAffiliationID string `json:"allocated_affiliation_id"`
	CandidateID            string `json:"candidate_id,omitempty"`
}

// StateBranch is a party's organization in one state, re-elected
// periodically alongside the national leadership.
type StateBranch struct {
	LeaderID     string   `json:"leader_id,omitempty"`
	ExecutiveIDs []string `json:"executive_ids"`
}

// LeaderTerm is one entry in a party's append-only leadership log.
type LeaderTerm struct {
	LeaderID string    `json:"leader_id"`
	Name     string    `json:"name"`
	From     time.Time `json:"from"`
}

// Party is a political party: a coalition of affiliations under one banner.
// A party dissolves when its affiliation list becomes empty.
type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	// AffiliationIDs are the member affiliations. Each affiliation belongs
	// to at most one party at any instant.
	AffiliationIDs []string `json:"affiliation_ids"`

	LeaderID       string `json:"leader_id,omitempty"`
	DeputyLeaderID string `json:"deputy_leader_id,omitempty"`

	// StateBranches maps state name to the party's branch there.
	StateBranches map[string]*StateBranch `json:"state_branches"`

	// ContestedSeats maps seat code to the party's plan for it, rebuilt
	// every election cycle.
	ContestedSeats map[string]SeatPlan `json:"contested_seats"`

	LeaderHistory []LeaderTerm `json:"leader_history"`

	// EthnicityFocus constrains which affiliations and parties this party
	// may absorb, merge with, or accept secessions from. Empty means
	// multi-ethnic: accepts anyone.
	EthnicityFocus Ethnicity `json:"ethnicity_focus,omitempty"`

	// Relations maps other party IDs to a warmth score in [0,100].
	// Bilateral, not guaranteed symmetric.
	Relations map[string]float64 `json:"relations"`

	// Unity in [0,100] governs schism probability.
	Unity float64 `json:"unity"`

	// Ideology is derived: the average over member affiliations.
	Ideology Ideology `json:"ideology"`
}

// HasAffiliation reports whether the affiliation is a member.
func (p *Party) HasAffiliation(affID string) bool {
	for _, id := range p.AffiliationIDs {
		if id == affID {
			return true
		}
	}
	return false
}

// RemoveAffiliation strips the affiliation from the member list, if present.
func (p *Party) RemoveAffiliation(affID string) {
	out := p.AffiliationIDs[:0]
	for _, id := range p.AffiliationIDs {
		if id != affID {
			out = append(out, id)
		}
	}
	p.AffiliationIDs = out
}

// AcceptsEthnicity reports whether the party's focus allows taking in an
// affiliation of the given ethnicity. A single-ethnicity party only accepts
// its own group; a multi-ethnic party accepts anyone.
func (p *Party) AcceptsEthnicity(e Ethnicity) bool {
	return p.EthnicityFocus == "" || p.EthnicityFocus == e
}

// CompatibleWith reports whether two parties' ethnicity focuses permit a
// merger or absorption between them.
func (p *Party) CompatibleWith(other *Party) bool {
	if p.EthnicityFocus == "" || other.EthnicityFocus == "" {
		return true
	}
	return p.EthnicityFocus == other.EthnicityFocus
}

// RelationWith returns the warmth score toward another party, defaulting to
// a neutral 50 when the pair has never been scored.
func (p *Party) RelationWith(partyID string) float64 {
	if r, ok := p.Relations[partyID]; ok {
		return r
	}
	return 50
}
