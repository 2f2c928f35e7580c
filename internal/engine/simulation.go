// Package engine runs the political simulation: influence, party and
// affiliation lifecycle, alliances, elections, government, population
// dynamics, and scripted events, all advancing one calendar day per tick.
package engine

import (
	"log/slog"
	"sort"
	"time"

	"github.com/azmanhj/dewansim/internal/geo"
	"github.com/azmanhj/dewansim/internal/politics"
	"github.com/azmanhj/dewansim/internal/rng"
)

// ElectoralSystem selects how general elections convert votes to seats.
type ElectoralSystem string

const (
	SystemFPTP ElectoralSystem = "FPTP"
	SystemPR   ElectoralSystem = "PR"
)

// Stronghold records consecutive wins of one affiliation in one seat.
type Stronghold struct {
	AffiliationID string `json:"affiliation_id"`
	Terms         int    `json:"terms"`
}

// Event is a notable occurrence, advisory only — it carries no engine
// semantics beyond the audit trail.
type Event struct {
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // "election", "party", "alliance", "death", "event", "bill"
}

// SimStats tracks aggregate simulation statistics, recomputed daily.
type SimStats struct {
	LivingCharacters int     `json:"living_characters"`
	Parties          int     `json:"parties"`
	Alliances        int     `json:"alliances"`
	GovernmentSeats  int     `json:"government_seats"`
	LastTurnout      float64 `json:"last_turnout"`
	Deaths           int     `json:"deaths"`
}

// Simulation holds the complete political world state and wires the
// subsystems together. All entities live here, keyed by ID; nothing else
// owns them.
type Simulation struct {
	Country *geo.Country

	Characters     []*politics.Character
	CharacterIndex map[string]*politics.Character
	Affiliations   map[string]*politics.Affiliation
	Parties        []*politics.Party
	PartyIndex     map[string]*politics.Party
	Alliances      []*politics.Alliance

	// ElectionResults maps seat code to the party currently holding it.
	// Kept consistent with MP identity through secessions and mergers.
	ElectionResults map[string]string
	Strongholds     map[string]Stronghold
	History         []ElectionRecord

	Government *Government
	SpeakerID  string

	System ElectoralSystem

	// Regime tracking for the big-tent trigger.
	RegimePartyID    string
	RegimeSince      time.Time
	BigTentTriggered bool

	Date              time.Time
	NextElection      time.Time
	NextPartyElection time.Time

	Events []Event

	// EventSink, when set, receives every emitted event (the live feed).
	EventSink func(Event)

	PlayerCharacterID string

	// BillCatalog is the pool of bills the AI may table.
	BillCatalog []Bill

	Stats SimStats

	Rand    *rng.Rand
	Spawner *politics.Spawner
}

// NewSimulation creates an empty simulation over the given country.
func NewSimulation(country *geo.Country, rn *rng.Rand, start time.Time) *Simulation {
	return &Simulation{
		Country:         country,
		CharacterIndex:  make(map[string]*politics.Character),
		Affiliations:    make(map[string]*politics.Affiliation),
		PartyIndex:      make(map[string]*politics.Party),
		ElectionResults: make(map[string]string),
		Strongholds:     make(map[string]Stronghold),
		System:          SystemFPTP,
		BillCatalog:     DefaultBillCatalog(),
		Date:            start,
		Rand:            rn,
		Spawner:         politics.NewSpawner(rn),
	}
}

// EmitEvent records an event in the audit log and forwards it to the sink.
func (s *Simulation) EmitEvent(e Event) {
	if e.Date.IsZero() {
		e.Date = s.Date
	}
	s.Events = append(s.Events, e)
	// Ring buffer: keep the last 2000.
	if len(s.Events) > 2000 {
		s.Events = s.Events[len(s.Events)-2000:]
	}
	if s.EventSink != nil {
		s.EventSink(e)
	}
}

// AddCharacter registers a character in the roster and index.
func (s *Simulation) AddCharacter(c *politics.Character) {
	s.Characters = append(s.Characters, c)
	s.CharacterIndex[c.ID] = c
}

// AddParty registers a party.
func (s *Simulation) AddParty(p *politics.Party) {
	s.Parties = append(s.Parties, p)
	s.PartyIndex[p.ID] = p
}

// RemoveParty dissolves a party, dropping it from the roster, every
// relation map, and every alliance. Alliances left with fewer than two
// members dissolve with it.
func (s *Simulation) RemoveParty(partyID string) {
	out := s.Parties[:0]
	for _, p := range s.Parties {
		if p.ID != partyID {
			out = append(out, p)
			delete(p.Relations, partyID)
		}
	}
	s.Parties = out
	delete(s.PartyIndex, partyID)

	alive := s.Alliances[:0]
	for _, a := range s.Alliances {
		a.RemoveMember(partyID)
		if len(a.MemberPartyIDs) >= 2 {
			if a.LeaderPartyID == partyID {
				a.LeaderPartyID = a.MemberPartyIDs[0]
			}
			alive = append(alive, a)
		} else {
			slog.Info("alliance dissolved", "alliance", a.Name)
		}
	}
	s.Alliances = alive
}

// AffiliationParty returns the derived affiliation-to-party index,
// recomputed on demand rather than kept as back-pointers.
func (s *Simulation) AffiliationParty() map[string]*politics.Party {
	idx := make(map[string]*politics.Party, len(s.Affiliations))
	for _, p := range s.Parties {
		for _, affID := range p.AffiliationIDs {
			idx[affID] = p
		}
	}
	return idx
}

// PartyOfCharacter resolves a character's party through their affiliation.
func (s *Simulation) PartyOfCharacter(c *politics.Character) *politics.Party {
	return s.AffiliationParty()[c.AffiliationID]
}

// AllianceOf returns the Alliance-type bloc a party belongs to, or nil.
// The engine enforces at most one such bloc per party at the mutation
// boundary, so the first match is the only match.
func (s *Simulation) AllianceOf(partyID string) *politics.Alliance {
	for _, a := range s.Alliances {
		if a.Type == politics.AllianceFull && a.HasMember(partyID) {
			return a
		}
	}
	return nil
}

// AnyAllianceOf returns whichever bloc (Alliance or Pact) contains the
// party, preferring full alliances.
func (s *Simulation) AnyAllianceOf(partyID string) *politics.Alliance {
	if a := s.AllianceOf(partyID); a != nil {
		return a
	}
	for _, a := range s.Alliances {
		if a.HasMember(partyID) {
			return a
		}
	}
	return nil
}

// SeatCount returns the number of seats a party currently holds.
func (s *Simulation) SeatCount(partyID string) int {
	n := 0
	for _, winner := range s.ElectionResults {
		if winner == partyID {
			n++
		}
	}
	return n
}

// LivingMembers returns the living characters of a party, through its
// member affiliations.
func (s *Simulation) LivingMembers(p *politics.Party) []*politics.Character {
	member := make(map[string]bool, len(p.AffiliationIDs))
	for _, id := range p.AffiliationIDs {
		member[id] = true
	}
	var out []*politics.Character
	for _, c := range s.Characters {
		if c.IsAlive && member[c.AffiliationID] {
			out = append(out, c)
		}
	}
	return out
}

// AffiliationMembers returns the living characters of one affiliation.
func (s *Simulation) AffiliationMembers(affID string) []*politics.Character {
	var out []*politics.Character
	for _, c := range s.Characters {
		if c.IsAlive && c.AffiliationID == affID {
			out = append(out, c)
		}
	}
	return out
}

// AffiliationLeader returns the most influential living member of an
// affiliation, or nil when it has no members. Ties break on lowest ID.
func (s *Simulation) AffiliationLeader(affID string) *politics.Character {
	var best *politics.Character
	for _, c := range s.AffiliationMembers(affID) {
		if best == nil || c.Influence > best.Influence ||
			(c.Influence == best.Influence && c.ID < best.ID) {
			best = c
		}
	}
	return best
}

// RefreshAffiliationLeaders recomputes the derived IsAffiliationLeader flag.
func (s *Simulation) RefreshAffiliationLeaders() {
	leaders := make(map[string]string, len(s.Affiliations))
	for affID := range s.Affiliations {
		if lead := s.AffiliationLeader(affID); lead != nil {
			leaders[affID] = lead.ID
		}
	}
	for _, c := range s.Characters {
		c.IsAffiliationLeader = c.IsAlive && leaders[c.AffiliationID] == c.ID
	}
}

// SortedParties returns the parties ordered by seat count descending,
// ID ascending on ties.
func (s *Simulation) SortedParties() []*politics.Party {
	out := make([]*politics.Party, len(s.Parties))
	copy(out, s.Parties)
	sort.Slice(out, func(i, j int) bool {
		si, sj := s.SeatCount(out[i].ID), s.SeatCount(out[j].ID)
		if si != sj {
			return si > sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// UpdateStats recomputes the daily aggregate statistics.
func (s *Simulation) UpdateStats() {
	alive, deaths := 0, 0
	for _, c := range s.Characters {
		if c.IsAlive {
			alive++
		} else {
			deaths++
		}
	}
	govSeats := 0
	if s.Government != nil {
		for _, pid := range s.Government.RulingCoalitionIDs {
			govSeats += s.SeatCount(pid)
		}
	}
	s.Stats.LivingCharacters = alive
	s.Stats.Deaths = deaths
	s.Stats.Parties = len(s.Parties)
	s.Stats.Alliances = len(s.Alliances)
	s.Stats.GovernmentSeats = govSeats
}

// CleanupPoliticalVacancies nulls out party leadership slots held by dead
// or departed characters. Runs after every mortality event and every
// party-structure change; stale IDs never survive a tick.
func (s *Simulation) CleanupPoliticalVacancies() {
	affParty := s.AffiliationParty()
	valid := func(p *politics.Party, id string) bool {
		if id == "" {
			return false
		}
		c, ok := s.CharacterIndex[id]
		return ok && c.IsAlive && affParty[c.AffiliationID] == p
	}
	for _, p := range s.Parties {
		if !valid(p, p.LeaderID) {
			p.LeaderID = ""
		}
		if !valid(p, p.DeputyLeaderID) {
			p.DeputyLeaderID = ""
		}
		for _, branch := range p.StateBranches {
			if !valid(p, branch.LeaderID) {
				branch.LeaderID = ""
			}
			execs := branch.ExecutiveIDs[:0]
			for _, id := range branch.ExecutiveIDs {
				if valid(p, id) {
					execs = append(execs, id)
				}
			}
			branch.ExecutiveIDs = execs
		}
		// A vacancy falls back to the most influential member rather than
		// staying empty while the party still has people.
		if p.LeaderID == "" {
			if lead := s.mostInfluentialMember(p); lead != nil {
				p.LeaderID = lead.ID
			}
		}
	}
	if s.SpeakerID != "" {
		if c, ok := s.CharacterIndex[s.SpeakerID]; !ok || !c.IsAlive {
			s.SpeakerID = ""
		}
	}
}

// CleanupGovernmentVacancies drops dead ministers and a dead chief
// minister from the cabinet.
func (s *Simulation) CleanupGovernmentVacancies() {
	if s.Government == nil {
		return
	}
	g := s.Government
	if g.ChiefMinisterID != "" {
		if c, ok := s.CharacterIndex[g.ChiefMinisterID]; !ok || !c.IsAlive {
			g.ChiefMinisterID = ""
		}
	}
	kept := g.Cabinet[:0]
	for _, m := range g.Cabinet {
		if c, ok := s.CharacterIndex[m.MinisterID]; ok && c.IsAlive {
			kept = append(kept, m)
		}
	}
	g.Cabinet = kept
}

func (s *Simulation) mostInfluentialMember(p *politics.Party) *politics.Character {
	var best *politics.Character
	for _, c := range s.LivingMembers(p) {
		if best == nil || c.Influence > best.Influence ||
			(c.Influence == best.Influence && c.ID < best.ID) {
			best = c
		}
	}
	return best
}

// partyNames returns every current party name, for name dedupe.
func (s *Simulation) partyNames() []string {
	names := make([]string, 0, len(s.Parties))
	for _, p := range s.Parties {
		names = append(names, p.Name)
	}
	return names
}

// allianceNames returns every current alliance name.
func (s *Simulation) allianceNames() []string {
	names := make([]string, 0, len(s.Alliances))
	for _, a := range s.Alliances {
		names = append(names, a.Name)
	}
	return names
}
