// Government formation, the speaker's chair, and votes of confidence.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/azmanhj/dewansim/internal/politics"
)

// portfolios is the fixed ordered cabinet list, filled most-senior first.
var portfolios = [7]string{
	"Finance",
	"Home Affairs",
	"Education",
	"Health",
	"Works",
	"Agriculture",
	"Foreign Affairs",
}

// CabinetMember holds one portfolio assignment.
type CabinetMember struct {
	MinisterID string `json:"minister_id"`
	Portfolio  string `json:"portfolio"`
}

// Government is the executive. Exactly one exists at a time; each general
// election replaces it wholesale.
type Government struct {
	ChiefMinisterID    string          `json:"chief_minister_id"`
	RulingCoalitionIDs []string        `json:"ruling_coalition_ids"` // ordered, largest first
	Cabinet            []CabinetMember `json:"cabinet"`
	FormedDate         time.Time       `json:"formed_date"`
}

// MajorityThreshold is the seat count needed to govern.
func (s *Simulation) MajorityThreshold() int {
	return s.Country.TotalSeats()/2 + 1
}

// FormGovernment installs a new government. A non-nil coalition is the
// player's negotiated grouping and must reach the majority threshold;
// otherwise the engine auto-selects: the strongest alliance bloc against
// the strongest unaligned party, falling back to the largest party.
func (s *Simulation) FormGovernment(coalition []string) *Government {
	var ruling []string
	if len(coalition) > 0 {
		seats := 0
		for _, pid := range coalition {
			seats += s.SeatCount(pid)
		}
		if seats >= s.MajorityThreshold() {
			ruling = coalition
		}
	}
	if ruling == nil {
		ruling = s.autoSelectCoalition()
	}
	if len(ruling) == 0 {
		return s.Government
	}

	// Order largest first.
	sort.SliceStable(ruling, func(i, j int) bool {
		si, sj := s.SeatCount(ruling[i]), s.SeatCount(ruling[j])
		if si != sj {
			return si > sj
		}
		return ruling[i] < ruling[j]
	})

	leadParty := s.PartyIndex[ruling[0]]
	cm := s.chiefMinisterFor(leadParty)
	gov := &Government{
		RulingCoalitionIDs: ruling,
		FormedDate:         s.Date,
	}
	if cm != nil {
		gov.ChiefMinisterID = cm.ID
		cm.LogHistory(s.Date, "Sworn in as Chief Minister")
	}
	gov.Cabinet = s.fillCabinet(ruling, gov.ChiefMinisterID)
	s.Government = gov
	s.trackRegime(ruling[0])

	name := "(vacant)"
	if cm != nil {
		name = cm.Name
	}
	slog.Info("government formed", "chief_minister", name, "coalition", len(ruling))
	s.EmitEvent(Event{
		Title:       "Government formed",
		Description: fmt.Sprintf("%s leads a new government", name),
		Category:    "election",
	})
	return gov
}

// autoSelectCoalition compares the strongest pre-existing alliance against
// the strongest seat-holding unaligned party, picking whichever commands
// more seats, with the largest party overall as the fallback.
func (s *Simulation) autoSelectCoalition() []string {
	var bestBloc *politics.Alliance
	bestBlocSeats := 0
	for _, a := range s.Alliances {
		if a.Type != politics.AllianceFull {
			continue
		}
		seats := 0
		for _, pid := range a.MemberPartyIDs {
			seats += s.SeatCount(pid)
		}
		if seats > bestBlocSeats || (seats == bestBlocSeats && bestBloc != nil && a.ID < bestBloc.ID) {
			bestBlocSeats = seats
			bestBloc = a
		}
	}

	var bestLone *politics.Party
	bestLoneSeats := 0
	for _, p := range s.SortedParties() {
		if s.AllianceOf(p.ID) != nil {
			continue
		}
		if seats := s.SeatCount(p.ID); seats > bestLoneSeats {
			bestLoneSeats = seats
			bestLone = p
		}
	}

	switch {
	case bestBloc != nil && bestBlocSeats >= bestLoneSeats:
		return append([]string(nil), bestBloc.MemberPartyIDs...)
	case bestLone != nil:
		return []string{bestLone.ID}
	}
	// Fallback: largest party overall.
	if sorted := s.SortedParties(); len(sorted) > 0 {
		return []string{sorted[0].ID}
	}
	return nil
}

// chiefMinisterFor picks the lead party's leader, or its senior MP when
// the leadership is vacant. Never leaves the post empty while the party
// has any living MP.
func (s *Simulation) chiefMinisterFor(p *politics.Party) *politics.Character {
	if p == nil {
		return nil
	}
	if c := s.CharacterIndex[p.LeaderID]; c != nil && c.IsAlive {
		return c
	}
	var senior *politics.Character
	for _, c := range s.LivingMembers(p) {
		if !c.IsMP {
			continue
		}
		if senior == nil || c.Influence > senior.Influence ||
			(c.Influence == senior.Influence && c.ID < senior.ID) {
			senior = c
		}
	}
	if senior == nil {
		senior = s.mostInfluentialMember(p)
	}
	return senior
}

// fillCabinet assigns the fixed portfolios to the most influential
// eligible coalition MPs, one post each, fewer when the bench is short.
func (s *Simulation) fillCabinet(ruling []string, chiefMinisterID string) []CabinetMember {
	member := make(map[string]bool)
	for _, pid := range ruling {
		if p := s.PartyIndex[pid]; p != nil {
			for _, affID := range p.AffiliationIDs {
				member[affID] = true
			}
		}
	}
	var pool []*politics.Character
	for _, c := range s.Characters {
		if c.IsAlive && c.IsMP && c.ID != chiefMinisterID && member[c.AffiliationID] {
			pool = append(pool, c)
		}
	}
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Influence != pool[j].Influence {
			return pool[i].Influence > pool[j].Influence
		}
		return pool[i].ID < pool[j].ID
	})

	var cabinet []CabinetMember
	for i, portfolio := range portfolios {
		if i >= len(pool) {
			break
		}
		cabinet = append(cabinet, CabinetMember{MinisterID: pool[i].ID, Portfolio: portfolio})
		pool[i].LogHistory(s.Date, fmt.Sprintf("Appointed Minister of %s", portfolio))
	}
	return cabinet
}

// trackRegime resets the big-tent clock when power genuinely changes
// hands: a new leading party that shares no bloc with the old one.
func (s *Simulation) trackRegime(leadPartyID string) {
	if s.RegimePartyID == "" {
		s.RegimePartyID = leadPartyID
		s.RegimeSince = s.Date
		return
	}
	if s.RegimePartyID == leadPartyID {
		return
	}
	oldBloc := s.AllianceOf(s.RegimePartyID)
	if oldBloc != nil && oldBloc.HasMember(leadPartyID) {
		// Power moved within the same bloc; the regime continues.
		s.RegimePartyID = leadPartyID
		return
	}
	s.RegimePartyID = leadPartyID
	s.RegimeSince = s.Date
	slog.Info("change of regime", "party", leadPartyID, "date", s.Date.Format("2006-01-02"))
}

// DetermineSpeakerCandidates returns the two speaker candidates: the
// leaders of the two largest parties, padded with the strongest MPs when
// fewer than two distinct leaders exist.
func (s *Simulation) DetermineSpeakerCandidates() []*politics.Character {
	var cands []*politics.Character
	seen := make(map[string]bool)
	for _, p := range s.SortedParties() {
		if len(cands) >= 2 {
			break
		}
		if c := s.CharacterIndex[p.LeaderID]; c != nil && c.IsAlive && !seen[c.ID] {
			cands = append(cands, c)
			seen[c.ID] = true
		}
	}
	if len(cands) < 2 {
		var mps []*politics.Character
		for _, c := range s.Characters {
			if c.IsAlive && c.IsMP && !seen[c.ID] {
				mps = append(mps, c)
			}
		}
		sort.Slice(mps, func(i, j int) bool {
			wi := mps[i].Influence + mps[i].Recognition
			wj := mps[j].Influence + mps[j].Recognition
			if wi != wj {
				return wi > wj
			}
			return mps[i].ID < mps[j].ID
		})
		for _, c := range mps {
			if len(cands) >= 2 {
				break
			}
			cands = append(cands, c)
			seen[c.ID] = true
		}
	}
	return cands
}

// ElectSpeaker holds the speaker vote: party votes weigh their seat
// counts, the government bloc backs the government candidate, everyone
// else backs the opposition one. playerChoice, when non-empty, overrides
// the player party's bloc vote with an explicit candidate ID.
func (s *Simulation) ElectSpeaker(playerChoice string) *politics.Character {
	cands := s.DetermineSpeakerCandidates()
	if len(cands) == 0 {
		return nil
	}
	govCand := cands[0]
	oppCand := govCand
	if len(cands) > 1 {
		oppCand = cands[1]
	}

	govBloc := make(map[string]bool)
	if s.Government != nil && len(s.Government.RulingCoalitionIDs) > 0 {
		lead := s.Government.RulingCoalitionIDs[0]
		govBloc[lead] = true
		if bloc := s.AllianceOf(lead); bloc != nil {
			for _, pid := range bloc.MemberPartyIDs {
				govBloc[pid] = true
			}
		}
	}

	playerParty := s.playerPartyID()
	votes := make(map[string]int, 2)
	for _, p := range s.Parties {
		seats := s.SeatCount(p.ID)
		if seats == 0 {
			continue
		}
		choice := oppCand.ID
		if govBloc[p.ID] {
			choice = govCand.ID
		}
		if p.ID == playerParty && playerChoice != "" {
			choice = playerChoice
		}
		votes[choice] += seats
	}

	winner := govCand
	if votes[oppCand.ID] > votes[govCand.ID] {
		winner = oppCand
	}
	s.SpeakerID = winner.ID
	winner.CurrentSeatCode = politics.SeatSpeaker
	winner.IsMP = false
	winner.LogHistory(s.Date, "Elected Speaker of the house")
	s.EmitEvent(Event{
		Title:       "Speaker elected",
		Description: fmt.Sprintf("%s takes the Speaker's chair", winner.Name),
		Category:    "election",
	})
	return winner
}

// ConductVoteOfConfidence has every living MP except the Speaker vote
// strictly along coalition lines. The motion passes when For > Against.
func (s *Simulation) ConductVoteOfConfidence() (forVotes, againstVotes int, passed bool) {
	ruling := make(map[string]bool)
	if s.Government != nil {
		for _, pid := range s.Government.RulingCoalitionIDs {
			if p := s.PartyIndex[pid]; p != nil {
				for _, affID := range p.AffiliationIDs {
					ruling[affID] = true
				}
			}
		}
	}
	for _, c := range s.Characters {
		if !c.IsAlive || !c.IsMP || c.ID == s.SpeakerID {
			continue
		}
		if ruling[c.AffiliationID] {
			forVotes++
		} else {
			againstVotes++
		}
	}
	passed = forVotes > againstVotes
	s.EmitEvent(Event{
		Title:       "Vote of confidence",
		Description: fmt.Sprintf("Confidence motion: %d for, %d against", forVotes, againstVotes),
		Category:    "election",
	})
	return forVotes, againstVotes, passed
}
