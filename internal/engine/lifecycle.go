// Party and affiliation lifecycle — leadership elections, secession,
// schisms, absorption, mergers, consolidation, unity drift, and ideology
// refresh.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/azmanhj/dewansim/internal/politics"
)

// stateExecutiveCount is how many executives a state branch carries below
// the state leader.
const stateExecutiveCount = 3

// RefreshIdeologies recomputes the derived ideology chain: affiliation
// ideology is the mean of living members (base ideology when empty), party
// ideology the mean of member affiliations. Runs monthly.
func (s *Simulation) RefreshIdeologies() {
	memberIdeologies := make(map[string][]politics.Ideology, len(s.Affiliations))
	for _, c := range s.Characters {
		if c.IsAlive {
			memberIdeologies[c.AffiliationID] = append(memberIdeologies[c.AffiliationID], c.Ideology)
		}
	}
	for _, aff := range s.Affiliations {
		if ids := memberIdeologies[aff.ID]; len(ids) > 0 {
			aff.Ideology = politics.AverageIdeology(ids)
		} else {
			aff.Ideology = aff.BaseIdeology
		}
	}
	for _, p := range s.Parties {
		var list []politics.Ideology
		for _, affID := range p.AffiliationIDs {
			if aff := s.Affiliations[affID]; aff != nil {
				list = append(list, aff.Ideology)
			}
		}
		p.Ideology = politics.AverageIdeology(list)
	}
}

// InitializePartyRelations recomputes the full bilateral relation graph
// from ideological distance and ethnic compatibility. O(n²) over parties;
// runs after any structural change.
func (s *Simulation) InitializePartyRelations() {
	for _, p := range s.Parties {
		if p.Relations == nil {
			p.Relations = make(map[string]float64)
		}
		for _, other := range s.Parties {
			if other.ID == p.ID {
				continue
			}
			rel := 100 - politics.IdeologicalDistance(p.Ideology, other.Ideology)*0.7
			if !p.CompatibleWith(other) {
				rel -= 15
			}
			// Alliance partners stay warm regardless of drift.
			if a := s.AllianceOf(p.ID); a != nil && a.HasMember(other.ID) {
				rel = math.Max(rel, 70)
			}
			rel += s.Rand.Range(-5, 5)
			p.Relations[other.ID] = clampScore(rel)
		}
		// Drop relations to parties that no longer exist.
		for id := range p.Relations {
			if _, ok := s.PartyIndex[id]; !ok {
				delete(p.Relations, id)
			}
		}
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ElectStateLeadersAndExecutives rebuilds a party's state branches: per
// state, living members ranked by influence — rank 0 leads, ranks 1–3 sit
// on the executive committee.
func (s *Simulation) ElectStateLeadersAndExecutives(p *politics.Party) {
	byState := make(map[string][]*politics.Character)
	for _, c := range s.LivingMembers(p) {
		byState[c.HomeState] = append(byState[c.HomeState], c)
	}
	p.StateBranches = make(map[string]*politics.StateBranch, len(byState))
	for state, members := range byState {
		sort.Slice(members, func(i, j int) bool {
			if members[i].Influence != members[j].Influence {
				return members[i].Influence > members[j].Influence
			}
			return members[i].ID < members[j].ID
		})
		branch := &politics.StateBranch{LeaderID: members[0].ID}
		for i := 1; i < len(members) && i <= stateExecutiveCount; i++ {
			branch.ExecutiveIDs = append(branch.ExecutiveIDs, members[i].ID)
		}
		p.StateBranches[state] = branch
	}
}

// ConductPartyLeadershipElection runs the indirect leadership vote.
// Candidates are the state branch leaders plus the incumbent; the
// electorate is state leaders, state executives, and the affiliation
// leaders of member affiliations. Each voter scores every candidate and
// casts one vote for their favourite. Winner leads, runner-up deputizes.
func (s *Simulation) ConductPartyLeadershipElection(p *politics.Party) {
	var candidates []*politics.Character
	seen := make(map[string]bool)
	addCandidate := func(id string) {
		if id == "" || seen[id] {
			return
		}
		if c, ok := s.CharacterIndex[id]; ok && c.IsAlive {
			seen[id] = true
			candidates = append(candidates, c)
		}
	}
	for _, branch := range p.StateBranches {
		addCandidate(branch.LeaderID)
	}
	addCandidate(p.LeaderID)

	if len(candidates) == 0 {
		// Empty-candidate fallback: influence-ranking of any living member.
		if lead := s.mostInfluentialMember(p); lead != nil {
			s.installLeader(p, lead, nil)
		}
		return
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	var voters []*politics.Character
	voterSeen := make(map[string]bool)
	addVoter := func(id string) {
		if id == "" || voterSeen[id] {
			return
		}
		if c, ok := s.CharacterIndex[id]; ok && c.IsAlive {
			voterSeen[id] = true
			voters = append(voters, c)
		}
	}
	for _, branch := range p.StateBranches {
		addVoter(branch.LeaderID)
		for _, id := range branch.ExecutiveIDs {
			addVoter(id)
		}
	}
	for _, affID := range p.AffiliationIDs {
		if lead := s.AffiliationLeader(affID); lead != nil {
			addVoter(lead.ID)
		}
	}

	if len(voters) == 0 {
		// No electorate: raw influence ranking of the candidates.
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Influence != candidates[j].Influence {
				return candidates[i].Influence > candidates[j].Influence
			}
			return candidates[i].ID < candidates[j].ID
		})
		var deputy *politics.Character
		if len(candidates) > 1 {
			deputy = candidates[1]
		}
		s.installLeader(p, candidates[0], deputy)
		return
	}

	votes := make(map[string]int, len(candidates))
	for _, voter := range voters {
		var best *politics.Character
		bestScore := math.Inf(-1)
		for _, cand := range candidates {
			score := cand.Influence + cand.Charisma
			if cand.AffiliationID == voter.AffiliationID {
				score *= 1.5
			}
			score += cand.Recognition / 2
			score += (200 - math.Abs(cand.Ideology.Economic-voter.Ideology.Economic) -
				math.Abs(cand.Ideology.Governance-voter.Ideology.Governance)) * 0.2
			score *= 1 + s.Rand.Range(0, 0.1)
			if score > bestScore {
				bestScore = score
				best = cand
			}
		}
		votes[best.ID]++
	}

	// Most votes wins, runner-up deputizes. Ties break on lowest ID via
	// the candidate sort above.
	sort.SliceStable(candidates, func(i, j int) bool {
		return votes[candidates[i].ID] > votes[candidates[j].ID]
	})
	winner := candidates[0]
	var deputy *politics.Character
	if len(candidates) > 1 {
		deputy = candidates[1]
	}
	s.installLeader(p, winner, deputy)
}

func (s *Simulation) installLeader(p *politics.Party, leader, deputy *politics.Character) {
	changed := p.LeaderID != leader.ID
	p.LeaderID = leader.ID
	p.DeputyLeaderID = ""
	if deputy != nil && deputy.ID != leader.ID {
		p.DeputyLeaderID = deputy.ID
	}
	if changed {
		p.LeaderHistory = append(p.LeaderHistory, politics.LeaderTerm{
			LeaderID: leader.ID,
			Name:     leader.Name,
			From:     s.Date,
		})
		leader.LogHistory(s.Date, fmt.Sprintf("Elected leader of %s", p.Name))
		s.EmitEvent(Event{
			Title:       "New party leader",
			Description: fmt.Sprintf("%s takes the leadership of %s", leader.Name, p.Name),
			Category:    "party",
		})
	}
}

// RunPartyElections rebuilds every party's state branches and then holds
// the national leadership votes.
func (s *Simulation) RunPartyElections() {
	s.RefreshAffiliationLeaders()
	for _, p := range s.Parties {
		s.ElectStateLeadersAndExecutives(p)
		s.ConductPartyLeadershipElection(p)
	}
	slog.Info("party elections held", "date", s.Date.Format("2006-01-02"), "parties", len(s.Parties))
}

// removeAffiliationFromParty strips one affiliation out of whichever party
// holds it and dissolves the party if nothing remains. The single
// transactional write for every movement path.
func (s *Simulation) removeAffiliationFromParty(affID string) {
	for _, p := range s.Parties {
		if p.HasAffiliation(affID) {
			p.RemoveAffiliation(affID)
			if len(p.AffiliationIDs) == 0 {
				s.EmitEvent(Event{
					Title:       "Party dissolved",
					Description: fmt.Sprintf("%s has dissolved", p.Name),
					Category:    "party",
				})
				s.RemoveParty(p.ID)
			}
			return
		}
	}
}

// transferAffiliationSeats moves ownership of every seat whose incumbent
// MP belongs to the affiliation. Seats held by other affiliations of the
// old party stay put — ownership follows MP identity.
func (s *Simulation) transferAffiliationSeats(affID, toPartyID string) {
	for _, c := range s.Characters {
		if !c.IsAlive || !c.IsMP || c.AffiliationID != affID {
			continue
		}
		if c.CurrentSeatCode == "" || c.CurrentSeatCode == politics.SeatSpeaker {
			continue
		}
		if _, held := s.ElectionResults[c.CurrentSeatCode]; held {
			s.ElectionResults[c.CurrentSeatCode] = toPartyID
		}
	}
}

// HandleAffiliationSecession moves one affiliation into an existing target
// party. The target's ethnicity focus must accept the affiliation.
func (s *Simulation) HandleAffiliationSecession(affID, targetPartyID string) error {
	aff := s.Affiliations[affID]
	if aff == nil {
		return fmt.Errorf("unknown affiliation %s", affID)
	}
	target := s.PartyIndex[targetPartyID]
	if target == nil {
		return fmt.Errorf("unknown party %s", targetPartyID)
	}
	if !target.AcceptsEthnicity(aff.Ethnicity) {
		return fmt.Errorf("%s does not accept %s affiliations", target.Name, aff.Ethnicity)
	}

	s.removeAffiliationFromParty(affID)
	target.AffiliationIDs = append(target.AffiliationIDs, affID)
	s.transferAffiliationSeats(affID, target.ID)
	for _, c := range s.AffiliationMembers(affID) {
		c.LogHistory(s.Date, fmt.Sprintf("Crossed over to %s with %s", target.Name, aff.Name))
	}
	s.EmitEvent(Event{
		Title:       "Secession",
		Description: fmt.Sprintf("%s has crossed over to %s", aff.Name, target.Name),
		Category:    "party",
	})
	s.RefreshIdeologies()
	s.InitializePartyRelations()
	s.CleanupPoliticalVacancies()
	return nil
}

// SecedeToNewParty founds a brand-new party around one affiliation, with
// the initiating character as leader. focus may be empty (multi-ethnic) or
// the affiliation's own ethnicity.
func (s *Simulation) SecedeToNewParty(affID string, founder *politics.Character, focus politics.Ethnicity) (*politics.Party, error) {
	aff := s.Affiliations[affID]
	if aff == nil {
		return nil, fmt.Errorf("unknown affiliation %s", affID)
	}
	if focus != "" && focus != aff.Ethnicity {
		return nil, fmt.Errorf("focus %s does not match affiliation ethnicity %s", focus, aff.Ethnicity)
	}

	s.removeAffiliationFromParty(affID)
	p := &politics.Party{
		ID:             uuid.NewString(),
		Name:           politics.PartyName(s.Rand, s.partyNames()),
		Color:          s.randomColor(),
		AffiliationIDs: []string{affID},
		EthnicityFocus: focus,
		Relations:      make(map[string]float64),
		StateBranches:  make(map[string]*politics.StateBranch),
		ContestedSeats: make(map[string]politics.SeatPlan),
		Unity:          70,
	}
	if founder != nil {
		p.LeaderID = founder.ID
		p.LeaderHistory = append(p.LeaderHistory, politics.LeaderTerm{
			LeaderID: founder.ID, Name: founder.Name, From: s.Date,
		})
		founder.LogHistory(s.Date, fmt.Sprintf("Founded %s", p.Name))
	}
	s.AddParty(p)
	s.transferAffiliationSeats(affID, p.ID)
	for _, c := range s.AffiliationMembers(affID) {
		if founder == nil || c.ID != founder.ID {
			c.LogHistory(s.Date, fmt.Sprintf("Left for the newly founded %s", p.Name))
		}
	}
	s.EmitEvent(Event{
		Title:       "New party",
		Description: fmt.Sprintf("%s breaks away to found %s", aff.Name, p.Name),
		Category:    "party",
	})
	s.RefreshIdeologies()
	s.InitializePartyRelations()
	s.CleanupPoliticalVacancies()
	return p, nil
}

// HandlePartyAbsorption folds parties and loose affiliations wholesale
// into a surviving host. Host identity, color, and leadership persist;
// seats owned by the absorbed parties transfer to the host.
func (s *Simulation) HandlePartyAbsorption(hostID string, absorbedPartyIDs, extraAffIDs []string) error {
	host := s.PartyIndex[hostID]
	if host == nil {
		return fmt.Errorf("unknown host party %s", hostID)
	}

	for _, pid := range absorbedPartyIDs {
		p := s.PartyIndex[pid]
		if p == nil || pid == hostID {
			continue
		}
		if !host.CompatibleWith(p) {
			return fmt.Errorf("%s cannot absorb %s: incompatible ethnicity focus", host.Name, p.Name)
		}
		affs := append([]string(nil), p.AffiliationIDs...)
		for _, affID := range affs {
			s.removeAffiliationFromParty(affID) // dissolves p on its last affiliation
			host.AffiliationIDs = append(host.AffiliationIDs, affID)
			s.transferAffiliationSeats(affID, host.ID)
		}
		// Any seats left pointing at the absorbed party (vacant incumbents)
		// follow it into the host.
		for seat, owner := range s.ElectionResults {
			if owner == pid {
				s.ElectionResults[seat] = host.ID
			}
		}
		s.EmitEvent(Event{
			Title:       "Absorption",
			Description: fmt.Sprintf("%s has been absorbed into %s", p.Name, host.Name),
			Category:    "party",
		})
	}

	for _, affID := range extraAffIDs {
		aff := s.Affiliations[affID]
		if aff == nil || host.HasAffiliation(affID) {
			continue
		}
		if !host.AcceptsEthnicity(aff.Ethnicity) {
			continue
		}
		s.removeAffiliationFromParty(affID)
		host.AffiliationIDs = append(host.AffiliationIDs, affID)
		s.transferAffiliationSeats(affID, host.ID)
	}

	s.RefreshIdeologies()
	s.InitializePartyRelations()
	s.CleanupPoliticalVacancies()
	return nil
}

// HandlePartyMerger dissolves all participating parties and creates one
// brand-new party with a fresh identity. The proposer leads it.
func (s *Simulation) HandlePartyMerger(partyIDs []string, proposer, deputy *politics.Character) (*politics.Party, error) {
	if len(partyIDs) < 2 {
		return nil, fmt.Errorf("merger needs at least two parties")
	}
	var members []*politics.Party
	for _, pid := range partyIDs {
		p := s.PartyIndex[pid]
		if p == nil {
			return nil, fmt.Errorf("unknown party %s", pid)
		}
		members = append(members, p)
	}
	for i := 1; i < len(members); i++ {
		if !members[0].CompatibleWith(members[i]) {
			return nil, fmt.Errorf("%s and %s have incompatible ethnicity focuses", members[0].Name, members[i].Name)
		}
	}

	// Shared single-ethnicity focus survives the merger; anything mixed
	// becomes multi-ethnic.
	focus := members[0].EthnicityFocus
	for _, p := range members[1:] {
		if p.EthnicityFocus != focus {
			focus = ""
		}
	}

	merged := &politics.Party{
		ID:             uuid.NewString(),
		Name:           politics.PartyName(s.Rand, s.partyNames()),
		Color:          s.randomColor(),
		EthnicityFocus: focus,
		Relations:      make(map[string]float64),
		StateBranches:  make(map[string]*politics.StateBranch),
		ContestedSeats: make(map[string]politics.SeatPlan),
		Unity:          60,
	}
	s.AddParty(merged)

	oldNames := make([]string, 0, len(members))
	for _, p := range members {
		oldNames = append(oldNames, p.Name)
		affs := append([]string(nil), p.AffiliationIDs...)
		for _, affID := range affs {
			s.removeAffiliationFromParty(affID)
			merged.AffiliationIDs = append(merged.AffiliationIDs, affID)
			s.transferAffiliationSeats(affID, merged.ID)
		}
		for seat, owner := range s.ElectionResults {
			if owner == p.ID {
				s.ElectionResults[seat] = merged.ID
			}
		}
	}

	if proposer != nil {
		merged.LeaderID = proposer.ID
		merged.LeaderHistory = append(merged.LeaderHistory, politics.LeaderTerm{
			LeaderID: proposer.ID, Name: proposer.Name, From: s.Date,
		})
		proposer.LogHistory(s.Date, fmt.Sprintf("Led the merger that created %s", merged.Name))
	}
	if deputy != nil && (proposer == nil || deputy.ID != proposer.ID) {
		merged.DeputyLeaderID = deputy.ID
	}

	s.EmitEvent(Event{
		Title:       "Merger",
		Description: fmt.Sprintf("%v have merged into %s", oldNames, merged.Name),
		Category:    "party",
	})
	s.RefreshIdeologies()
	s.InitializePartyRelations()
	s.CleanupPoliticalVacancies()
	return merged, nil
}

// ProcessPartyUnity applies the monthly unity random walk. Multi-affiliation
// parties swing harder.
func (s *Simulation) ProcessPartyUnity() {
	for _, p := range s.Parties {
		span := 2.0
		if len(p.AffiliationIDs) > 1 {
			span = 5.0
		}
		p.Unity = clampScore(p.Unity + s.Rand.Range(-span, span))
	}
}

// ProcessSchisms runs the monthly schism check. At most one schism fires
// per tick across the whole roster; parties are visited in ID order.
func (s *Simulation) ProcessSchisms() {
	parties := make([]*politics.Party, len(s.Parties))
	copy(parties, s.Parties)
	sort.Slice(parties, func(i, j int) bool { return parties[i].ID < parties[j].ID })

	for _, p := range parties {
		if p.Unity >= 20 || len(p.AffiliationIDs) < 3 {
			continue
		}
		if !s.Rand.Chance(0.05) {
			continue
		}
		if s.executeSchism(p) {
			return // one schism per monthly tick
		}
	}
}

func (s *Simulation) executeSchism(p *politics.Party) bool {
	leader := s.CharacterIndex[p.LeaderID]
	s.RefreshAffiliationLeaders()

	// Dissident: the most influential affiliation leader outside the party
	// leader's own affiliation.
	var dissident *politics.Character
	for _, affID := range p.AffiliationIDs {
		lead := s.AffiliationLeader(affID)
		if lead == nil {
			continue
		}
		if leader != nil && lead.AffiliationID == leader.AffiliationID {
			continue
		}
		if dissident == nil || lead.Influence > dissident.Influence ||
			(lead.Influence == dissident.Influence && lead.ID < dissident.ID) {
			dissident = lead
		}
	}
	if dissident == nil {
		return false
	}

	// Recruit member affiliations ideologically closer to the dissident
	// than to the incumbent leader.
	moving := []string{dissident.AffiliationID}
	for _, affID := range p.AffiliationIDs {
		if affID == dissident.AffiliationID {
			continue
		}
		aff := s.Affiliations[affID]
		if aff == nil {
			continue
		}
		toDissident := politics.IdeologicalDistance(aff.Ideology, dissident.Ideology)
		toLeader := math.Inf(1)
		if leader != nil {
			toLeader = politics.IdeologicalDistance(aff.Ideology, leader.Ideology)
		}
		if toDissident < toLeader {
			moving = append(moving, affID)
		}
	}

	if s.Rand.Chance(0.7) {
		// Found a new party around the dissident.
		first := moving[0]
		newParty, err := s.SecedeToNewParty(first, dissident, "")
		if err != nil {
			return false
		}
		for _, affID := range moving[1:] {
			s.removeAffiliationFromParty(affID)
			newParty.AffiliationIDs = append(newParty.AffiliationIDs, affID)
			s.transferAffiliationSeats(affID, newParty.ID)
		}
		s.RefreshIdeologies()
		s.InitializePartyRelations()
		slog.Info("schism", "party", p.Name, "new_party", newParty.Name, "dissident", dissident.Name)
	} else {
		// Defect en masse to the closest compatible existing party.
		target := s.bestDefectionTarget(p, dissident, moving)
		if target == nil {
			return false
		}
		for _, affID := range moving {
			if err := s.HandleAffiliationSecession(affID, target.ID); err != nil {
				continue
			}
		}
		slog.Info("mass defection", "party", p.Name, "target", target.Name, "dissident", dissident.Name)
	}

	// The rump party steadies itself after the split.
	if still := s.PartyIndex[p.ID]; still != nil {
		still.Unity = 40
	}
	s.EmitEvent(Event{
		Title:       "Party schism",
		Description: fmt.Sprintf("%s has split under %s's dissent", p.Name, dissident.Name),
		Category:    "party",
	})
	return true
}

// bestDefectionTarget finds the ideologically nearest compatible party
// (distance < 40) that will take every moving affiliation.
func (s *Simulation) bestDefectionTarget(from *politics.Party, dissident *politics.Character, moving []string) *politics.Party {
	var best *politics.Party
	bestDist := 40.0
	for _, cand := range s.SortedParties() {
		if cand.ID == from.ID {
			continue
		}
		ok := true
		for _, affID := range moving {
			aff := s.Affiliations[affID]
			if aff == nil || !cand.AcceptsEthnicity(aff.Ethnicity) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		d := politics.IdeologicalDistance(cand.Ideology, dissident.Ideology)
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}

// ProcessPartyConsolidation gives every seatless party (except the
// player's) a small chance per tick to fold into the wider landscape:
// absorption by a warm, ideologically close seat-holder, or an
// equals-merger with another seatless party.
func (s *Simulation) ProcessPartyConsolidation() {
	playerParty := s.playerPartyID()
	parties := make([]*politics.Party, len(s.Parties))
	copy(parties, s.Parties)
	sort.Slice(parties, func(i, j int) bool { return parties[i].ID < parties[j].ID })

	for _, p := range parties {
		if s.PartyIndex[p.ID] == nil {
			continue // consumed earlier in this pass
		}
		if p.ID == playerParty || s.SeatCount(p.ID) > 0 {
			continue
		}
		if !s.Rand.Chance(0.02) {
			continue
		}

		type option struct {
			party *politics.Party
			score float64
			merge bool
		}
		var best *option
		for _, cand := range parties {
			if cand.ID == p.ID || s.PartyIndex[cand.ID] == nil {
				continue
			}
			if !p.CompatibleWith(cand) {
				continue
			}
			dist := politics.IdeologicalDistance(p.Ideology, cand.Ideology)
			rel := p.RelationWith(cand.ID)
			if dist >= 25 || rel < 40 {
				continue
			}
			seats := s.SeatCount(cand.ID)
			score := float64(seats)*20 + (100 - dist) + rel
			if best == nil || score > best.score {
				best = &option{party: cand, score: score, merge: seats == 0}
			}
		}
		if best == nil {
			continue
		}
		if best.merge {
			proposer := s.CharacterIndex[p.LeaderID]
			if _, err := s.HandlePartyMerger([]string{p.ID, best.party.ID}, proposer, s.CharacterIndex[best.party.LeaderID]); err != nil {
				continue
			}
		} else {
			if err := s.HandlePartyAbsorption(best.party.ID, []string{p.ID}, nil); err != nil {
				continue
			}
		}
	}
}

// ProcessIndependentAffiliations periodically folds partyless affiliations
// back into the party system: join a compatible party, or coalesce with
// other independents into a fresh one.
func (s *Simulation) ProcessIndependentAffiliations() {
	affParty := s.AffiliationParty()
	var independents []*politics.Affiliation
	for _, aff := range s.Affiliations {
		if affParty[aff.ID] == nil {
			independents = append(independents, aff)
		}
	}
	sort.Slice(independents, func(i, j int) bool { return independents[i].ID < independents[j].ID })

	joined := make(map[string]bool)
	for _, aff := range independents {
		var best *politics.Party
		bestDist := 50.0
		for _, cand := range s.SortedParties() {
			if !cand.AcceptsEthnicity(aff.Ethnicity) {
				continue
			}
			d := politics.IdeologicalDistance(aff.Ideology, cand.Ideology)
			if d < bestDist {
				bestDist = d
				best = cand
			}
		}
		if best != nil && s.Rand.Chance(0.9) {
			best.AffiliationIDs = append(best.AffiliationIDs, aff.ID)
			s.transferAffiliationSeats(aff.ID, best.ID)
			joined[aff.ID] = true
			s.EmitEvent(Event{
				Title:       "Affiliation aligned",
				Description: fmt.Sprintf("%s has joined %s", aff.Name, best.Name),
				Category:    "party",
			})
		}
	}
	if len(joined) > 0 {
		s.RefreshIdeologies()
		s.InitializePartyRelations()
	}

	// Remaining independents may coalesce into a new party when their
	// combined membership carries enough weight.
	var rest []*politics.Affiliation
	for _, aff := range independents {
		if !joined[aff.ID] {
			rest = append(rest, aff)
		}
	}
	if len(rest) < 2 || !s.Rand.Chance(0.1) {
		return
	}
	group := rest[:2]
	if len(rest) >= 3 && s.Rand.Chance(0.5) {
		group = rest[:3]
	}
	total := 0.0
	for _, aff := range group {
		for _, c := range s.AffiliationMembers(aff.ID) {
			total += c.Influence
		}
	}
	if total < 20 {
		return
	}
	founder := s.AffiliationLeader(group[0].ID)
	p, err := s.SecedeToNewParty(group[0].ID, founder, "")
	if err != nil {
		return
	}
	for _, aff := range group[1:] {
		p.AffiliationIDs = append(p.AffiliationIDs, aff.ID)
		s.transferAffiliationSeats(aff.ID, p.ID)
	}
	s.RefreshIdeologies()
	s.InitializePartyRelations()
}

func (s *Simulation) playerPartyID() string {
	if s.PlayerCharacterID == "" {
		return ""
	}
	c := s.CharacterIndex[s.PlayerCharacterID]
	if c == nil {
		return ""
	}
	if p := s.AffiliationParty()[c.AffiliationID]; p != nil {
		return p.ID
	}
	return ""
}

var partyPalette = []string{
	"#d32f2f", "#1976d2", "#388e3c", "#f57c00", "#7b1fa2", "#00796b",
	"#c2185b", "#5d4037", "#455a64", "#afb42b", "#0097a7", "#e64a19",
}

func (s *Simulation) randomColor() string {
	return partyPalette[s.Rand.IntN(len(partyPalette))]
}
