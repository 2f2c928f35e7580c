// Alliance engine — bloc formation, seat distribution between allied
// parties, cohesion consolidation, automatic full mergers, and the
// big-tent opposition trigger.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/azmanhj/dewansim/internal/politics"
)

// allianceSeatFloor is the minimum seats every member must receive from
// distribution when the pool is large enough (>= 2x member count).
const allianceSeatFloor = 2

// rebalanceIterations bounds the seat-floor rebalancing loop.
const rebalanceIterations = 20

// blocOfType returns the bloc of the given type containing the party.
func (s *Simulation) blocOfType(partyID string, typ politics.AllianceType) *politics.Alliance {
	for _, a := range s.Alliances {
		if a.Type == typ && a.HasMember(partyID) {
			return a
		}
	}
	return nil
}

// allianceIdeology is the average ideology over member parties.
func (s *Simulation) allianceIdeology(a *politics.Alliance) politics.Ideology {
	var list []politics.Ideology
	for _, pid := range a.MemberPartyIDs {
		if p := s.PartyIndex[pid]; p != nil {
			list = append(list, p.Ideology)
		}
	}
	return politics.AverageIdeology(list)
}

// AttemptAllianceFormation invites target parties into a bloc led by the
// initiator. When the initiator already leads a bloc of the same type this
// is an expansion; otherwise a new bloc forms if at least one target
// accepts. Returns the bloc, or nil when nothing came of it.
func (s *Simulation) AttemptAllianceFormation(initiatorID string, targetIDs []string, typ politics.AllianceType) *politics.Alliance {
	initiator := s.PartyIndex[initiatorID]
	if initiator == nil {
		return nil
	}
	existing := s.blocOfType(initiatorID, typ)

	reference := initiator.Ideology
	memberIDs := []string{initiatorID}
	if existing != nil {
		reference = s.allianceIdeology(existing)
		memberIDs = existing.MemberPartyIDs
	}

	var accepted []string
	for _, tid := range targetIDs {
		target := s.PartyIndex[tid]
		if target == nil || tid == initiatorID {
			continue
		}
		// A party already in a different bloc of this type is auto-rejected:
		// the one-bloc invariant is enforced here, at the mutation boundary.
		if other := s.blocOfType(tid, typ); other != nil {
			continue
		}

		dist := politics.IdeologicalDistance(target.Ideology, reference)
		relSum := 0.0
		for _, mid := range memberIDs {
			relSum += target.RelationWith(mid)
		}
		avgRel := relSum / float64(len(memberIDs))

		chance := 0.7*math.Max(0, 1-dist/35) + 0.3*(avgRel/100)
		if typ == politics.AlliancePact {
			chance += 0.1
		}
		if chance > 0.3 && s.Rand.Chance(chance) {
			accepted = append(accepted, tid)
		}
	}
	if len(accepted) == 0 {
		return nil
	}

	bloc := existing
	if bloc == nil {
		bloc = &politics.Alliance{
			ID:             uuid.NewString(),
			Name:           politics.AllianceName(s.Rand, s.allianceNames()),
			Type:           typ,
			LeaderPartyID:  initiatorID,
			MemberPartyIDs: []string{initiatorID},
		}
		s.Alliances = append(s.Alliances, bloc)
	}
	bloc.MemberPartyIDs = append(bloc.MemberPartyIDs, accepted...)

	names := make([]string, 0, len(accepted))
	for _, id := range accepted {
		names = append(names, s.PartyIndex[id].Name)
	}
	s.EmitEvent(Event{
		Title:       "Alliance grows",
		Description: fmt.Sprintf("%v joined %s", names, bloc.Name),
		Category:    "alliance",
	})
	s.DistributeAllianceSeats(bloc)
	return bloc
}

// CalculatePartySeatScore scores one member party's claim on one seat:
// effective influence of its characters physically present there, an
// incumbency bonus, and demographic ethnic affinity.
func (s *Simulation) CalculatePartySeatScore(p *politics.Party, seatCode string) float64 {
	seat := s.Country.Get(seatCode)
	member := make(map[string]bool, len(p.AffiliationIDs))
	for _, id := range p.AffiliationIDs {
		member[id] = true
	}

	score := 0.0
	for _, c := range s.Characters {
		if c.IsAlive && c.CurrentSeatCode == seatCode && member[c.AffiliationID] {
			score += float64(EffectiveInfluence(c, seat, s.Affiliations, s.Strongholds, "", ""))
		}
	}
	if s.ElectionResults[seatCode] == p.ID {
		score += 50
	}
	switch {
	case seat == nil:
		score += 20 // no demographic data
	case p.EthnicityFocus == "":
		score += 35 // multi-ethnic baseline appeal
	default:
		score += seat.Demo.Share(p.EthnicityFocus)
	}
	return score
}

// DistributeAllianceSeats divides every constituency among bloc members so
// allies never contest against each other, then guarantees each member a
// small floor of seats when the pool allows it.
func (s *Simulation) DistributeAllianceSeats(a *politics.Alliance) {
	members := make([]*politics.Party, 0, len(a.MemberPartyIDs))
	for _, pid := range a.MemberPartyIDs {
		if p := s.PartyIndex[pid]; p != nil {
			members = append(members, p)
		}
	}
	if len(members) == 0 {
		return
	}

	codes := s.Country.Codes()
	assignment := make(map[string]*politics.Party, len(codes))
	scores := make(map[string]map[string]float64, len(codes)) // seat -> party -> score

	for _, code := range codes {
		// Shuffled iteration keeps tie wins from always favouring the
		// same member.
		order := make([]*politics.Party, len(members))
		copy(order, members)
		s.Rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		scores[code] = make(map[string]float64, len(order))
		var best *politics.Party
		bestScore := math.Inf(-1)
		for _, p := range order {
			sc := s.CalculatePartySeatScore(p, code)
			scores[code][p.ID] = sc
			if sc > bestScore {
				bestScore = sc
				best = p
			}
		}
		assignment[code] = best
	}

	// Seat floor: every member ends with at least two seats when the pool
	// is big enough. Bounded donor/receiver swaps; skipped gracefully when
	// the pool cannot support the guarantee.
	if len(codes) >= 2*len(members) {
		for iter := 0; iter < rebalanceIterations; iter++ {
			counts := make(map[string]int, len(members))
			for _, p := range assignment {
				counts[p.ID]++
			}
			var receiver *politics.Party
			for _, p := range members {
				if counts[p.ID] < allianceSeatFloor {
					receiver = p
					break
				}
			}
			if receiver == nil {
				break
			}
			// Donor: the member with the most seats above the floor.
			var donor *politics.Party
			for _, p := range members {
				if counts[p.ID] > allianceSeatFloor {
					if donor == nil || counts[p.ID] > counts[donor.ID] {
						donor = p
					}
				}
			}
			if donor == nil {
				break
			}
			// Move the donor seat where the receiver scores best, so the
			// transfer does the least damage to the receiver's chances.
			bestSeat := ""
			bestScore := math.Inf(-1)
			for _, code := range codes {
				if assignment[code] != donor {
					continue
				}
				if sc := scores[code][receiver.ID]; sc > bestScore {
					bestScore = sc
					bestSeat = code
				}
			}
			if bestSeat == "" {
				break
			}
			assignment[bestSeat] = receiver
		}
	}

	// Write the plans: the winning member picks its best-fit affiliation
	// and candidate per seat; other members drop the seat entirely.
	for _, p := range members {
		if p.ContestedSeats == nil {
			p.ContestedSeats = make(map[string]politics.SeatPlan)
		}
	}
	used := make(map[string]map[string]bool, len(members))
	for _, p := range members {
		used[p.ID] = make(map[string]bool)
	}
	for _, code := range codes {
		winner := assignment[code]
		for _, p := range members {
			if p == winner {
				p.ContestedSeats[code] = s.bestSeatPlanExcluding(p, code, used[p.ID])
			} else {
				delete(p.ContestedSeats, code)
			}
		}
	}
	slog.Debug("alliance seats distributed", "alliance", a.Name, "members", len(members), "seats", len(codes))
}

// bestSeatPlan picks the member affiliation whose strongest available
// candidate carries the most effective influence in the seat.
func (s *Simulation) bestSeatPlan(p *politics.Party, seatCode string) politics.SeatPlan {
	return s.bestSeatPlanExcluding(p, seatCode, nil)
}

// bestSeatPlanExcluding is bestSeatPlan skipping already-fielded
// candidates, so one politician does not carry the flag in many seats at
// once. Falls back to reuse when the roster is exhausted.
func (s *Simulation) bestSeatPlanExcluding(p *politics.Party, seatCode string, used map[string]bool) politics.SeatPlan {
	seat := s.Country.Get(seatCode)
	pick := func(skipUsed bool) (string, *politics.Character, int) {
		var bestAff string
		var bestCand *politics.Character
		bestScore := -1
		for _, affID := range p.AffiliationIDs {
			for _, c := range s.AffiliationMembers(affID) {
				if skipUsed && used[c.ID] {
					continue
				}
				sc := EffectiveInfluence(c, seat, s.Affiliations, s.Strongholds, c.ID, affID)
				if sc > bestScore || (sc == bestScore && bestCand != nil && c.ID < bestCand.ID) {
					bestScore = sc
					bestAff = affID
					bestCand = c
				}
			}
		}
		return bestAff, bestCand, bestScore
	}

	bestAff, bestCand, _ := pick(used != nil)
	if bestCand == nil && used != nil {
		bestAff, bestCand, _ = pick(false)
	}
	plan := politics.SeatPlan{AllocatedAffiliationID: bestAff}
	if bestCand != nil {
		plan.CandidateID = bestCand.ID
		if used != nil {
			used[bestCand.ID] = true
		}
	}
	return plan
}

// BuildSeatPlans rebuilds the electoral strategy of every party. Parties
// outside any bloc contest every seat with their best affiliation and
// candidate; full alliances and pacts both get their plans from seat
// distribution, so partners never run against each other.
func (s *Simulation) BuildSeatPlans() {
	for _, p := range s.Parties {
		if s.AnyAllianceOf(p.ID) != nil {
			continue
		}
		p.ContestedSeats = make(map[string]politics.SeatPlan, s.Country.TotalSeats())
		used := make(map[string]bool)
		for _, code := range s.Country.Codes() {
			p.ContestedSeats[code] = s.bestSeatPlanExcluding(p, code, used)
		}
	}
	// Pacts first, so a party in both keeps its full alliance's assignment.
	for _, a := range s.Alliances {
		if a.Type == politics.AlliancePact {
			s.DistributeAllianceSeats(a)
		}
	}
	for _, a := range s.Alliances {
		if a.Type == politics.AllianceFull {
			s.DistributeAllianceSeats(a)
		}
	}
}

// ConsolidateAllianceCohesion applies the monthly polarization pressure:
// members drift 5% toward the bloc average, intra-bloc relations warm,
// relations to everyone outside decay.
func (s *Simulation) ConsolidateAllianceCohesion() {
	for _, a := range s.Alliances {
		avg := s.allianceIdeology(a)
		memberSet := make(map[string]bool, len(a.MemberPartyIDs))
		for _, pid := range a.MemberPartyIDs {
			memberSet[pid] = true
		}
		for _, pid := range a.MemberPartyIDs {
			p := s.PartyIndex[pid]
			if p == nil {
				continue
			}
			// The pull lands on the characters, the root the derived party
			// ideology is computed from.
			for _, c := range s.LivingMembers(p) {
				c.Ideology = politics.Ideology{
					Economic:   c.Ideology.Economic + (avg.Economic-c.Ideology.Economic)*0.05,
					Governance: c.Ideology.Governance + (avg.Governance-c.Ideology.Governance)*0.05,
				}.Clamp()
			}
			for otherID := range p.Relations {
				if memberSet[otherID] {
					p.Relations[otherID] = clampScore(p.Relations[otherID] + 1)
				} else {
					p.Relations[otherID] = clampScore(p.Relations[otherID] - 0.5)
				}
			}
		}
	}
	if len(s.Alliances) > 0 {
		s.RefreshIdeologies()
	}
}

// AttemptAllianceMerger merges a full alliance into a single party once
// the bloc has effectively become one: every member within ideological
// distance 5 of the bloc mean and every pairwise relation above 90.
func (s *Simulation) AttemptAllianceMerger() {
	blocs := make([]*politics.Alliance, len(s.Alliances))
	copy(blocs, s.Alliances)
	sort.Slice(blocs, func(i, j int) bool { return blocs[i].ID < blocs[j].ID })

	for _, a := range blocs {
		if a.Type != politics.AllianceFull {
			continue
		}
		avg := s.allianceIdeology(a)
		var members []*politics.Party
		cohesive := true
		for _, pid := range a.MemberPartyIDs {
			p := s.PartyIndex[pid]
			if p == nil {
				continue
			}
			members = append(members, p)
			if politics.IdeologicalDistance(p.Ideology, avg) >= 5 {
				cohesive = false
				break
			}
		}
		if !cohesive || len(members) < 2 {
			continue
		}
		for _, p := range members {
			for _, other := range members {
				if p.ID != other.ID && p.RelationWith(other.ID) <= 90 {
					cohesive = false
				}
			}
		}
		if !cohesive {
			continue
		}
		s.mergeAllianceIntoParty(a, members)
		return
	}
}

// mergeAllianceIntoParty folds a fully cohesive bloc into one new party
// carrying the bloc's name and the leader party's color and leadership.
func (s *Simulation) mergeAllianceIntoParty(a *politics.Alliance, members []*politics.Party) {
	sort.Slice(members, func(i, j int) bool {
		si, sj := s.SeatCount(members[i].ID), s.SeatCount(members[j].ID)
		if si != sj {
			return si > sj
		}
		if members[i].ID == a.LeaderPartyID {
			return true
		}
		if members[j].ID == a.LeaderPartyID {
			return false
		}
		return members[i].ID < members[j].ID
	})
	lead := members[0]

	merged := &politics.Party{
		ID:             uuid.NewString(),
		Name:           a.Name,
		Color:          lead.Color,
		Relations:      make(map[string]float64),
		StateBranches:  make(map[string]*politics.StateBranch),
		ContestedSeats: make(map[string]politics.SeatPlan), // rebuilt next cycle
		Unity:          70,
	}
	s.AddParty(merged)

	merged.LeaderID = lead.LeaderID
	if leader := s.CharacterIndex[lead.LeaderID]; leader != nil {
		merged.LeaderHistory = append(merged.LeaderHistory, politics.LeaderTerm{
			LeaderID: leader.ID, Name: leader.Name, From: s.Date,
		})
	}
	if len(members) > 1 {
		if dep := s.CharacterIndex[members[1].LeaderID]; dep != nil && dep.ID != merged.LeaderID {
			merged.DeputyLeaderID = dep.ID
		}
	}

	for _, p := range members {
		affs := append([]string(nil), p.AffiliationIDs...)
		for _, affID := range affs {
			s.removeAffiliationFromParty(affID)
			merged.AffiliationIDs = append(merged.AffiliationIDs, affID)
		}
		for seat, owner := range s.ElectionResults {
			if owner == p.ID {
				s.ElectionResults[seat] = merged.ID
			}
		}
	}

	// Membership moves dissolve the member parties, which in turn
	// dissolves the bloc itself inside RemoveParty.
	s.EmitEvent(Event{
		Title:       "Alliance becomes a party",
		Description: fmt.Sprintf("The parties of %s have merged into a single party", merged.Name),
		Category:    "alliance",
	})
	s.RefreshIdeologies()
	s.InitializePartyRelations()
	s.CleanupPoliticalVacancies()
	slog.Info("alliance merged into party", "party", merged.Name, "affiliations", len(merged.AffiliationIDs))
}

// CheckBigTent fires once per game: after two decades of the same regime,
// the entire opposition unifies into one bloc with forced warm relations.
func (s *Simulation) CheckBigTent() {
	if s.BigTentTriggered || s.Government == nil || s.RegimeSince.IsZero() {
		return
	}
	if s.Date.Sub(s.RegimeSince) <= 20*365*24*time.Hour {
		return
	}

	ruling := make(map[string]bool)
	for _, pid := range s.Government.RulingCoalitionIDs {
		ruling[pid] = true
	}
	var opposition []*politics.Party
	for _, p := range s.SortedParties() {
		if !ruling[p.ID] {
			opposition = append(opposition, p)
		}
	}
	if len(opposition) < 3 {
		return
	}

	// Pull members out of any bloc they are in first; one full alliance
	// per party, enforced here as everywhere.
	memberIDs := make([]string, 0, len(opposition))
	for _, p := range opposition {
		if old := s.AllianceOf(p.ID); old != nil {
			old.RemoveMember(p.ID)
		}
		memberIDs = append(memberIDs, p.ID)
	}
	kept := s.Alliances[:0]
	for _, a := range s.Alliances {
		if len(a.MemberPartyIDs) >= 2 {
			kept = append(kept, a)
		}
	}
	s.Alliances = kept

	bloc := &politics.Alliance{
		ID:             uuid.NewString(),
		Name:           politics.AllianceName(s.Rand, s.allianceNames()),
		Type:           politics.AllianceFull,
		LeaderPartyID:  opposition[0].ID,
		MemberPartyIDs: memberIDs,
	}
	s.Alliances = append(s.Alliances, bloc)
	s.BigTentTriggered = true

	// Forced unity: the long years out of power override old grudges.
	for _, p := range opposition {
		for _, other := range opposition {
			if p.ID != other.ID {
				p.Relations[other.ID] = 90
			}
		}
	}
	s.DistributeAllianceSeats(bloc)
	s.EmitEvent(Event{
		Title:       "Grand opposition front",
		Description: fmt.Sprintf("After two decades under one regime, the opposition unites as %s", bloc.Name),
		Category:    "alliance",
	})
	slog.Info("big tent formed", "alliance", bloc.Name, "members", len(memberIDs))
}
