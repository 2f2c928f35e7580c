// Election engine — per-seat vote simulation under FPTP and proportional
// representation, stronghold tracking, and the election history.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/azmanhj/dewansim/internal/politics"
)

// voteVariance is the independent per-party per-seat swing band.
const voteVariance = 0.15

// ElectionRecord is an append-only historical snapshot of one general
// election, retained for swing computation and display.
type ElectionRecord struct {
	Date        time.Time                 `json:"date"`
	System      ElectoralSystem           `json:"system"`
	Results     map[string]string         `json:"results"`      // seat -> winning party
	Tallies     map[string]map[string]int `json:"tallies"`      // seat -> party -> votes
	SeatWinners map[string]string         `json:"seat_winners"` // seat -> candidate
	PartySeats  map[string]int            `json:"party_seats"`
	Turnout     float64                   `json:"turnout"`

	// Snapshots for later swing computation.
	PartyNames      map[string]string   `json:"party_names"`
	AllianceMembers map[string][]string `json:"alliance_members"`
}

// seatTally is the simulated vote in one constituency.
type seatTally struct {
	votes      map[string]int     // party -> votes
	shares     map[string]float64 // party -> vote share
	validVotes int
	turnout    float64
}

// ConductGeneralElection runs a full general election: seat plans are
// rebuilt, every seat is simulated, seats are allocated under the current
// electoral system, strongholds update, and a new government forms.
func (s *Simulation) ConductGeneralElection() *ElectionRecord {
	s.BuildSeatPlans()
	codes := s.Country.Codes()

	tallies := make(map[string]seatTally, len(codes))
	turnoutSum := 0.0
	for _, code := range codes {
		t := s.simulateSeat(code)
		tallies[code] = t
		turnoutSum += t.turnout
	}

	var results map[string]string
	var seatWinners map[string]string
	if s.System == SystemPR {
		results = s.allocateProportional(codes, tallies)
	} else {
		results = s.allocateFPTP(codes, tallies)
	}
	seatWinners = s.resolveSeatWinners(results)

	s.updateStrongholds(results, seatWinners)
	s.ElectionResults = results
	s.installMPs(seatWinners)

	record := &ElectionRecord{
		Date:        s.Date,
		System:      s.System,
		Results:     copyStringMap(results),
		Tallies:     make(map[string]map[string]int, len(codes)),
		SeatWinners: copyStringMap(seatWinners),
		PartySeats:  make(map[string]int),
		Turnout:     turnoutSum / float64(len(codes)),
		PartyNames:  make(map[string]string, len(s.Parties)),
		AllianceMembers: func() map[string][]string {
			m := make(map[string][]string, len(s.Alliances))
			for _, a := range s.Alliances {
				m[a.Name] = append([]string(nil), a.MemberPartyIDs...)
			}
			return m
		}(),
	}
	for code, t := range tallies {
		record.Tallies[code] = t.votes
	}
	for _, pid := range results {
		record.PartySeats[pid]++
	}
	for _, p := range s.Parties {
		record.PartyNames[p.ID] = p.Name
	}
	s.History = append(s.History, *record)
	s.Stats.LastTurnout = record.Turnout

	s.FormGovernment(nil)
	s.ElectSpeaker("")

	slog.Info("general election concluded",
		"date", s.Date.Format("2006-01-02"),
		"system", s.System,
		"turnout", fmt.Sprintf("%.1f%%", record.Turnout*100),
		"seats", len(results),
	)
	s.EmitEvent(Event{
		Title:       "General election",
		Description: fmt.Sprintf("A general election has been held under %s", s.System),
		Category:    "election",
	})
	return record
}

// simulateSeat computes each contesting party's votes in one seat. A
// character campaigns for their own party when it contests the seat, or
// for the bloc-mate contesting it — allied support never splits.
func (s *Simulation) simulateSeat(code string) seatTally {
	seat := s.Country.Get(code)
	affParty := s.AffiliationParty()

	raw := make(map[string]float64)
	for _, c := range s.Characters {
		if !c.IsAlive || c.CurrentSeatCode == politics.SeatSpeaker {
			continue
		}
		party := affParty[c.AffiliationID]
		if party == nil {
			continue
		}
		target := party
		plan, contested := party.ContestedSeats[code]
		if !contested {
			target = nil
			if bloc := s.AnyAllianceOf(party.ID); bloc != nil {
				for _, mid := range bloc.MemberPartyIDs {
					mate := s.PartyIndex[mid]
					if mate == nil {
						continue
					}
					if mp, ok := mate.ContestedSeats[code]; ok {
						target, plan = mate, mp
						break
					}
				}
			}
		}
		if target == nil {
			continue
		}
		raw[target.ID] += float64(EffectiveInfluence(c, seat, s.Affiliations, s.Strongholds, plan.CandidateID, plan.AllocatedAffiliationID))
	}

	// Independent ±15% swing per party, then normalize to shares. Drawn
	// in key order so a fixed seed replays the same swings.
	adjusted := make(map[string]float64, len(raw))
	total := 0.0
	for _, pid := range sortedKeys(raw) {
		adj := raw[pid] * (1 + s.Rand.Range(-voteVariance, voteVariance))
		if adj < 0 {
			adj = 0
		}
		adjusted[pid] = adj
		total += adj
	}

	turnout := s.Rand.Range(0.65, 0.85)
	electorate := 0
	if seat != nil {
		electorate = seat.Demo.Electorate
	}
	validVotes := int(float64(electorate) * turnout)

	t := seatTally{
		votes:      make(map[string]int, len(adjusted)),
		shares:     make(map[string]float64, len(adjusted)),
		validVotes: validVotes,
		turnout:    turnout,
	}
	for pid, adj := range adjusted {
		share := 0.0
		if total > 0 {
			share = adj / total
		}
		t.shares[pid] = share
		t.votes[pid] = int(share * float64(validVotes))
	}
	return t
}

// allocateFPTP gives each seat to its plurality winner. Ties break on the
// lowest party ID.
func (s *Simulation) allocateFPTP(codes []string, tallies map[string]seatTally) map[string]string {
	results := make(map[string]string, len(codes))
	for _, code := range codes {
		t := tallies[code]
		winner := ""
		bestVotes := -1
		for _, pid := range sortedKeys(t.votes) {
			if v := t.votes[pid]; v > bestVotes {
				bestVotes = v
				winner = pid
			}
		}
		if winner != "" {
			results[code] = winner
		}
	}
	return results
}

// allocateProportional applies largest-remainder national quotas, then
// hands each seat to the quota-holding party with the best local vote
// percentage, backfilling first-fit so no seat goes unfilled.
func (s *Simulation) allocateProportional(codes []string, tallies map[string]seatTally) map[string]string {
	totalSeats := len(codes)

	national := make(map[string]int)
	grandTotal := 0
	for _, t := range tallies {
		for pid, v := range t.votes {
			national[pid] += v
			grandTotal += v
		}
	}
	if grandTotal == 0 {
		return map[string]string{}
	}

	// Integer quotas by floor of proportional share, leftovers to the
	// largest fractional remainders.
	type quotaEntry struct {
		pid       string
		quota     int
		remainder float64
	}
	entries := make([]quotaEntry, 0, len(national))
	allocated := 0
	for _, pid := range sortedKeys(national) {
		exact := float64(national[pid]) / float64(grandTotal) * float64(totalSeats)
		q := int(math.Floor(exact))
		entries = append(entries, quotaEntry{pid: pid, quota: q, remainder: exact - float64(q)})
		allocated += q
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].remainder != entries[j].remainder {
			return entries[i].remainder > entries[j].remainder
		}
		return entries[i].pid < entries[j].pid
	})
	for i := 0; allocated < totalSeats && i < len(entries); i++ {
		entries[i].quota++
		allocated++
	}

	quotas := make(map[string]int, len(entries))
	for _, e := range entries {
		quotas[e.pid] = e.quota
	}

	// Greedy assignment: best local percentage first, respecting quotas.
	type perf struct {
		pid   string
		code  string
		share float64
	}
	var perfs []perf
	for _, code := range codes {
		for pid, share := range tallies[code].shares {
			perfs = append(perfs, perf{pid: pid, code: code, share: share})
		}
	}
	sort.SliceStable(perfs, func(i, j int) bool {
		if perfs[i].share != perfs[j].share {
			return perfs[i].share > perfs[j].share
		}
		if perfs[i].code != perfs[j].code {
			return perfs[i].code < perfs[j].code
		}
		return perfs[i].pid < perfs[j].pid
	})

	results := make(map[string]string, totalSeats)
	for _, pf := range perfs {
		if quotas[pf.pid] <= 0 {
			continue
		}
		if _, taken := results[pf.code]; taken {
			continue
		}
		results[pf.code] = pf.pid
		quotas[pf.pid]--
	}

	// First-fit backfill: quotas sum to the seat count, so every seat
	// still open can be filled by someone with quota remaining.
	for _, code := range codes {
		if _, taken := results[code]; taken {
			continue
		}
		for _, e := range entries {
			if quotas[e.pid] > 0 {
				results[code] = e.pid
				quotas[e.pid]--
				break
			}
		}
	}
	return results
}

// resolveSeatWinners finds the winning candidate per seat from the
// winner's seat plan, falling back to the party's best fit.
func (s *Simulation) resolveSeatWinners(results map[string]string) map[string]string {
	winners := make(map[string]string, len(results))
	for code, pid := range results {
		p := s.PartyIndex[pid]
		if p == nil {
			continue
		}
		if plan, ok := p.ContestedSeats[code]; ok && plan.CandidateID != "" {
			if c := s.CharacterIndex[plan.CandidateID]; c != nil && c.IsAlive {
				winners[code] = plan.CandidateID
				continue
			}
		}
		if plan := s.bestSeatPlan(p, code); plan.CandidateID != "" {
			winners[code] = plan.CandidateID
		}
	}
	return winners
}

// updateStrongholds advances the consecutive-win counters: same
// affiliation again increments terms, a new affiliation resets to one
// term, a seat won without an identifiable candidate clears the record.
func (s *Simulation) updateStrongholds(results map[string]string, seatWinners map[string]string) {
	for code := range results {
		candID, ok := seatWinners[code]
		if !ok {
			delete(s.Strongholds, code)
			continue
		}
		cand := s.CharacterIndex[candID]
		if cand == nil {
			delete(s.Strongholds, code)
			continue
		}
		if sh, held := s.Strongholds[code]; held && sh.AffiliationID == cand.AffiliationID {
			sh.Terms++
			s.Strongholds[code] = sh
		} else {
			s.Strongholds[code] = Stronghold{AffiliationID: cand.AffiliationID, Terms: 1}
		}
	}
}

// installMPs moves the winning candidates into their seats and refreshes
// the MP flags across the roster.
func (s *Simulation) installMPs(seatWinners map[string]string) {
	for _, c := range s.Characters {
		c.IsMP = false
	}
	for code, candID := range seatWinners {
		c := s.CharacterIndex[candID]
		if c == nil || !c.IsAlive {
			continue
		}
		c.IsMP = true
		if c.CurrentSeatCode != code {
			c.CurrentSeatCode = code
		}
		c.LogHistory(s.Date, fmt.Sprintf("Elected Member of Parliament for %s", code))
	}
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
