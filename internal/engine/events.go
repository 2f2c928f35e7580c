package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/azmanhj/dewansim/internal/politics"
	"github.com/azmanhj/dewansim/internal/rng"
)

// eventChance is the probability that a random event fires on each of
// its two monthly check days (the 1st and the 15th).
const eventChance = 0.05

// TryRandomEvent rolls for a world event on the scheduled check days.
// At most one event fires per check, and each event applies its effects
// exactly once.
func (s *Simulation) TryRandomEvent() {
	day := s.Date.Day()
	if day != 1 && day != 15 {
		return
	}
	if !s.Rand.Chance(eventChance) {
		return
	}

	switch s.Rand.IntN(4) {
	case 0:
		s.eventRacialTension()
	case 1:
		s.eventScandal()
	case 2:
		s.eventEconomicShift()
	default:
		s.eventIdeologicalWave()
	}
}

// eventRacialTension flares communal conflict in a demographically mixed
// constituency: politicians of ethnicity-focused parties rally support in
// its state, those courting every community lose ground there.
func (s *Simulation) eventRacialTension() {
	seat := s.Country.Get(s.mixedSeat())
	if seat == nil {
		return
	}
	gain := s.Rand.Range(2, 8)
	loss := s.Rand.Range(2, 8)
	for _, c := range s.Characters {
		if !c.IsAlive || c.HomeState != seat.State {
			continue
		}
		p := s.PartyOfCharacter(c)
		if p == nil {
			continue
		}
		if p.EthnicityFocus != "" {
			c.Influence = clampScore(c.Influence + gain)
		} else {
			c.Influence = clampScore(c.Influence - loss)
		}
	}
	s.EmitEvent(Event{
		Title:       "Racial tensions flare",
		Description: fmt.Sprintf("Communal incidents in %s have polarized its voters along ethnic lines", seat.Name),
		Category:    "event",
	})
	slog.Info("world event", "kind", "racial_tension", "seat", seat.Code)
}

// mixedSeat picks a random constituency where no single community holds
// 60% of the electorate, falling back to the least dominated seat when
// none qualify.
func (s *Simulation) mixedSeat() string {
	var mixed []string
	fallback := ""
	lowest := math.Inf(1)
	for _, code := range s.Country.Codes() {
		d := s.Country.Get(code).Demo
		top := math.Max(math.Max(d.PctMalay, d.PctChinese), math.Max(d.PctIndian, d.PctOthers))
		if top < 60 {
			mixed = append(mixed, code)
		}
		if top < lowest {
			lowest = top
			fallback = code
		}
	}
	if len(mixed) > 0 {
		return mixed[s.Rand.IntN(len(mixed))]
	}
	return fallback
}

// eventScandal hits a random prominent politician's standing and
// their party's unity.
func (s *Simulation) eventScandal() {
	var pool []*politics.Character
	for _, c := range s.Characters {
		if c.IsAlive && (c.IsMP || c.IsAffiliationLeader) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return
	}
	target := pool[s.Rand.IntN(len(pool))]
	target.Recognition = clampScore(target.Recognition - s.Rand.Range(10, 25))
	target.Influence = clampScore(target.Influence - s.Rand.Range(5, 15))
	target.LogHistory(s.Date, "Implicated in a corruption scandal")
	if p := s.PartyOfCharacter(target); p != nil {
		p.Unity = clampScore(p.Unity - s.Rand.Range(5, 12))
	}
	s.EmitEvent(Event{
		Title:       "Scandal",
		Description: fmt.Sprintf("%s has been implicated in a corruption scandal", target.Name),
		Category:    "event",
	})
	slog.Info("world event", "kind", "scandal", "target", target.Name)
}

// eventEconomicShift is recorded but deliberately inert: there is no
// economic model for it to act on.
func (s *Simulation) eventEconomicShift() {
	directions := []string{"boom", "downturn"}
	dir := directions[s.Rand.IntN(len(directions))]
	s.EmitEvent(Event{
		Title:       "Economic " + dir,
		Description: fmt.Sprintf("The country is experiencing an economic %s", dir),
		Category:    "event",
	})
	slog.Info("world event", "kind", "economic", "direction", dir)
}

// waveKeywords are the political currents a sentiment wave can lift.
// Matching is by affiliation name, the same way bill affinity reads them.
var waveKeywords = []string{
	"islamic", "workers", "progressive", "national", "united",
	"heritage", "liberal", "democratic",
}

// eventIdeologicalWave lifts one political current: every living character
// whose affiliation name carries the drawn keyword gains influence.
func (s *Simulation) eventIdeologicalWave() {
	keyword := rng.Pick(s.Rand, waveKeywords)
	boost := s.Rand.Range(2, 6)
	lifted := s.applyIdeologicalWave(keyword, boost)
	s.EmitEvent(Event{
		Title:       "Ideological wave",
		Description: fmt.Sprintf("A surge of %s sentiment is sweeping the country", keyword),
		Category:    "event",
	})
	slog.Info("world event", "kind", "ideological_wave", "keyword", keyword, "lifted", lifted)
}

func (s *Simulation) applyIdeologicalWave(keyword string, boost float64) int {
	lifted := 0
	for _, c := range s.Characters {
		if !c.IsAlive {
			continue
		}
		aff := s.Affiliations[c.AffiliationID]
		if aff == nil || !strings.Contains(strings.ToLower(aff.Name), keyword) {
			continue
		}
		c.Influence = clampScore(c.Influence + boost)
		lifted++
	}
	return lifted
}
