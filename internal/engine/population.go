package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/azmanhj/dewansim/internal/politics"
)

// mortalitySampleRate is the share of the living population checked
// against the hazard table each day. Sampling keeps the daily pass
// cheap without changing the long-run death rate much.
const mortalitySampleRate = 0.25

// urbanGrowthRate and ruralGrowthRate are monthly electorate growth
// factors applied on the first of each month.
const (
	urbanGrowthRate = 0.004
	ruralGrowthRate = 0.002
)

// dailyHazard returns the probability that a character of the given age
// dies on the day it is sampled.
func dailyHazard(age int) float64 {
	switch {
	case age < 50:
		return 0.000005
	case age < 60:
		return 0.00001
	case age < 70:
		return 0.00005
	case age < 80:
		return 0.0015
	case age < 90:
		return 0.005
	default:
		return 0.02
	}
}

// ProcessMortality samples a quarter of the living population and rolls
// each sampled character against the age hazard table. Deaths are
// resolved immediately: a successor spawns into the deceased's
// affiliation and the vacancy passes run before the tick continues.
func (s *Simulation) ProcessMortality() {
	living := make([]*politics.Character, 0, len(s.Characters))
	for _, c := range s.Characters {
		if c.IsAlive {
			living = append(living, c)
		}
	}
	s.Rand.Shuffle(len(living), func(i, j int) { living[i], living[j] = living[j], living[i] })

	sample := int(float64(len(living)) * mortalitySampleRate)
	died := false
	for _, c := range living[:sample] {
		if !s.Rand.Chance(dailyHazard(c.Age(s.Date))) {
			continue
		}
		s.handleDeath(c)
		died = true
	}
	if died {
		s.CleanupPoliticalVacancies()
		s.CleanupGovernmentVacancies()
	}
}

func (s *Simulation) handleDeath(c *politics.Character) {
	age := c.Age(s.Date)
	c.IsAlive = false
	c.LogHistory(s.Date, fmt.Sprintf("Died at age %d", age))
	slog.Info("character died", "name", c.Name, "age", age, "affiliation", c.AffiliationID)

	wasMP := c.IsMP
	seat := c.CurrentSeatCode
	c.IsMP = false
	c.CurrentSeatCode = ""

	desc := fmt.Sprintf("%s has died at age %d", c.Name, age)
	if wasMP && seat != "" && seat != politics.SeatSpeaker {
		desc += fmt.Sprintf(", vacating the %s seat", seat)
	}
	s.EmitEvent(Event{Title: "Death", Description: desc, Category: "population"})

	// A replacement enters the same affiliation so its bench never
	// empties out, and inherits any vacated constituency seat.
	if s.Affiliations[c.AffiliationID] != nil {
		heir := s.Spawner.Successor(s.Date, c)
		s.AddCharacter(heir)
		if wasMP && seat != "" && seat != politics.SeatSpeaker {
			heir.IsMP = true
			heir.CurrentSeatCode = seat
			heir.LogHistory(s.Date, fmt.Sprintf("Assumed the %s seat", seat))
		}
	}
	s.Stats.Deaths++
}

// GrowElectorates applies monthly electorate growth, rounding up so
// even the smallest seats grow.
func (s *Simulation) GrowElectorates() {
	for _, code := range s.Country.Codes() {
		seat := s.Country.Get(code)
		rate := ruralGrowthRate
		if seat.Urban {
			rate = urbanGrowthRate
		}
		seat.Demo.Electorate += int(math.Ceil(float64(seat.Demo.Electorate) * rate))
	}
}
