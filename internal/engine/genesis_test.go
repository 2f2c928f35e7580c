package engine

import (
	"testing"
	"time"

	"github.com/azmanhj/dewansim/internal/geo"
	"github.com/azmanhj/dewansim/internal/rng"
)

func TestBuildWorld(t *testing.T) {
	country := geo.Generate(geo.DefaultGenConfig())
	start := time.Date(1957, time.August, 31, 0, 0, 0, 0, time.UTC)
	s := BuildWorld(country, rng.New(1), start)

	if got := len(s.Parties); got != len(foundingParties) {
		t.Errorf("parties = %d, want the %d founding parties", got, len(foundingParties))
	}
	if got := len(s.Affiliations); got != len(foundingAffiliations) {
		t.Errorf("affiliations = %d, want %d", got, len(foundingAffiliations))
	}
	if got, want := len(s.Characters), charactersPerSeat*country.TotalSeats(); got != want {
		t.Errorf("characters = %d, want %d", got, want)
	}
	if got := len(s.ElectionResults); got != country.TotalSeats() {
		t.Errorf("seats filled = %d, want all %d", got, country.TotalSeats())
	}
	if len(s.Alliances) != 1 {
		t.Errorf("alliances = %d, want the founding bloc", len(s.Alliances))
	}
	if s.Government == nil {
		t.Fatal("the founding election should seat a government")
	}
	if s.SpeakerID == "" {
		t.Error("the founding election should seat a Speaker")
	}
	for _, p := range s.Parties {
		if p.LeaderID == "" {
			t.Errorf("%s has no leader at genesis", p.Name)
		}
	}
	if !s.NextElection.After(start) {
		t.Errorf("next election = %v, want after the start date", s.NextElection)
	}
	if len(s.History) != 1 {
		t.Errorf("history = %d records, want the founding election", len(s.History))
	}
}

func TestBuildWorldConsistentOwnership(t *testing.T) {
	country := geo.Generate(geo.DefaultGenConfig())
	start := time.Date(1957, time.August, 31, 0, 0, 0, 0, time.UTC)
	s := BuildWorld(country, rng.New(7), start)

	for code, pid := range s.ElectionResults {
		if s.PartyIndex[pid] == nil {
			t.Errorf("seat %s is held by unknown party %s", code, pid)
		}
	}
	owners := make(map[string]string)
	for _, p := range s.Parties {
		for _, affID := range p.AffiliationIDs {
			if prev, taken := owners[affID]; taken {
				t.Errorf("affiliation %s belongs to both %s and %s", affID, prev, p.ID)
			}
			owners[affID] = p.ID
		}
	}
	mps := 0
	for _, c := range s.Characters {
		if !c.IsMP {
			continue
		}
		mps++
		if !c.IsAlive {
			t.Errorf("dead MP %s at genesis", c.ID)
		}
		if c.CurrentSeatCode == "" {
			t.Errorf("MP %s has no seat", c.ID)
		} else if country.Get(c.CurrentSeatCode) == nil {
			t.Errorf("MP %s sits for unknown seat %s", c.ID, c.CurrentSeatCode)
		}
	}
	if mps == 0 {
		t.Error("no MPs installed at genesis")
	}
	if mps > country.TotalSeats() {
		t.Errorf("%d MPs for %d seats", mps, country.TotalSeats())
	}
}
