package engine

import (
	"fmt"
	"time"

	"github.com/azmanhj/dewansim/internal/geo"
	"github.com/azmanhj/dewansim/internal/politics"
	"github.com/azmanhj/dewansim/internal/rng"
)

// testStart is a mid-month date, so a single advanced day triggers none of
// the scheduled passes.
var testStart = time.Date(1960, time.June, 10, 0, 0, 0, 0, time.UTC)

func testCountry(seats int) *geo.Country {
	country := &geo.Country{Constituencies: make(map[string]*geo.Constituency, seats)}
	for i := 1; i <= seats; i++ {
		code := fmt.Sprintf("P%03d", i)
		country.Constituencies[code] = &geo.Constituency{
			Code:  code,
			Name:  "Seat " + code,
			State: "Kedah",
			Demo:  geo.Demographics{Electorate: 30000, PctMalay: 100},
		}
	}
	return country
}

func testSim(seed int64, seats int) *Simulation {
	s := NewSimulation(testCountry(seats), rng.New(seed), testStart)
	s.NextElection = testStart.AddDate(5, 0, 0)
	s.NextPartyElection = testStart.AddDate(3, 0, 0)
	return s
}

func addAff(s *Simulation, id, name string, eth politics.Ethnicity, ideo politics.Ideology) *politics.Affiliation {
	aff := &politics.Affiliation{
		ID:           id,
		Name:         name,
		Ethnicity:    eth,
		Area:         politics.AreaRural,
		BaseIdeology: ideo,
		Ideology:     ideo,
	}
	s.Affiliations[id] = aff
	return aff
}

func addParty(s *Simulation, id, name string, focus politics.Ethnicity, affIDs ...string) *politics.Party {
	p := &politics.Party{
		ID:             id,
		Name:           name,
		Color:          "#123456",
		AffiliationIDs: append([]string(nil), affIDs...),
		EthnicityFocus: focus,
		Relations:      make(map[string]float64),
		StateBranches:  make(map[string]*politics.StateBranch),
		ContestedSeats: make(map[string]politics.SeatPlan),
		Unity:          70,
		Ideology:       politics.Ideology{Economic: 50, Governance: 50},
	}
	s.AddParty(p)
	return p
}

func addMember(s *Simulation, id, affID string, influence float64) *politics.Character {
	aff := s.Affiliations[affID]
	c := &politics.Character{
		ID:            id,
		Name:          "Member " + id,
		AffiliationID: affID,
		Ethnicity:     aff.Ethnicity,
		HomeState:     "Kedah",
		Charisma:      40,
		Influence:     influence,
		Recognition:   50,
		DateOfBirth:   testStart.AddDate(-40, 0, 0),
		IsAlive:       true,
		Ideology:      aff.Ideology,
	}
	s.AddCharacter(c)
	return c
}

// seatMP puts a character in a seat and records the party as its holder.
func seatMP(s *Simulation, c *politics.Character, code, partyID string) {
	c.IsMP = true
	c.CurrentSeatCode = code
	s.ElectionResults[code] = partyID
}
