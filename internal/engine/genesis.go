// World genesis: the founding affiliations, parties, and politicians at
// game start, plus the inaugural elections that give the country its
// first parliament.
package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/azmanhj/dewansim/internal/geo"
	"github.com/azmanhj/dewansim/internal/politics"
	"github.com/azmanhj/dewansim/internal/rng"
)

// charactersPerSeat is how many politicians spawn in each constituency
// at genesis, drawn from affiliations matching its demographics.
const charactersPerSeat = 3

type foundingAffiliation struct {
	name      string
	ethnicity politics.Ethnicity
	area      politics.Area
	ideology  politics.Ideology
}

type foundingParty struct {
	name        string
	color       string
	focus       politics.Ethnicity
	affiliation int // index into the founding affiliation table
}

var foundingAffiliations = []foundingAffiliation{
	{"United Malay Movement", politics.EthMalay, politics.AreaRural, politics.Ideology{Economic: 40, Governance: 65}},
	{"Islamic Revival League", politics.EthMalay, politics.AreaRural, politics.Ideology{Economic: 35, Governance: 82}},
	{"Chinese Chamber Guilds", politics.EthChinese, politics.AreaUrban, politics.Ideology{Economic: 72, Governance: 48}},
	{"Chinese Workers Brotherhood", politics.EthChinese, politics.AreaUrban, politics.Ideology{Economic: 22, Governance: 38}},
	{"Tamil Estate Congress", politics.EthIndian, politics.AreaRural, politics.Ideology{Economic: 38, Governance: 50}},
	{"Progressive Citizens Circle", politics.EthOthers, politics.AreaBoth, politics.Ideology{Economic: 45, Governance: 30}},
	{"North Bornean Heritage Front", politics.EthBornean, politics.AreaRural, politics.Ideology{Economic: 48, Governance: 55}},
	{"Sarawak River Communities Union", politics.EthSarawak, politics.AreaRural, politics.Ideology{Economic: 50, Governance: 52}},
}

var foundingParties = []foundingParty{
	{"National Unity Organisation", "#e63946", politics.EthMalay, 0},
	{"Islamic Path Party", "#2a9d8f", politics.EthMalay, 1},
	{"Merchant Association Party", "#457b9d", politics.EthChinese, 2},
	{"Labour Action Party", "#b5179e", politics.EthChinese, 3},
	{"Estate Congress Party", "#f4a261", politics.EthIndian, 4},
	{"Progressive Front", "#6d597a", "", 5},
	{"Bornean Heritage Party", "#386641", politics.EthBornean, 6},
	{"Sarawak United Party", "#bc6c25", politics.EthSarawak, 7},
}

// initialAllianceMembers indexes foundingParties: the communal parties
// that open the game in a governing bloc.
var initialAllianceMembers = []int{0, 2, 4}

// BuildWorld creates a fully populated simulation: country, founding
// affiliations and parties, a politician roster sized to the seat map,
// party leaderships, the opening alliance, and an inaugural general
// election. The returned simulation is ready to tick.
func BuildWorld(country *geo.Country, rn *rng.Rand, start time.Time) *Simulation {
	s := NewSimulation(country, rn, start)

	affIDs := make([]string, len(foundingAffiliations))
	for i, fa := range foundingAffiliations {
		aff := &politics.Affiliation{
			ID:           uuid.NewString(),
			Name:         fa.name,
			Ethnicity:    fa.ethnicity,
			Area:         fa.area,
			BaseIdeology: fa.ideology,
			Ideology:     fa.ideology,
		}
		s.Affiliations[aff.ID] = aff
		affIDs[i] = aff.ID
	}

	partyIDs := make([]string, len(foundingParties))
	for i, fp := range foundingParties {
		p := &politics.Party{
			ID:             uuid.NewString(),
			Name:           fp.name,
			Color:          fp.color,
			AffiliationIDs: []string{affIDs[fp.affiliation]},
			EthnicityFocus: fp.focus,
			StateBranches:  make(map[string]*politics.StateBranch),
			ContestedSeats: make(map[string]politics.SeatPlan),
			Relations:      make(map[string]float64),
			Unity:          rn.Range(60, 85),
		}
		s.AddParty(p)
		partyIDs[i] = p.ID
	}

	s.spawnRoster(affIDs)

	s.RefreshIdeologies()
	s.RefreshAffiliationLeaders()

	alliance := &politics.Alliance{
		ID:            uuid.NewString(),
		Name:          politics.AllianceName(rn, nil),
		Type:          politics.AllianceFull,
		LeaderPartyID: partyIDs[initialAllianceMembers[0]],
	}
	for _, idx := range initialAllianceMembers {
		alliance.MemberPartyIDs = append(alliance.MemberPartyIDs, partyIDs[idx])
	}
	s.Alliances = append(s.Alliances, alliance)

	s.InitializePartyRelations()
	s.RunPartyElections()

	s.NextPartyElection = start.AddDate(3, 0, 0)
	s.ConductGeneralElection()
	s.NextElection = s.Date.AddDate(5, 0, 0)

	slog.Info("world created",
		"seats", country.TotalSeats(),
		"characters", len(s.Characters),
		"parties", len(s.Parties),
		"alliance", alliance.Name)
	return s
}

// spawnRoster fills every constituency with politicians drawn from the
// affiliations its demographics favour.
func (s *Simulation) spawnRoster(affIDs []string) {
	for _, code := range s.Country.Codes() {
		seat := s.Country.Get(code)
		for i := 0; i < charactersPerSeat; i++ {
			aff := s.Affiliations[s.pickAffiliation(affIDs, seat)]
			c := s.Spawner.NewCharacter(s.Date, code, seat.State, aff)
			s.AddCharacter(c)
		}
	}
}

// pickAffiliation samples an affiliation weighted by the seat's ethnic
// shares, with area fit doubling the weight. Bornean and Sarawak
// affiliations only appear in their own states.
func (s *Simulation) pickAffiliation(affIDs []string, seat *geo.Constituency) string {
	weights := make([]float64, len(affIDs))
	total := 0.0
	for i, id := range affIDs {
		aff := s.Affiliations[id]
		switch aff.Ethnicity {
		case politics.EthBornean:
			if seat.State != "Sabah" {
				continue
			}
		case politics.EthSarawak:
			if seat.State != "Sarawak" {
				continue
			}
		}
		w := seat.Demo.Share(aff.Ethnicity)
		if w <= 0 {
			continue
		}
		if aff.Area == politics.AreaBoth || aff.Area == seat.Area() {
			w *= 2
		}
		weights[i] = w
		total += w
	}
	if total == 0 {
		return affIDs[s.Rand.IntN(len(affIDs))]
	}
	roll := s.Rand.Float() * total
	for i, w := range weights {
		roll -= w
		if roll < 0 && w > 0 {
			return affIDs[i]
		}
	}
	return affIDs[len(affIDs)-1]
}
