// Synthetic country generation — noise-driven urbanization and ethnic-share
// gradients, used when no demographics CSV is supplied.
package geo

import (
	"fmt"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig controls synthetic country generation.
type GenConfig struct {
	Seed int64
	// SeatsPerState maps state name to seat count. Order-independent;
	// codes are derived from the state's position in lexical order.
	SeatsPerState map[string]int
}

// DefaultGenConfig returns a 13-state, 120-seat country in the shape of a
// Malayan federation: two Bornean states with large native populations,
// west-coast states with big urban Chinese minorities.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed: 1,
		SeatsPerState: map[string]int{
			"Perlis": 2, "Kedah": 10, "Kelantan": 9, "Terengganu": 7,
			"Penang": 9, "Perak": 14, "Pahang": 9, "Selangor": 15,
			"Negeri Sembilan": 6, "Melaka": 4, "Johor": 16,
			"Sabah": 10, "Sarawak": 9,
		},
	}
}

// stateProfile biases the noise fields per state.
type stateProfile struct {
	urbanBias   float64 // added to the urbanization field
	chineseBias float64
	indianBias  float64
	othersBias  float64
}

var stateProfiles = map[string]stateProfile{
	"Penang":          {urbanBias: 0.45, chineseBias: 28, indianBias: 6},
	"Selangor":        {urbanBias: 0.4, chineseBias: 18, indianBias: 9},
	"Perak":           {urbanBias: 0.1, chineseBias: 16, indianBias: 8},
	"Johor":           {urbanBias: 0.1, chineseBias: 16, indianBias: 4},
	"Melaka":          {urbanBias: 0.15, chineseBias: 14, indianBias: 4},
	"Negeri Sembilan": {urbanBias: 0.05, chineseBias: 12, indianBias: 8},
	"Kedah":           {urbanBias: -0.15, chineseBias: 6, indianBias: 4},
	"Kelantan":        {urbanBias: -0.3, chineseBias: 2, indianBias: 1},
	"Terengganu":      {urbanBias: -0.3, chineseBias: 2, indianBias: 1},
	"Pahang":          {urbanBias: -0.2, chineseBias: 8, indianBias: 3},
	"Perlis":          {urbanBias: -0.2, chineseBias: 4, indianBias: 1},
	"Sabah":           {urbanBias: -0.15, chineseBias: 9, othersBias: 12},
	"Sarawak":         {urbanBias: -0.15, chineseBias: 14, othersBias: 8},
}

// Generate builds a synthetic Country from noise fields. Deterministic for
// a given config.
func Generate(cfg GenConfig) *Country {
	urban := opensimplex.NewNormalized(cfg.Seed)
	chinese := opensimplex.NewNormalized(cfg.Seed + 1)
	indian := opensimplex.NewNormalized(cfg.Seed + 2)
	elect := opensimplex.NewNormalized(cfg.Seed + 3)

	states := make([]string, 0, len(cfg.SeatsPerState))
	for s := range cfg.SeatsPerState {
		states = append(states, s)
	}
	sort.Strings(states)

	country := &Country{Constituencies: make(map[string]*Constituency)}
	seatNo := 0
	for si, state := range states {
		prof := stateProfiles[state]
		for i := 0; i < cfg.SeatsPerState[state]; i++ {
			seatNo++
			x := float64(i) * 0.35
			y := float64(si) * 0.7

			urbanScore := urban.Eval2(x, y) + prof.urbanBias
			isUrban := urbanScore > 0.55

			// Ethnic shares: noise concentration scaled by the state bias,
			// boosted in urban seats, remainder to the majority group.
			pctChinese := chinese.Eval2(x, y) * (prof.chineseBias + 4) * 2
			if isUrban {
				pctChinese *= 1.5
			}
			pctIndian := indian.Eval2(x+7, y+7) * (prof.indianBias + 1) * 2
			pctOthers := 1 + prof.othersBias*urban.Eval2(x+13, y+13)
			total := pctChinese + pctIndian + pctOthers
			if total > 85 {
				scale := 85 / total
				pctChinese *= scale
				pctIndian *= scale
				pctOthers *= scale
				total = 85
			}
			pctMalay := 100 - total

			size := 15000 + int(elect.Eval2(x+3, y+3)*35000)
			if isUrban {
				size = 40000 + int(elect.Eval2(x+3, y+3)*50000)
			}

			code := fmt.Sprintf("P%03d", seatNo)
			country.Constituencies[code] = &Constituency{
				Code:  code,
				Name:  fmt.Sprintf("%s %d", state, i+1),
				State: state,
				Urban: isUrban,
				Demo: Demographics{
					Electorate: size,
					PctMalay:   round1(pctMalay),
					PctChinese: round1(pctChinese),
					PctIndian:  round1(pctIndian),
					PctOthers:  round1(pctOthers),
				},
			}
		}
	}
	return country
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
