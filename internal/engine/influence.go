// The influence model: a character's effective political weight in one
// constituency. Pure and cheap — this is the hottest path in the engine,
// called for every seat, every character, every AI evaluation.
package engine

import (
	"math"

	"github.com/azmanhj/dewansim/internal/geo"
	"github.com/azmanhj/dewansim/internal/politics"
)

// EffectiveInfluence computes a character's weight in a seat. Returns a
// non-negative integer. seat may be nil (unknown code, Speaker sentinel),
// in which case only the base power applies. candidateID and allocatedAffID
// describe the contesting party's plan for the seat and may be empty.
func EffectiveInfluence(
	c *politics.Character,
	seat *geo.Constituency,
	affiliations map[string]*politics.Affiliation,
	strongholds map[string]Stronghold,
	candidateID, allocatedAffID string,
) int {
	basePower := c.Influence*0.8 + c.Recognition*0.2
	if seat == nil {
		return int(math.Round(basePower))
	}

	stateMod := 0.8
	if c.HomeState == seat.State {
		stateMod = 1.2
	}

	// Ethnicity and area use the affiliation's profile, not the
	// character's own ethnicity.
	ethnicMod := 1.0
	areaMod := 1.0
	aff := affiliations[c.AffiliationID]
	if aff != nil {
		// Flat 20% baseline appeal plus up to 80% scaled by the local
		// share of the affiliation's target group.
		ethnicMod = 0.2 + 0.8*(seat.Demo.Share(aff.Ethnicity)/100)
		switch aff.Area {
		case politics.AreaBoth:
			areaMod = 1.0
		case seat.Area():
			areaMod = 1.2
		default:
			areaMod = 0.8
		}
	}

	focusMod := 1.0
	switch {
	case candidateID != "" && candidateID == c.ID:
		focusMod = 1.25
	case allocatedAffID != "" && allocatedAffID == c.AffiliationID:
		focusMod = 1.1
	}

	strongholdMod := 1.0
	if sh, ok := strongholds[seat.Code]; ok && sh.AffiliationID == c.AffiliationID {
		strongholdMod = 1 + float64(sh.Terms)*0.1
	}

	v := basePower * stateMod * ethnicMod * focusMod * areaMod * strongholdMod
	return int(math.Round(math.Max(0, v)))
}
