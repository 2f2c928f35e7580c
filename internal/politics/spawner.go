// Character spawning — bulk NPC generation at game start and successor
// generation when an MP dies.
package politics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/azmanhj/dewansim/internal/rng"
)

// Spawner creates characters for the simulation.
type Spawner struct {
	rn *rng.Rand
}

// NewSpawner creates a character spawner drawing from the given source.
func NewSpawner(rn *rng.Rand) *Spawner {
	return &Spawner{rn: rn}
}

// NewCharacter creates a starting-roster politician tied to a seat and an
// affiliation. Ideology sits near the affiliation's base position.
func (s *Spawner) NewCharacter(now time.Time, seatCode, state string, aff *Affiliation) *Character {
	age := 30 + s.rn.IntN(36) // 30–65 at game start
	return &Character{
		ID:              uuid.NewString(),
		Name:            CharacterName(s.rn, aff.Ethnicity),
		CurrentSeatCode: seatCode,
		AffiliationID:   aff.ID,
		Ethnicity:       aff.Ethnicity,
		HomeState:       state,
		Charisma:        s.rn.Range(20, 90),
		Influence:       s.rn.Range(20, 85),
		Recognition:     s.rn.Range(10, 80),
		DateOfBirth:     birthday(s.rn, now, age),
		IsAlive:         true,
		Ideology: Ideology{
			Economic:   aff.BaseIdeology.Economic + s.rn.Range(-15, 15),
			Governance: aff.BaseIdeology.Governance + s.rn.Range(-15, 15),
		}.Clamp(),
	}
}

// Successor creates the replacement for a dead character: same seat,
// affiliation, and state; age 25–50; ideology within ±10 of the deceased
// on both axes; fresh randomized stats.
func (s *Spawner) Successor(now time.Time, deceased *Character) *Character {
	age := 25 + s.rn.IntN(26)
	succ := &Character{
		ID:              uuid.NewString(),
		Name:            CharacterName(s.rn, deceased.Ethnicity),
		CurrentSeatCode: deceased.CurrentSeatCode,
		AffiliationID:   deceased.AffiliationID,
		Ethnicity:       deceased.Ethnicity,
		HomeState:       deceased.HomeState,
		Charisma:        s.rn.Range(20, 90),
		Influence:       s.rn.Range(15, 70),
		Recognition:     s.rn.Range(5, 60),
		DateOfBirth:     birthday(s.rn, now, age),
		IsAlive:         true,
		Ideology: Ideology{
			Economic:   deceased.Ideology.Economic + s.rn.Range(-10, 10),
			Governance: deceased.Ideology.Governance + s.rn.Range(-10, 10),
		}.Clamp(),
	}
	succ.LogHistory(now, fmt.Sprintf("Entered politics following the death of %s", deceased.Name))
	return succ
}

// birthday returns a date of birth for someone turning the given age this
// year, with a random day offset so birthdays spread across the calendar.
func birthday(rn *rng.Rand, now time.Time, age int) time.Time {
	dob := now.AddDate(-age, 0, 0)
	return dob.AddDate(0, 0, -rn.IntN(364))
}
