package politics

import (
	"strings"
	"testing"
	"time"

	"github.com/azmanhj/dewansim/internal/rng"
)

func TestCharacterNameByEthnicity(t *testing.T) {
	rn := rng.New(1)
	for _, e := range AllEthnicities {
		name := CharacterName(rn, e)
		if strings.TrimSpace(name) == "" {
			t.Errorf("empty name for %s", e)
		}
		if !strings.Contains(name, " ") {
			t.Errorf("name %q for %s has no family part", name, e)
		}
	}
	// Unknown groups draw from the generic pools instead of panicking.
	if name := CharacterName(rn, Ethnicity("Martian")); name == "" {
		t.Error("unknown ethnicity should still produce a name")
	}
}

func TestPartyNameAvoidsNearDuplicates(t *testing.T) {
	rn := rng.New(7)
	var taken []string
	for i := 0; i < 30; i++ {
		name := PartyName(rn, taken)
		for _, prior := range taken {
			if strings.EqualFold(name, prior) {
				t.Fatalf("duplicate party name %q generated", name)
			}
		}
		taken = append(taken, name)
	}
}

func TestAllianceNameAvoidsNearDuplicates(t *testing.T) {
	rn := rng.New(7)
	var taken []string
	for i := 0; i < 10; i++ {
		name := AllianceName(rn, taken)
		for _, prior := range taken {
			if strings.EqualFold(name, prior) {
				t.Fatalf("duplicate alliance name %q generated", name)
			}
		}
		taken = append(taken, name)
	}
}

func TestCharacterAge(t *testing.T) {
	rn := rng.New(3)
	sp := NewSpawner(rn)
	now := time.Date(1960, time.June, 10, 0, 0, 0, 0, time.UTC)
	aff := &Affiliation{ID: "aff-1", Name: "Test", Ethnicity: EthMalay, Area: AreaRural}
	for i := 0; i < 50; i++ {
		c := sp.NewCharacter(now, "P001", "Kedah", aff)
		if age := c.Age(now); age < 30 || age > 66 {
			t.Errorf("starting age = %d, want within [30, 66]", age)
		}
	}
}
