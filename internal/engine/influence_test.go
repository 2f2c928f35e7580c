package engine

import (
	"testing"

	"github.com/azmanhj/dewansim/internal/geo"
	"github.com/azmanhj/dewansim/internal/politics"
)

func influenceFixture() (*politics.Character, *geo.Constituency, map[string]*politics.Affiliation) {
	aff := &politics.Affiliation{
		ID:        "aff-1",
		Name:      "Test Affiliation",
		Ethnicity: politics.EthMalay,
		Area:      politics.AreaRural,
	}
	c := &politics.Character{
		ID:            "char-1",
		AffiliationID: "aff-1",
		HomeState:     "Kedah",
		Influence:     50,
		Recognition:   50,
		IsAlive:       true,
	}
	seat := &geo.Constituency{
		Code:  "P001",
		State: "Kedah",
		Urban: false,
		Demo:  geo.Demographics{Electorate: 30000, PctMalay: 100},
	}
	return c, seat, map[string]*politics.Affiliation{"aff-1": aff}
}

func TestEffectiveInfluenceBasePowerOnly(t *testing.T) {
	c, _, affs := influenceFixture()
	// No seat metadata: round(50*0.8 + 50*0.2) = 50.
	if got := EffectiveInfluence(c, nil, affs, nil, "", ""); got != 50 {
		t.Errorf("EffectiveInfluence(nil seat) = %d, want 50", got)
	}
}

func TestEffectiveInfluenceAllModifiersFavourable(t *testing.T) {
	c, seat, affs := influenceFixture()
	strongholds := map[string]Stronghold{
		"P001": {AffiliationID: "aff-1", Terms: 2},
	}
	// base 50, state 1.2, ethnicity 0.2+0.8*1 = 1.0, area 1.2 (rural match),
	// focus 1.25 (candidate), stronghold 1.2 → 50*1.2*1.0*1.25*1.2*1.2 = 108.
	got := EffectiveInfluence(c, seat, affs, strongholds, "char-1", "aff-1")
	if got != 108 {
		t.Errorf("EffectiveInfluence = %d, want 108", got)
	}
}

func TestEffectiveInfluenceModifierTable(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *politics.Character, seat *geo.Constituency, affs map[string]*politics.Affiliation)
		candID  string
		allocID string
		want    int
	}{
		{
			name:   "wrong state penalized",
			mutate: func(c *politics.Character, _ *geo.Constituency, _ map[string]*politics.Affiliation) { c.HomeState = "Johor" },
			// 50 * 0.8 * 1.0 * 1.0 * 1.2 = 48
			want: 48,
		},
		{
			name: "ethnicity floor at twenty percent",
			mutate: func(_ *politics.Character, seat *geo.Constituency, _ map[string]*politics.Affiliation) {
				seat.Demo.PctMalay = 0
			},
			// 50 * 1.2 * 0.2 * 1.2 = 14.4 → 14
			want: 14,
		},
		{
			name: "area mismatch",
			mutate: func(_ *politics.Character, seat *geo.Constituency, _ map[string]*politics.Affiliation) {
				seat.Urban = true
			},
			// 50 * 1.2 * 1.0 * 0.8 = 48
			want: 48,
		},
		{
			name: "area both is neutral",
			mutate: func(_ *politics.Character, _ *geo.Constituency, affs map[string]*politics.Affiliation) {
				affs["aff-1"].Area = politics.AreaBoth
			},
			// 50 * 1.2 * 1.0 * 1.0 = 60
			want: 60,
		},
		{
			name:    "allocated affiliation focus",
			mutate:  func(_ *politics.Character, _ *geo.Constituency, _ map[string]*politics.Affiliation) {},
			allocID: "aff-1",
			// 50 * 1.2 * 1.0 * 1.1 * 1.2 = 79.2 → 79
			want: 79,
		},
		{
			name:    "designated candidate focus",
			mutate:  func(_ *politics.Character, _ *geo.Constituency, _ map[string]*politics.Affiliation) {},
			candID:  "char-1",
			allocID: "aff-1",
			// 50 * 1.2 * 1.0 * 1.25 * 1.2 = 90
			want: 90,
		},
		{
			name:   "no plan no focus",
			mutate: func(_ *politics.Character, _ *geo.Constituency, _ map[string]*politics.Affiliation) {},
			// 50 * 1.2 * 1.0 * 1.0 * 1.2 = 72
			want: 72,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, seat, affs := influenceFixture()
			tt.mutate(c, seat, affs)
			got := EffectiveInfluence(c, seat, affs, nil, tt.candID, tt.allocID)
			if got != tt.want {
				t.Errorf("EffectiveInfluence = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEffectiveInfluenceStrongholdScalesWithTerms(t *testing.T) {
	c, seat, affs := influenceFixture()
	base := EffectiveInfluence(c, seat, affs, nil, "", "")
	prev := base
	for terms := 1; terms <= 5; terms++ {
		sh := map[string]Stronghold{"P001": {AffiliationID: "aff-1", Terms: terms}}
		got := EffectiveInfluence(c, seat, affs, sh, "", "")
		if got <= prev {
			t.Errorf("terms=%d: influence %d did not grow past %d", terms, got, prev)
		}
		prev = got
	}
	// Someone else's stronghold grants nothing.
	sh := map[string]Stronghold{"P001": {AffiliationID: "aff-other", Terms: 5}}
	if got := EffectiveInfluence(c, seat, affs, sh, "", ""); got != base {
		t.Errorf("foreign stronghold changed influence: %d != %d", got, base)
	}
}

func TestEffectiveInfluenceNeverNegative(t *testing.T) {
	c, seat, affs := influenceFixture()
	c.Influence = 0
	c.Recognition = 0
	seat.Demo.PctMalay = 0
	if got := EffectiveInfluence(c, seat, affs, nil, "", ""); got < 0 {
		t.Errorf("EffectiveInfluence = %d, want >= 0", got)
	}
}
