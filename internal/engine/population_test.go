package engine

import (
	"fmt"
	"testing"

	"github.com/azmanhj/dewansim/internal/politics"
)

func TestDailyHazardTable(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{30, 0.000005},
		{49, 0.000005},
		{50, 0.00001},
		{65, 0.00005},
		{79, 0.0015},
		{85, 0.005},
		{90, 0.02},
		{101, 0.02},
	}
	for _, tt := range tests {
		if got := dailyHazard(tt.age); got != tt.want {
			t.Errorf("dailyHazard(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestHandleDeathSuccessorInheritsSeat(t *testing.T) {
	s := testSim(1, 2)
	addAff(s, "aff-1", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 50, Governance: 50})
	mp := addMember(s, "char-1", "aff-1", 60)
	seatMP(s, mp, "P001", "party-a")
	roster := len(s.Characters)

	s.handleDeath(mp)

	if mp.IsAlive {
		t.Error("deceased should be marked dead")
	}
	if mp.IsMP || mp.CurrentSeatCode != "" {
		t.Error("deceased must vacate the seat")
	}
	if len(s.Characters) != roster+1 {
		t.Fatalf("roster = %d, want %d (the record stays, a successor joins)", len(s.Characters), roster+1)
	}
	heir := s.Characters[len(s.Characters)-1]
	if heir.AffiliationID != "aff-1" {
		t.Errorf("heir affiliation = %s, want aff-1", heir.AffiliationID)
	}
	if !heir.IsMP || heir.CurrentSeatCode != "P001" {
		t.Errorf("heir IsMP=%v seat=%q, want the P001 seat inherited", heir.IsMP, heir.CurrentSeatCode)
	}
	if s.ElectionResults["P001"] != "party-a" {
		t.Errorf("seat owner = %s, want party-a unchanged", s.ElectionResults["P001"])
	}
	if s.Stats.Deaths != 1 {
		t.Errorf("death count = %d, want 1", s.Stats.Deaths)
	}
}

func TestHandleDeathSpeakerSeatNotInherited(t *testing.T) {
	s := testSim(1, 2)
	addAff(s, "aff-1", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 50, Governance: 50})
	speaker := addMember(s, "char-1", "aff-1", 60)
	speaker.CurrentSeatCode = politics.SeatSpeaker

	s.handleDeath(speaker)

	heir := s.Characters[len(s.Characters)-1]
	if heir.IsMP {
		t.Error("the Speaker's chair does not pass by succession")
	}
	if heir.CurrentSeatCode != "" {
		t.Errorf("heir seat = %q, want none", heir.CurrentSeatCode)
	}
}

func TestGrowElectorates(t *testing.T) {
	s := testSim(1, 2)
	urban := s.Country.Get("P001")
	urban.Urban = true
	urban.Demo.Electorate = 10000
	rural := s.Country.Get("P002")
	rural.Demo.Electorate = 100

	s.GrowElectorates()

	if got := urban.Demo.Electorate; got != 10040 {
		t.Errorf("urban electorate = %d, want 10040 (0.4%% growth)", got)
	}
	// 0.2% of 100 rounds up to a single voter.
	if got := rural.Demo.Electorate; got != 101 {
		t.Errorf("rural electorate = %d, want 101", got)
	}
}

func TestProcessMortalityYoungCohortStable(t *testing.T) {
	s := testSim(42, 2)
	addAff(s, "aff-1", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 50, Governance: 50})
	for i := 0; i < 40; i++ {
		addMember(s, fmt.Sprintf("char-%02d", i), "aff-1", 50)
	}

	s.ProcessMortality()

	if s.Stats.Deaths != 0 {
		t.Errorf("deaths = %d in a single pass over forty-year-olds, want 0", s.Stats.Deaths)
	}
}

func TestProcessMortalityElderlyCohortDies(t *testing.T) {
	s := testSim(42, 2)
	addAff(s, "aff-1", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 50, Governance: 50})
	for i := 0; i < 100; i++ {
		c := addMember(s, fmt.Sprintf("char-%03d", i), "aff-1", 50)
		c.DateOfBirth = testStart.AddDate(-95, 0, 0)
	}

	for day := 0; day < 200; day++ {
		s.ProcessMortality()
	}

	if s.Stats.Deaths == 0 {
		t.Fatal("no deaths in 200 days over a cohort of 95-year-olds")
	}
	if len(s.Characters) <= 100 {
		t.Errorf("roster = %d, want successors appended beyond the original 100", len(s.Characters))
	}
	dead := 0
	for _, c := range s.Characters {
		if !c.IsAlive {
			dead++
		}
	}
	if dead != s.Stats.Deaths {
		t.Errorf("retained dead records = %d, want %d (nothing is deleted)", dead, s.Stats.Deaths)
	}
}
