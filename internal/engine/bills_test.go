package engine

import (
	"testing"

	"github.com/azmanhj/dewansim/internal/politics"
)

// billFixture: party-a (proposer, 6 seats), party-b (3 seats), party-c
// (seatless) in a nine-seat house.
func billFixture(seed int64) *Simulation {
	s := testSim(seed, 9)
	addAff(s, "aff-a", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 40, Governance: 60})
	addAff(s, "aff-b", "Beta Front", politics.EthChinese, politics.Ideology{Economic: 60, Governance: 40})
	addAff(s, "aff-c", "Gamma Front", politics.EthIndian, politics.Ideology{Economic: 50, Governance: 50})
	addParty(s, "party-a", "Alpha Party", "", "aff-a")
	addParty(s, "party-b", "Beta Party", "", "aff-b")
	addParty(s, "party-c", "Gamma Party", "", "aff-c")
	for _, code := range []string{"P001", "P002", "P003", "P004", "P005", "P006"} {
		c := addMember(s, "char-a"+code, "aff-a", 50)
		seatMP(s, c, code, "party-a")
	}
	for _, code := range []string{"P007", "P008", "P009"} {
		c := addMember(s, "char-b"+code, "aff-b", 50)
		seatMP(s, c, code, "party-b")
	}
	addMember(s, "char-c1", "aff-c", 50)
	return s
}

func catalogBill(t *testing.T, id string) Bill {
	t.Helper()
	for _, b := range DefaultBillCatalog() {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("no %s in the default catalog", id)
	return Bill{}
}

func TestAIDecideBillVotePriorities(t *testing.T) {
	s := billFixture(1)
	pa := s.PartyIndex["party-a"]
	pb := s.PartyIndex["party-b"]

	tests := []struct {
		name     string
		party    *politics.Party
		bill     Bill
		proposer string
		want     VoteChoice
	}{
		{
			name:  "explicit positive effect beats everything",
			party: pb,
			bill: Bill{ID: "x", Constitutional: true,
				PartyEffects: map[string]float64{"Beta Party": 5}},
			proposer: "party-a",
			want:     VoteAye,
		},
		{
			name:  "explicit negative effect",
			party: pa,
			bill: Bill{ID: "x", Tags: []string{"economic"}, EconomicLean: 40,
				PartyEffects: map[string]float64{"Alpha Party": -5}},
			want: VoteNay,
		},
		{
			name:     "constitutional proposer backs its own bill",
			party:    pa,
			bill:     Bill{ID: "x", Constitutional: true},
			proposer: "party-a",
			want:     VoteAye,
		},
		{
			name:     "constitutional outsider opposes",
			party:    pb,
			bill:     Bill{ID: "x", Constitutional: true},
			proposer: "party-a",
			want:     VoteNay,
		},
		{
			name:  "economic bill close to party lean",
			party: pa, // economic 40
			bill:  Bill{ID: "x", Tags: []string{"economic"}, EconomicLean: 45},
			want:  VoteAye,
		},
		{
			name:  "economic bill far from party lean",
			party: pa,
			bill:  Bill{ID: "x", Tags: []string{"economic"}, EconomicLean: 95},
			want:  VoteNay,
		},
		{
			name:  "economic bill in the indifference band",
			party: pa,
			bill:  Bill{ID: "x", Tags: []string{"economic"}, EconomicLean: 70},
			want:  VoteAbstain,
		},
		{
			name:  "no matching heuristic abstains",
			party: pb,
			bill:  Bill{ID: "x", Tags: []string{"nationalist"}},
			want:  VoteAbstain,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Party ideology economic must be set for the heuristics.
			pa.Ideology.Economic = 40
			pb.Ideology.Economic = 60
			if got := s.AIDecideBillVote(tt.party, tt.bill, tt.proposer); got != tt.want {
				t.Errorf("vote = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAIDecideBillVoteConstitutionalBlocDiscipline(t *testing.T) {
	s := billFixture(2)
	s.Alliances = append(s.Alliances, &politics.Alliance{
		ID: "bloc-1", Name: "Test Bloc", Type: politics.AllianceFull,
		LeaderPartyID: "party-a", MemberPartyIDs: []string{"party-a", "party-b"},
	})
	bill := Bill{ID: "x", Constitutional: true}
	if got := s.AIDecideBillVote(s.PartyIndex["party-b"], bill, "party-a"); got != VoteAye {
		t.Errorf("bloc mate vote = %s, want Aye", got)
	}
	if got := s.AIDecideBillVote(s.PartyIndex["party-c"], bill, "party-a"); got != VoteNay {
		t.Errorf("outsider vote = %s, want Nay", got)
	}
}

func TestAIDecideBillVoteReligiousAffinity(t *testing.T) {
	s := testSim(3, 2)
	addAff(s, "aff-1", "Islamic Revival League", politics.EthMalay, politics.Ideology{Economic: 40, Governance: 70})
	addAff(s, "aff-2", "Traders Guild", politics.EthChinese, politics.Ideology{Economic: 70, Governance: 40})
	faithful := addParty(s, "party-a", "Alpha Party", "", "aff-1")
	secular := addParty(s, "party-b", "Beta Party", "", "aff-2")
	bill := Bill{ID: "x", Tags: []string{"religious"}}

	if got := s.AIDecideBillVote(faithful, bill, ""); got != VoteAye {
		t.Errorf("religious-affiliation party vote = %s, want Aye", got)
	}
	if got := s.AIDecideBillVote(secular, bill, ""); got != VoteAbstain {
		t.Errorf("secular party vote = %s, want Abstain", got)
	}
}

func TestConductBillVoteConstitutionalTwoThirds(t *testing.T) {
	// Six of nine seats is exactly the two-thirds line.
	s := billFixture(5)
	bill := Bill{ID: "x", Title: "Test Amendment", Constitutional: true}
	result := s.ConductBillVote(bill, "party-a", "")
	if result.AyeSeats != 6 || result.NaySeats != 3 {
		t.Fatalf("division = %d aye, %d nay, want 6 aye, 3 nay", result.AyeSeats, result.NaySeats)
	}
	if !result.Passed {
		t.Error("six of nine seats meets the two-thirds bar")
	}

	// Hand one proposer seat to the opposition: five of nine falls short.
	s2 := billFixture(6)
	s2.ElectionResults["P006"] = "party-b"
	result2 := s2.ConductBillVote(bill, "party-a", "")
	if result2.AyeSeats != 5 || result2.NaySeats != 4 {
		t.Fatalf("division = %d aye, %d nay, want 5 aye, 4 nay", result2.AyeSeats, result2.NaySeats)
	}
	if result2.Passed {
		t.Error("five of nine seats must fail a constitutional bill")
	}
}

func TestConductBillVoteSkipsSeatlessParties(t *testing.T) {
	s := billFixture(7)
	bill := Bill{ID: "x", Title: "Test Bill", Constitutional: true}
	result := s.ConductBillVote(bill, "party-a", "")
	if _, voted := result.Votes["party-c"]; voted {
		t.Error("a party without seats has no vote to cast")
	}
}

func TestConductBillVotePlayerOverride(t *testing.T) {
	s := billFixture(8)
	s.PlayerCharacterID = "char-bP007" // a party-b member
	bill := Bill{ID: "x", Title: "Test Amendment", Constitutional: true}

	result := s.ConductBillVote(bill, "party-a", VoteAye)
	if result.Votes["party-b"] != VoteAye {
		t.Errorf("player party vote = %s, want the override Aye", result.Votes["party-b"])
	}
	if result.AyeSeats != 9 {
		t.Errorf("aye seats = %d, want all 9 with the override", result.AyeSeats)
	}
}

func TestProportionalRepresentationBillSwitchesSystem(t *testing.T) {
	s := billFixture(9)
	bill := catalogBill(t, BillConstProportionalRep)

	result := s.ConductBillVote(bill, "party-a", "")
	if !result.Passed {
		t.Fatal("the amendment should pass with six of nine seats")
	}
	if s.System != SystemPR {
		t.Errorf("system = %s, want PR after the amendment", s.System)
	}

	// Passing it again changes nothing; the switch is one-way.
	s.ConductBillVote(bill, "party-a", "")
	if s.System != SystemPR {
		t.Errorf("system = %s, want PR to stick", s.System)
	}
}

func TestApplyBillEffects(t *testing.T) {
	s := billFixture(10)
	member := s.CharacterIndex["char-bP007"]
	before := member.Influence
	s.applyBillEffects(Bill{
		ID:           "x",
		PartyEffects: map[string]float64{"Alpha Party": -10},
		AffEffects:   map[string]float64{"Beta": 3},
	})
	if got := s.PartyIndex["party-a"].Unity; got != 60 {
		t.Errorf("party-a unity = %v, want 60 after the -10 hit", got)
	}
	if member.Influence != before+3 {
		t.Errorf("member influence = %v, want %v", member.Influence, before+3)
	}
}
