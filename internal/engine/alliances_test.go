package engine

import (
	"math"
	"testing"

	"github.com/azmanhj/dewansim/internal/politics"
)

func TestCalculatePartySeatScore(t *testing.T) {
	s := testSim(1, 2)
	addAff(s, "aff-a", "Farmers Union", politics.EthMalay, politics.Ideology{Economic: 40, Governance: 60})
	p := addParty(s, "party-a", "Alpha Party", "", "aff-a")
	c := addMember(s, "char-1", "aff-a", 50)
	c.CurrentSeatCode = "P001"
	s.ElectionResults["P001"] = "party-a"

	// Local presence 50*1.2*1.0*1.2 = 72, incumbency +50, multi-ethnic
	// baseline +35.
	if got := s.CalculatePartySeatScore(p, "P001"); got != 157 {
		t.Errorf("seat score = %v, want 157", got)
	}
	// No presence, no incumbency: just the baseline.
	if got := s.CalculatePartySeatScore(p, "P002"); got != 35 {
		t.Errorf("empty seat score = %v, want 35", got)
	}
}

func TestDistributeAllianceSeatsPartitionAndFloor(t *testing.T) {
	s := testSim(4, 8)
	addAff(s, "aff-a", "Strong Front", politics.EthMalay, politics.Ideology{Economic: 40, Governance: 60})
	addAff(s, "aff-b", "Weak Front", politics.EthChinese, politics.Ideology{Economic: 60, Governance: 40})
	pa := addParty(s, "party-a", "Alpha Party", "", "aff-a")
	pb := addParty(s, "party-b", "Beta Party", "", "aff-b")
	for _, code := range []string{"P001", "P002", "P003"} {
		c := addMember(s, "char-a"+code, "aff-a", 90)
		c.CurrentSeatCode = code
	}
	addMember(s, "char-b1", "aff-b", 10)

	bloc := &politics.Alliance{
		ID: "bloc-1", Name: "Test Bloc", Type: politics.AllianceFull,
		LeaderPartyID: "party-a", MemberPartyIDs: []string{"party-a", "party-b"},
	}
	s.Alliances = append(s.Alliances, bloc)
	s.DistributeAllianceSeats(bloc)

	assigned := make(map[string]string)
	for code := range pa.ContestedSeats {
		assigned[code] = "party-a"
	}
	for code := range pb.ContestedSeats {
		if owner, dup := assigned[code]; dup {
			t.Fatalf("seat %s contested by both %s and party-b", code, owner)
		}
		assigned[code] = "party-b"
	}
	if len(assigned) != 8 {
		t.Errorf("distribution covers %d seats, want all 8", len(assigned))
	}
	if n := len(pa.ContestedSeats); n < allianceSeatFloor {
		t.Errorf("party-a holds %d seats, want at least the floor of %d", n, allianceSeatFloor)
	}
	if n := len(pb.ContestedSeats); n < allianceSeatFloor {
		t.Errorf("party-b holds %d seats, want at least the floor of %d", n, allianceSeatFloor)
	}
}

func TestBuildSeatPlansKeepsPactPartition(t *testing.T) {
	s := testSim(6, 4)
	addAff(s, "aff-a", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 40, Governance: 60})
	addAff(s, "aff-b", "Beta Front", politics.EthChinese, politics.Ideology{Economic: 60, Governance: 40})
	pa := addParty(s, "party-a", "Alpha Party", "", "aff-a")
	pb := addParty(s, "party-b", "Beta Party", "", "aff-b")
	addMember(s, "char-a1", "aff-a", 70)
	addMember(s, "char-a2", "aff-a", 65)
	addMember(s, "char-b1", "aff-b", 60)
	addMember(s, "char-b2", "aff-b", 55)

	pact := &politics.Alliance{
		ID: "pact-1", Name: "Test Pact", Type: politics.AlliancePact,
		LeaderPartyID: "party-a", MemberPartyIDs: []string{"party-a", "party-b"},
	}
	s.Alliances = append(s.Alliances, pact)

	s.BuildSeatPlans()

	covered := make(map[string]string)
	for code := range pa.ContestedSeats {
		covered[code] = "party-a"
	}
	for code := range pb.ContestedSeats {
		if owner, dup := covered[code]; dup {
			t.Fatalf("pact partners contest %s against each other (%s and party-b)", code, owner)
		}
		covered[code] = "party-b"
	}
	if len(covered) != 4 {
		t.Errorf("pact plans cover %d seats, want all 4", len(covered))
	}
}

func TestAttemptAllianceFormationCertainAcceptance(t *testing.T) {
	s := testSim(9, 4)
	addAff(s, "aff-a", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 50, Governance: 50})
	addAff(s, "aff-b", "Beta Front", politics.EthChinese, politics.Ideology{Economic: 50, Governance: 50})
	pa := addParty(s, "party-a", "Alpha Party", "", "aff-a")
	pb := addParty(s, "party-b", "Beta Party", "", "aff-b")
	pa.Relations["party-b"] = 100
	pb.Relations["party-a"] = 100

	bloc := s.AttemptAllianceFormation("party-a", []string{"party-b"}, politics.AllianceFull)
	if bloc == nil {
		t.Fatal("formation failed despite zero distance and maximal relations")
	}
	if bloc.LeaderPartyID != "party-a" {
		t.Errorf("bloc leader = %s, want the initiator", bloc.LeaderPartyID)
	}
	if !bloc.HasMember("party-a") || !bloc.HasMember("party-b") {
		t.Errorf("bloc members = %v, want both parties", bloc.MemberPartyIDs)
	}
	if s.AllianceOf("party-b") != bloc {
		t.Error("party-b should resolve to the new bloc")
	}
}

func TestAttemptAllianceFormationRejectsDistantTarget(t *testing.T) {
	s := testSim(9, 4)
	addAff(s, "aff-a", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 10, Governance: 50})
	addAff(s, "aff-b", "Beta Front", politics.EthChinese, politics.Ideology{Economic: 90, Governance: 50})
	pa := addParty(s, "party-a", "Alpha Party", "", "aff-a")
	pb := addParty(s, "party-b", "Beta Party", "", "aff-b")
	pa.Ideology = politics.Ideology{Economic: 10, Governance: 50}
	pb.Ideology = politics.Ideology{Economic: 90, Governance: 50}
	pa.Relations["party-b"] = 0
	pb.Relations["party-a"] = 0

	if bloc := s.AttemptAllianceFormation("party-a", []string{"party-b"}, politics.AllianceFull); bloc != nil {
		t.Errorf("formation succeeded across distance 80 with zero warmth: %v", bloc.MemberPartyIDs)
	}
	if len(s.Alliances) != 0 {
		t.Errorf("alliances = %d, want none", len(s.Alliances))
	}
}

func TestAttemptAllianceFormationRespectsExistingBloc(t *testing.T) {
	s := testSim(9, 4)
	addAff(s, "aff-a", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 50, Governance: 50})
	addAff(s, "aff-b", "Beta Front", politics.EthChinese, politics.Ideology{Economic: 50, Governance: 50})
	addAff(s, "aff-c", "Gamma Front", politics.EthIndian, politics.Ideology{Economic: 50, Governance: 50})
	pa := addParty(s, "party-a", "Alpha Party", "", "aff-a")
	pb := addParty(s, "party-b", "Beta Party", "", "aff-b")
	addParty(s, "party-c", "Gamma Party", "", "aff-c")
	pa.Relations["party-b"] = 100
	pb.Relations["party-a"] = 100
	s.Alliances = append(s.Alliances, &politics.Alliance{
		ID: "bloc-1", Name: "Prior Bloc", Type: politics.AllianceFull,
		LeaderPartyID: "party-b", MemberPartyIDs: []string{"party-b", "party-c"},
	})

	if bloc := s.AttemptAllianceFormation("party-a", []string{"party-b"}, politics.AllianceFull); bloc != nil {
		t.Error("a party already in a full bloc must auto-reject a second one")
	}
	if len(s.Alliances) != 1 {
		t.Errorf("alliances = %d, want the prior bloc only", len(s.Alliances))
	}
}

func TestConsolidateAllianceCohesion(t *testing.T) {
	s := testSim(2, 4)
	addAff(s, "aff-a", "Alpha Front", politics.EthMalay, politics.Ideology{Economic: 20, Governance: 50})
	addAff(s, "aff-b", "Beta Front", politics.EthChinese, politics.Ideology{Economic: 80, Governance: 50})
	addAff(s, "aff-c", "Gamma Front", politics.EthIndian, politics.Ideology{Economic: 50, Governance: 50})
	pa := addParty(s, "party-a", "Alpha Party", "", "aff-a")
	pb := addParty(s, "party-b", "Beta Party", "", "aff-b")
	addParty(s, "party-c", "Gamma Party", "", "aff-c")
	pa.Ideology = politics.Ideology{Economic: 20, Governance: 50}
	pb.Ideology = politics.Ideology{Economic: 80, Governance: 50}
	pa.Relations["party-b"] = 60
	pa.Relations["party-c"] = 60
	member := addMember(s, "char-a1", "aff-a", 50)
	member.Ideology = politics.Ideology{Economic: 20, Governance: 50}
	s.Alliances = append(s.Alliances, &politics.Alliance{
		ID: "bloc-1", Name: "Test Bloc", Type: politics.AllianceFull,
		LeaderPartyID: "party-a", MemberPartyIDs: []string{"party-a", "party-b"},
	})

	s.ConsolidateAllianceCohesion()

	// Bloc mean economic is 50; the member moves 5% of the gap toward it.
	if math.Abs(member.Ideology.Economic-21.5) > 1e-9 {
		t.Errorf("member economic = %v, want 21.5", member.Ideology.Economic)
	}
	if got := pa.Relations["party-b"]; got != 61 {
		t.Errorf("intra-bloc relation = %v, want 61", got)
	}
	if got := pa.Relations["party-c"]; got != 59.5 {
		t.Errorf("outside relation = %v, want 59.5", got)
	}
}

func TestCheckBigTentUnifiesOpposition(t *testing.T) {
	s := testSim(21, 6)
	addAff(s, "aff-a", "Ruling Front", politics.EthMalay, politics.Ideology{Economic: 50, Governance: 60})
	addAff(s, "aff-b", "Opp One", politics.EthChinese, politics.Ideology{Economic: 40, Governance: 40})
	addAff(s, "aff-c", "Opp Two", politics.EthIndian, politics.Ideology{Economic: 60, Governance: 40})
	addAff(s, "aff-d", "Opp Three", politics.EthOthers, politics.Ideology{Economic: 50, Governance: 30})
	addParty(s, "party-a", "Ruling Party", "", "aff-a")
	pb := addParty(s, "party-b", "Opposition One", "", "aff-b")
	pc := addParty(s, "party-c", "Opposition Two", "", "aff-c")
	addParty(s, "party-d", "Opposition Three", "", "aff-d")
	s.Government = &Government{RulingCoalitionIDs: []string{"party-a"}, FormedDate: s.Date}
	s.RegimePartyID = "party-a"
	s.RegimeSince = s.Date.AddDate(-21, 0, 0)

	s.CheckBigTent()

	if !s.BigTentTriggered {
		t.Fatal("big tent should trigger after two decades of one regime")
	}
	if len(s.Alliances) != 1 {
		t.Fatalf("alliances = %d, want the one opposition bloc", len(s.Alliances))
	}
	bloc := s.Alliances[0]
	for _, pid := range []string{"party-b", "party-c", "party-d"} {
		if !bloc.HasMember(pid) {
			t.Errorf("bloc is missing %s", pid)
		}
	}
	if bloc.HasMember("party-a") {
		t.Error("the ruling party must stay outside the big tent")
	}
	if got := pb.Relations["party-c"]; got != 90 {
		t.Errorf("forced relation = %v, want 90", got)
	}
	if got := pc.Relations["party-b"]; got != 90 {
		t.Errorf("forced relation = %v, want 90", got)
	}

	// One trigger per game.
	s.CheckBigTent()
	if len(s.Alliances) != 1 {
		t.Error("a second trigger must not fire")
	}
}
