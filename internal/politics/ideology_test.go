package politics

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Ideology
		want Ideology
	}{
		{"within bounds", Ideology{Economic: 40, Governance: 60}, Ideology{Economic: 40, Governance: 60}},
		{"below zero", Ideology{Economic: -5, Governance: -0.1}, Ideology{Economic: 0, Governance: 0}},
		{"above hundred", Ideology{Economic: 120, Governance: 100.5}, Ideology{Economic: 100, Governance: 100}},
		{"mixed", Ideology{Economic: -1, Governance: 101}, Ideology{Economic: 0, Governance: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAverageIdeologyEmpty(t *testing.T) {
	got := AverageIdeology(nil)
	if got.Economic != 50 || got.Governance != 50 {
		t.Errorf("empty average = %+v, want {50 50}", got)
	}
}

func TestAverageIdeology(t *testing.T) {
	got := AverageIdeology([]Ideology{
		{Economic: 20, Governance: 40},
		{Economic: 60, Governance: 80},
	})
	if got.Economic != 40 || got.Governance != 60 {
		t.Errorf("average = %+v, want {40 60}", got)
	}
}

func TestIdeologicalDistance(t *testing.T) {
	a := Ideology{Economic: 0, Governance: 0}
	b := Ideology{Economic: 3, Governance: 4}
	if d := IdeologicalDistance(a, b); d != 5 {
		t.Errorf("distance = %v, want 5", d)
	}
	max := IdeologicalDistance(Ideology{}, Ideology{Economic: 100, Governance: 100})
	if math.Abs(max-math.Sqrt(20000)) > 1e-9 {
		t.Errorf("max distance = %v", max)
	}
}

func TestIdeologyNameCorners(t *testing.T) {
	tests := []struct {
		name string
		in   Ideology
		want string
	}{
		{"planned authoritarian", Ideology{Economic: 0, Governance: 100}, "Totalitarian Communism"},
		{"market authoritarian", Ideology{Economic: 99, Governance: 100}, "Totalitarian Capitalism"},
		{"planned stateless", Ideology{Economic: 0, Governance: 0}, "Anarcho-Communism"},
		{"market stateless", Ideology{Economic: 100, Governance: 0}, "Pure Anarcho-Capitalism"},
		{"centre", Ideology{Economic: 50, Governance: 50}, "Centrism"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdeologyName(tt.in); got != tt.want {
				t.Errorf("IdeologyName(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIdeologyNameNeverEmpty(t *testing.T) {
	for eco := 0.0; eco <= 100; eco += 5 {
		for gov := 0.0; gov <= 100; gov += 5 {
			if IdeologyName(Ideology{Economic: eco, Governance: gov}) == "" {
				t.Fatalf("empty name at eco=%v gov=%v", eco, gov)
			}
		}
	}
}
