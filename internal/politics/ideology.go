// Package politics provides the political entity model: ideology, ethnic
// affiliations, characters, parties, and alliances.
package politics

import "math"

// Ideology is a two-axis position. Economic: 0 = fully planned economy,
// 100 = laissez-faire. Governance: 0 = minimal authority, 100 = fully
// centralized authority. Both axes stay clamped to [0,100].
type Ideology struct {
	Economic   float64 `json:"economic"`
	Governance float64 `json:"governance"`
}

// Clamp bounds both axes to [0,100] in place and returns the result.
func (i Ideology) Clamp() Ideology {
	return Ideology{
		Economic:   clampAxis(i.Economic),
		Governance: clampAxis(i.Governance),
	}
}

func clampAxis(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AverageIdeology returns the component-wise mean, or the centre {50,50}
// when the input is empty.
func AverageIdeology(list []Ideology) Ideology {
	if len(list) == 0 {
		return Ideology{Economic: 50, Governance: 50}
	}
	var eco, gov float64
	for _, id := range list {
		eco += id.Economic
		gov += id.Governance
	}
	n := float64(len(list))
	return Ideology{Economic: eco / n, Governance: gov / n}.Clamp()
}

// IdeologicalDistance is the Euclidean distance between two positions,
// the compatibility metric used across the whole engine. Range 0–~141.
func IdeologicalDistance(a, b Ideology) float64 {
	de := a.Economic - b.Economic
	dg := a.Governance - b.Governance
	return math.Sqrt(de*de + dg*dg)
}

// ideologyGrid is indexed [floor((100-governance)/10)][floor(economic/10)].
// Row 0 is maximum state authority, row 9 minimal; column 0 is a planned
// economy, column 9 laissez-faire. Flavor only, no gameplay effect.
var ideologyGrid = [10][10]string{
	{"Totalitarian Communism", "Totalitarian Socialism", "State Socialism", "Authoritarian Left", "Dirigisme", "Absolutist Centrism", "Corporatist State", "Authoritarian Capitalism", "Plutocratic Autocracy", "Totalitarian Capitalism"},
	{"Stalinist Planning", "Hardline Socialism", "Bureaucratic Collectivism", "State-Led Development", "Guided Economy", "Paternal Conservatism", "National Developmentalism", "Crony Capitalism", "Oligarchic Rule", "Corporate Autocracy"},
	{"Vanguard Collectivism", "Council Socialism", "Left Nationalism", "Social Corporatism", "Managed Centrism", "Establishment Conservatism", "Market Nationalism", "Conservative Liberalism", "Elitist Capitalism", "Monopoly Capitalism"},
	{"Revolutionary Socialism", "Ethical Socialism", "Labourism", "Social Democracy", "Communitarianism", "Christian Democracy", "Ordoliberalism", "National Liberalism", "Managerial Capitalism", "State Capitalism"},
	{"Collectivist Democracy", "Democratic Socialism", "Welfare Statism", "Progressive Labourism", "Radical Centrism", "Moderate Conservatism", "Fiscal Conservatism", "Market Liberalism", "Business Conservatism", "Supply-Side Liberalism"},
	{"Municipal Socialism", "Market Socialism", "Social Liberalism", "Progressivism", "Liberal Centrism", "Centrism", "Economic Liberalism", "Classical Liberalism", "Free-Market Conservatism", "Neoliberalism"},
	{"Guild Socialism", "Cooperativism", "Green Politics", "Civic Liberalism", "Liberal Centrism", "Libertarian Conservatism", "Minarchist Liberalism", "Laissez-Faire Liberalism", "Propertarianism", "Market Fundamentalism"},
	{"Syndicalism", "Libertarian Socialism", "Mutualism", "Left Libertarianism", "Civil Libertarianism", "Libertarianism", "Fiscal Libertarianism", "Minarchism", "Paleolibertarianism", "Anarcho-Liberalism"},
	{"Anarcho-Collectivism", "Anarcho-Syndicalism", "Libertarian Municipalism", "Social Anarchism", "Voluntaryism", "Agorism", "Free-Market Anarchism", "Radical Minarchism", "Anarcho-Propertarianism", "Anarcho-Capitalism"},
	{"Anarcho-Communism", "Communalism", "Green Anarchism", "Individualist Anarchism", "Philosophical Anarchism", "Egoist Anarchism", "Market Anarchism", "Crypto-Anarchism", "Stateless Capitalism", "Pure Anarcho-Capitalism"},
}

// IdeologyName returns the human label for a position from the 10x10 grid.
func IdeologyName(id Ideology) string {
	id = id.Clamp()
	row := int((100 - id.Governance) / 10)
	col := int(id.Economic / 10)
	if row > 9 {
		row = 9
	}
	if col > 9 {
		col = 9
	}
	return ideologyGrid[row][col]
}
