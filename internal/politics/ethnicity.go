package politics

// Ethnicity is the demographic group an affiliation organizes around.
type Ethnicity string

const (
	EthMalay    Ethnicity = "Malay"
	EthChinese  Ethnicity = "Chinese"
	EthIndian   Ethnicity = "Indian"
	EthOthers   Ethnicity = "Others"
	EthBornean  Ethnicity = "North Bornean native"
	EthSarawak  Ethnicity = "Sarawak native"
)

// AllEthnicities lists every group in a fixed order.
var AllEthnicities = []Ethnicity{
	EthMalay, EthChinese, EthIndian, EthOthers, EthBornean, EthSarawak,
}

// Area is an affiliation's urban/rural preference.
type Area string

const (
	AreaUrban Area = "Urban"
	AreaRural Area = "Rural"
	AreaBoth  Area = "Both"
)
