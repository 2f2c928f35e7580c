package geo

import (
	"strings"
	"testing"

	"github.com/azmanhj/dewansim/internal/politics"
)

func TestGenerateSeatCount(t *testing.T) {
	cfg := DefaultGenConfig()
	country := Generate(cfg)

	want := 0
	for _, n := range cfg.SeatsPerState {
		want += n
	}
	if got := country.TotalSeats(); got != want {
		t.Fatalf("TotalSeats() = %d, want %d", got, want)
	}
	if got := len(country.States()); got != len(cfg.SeatsPerState) {
		t.Fatalf("States() = %d, want %d", got, len(cfg.SeatsPerState))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(DefaultGenConfig())
	b := Generate(DefaultGenConfig())
	for code, ca := range a.Constituencies {
		cb := b.Constituencies[code]
		if cb == nil || *ca != *cb {
			t.Fatalf("seat %s differs between identical generations", code)
		}
	}
}

func TestGenerateDemographicsSane(t *testing.T) {
	country := Generate(DefaultGenConfig())
	for code, c := range country.Constituencies {
		d := c.Demo
		if d.Electorate < 5000 {
			t.Errorf("%s: electorate %d too small", code, d.Electorate)
		}
		total := d.PctMalay + d.PctChinese + d.PctIndian + d.PctOthers
		if total < 99 || total > 101 {
			t.Errorf("%s: ethnic shares sum to %v", code, total)
		}
		for _, pct := range []float64{d.PctMalay, d.PctChinese, d.PctIndian, d.PctOthers} {
			if pct < 0 || pct > 100 {
				t.Errorf("%s: share %v out of range", code, pct)
			}
		}
	}
}

func TestShareMapsNativesToMalayShare(t *testing.T) {
	d := Demographics{PctMalay: 60, PctChinese: 25, PctIndian: 10, PctOthers: 5}
	if d.Share(politics.EthBornean) != 60 || d.Share(politics.EthSarawak) != 60 {
		t.Error("native groups should use the bumiputera share")
	}
	if d.Share(politics.EthChinese) != 25 || d.Share(politics.EthIndian) != 10 {
		t.Error("wrong minority shares")
	}
	if d.Share(politics.EthOthers) != 5 {
		t.Error("wrong others share")
	}
}

func TestReadCSV(t *testing.T) {
	input := `code,name,state,urban,electorate,pct_malay,pct_chinese,pct_indian,pct_others
P001,Kota Satu,Selangor,urban,65000,45.5,38.2,12.3,4.0
P002,Ulu Dua,Kedah,rural,22000,88.0,6.5,3.5,2.0
`
	country, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if country.TotalSeats() != 2 {
		t.Fatalf("TotalSeats() = %d, want 2", country.TotalSeats())
	}
	p1 := country.Get("P001")
	if p1 == nil || !p1.Urban || p1.Demo.Electorate != 65000 {
		t.Errorf("P001 parsed wrong: %+v", p1)
	}
	if p2 := country.Get("P002"); p2 == nil || p2.Urban || p2.State != "Kedah" {
		t.Errorf("P002 parsed wrong: %+v", p2)
	}
}

func TestReadCSVDuplicateCode(t *testing.T) {
	input := "P001,A,S,urban,1000,50,30,15,5\nP001,B,S,rural,2000,60,20,15,5\n"
	if _, err := ReadCSV(strings.NewReader(input)); err == nil {
		t.Fatal("expected duplicate code error")
	}
}
