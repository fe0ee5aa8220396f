package geo

import "sort"

// UFRegions maps every Brazilian state abbreviation to its macro-region.
// Fixed at compile time; the dataset has no finer-than-region granularity.
var UFRegions = map[string]string{
	"AC": "Norte", "AP": "Norte", "AM": "Norte", "PA": "Norte",
	"RO": "Norte", "RR": "Norte", "TO": "Norte",
	"AL": "Nordeste", "BA": "Nordeste", "CE": "Nordeste", "MA": "Nordeste",
	"PB": "Nordeste", "PE": "Nordeste", "PI": "Nordeste", "RN": "Nordeste",
	"SE": "Nordeste",
	"DF": "Centro-Oeste", "GO": "Centro-Oeste", "MT": "Centro-Oeste",
	"MS": "Centro-Oeste",
	"ES": "Sudeste", "MG": "Sudeste", "RJ": "Sudeste", "SP": "Sudeste",
	"PR": "Sul", "RS": "Sul", "SC": "Sul",
}

// UFTotal carries a region-level total broadcast onto one state.
type UFTotal struct {
	UF     string  `json:"uf"`
	Region string  `json:"regiao"`
	Total  float64 `json:"consumo"`
}

// ExpandRegionTotals broadcasts region-level totals onto every UF of that
// region, 0 when the region has no entry. Every UF of a region carries the
// identical value; summing the output across UFs overcounts by design, so
// display layers must sum by region, never by UF. Results are sorted by UF.
func ExpandRegionTotals(regionTotals map[string]float64) []UFTotal {
	out := make([]UFTotal, 0, len(UFRegions))
	for uf, region := range UFRegions {
		out = append(out, UFTotal{UF: uf, Region: region, Total: regionTotals[region]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UF < out[j].UF })
	return out
}
