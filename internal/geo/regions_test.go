package geo

import "testing"

func TestUFRegionsCoversAllStates(t *testing.T) {
	if len(UFRegions) != 27 {
		t.Fatalf("UFRegions has %d entries, want 27", len(UFRegions))
	}
	regions := map[string]bool{}
	for _, r := range UFRegions {
		regions[r] = true
	}
	if len(regions) != 5 {
		t.Errorf("got %d macro-regions, want 5", len(regions))
	}
}

func TestExpandRegionTotalsBroadcast(t *testing.T) {
	totals := map[string]float64{"Norte": 30, "Sul": 5}

	out := ExpandRegionTotals(totals)
	if len(out) != len(UFRegions) {
		t.Fatalf("got %d entries, want %d", len(out), len(UFRegions))
	}

	byUF := map[string]UFTotal{}
	for i := 1; i < len(out); i++ {
		if out[i-1].UF >= out[i].UF {
			t.Fatalf("output not sorted by UF: %s before %s", out[i-1].UF, out[i].UF)
		}
	}
	for _, e := range out {
		byUF[e.UF] = e
	}

	// All UFs of the same region carry the identical broadcast value.
	if byUF["AC"].Total != 30 || byUF["AM"].Total != 30 || byUF["TO"].Total != 30 {
		t.Errorf("Norte UFs = %v/%v/%v, want 30 each", byUF["AC"].Total, byUF["AM"].Total, byUF["TO"].Total)
	}
	if byUF["PR"].Total != 5 || byUF["RS"].Total != 5 {
		t.Errorf("Sul UFs = %v/%v, want 5 each", byUF["PR"].Total, byUF["RS"].Total)
	}
	// Regions absent from the aggregate default to zero.
	if byUF["SP"].Total != 0 {
		t.Errorf("SP = %v, want 0", byUF["SP"].Total)
	}
}
