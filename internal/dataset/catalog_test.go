package dataset

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func industrialFixture() *RecordSet {
	ts := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}
	return &RecordSet{
		Sheet:   SheetIndustrial,
		Columns: []string{ColTimestamp, ColRegion, ColSector, ColMeasure},
		Records: []Record{
			{Timestamp: ts("2023-01-01"), Region: "Sul", Sector: "Textil", Measure: 5},
			{Timestamp: ts("2023-01-01"), Region: "Norte", Sector: "Metalurgia", Measure: 10},
			{Timestamp: ts("2023-02-01"), Region: "Norte", Sector: "Textil", Measure: 20},
			{Timestamp: nil, Region: "", Sector: "Quimica", Measure: 7},
			{Timestamp: ts("2023-02-01"), Region: "Sul", Sector: "Metalurgia", Measure: 3},
		},
	}
}

func TestDistinctValuesDropsEmptyAndSorts(t *testing.T) {
	ds := &Dataset{Industrial: industrialFixture()}

	regions, err := ds.DistinctValues(ds.Industrial, ColRegion)
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if want := []string{"Norte", "Sul"}; !reflect.DeepEqual(regions, want) {
		t.Errorf("regions = %v, want %v", regions, want)
	}

	sectors, err := ds.DistinctValues(ds.Industrial, ColSector)
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if want := []string{"Metalurgia", "Quimica", "Textil"}; !reflect.DeepEqual(sectors, want) {
		t.Errorf("sectors = %v, want %v", sectors, want)
	}
}

func TestDistinctValuesCached(t *testing.T) {
	ds := &Dataset{Industrial: industrialFixture()}

	first, err := ds.DistinctValues(ds.Industrial, ColRegion)
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}

	// The dataset is immutable after load, so the cache may be served
	// forever. Mutating records behind its back must not change the answer.
	ds.Industrial.Records = nil
	second, err := ds.DistinctValues(ds.Industrial, ColRegion)
	if err != nil {
		t.Fatalf("DistinctValues: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached catalog changed: %v vs %v", first, second)
	}
}

func TestDistinctValuesInvalidColumn(t *testing.T) {
	ds := &Dataset{Industrial: industrialFixture()}

	_, err := ds.DistinctValues(ds.Industrial, "NoSuchColumn")
	if !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("err = %v, want ErrInvalidColumn", err)
	}
}
