package aggregate

import (
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
)

func mustTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("dataset.Read() error = %v", err)
	}
	return tbl
}

func TestCountValues_OrderAndTies(t *testing.T) {
	// Urban is seen before Rural, both have 3.
	values := []string{
		"Highway", "Urban", "Highway", "Rural", "Urban",
		"Highway", "Rural", "Highway", "Urban", "Rural", "Highway",
	}

	got := CountValues(values)

	want := Counts{{"Highway", 5}, {"Urban", 3}, {"Rural", 3}}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got.Total() != 11 {
		t.Errorf("Total() = %d, want 11", got.Total())
	}
}

func TestCountValues_TieFollowsFirstSeen(t *testing.T) {
	got := CountValues([]string{"b", "a", "a", "b", "c"})
	labels := strings.Join(got.Labels(), ",")
	if labels != "b,a,c" {
		t.Errorf("labels = %s, want b,a,c", labels)
	}
}

func TestCountValues_Empty(t *testing.T) {
	got := CountValues(nil)
	if len(got) != 0 || got.Total() != 0 {
		t.Errorf("expected empty counts, got %v", got)
	}
}

func TestCountByCategory(t *testing.T) {
	tbl := mustTable(t, "Accident_Location,Road_Type\nMarket,Highway\nSchool,Urban\nMarket,Urban\n")

	got, err := CountByCategory(tbl, "Accident_Location")
	if err != nil {
		t.Fatalf("CountByCategory() error = %v", err)
	}
	if got[0].Label != "Market" || got[0].Count != 2 {
		t.Errorf("first entry = %+v", got[0])
	}
}

func TestCountByCategory_MissingColumn(t *testing.T) {
	tbl := mustTable(t, "a\n1\n")
	if _, err := CountByCategory(tbl, "Road_Type"); !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestTotalsByDistrict_PreservesOrder(t *testing.T) {
	tbl := mustTable(t, "DISTRICTNAME,TotalAccidents\nZeta,4\nAlpha,10\nMid,7\n")

	got, err := TotalsByDistrict(tbl)
	if err != nil {
		t.Fatalf("TotalsByDistrict() error = %v", err)
	}
	want := []DistrictTotal{{"Zeta", 4}, {"Alpha", 10}, {"Mid", 7}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTotalsByDistrict_BadNumber(t *testing.T) {
	tbl := mustTable(t, "DISTRICTNAME,TotalAccidents\nZeta,many\n")
	if _, err := TotalsByDistrict(tbl); !errors.Is(err, dataset.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestTotalsByDistrict_MissingColumn(t *testing.T) {
	tbl := mustTable(t, "DISTRICTNAME\nZeta\n")
	if _, err := TotalsByDistrict(tbl); !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}
