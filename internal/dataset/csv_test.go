package dataset

import (
	"errors"
	"strings"
	"testing"
)

const sampleHeader = "date,state,district,pincode,age_0_5,age_5_17,age_18_greater,demo_age_5_17,demo_age_17_,bio_age_5_17,bio_age_17_"

func TestReadCSVBasic(t *testing.T) {
	csvData := sampleHeader + "\n" +
		"14/08/2023,Karnataka,Bengaluru Urban,560001,50,30,20,5,8,20,10\n" +
		"15/08/2023,Karnataka,Bengaluru Urban,560002,1,2,3,4,5,6,7\n"
	ds, err := readCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.Records))
	}
	r := ds.Records[0]
	if r.Month != "2023-08" {
		t.Fatalf("expected month 2023-08, got %q", r.Month)
	}
	if r.Age0To5 != 50 || r.BioAge17 != 10 {
		t.Fatalf("measure columns misread: %+v", r)
	}
	if len(ds.ExtraColumns) != 0 {
		t.Fatalf("expected no extra columns, got %v", ds.ExtraColumns)
	}
}

func TestReadCSVExtraColumns(t *testing.T) {
	csvData := sampleHeader + ",iris_update_count,fp_update_count\n" +
		"14/08/2023,Karnataka,Bengaluru Urban,560001,50,30,20,5,8,20,10,12,4\n"
	ds, err := readCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.ExtraColumns) != 2 {
		t.Fatalf("expected 2 extra columns, got %v", ds.ExtraColumns)
	}
	if ds.ExtraColumns[0] != "iris_update_count" || ds.ExtraColumns[1] != "fp_update_count" {
		t.Fatalf("extra columns lost header order: %v", ds.ExtraColumns)
	}
	r := ds.Records[0]
	if r.Extra["iris_update_count"] != 12 || r.Extra["fp_update_count"] != 4 {
		t.Fatalf("extra values misread: %v", r.Extra)
	}
}

func TestReadCSVMissingRequiredColumns(t *testing.T) {
	csvData := "date,state,district\n14/08/2023,Karnataka,Bengaluru Urban\n"
	_, err := readCSV(strings.NewReader(csvData), nil)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "pincode") {
		t.Fatalf("error should name missing columns: %v", err)
	}
}

func TestReadCSVCoercesBadCells(t *testing.T) {
	csvData := sampleHeader + "\n" +
		"14/08/2023,Karnataka,Bengaluru Urban,560001,oops,30,20,5,8,,10\n"
	ds, err := readCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := ds.Records[0]
	if r.Age0To5 != 0 || r.BioAge5To17 != 0 {
		t.Fatalf("bad cells should coerce to zero: %+v", r)
	}
	if r.Age5To17 != 30 {
		t.Fatalf("good cell mangled: %+v", r)
	}
}

func TestReadCSVAllDatesBadIsValidationError(t *testing.T) {
	csvData := sampleHeader + "\n" +
		"garbage,Karnataka,Bengaluru Urban,560001,1,1,1,1,1,1,1\n"
	_, err := readCSV(strings.NewReader(csvData), nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty-after-normalize dataset, got %v", err)
	}
}

func TestDatasetMonths(t *testing.T) {
	csvData := sampleHeader + "\n" +
		"14/09/2023,Karnataka,Bengaluru Urban,560001,1,1,1,1,1,1,1\n" +
		"14/08/2023,Karnataka,Bengaluru Urban,560001,1,1,1,1,1,1,1\n"
	ds, err := readCSV(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	months := ds.Months()
	if len(months) != 2 || months[0] != "2023-08" || months[1] != "2023-09" {
		t.Fatalf("unexpected months: %v", months)
	}
	if ds.LatestMonth() != "2023-09" {
		t.Fatalf("expected latest month 2023-09, got %s", ds.LatestMonth())
	}
	if ds.HasMonth("2023-07") {
		t.Fatalf("2023-07 should be absent")
	}
}
