package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/types"
)

const leadsCSV = "Rep,Scoring,Vertical,Company,First Name,Last Name,Email,Phone,Event Outcome,Follow Up,Notes,Upsell Potential\n" +
	"Alice,A,Bakery,ACME Corp,Anna,Meyer,anna@acme.example,+49 40 1,Demo booked,Yes,met at booth,Yes\n" +
	"Bob,,Hotel,Acme Inc,Ben,Keller,ben@acmeinc.example,+49 40 2,Info sent,No,,No\n" +
	"Carol,/,Catering,Other Co,Clara,Weiss,clara@other.example,+49 40 3,Lost,No,call back in Q3,Yes\n" +
	"Alice,B,Bakery,Gastro GmbH,David,Braun,david@gastro.example,+49 40 4,Won,Yes,,No\n"

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	ds, err := Load(writeFixture(t, "leads.csv", leadsCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(ds.Leads) != 4 {
		t.Fatalf("got %d leads, want 4", len(ds.Leads))
	}
	first := ds.Leads[0]
	if first.Row != 1 || first.Rep != "Alice" || first.Company != "ACME Corp" || first.Notes != "met at booth" {
		t.Fatalf("first lead mismatch: %+v", first)
	}
	if len(ds.Dimensions) != len(types.AllDimensions) {
		t.Fatalf("dimensions = %v", ds.Dimensions)
	}
	if len(ds.Columns) != 12 || ds.Columns[11] != "Upsell Potential" {
		t.Fatalf("columns = %v", ds.Columns)
	}
}

func TestLoadAppliesUnscoredSentinel(t *testing.T) {
	ds, err := Load(writeFixture(t, "leads.csv", leadsCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for _, lead := range ds.Leads {
		if lead.Scoring == "" || lead.Scoring == "/" {
			t.Fatalf("row %d kept raw score %q", lead.Row, lead.Scoring)
		}
	}
	if ds.Leads[1].Scoring != types.UnscoredTier || ds.Leads[2].Scoring != types.UnscoredTier {
		t.Fatalf("blank and slash scores should both become %s: %q, %q",
			types.UnscoredTier, ds.Leads[1].Scoring, ds.Leads[2].Scoring)
	}
	if ds.Leads[0].Scoring != "A" || ds.Leads[3].Scoring != "B" {
		t.Fatal("real scores must pass through unchanged")
	}
}

func TestLoadPreservesExtraColumnsUntouched(t *testing.T) {
	ds, err := Load(writeFixture(t, "leads.csv", leadsCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := ds.Leads[0].Extra["Upsell Potential"]; got != "Yes" {
		t.Fatalf("extra column value = %q, want Yes", got)
	}
	// no trimming, no coercion on pass-through fields
	if got := ds.Leads[1].Extra["Upsell Potential"]; got != "No" {
		t.Fatalf("extra column value = %q, want No", got)
	}
}

func TestLoadReportsAbsentDimensions(t *testing.T) {
	csv := "Rep,Scoring,Company\nAlice,A,ACME Corp\n"
	ds, err := Load(writeFixture(t, "leads.csv", csv))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if ds.HasDimension(types.DimVertical) {
		t.Fatal("vertical column is absent but reported present")
	}
	if !ds.HasDimension(types.DimRep) || !ds.HasDimension(types.DimScoring) {
		t.Fatalf("present dimensions missing: %v", ds.Dimensions)
	}
}

func TestLoadToleratesShortRows(t *testing.T) {
	csv := "Rep,Scoring,Vertical\nAlice\nBob,B,Hotel\n"
	ds, err := Load(writeFixture(t, "leads.csv", csv))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(ds.Leads) != 2 {
		t.Fatalf("got %d leads, want 2", len(ds.Leads))
	}
	short := ds.Leads[0]
	if short.Scoring != types.UnscoredTier || short.Vertical != "" {
		t.Fatalf("short row not padded: %+v", short)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	csv := "Company,Scoring\n\"unterminated,A\n"
	_, err := Load(writeFixture(t, "leads.csv", csv))
	if !IsParse(err) {
		t.Fatalf("want parse error, got %v", err)
	}
}

func TestLoadEmptyFileIsParseError(t *testing.T) {
	_, err := Load(writeFixture(t, "leads.csv", ""))
	if !IsParse(err) {
		t.Fatalf("want parse error for missing header, got %v", err)
	}
}

func TestLoadDeterministic(t *testing.T) {
	path := writeFixture(t, "leads.csv", leadsCSV)
	first, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two loads of the same content differ")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Rep", "Scoring", "Company"}); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"Alice", "/", "ACME Corp"}); err != nil {
		t.Fatalf("set row: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A3", &[]interface{}{"Bob", "A", "Beta GmbH"}); err != nil {
		t.Fatalf("set row: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Leads) != 2 {
		t.Fatalf("got %d leads, want 2", len(ds.Leads))
	}
	if ds.Leads[0].Scoring != types.UnscoredTier {
		t.Fatalf("slash score in sheet = %q, want sentinel", ds.Leads[0].Scoring)
	}
	if ds.Leads[1].Company != "Beta GmbH" {
		t.Fatalf("second lead company = %q", ds.Leads[1].Company)
	}
}
