package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTSV(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile %s: %v", path, err)
	}
	return path
}

func TestLoadDemographics_DropsAllRowsForDuplicateMRN(t *testing.T) {
	dir := t.TempDir()
	path := writeTSV(t, dir, "demog.tsv",
		"MRN\tBirthYear\tSex\n"+
			"A1\t1980\tF\n"+
			"A2\t1975\tM\n"+
			"A1\t1981\tF\n", // A1 repeated with a conflicting birth year
	)

	out, stats, err := LoadDemographics(path)
	if err != nil {
		t.Fatalf("LoadDemographics: %v", err)
	}
	if len(out) != 1 || out[0].MRN != "A2" {
		t.Fatalf("expected only A2 to survive, got %+v", out)
	}
	if stats.DroppedDuplicateMRN != 2 {
		t.Fatalf("expected both A1 rows counted as duplicate-MRN drops, got %+v", stats)
	}
	if stats.Dropped != 0 {
		t.Fatalf("expected no malformed-row drops, got %+v", stats)
	}
}

func TestLoadDemographics_NoDuplicatesKeepsAllRows(t *testing.T) {
	dir := t.TempDir()
	path := writeTSV(t, dir, "demog.tsv",
		"MRN\tBirthYear\tSex\n"+
			"A1\t1980\tF\n"+
			"A2\t1975\tM\n",
	)

	out, stats, err := LoadDemographics(path)
	if err != nil {
		t.Fatalf("LoadDemographics: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected both rows to survive, got %+v", out)
	}
	if stats.DroppedDuplicateMRN != 0 {
		t.Fatalf("expected no duplicate-MRN drops, got %+v", stats)
	}
}

func TestLoadDemographics_MalformedRowsStillDropped(t *testing.T) {
	dir := t.TempDir()
	path := writeTSV(t, dir, "demog.tsv",
		"MRN\tBirthYear\tSex\n"+
			"A1\tnotayear\tF\n"+
			"A2\t1975\tX\n",
	)

	out, stats, err := LoadDemographics(path)
	if err != nil {
		t.Fatalf("LoadDemographics: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no rows to survive, got %+v", out)
	}
	if stats.Dropped != 2 {
		t.Fatalf("expected 2 malformed-row drops, got %+v", stats)
	}
}
