package matcher

import (
	"testing"

	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/lookup"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/pkg/riftehr/model"
)

func mustTable(t *testing.T) *lookup.Table {
	t.Helper()
	tbl, err := lookup.Default()
	if err != nil {
		t.Fatalf("lookup.Default: %v", err)
	}
	return tbl
}

func TestMatch_BasicParent(t *testing.T) {
	patients := []model.Patient{
		{MRN: "P1", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001"},
		{MRN: "P2", FirstName: "bob", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001"},
	}
	ecs := []model.ECEntry{
		{OwnerMRN: "P2", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001", DeclaredRel: "mother"},
	}

	cache, err := NewUniquenessCache(16)
	if err != nil {
		t.Fatalf("NewUniquenessCache: %v", err)
	}
	edges, stats := Match(patients, ecs, mustTable(t), cache, "gen1")

	if stats.DroppedUnknownRel != 0 {
		t.Fatalf("unexpected dropped relations: %d", stats.DroppedUnknownRel)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 candidate edge, got %d: %+v", len(edges), edges)
	}
	e := edges[0]
	if e.Src != "P1" || e.Dst != "P2" || e.DeclaredGroup != model.Parent {
		t.Fatalf("unexpected edge: %+v", e)
	}
}

func TestMatch_UnknownRelationDropped(t *testing.T) {
	patients := []model.Patient{
		{MRN: "P1", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001"},
	}
	ecs := []model.ECEntry{
		{OwnerMRN: "P2", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001", DeclaredRel: "neighbor"},
	}
	cache, _ := NewUniquenessCache(16)
	edges, stats := Match(patients, ecs, mustTable(t), cache, "gen2")
	if len(edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(edges))
	}
	if stats.DroppedUnknownRel == 0 {
		t.Fatalf("expected DroppedUnknownRel to be counted")
	}
}

func TestMatch_AmbiguousFieldDropsMatch(t *testing.T) {
	// Two patients share every identifying field: no key can uniquely
	// resolve the EC entry, so no candidate edge is emitted.
	patients := []model.Patient{
		{MRN: "P1", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001"},
		{MRN: "P3", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001"},
	}
	ecs := []model.ECEntry{
		{OwnerMRN: "P2", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001", DeclaredRel: "mother"},
	}
	cache, _ := NewUniquenessCache(16)
	edges, _ := Match(patients, ecs, mustTable(t), cache, "gen3")
	if len(edges) != 0 {
		t.Fatalf("expected no edges for ambiguous match, got %d", len(edges))
	}
}

func TestMatch_SelfLoopDropped(t *testing.T) {
	patients := []model.Patient{
		{MRN: "P1", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001"},
	}
	ecs := []model.ECEntry{
		{OwnerMRN: "P1", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001", DeclaredRel: "mother"},
	}
	cache, _ := NewUniquenessCache(16)
	edges, _ := Match(patients, ecs, mustTable(t), cache, "gen4")
	if len(edges) != 0 {
		t.Fatalf("expected self-loop to be dropped, got %d", len(edges))
	}
}

func TestMatch_ProvenanceAccumulatesAcrossKeys(t *testing.T) {
	patients := []model.Patient{
		{MRN: "P1", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001"},
		{MRN: "P2", FirstName: "bob", LastName: "jones", PhoneNumber: "5559999", Zipcode: "20002"},
	}
	ecs := []model.ECEntry{
		{OwnerMRN: "P2", FirstName: "ana", LastName: "smith", PhoneNumber: "5550001", Zipcode: "10001", DeclaredRel: "mother"},
	}
	cache, _ := NewUniquenessCache(16)
	edges, _ := Match(patients, ecs, mustTable(t), cache, "gen5")
	if len(edges) != 1 {
		t.Fatalf("expected 1 deduped edge, got %d", len(edges))
	}
	if len(edges[0].MatchedKeys) < 2 {
		t.Fatalf("expected multiple matching keys recorded, got %v", edges[0].MatchedKeys)
	}
}
