package model

// Sex is a patient's recorded sex, restricted to the two-value domain
// the demographic join and cleaner rules key off of.
type Sex string

const (
	Female Sex = "F"
	Male   Sex = "M"
)

// Patient is one row of the patient table. All string fields are
// assumed already normalized by the upstream input-parsing collaborator
// — this package never re-normalizes.
type Patient struct {
	MRN         string
	FirstName   string
	LastName    string
	PhoneNumber string
	Zipcode     string
}

// ECEntry is one emergency-contact row naming the patient it belongs to
// (OwnerMRN) and the declared relationship of the named contact to that
// patient.
type ECEntry struct {
	OwnerMRN     string
	Sequence     int
	FirstName    string
	LastName     string
	PhoneNumber  string
	Zipcode      string
	DeclaredRel  string
}

// Demographic is one row of the demographic table.
type Demographic struct {
	MRN       string
	BirthYear int
	Sex       Sex
}

// Candidate is a pre-closure directed edge produced by the Matcher:
// Src is the patient located via a fingerprint match, Dst is the EC
// entry's owning patient, and DeclaredGroup is the normalized relationship
// of Src to Dst. MatchedKeys carries every fingerprint key that produced
// this (Src, Dst) pair before dedup, for provenance.
type Candidate struct {
	Src           string
	Dst           string
	DeclaredGroup Group
	MatchedKeys   []string
}

// JoinedEdge augments a Candidate with demographic context.
type JoinedEdge struct {
	Candidate
	BirthYearSrc int
	SexSrc       Sex
	BirthYearDst int
	SexDst       Sex
	DeltaYears   int // BirthYearSrc - BirthYearDst
}

// CanonicalEdge is a single-label, post-cleaning or post-resolution
// directed edge.
type CanonicalEdge struct {
	Src   string
	Dst   string
	Group Group
}
