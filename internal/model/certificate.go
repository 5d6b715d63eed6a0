package model

import "time"

// MLStatus is the outcome of the automated duplicate/legitimacy pre-check.
type MLStatus string

const (
	MLStatusPending   MLStatus = "PENDING"
	MLStatusVerified  MLStatus = "VERIFIED"
	MLStatusDuplicate MLStatus = "DUPLICATE"
)

// FacultyStatus is the terminal human judgment on a certificate.
type FacultyStatus string

const (
	FacultyStatusPending  FacultyStatus = "PENDING"
	FacultyStatusLegit    FacultyStatus = "LEGIT"
	FacultyStatusNotLegit FacultyStatus = "NOT_LEGIT"
)

// State is the lifecycle state derived from (MLStatus, FacultyStatus).
type State string

const (
	StateSubmitted       State = "SUBMITTED"
	StateMLVerified      State = "ML_VERIFIED"
	StateMLDuplicate     State = "ML_DUPLICATE"
	StateFacultyLegit    State = "FACULTY_LEGIT"
	StateFacultyNotLegit State = "FACULTY_NOT_LEGIT"
)

// Certificate represents one uploaded credential.
// This is a pure domain model with no database-specific dependencies or tags.
// Identity and provenance fields are immutable after creation; only MLStatus,
// MLScore, FacultyStatus and Archived ever change, each at most once.
type Certificate struct {
	ID             string        `json:"id"`
	DriveLink      string        `json:"drive_link"`
	RegisterNumber string        `json:"register_number"`
	Section        string        `json:"section"`
	StudentName    string        `json:"student_name"`
	UploadedBy     string        `json:"uploaded_by"`
	UploadedAt     time.Time     `json:"uploaded_at"`
	MLStatus       MLStatus      `json:"ml_status"`
	MLScore        *float64      `json:"ml_score,omitempty"`
	FacultyStatus  FacultyStatus `json:"faculty_status"`
	Archived       bool          `json:"archived"`
}

// State derives the lifecycle state. FacultyStatus can only be non-pending
// when MLStatus is VERIFIED, so the mapping is total.
func (c *Certificate) State() State {
	switch {
	case c.MLStatus == MLStatusPending:
		return StateSubmitted
	case c.MLStatus == MLStatusDuplicate:
		return StateMLDuplicate
	case c.FacultyStatus == FacultyStatusLegit:
		return StateFacultyLegit
	case c.FacultyStatus == FacultyStatusNotLegit:
		return StateFacultyNotLegit
	default:
		return StateMLVerified
	}
}

// Terminal reports whether no further transition is permitted except archiving.
func (c *Certificate) Terminal() bool {
	s := c.State()
	return s == StateMLDuplicate || s == StateFacultyLegit || s == StateFacultyNotLegit
}
