// Package stats is the aggregation engine: total, side-effect-free reductions
// over a snapshot of certificates. Nothing here touches the store, so results
// are recomputed on every query and can never drift from source records.
package stats

import (
	"math"
	"sort"

	"github.com/akashgouda-01/dept-changes/internal/model"
)

// SectionAggregate is the derived per-section count summary. Never persisted.
type SectionAggregate struct {
	Section           string `json:"section"`
	TotalCertificates int    `json:"total_certificates"`
	VerifiedCount     int    `json:"verified_count"`
	RejectedCount     int    `json:"rejected_count"`
	PendingCount      int    `json:"pending_count"`
	VerificationRate  int    `json:"verification_rate"`
}

// Overview is the system-wide counterpart of SectionAggregate plus the roster
// headcount.
type Overview struct {
	TotalStudents     int `json:"total_students"`
	TotalCertificates int `json:"total_certificates"`
	VerifiedCount     int `json:"verified_count"`
	RejectedCount     int `json:"rejected_count"`
	PendingCount      int `json:"pending_count"`
	VerificationRate  int `json:"verification_rate"`
}

// StudentStat is the per-student aggregate joined with roster identity.
type StudentStat struct {
	RegisterNumber    string `json:"register_number"`
	StudentName       string `json:"student_name"`
	Section           string `json:"section"`
	TotalCertificates int    `json:"total_certificates"`
	VerifiedCount     int    `json:"verified_count"`
	RejectedCount     int    `json:"rejected_count"`
	PendingCount      int    `json:"pending_count"`
}

type tally struct {
	total    int
	verified int
	rejected int
	pending  int
}

// add counts one certificate. LEGIT is verified, NOT_LEGIT is rejected and
// everything else, including DUPLICATE terminals, stays pending.
func (t *tally) add(c model.Certificate) {
	t.total++
	switch c.FacultyStatus {
	case model.FacultyStatusLegit:
		t.verified++
	case model.FacultyStatusNotLegit:
		t.rejected++
	default:
		t.pending++
	}
}

// rate is round(verified/total*100), 0 for an empty set.
func rate(verified, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(verified) / float64(total) * 100))
}

// Section reduces the snapshot to the aggregate for a single section.
// Certificates belonging to other sections are ignored.
func Section(section string, certs []model.Certificate) SectionAggregate {
	var t tally
	for _, c := range certs {
		if c.Section == section {
			t.add(c)
		}
	}
	return SectionAggregate{
		Section:           section,
		TotalCertificates: t.total,
		VerifiedCount:     t.verified,
		RejectedCount:     t.rejected,
		PendingCount:      t.pending,
		VerificationRate:  rate(t.verified, t.total),
	}
}

// Sections groups the snapshot by section, one aggregate per section present,
// sorted by section name for stable output.
func Sections(certs []model.Certificate) []SectionAggregate {
	bySection := make(map[string]*tally)
	for _, c := range certs {
		t, ok := bySection[c.Section]
		if !ok {
			t = &tally{}
			bySection[c.Section] = t
		}
		t.add(c)
	}

	out := make([]SectionAggregate, 0, len(bySection))
	for section, t := range bySection {
		out = append(out, SectionAggregate{
			Section:           section,
			TotalCertificates: t.total,
			VerifiedCount:     t.verified,
			RejectedCount:     t.rejected,
			PendingCount:      t.pending,
			VerificationRate:  rate(t.verified, t.total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out
}

// ComputeOverview reduces the whole snapshot to the dashboard overview.
// totalStudents comes from the roster collaborator, not the certificate set.
func ComputeOverview(certs []model.Certificate, totalStudents int) Overview {
	var t tally
	for _, c := range certs {
		t.add(c)
	}
	return Overview{
		TotalStudents:     totalStudents,
		TotalCertificates: t.total,
		VerifiedCount:     t.verified,
		RejectedCount:     t.rejected,
		PendingCount:      t.pending,
		VerificationRate:  rate(t.verified, t.total),
	}
}

// PerStudent joins a roster slice with certificate aggregates. Every roster
// entry produces a row, including students with zero certificates.
func PerStudent(students []model.Student, certs []model.Certificate) []StudentStat {
	byStudent := make(map[string]*tally, len(students))
	for _, s := range students {
		byStudent[s.RegisterNumber] = &tally{}
	}
	for _, c := range certs {
		if t, ok := byStudent[c.RegisterNumber]; ok {
			t.add(c)
		}
	}

	out := make([]StudentStat, 0, len(students))
	for _, s := range students {
		t := byStudent[s.RegisterNumber]
		out = append(out, StudentStat{
			RegisterNumber:    s.RegisterNumber,
			StudentName:       s.Name,
			Section:           s.Section,
			TotalCertificates: t.total,
			VerifiedCount:     t.verified,
			RejectedCount:     t.rejected,
			PendingCount:      t.pending,
		})
	}
	return out
}
