package stats

import (
	"testing"

	"github.com/akashgouda-01/dept-changes/internal/model"

	"github.com/stretchr/testify/assert"
)

func mkCert(section, regNo string, ml model.MLStatus, faculty model.FacultyStatus) model.Certificate {
	return model.Certificate{
		Section:        section,
		RegisterNumber: regNo,
		MLStatus:       ml,
		FacultyStatus:  faculty,
	}
}

func TestSection(t *testing.T) {
	certs := []model.Certificate{
		mkCert("A", "RA1", model.MLStatusVerified, model.FacultyStatusLegit),
		mkCert("A", "RA2", model.MLStatusPending, model.FacultyStatusPending),
		mkCert("A", "RA3", model.MLStatusDuplicate, model.FacultyStatusPending),
		mkCert("B", "RB1", model.MLStatusVerified, model.FacultyStatusNotLegit),
	}

	agg := Section("A", certs)

	assert.Equal(t, "A", agg.Section)
	assert.Equal(t, 3, agg.TotalCertificates)
	assert.Equal(t, 1, agg.VerifiedCount)
	assert.Equal(t, 0, agg.RejectedCount)
	assert.Equal(t, 2, agg.PendingCount)
	assert.Equal(t, 33, agg.VerificationRate)
}

func TestSection_Empty(t *testing.T) {
	agg := Section("Z", nil)

	assert.Equal(t, 0, agg.TotalCertificates)
	assert.Equal(t, 0, agg.VerifiedCount)
	assert.Equal(t, 0, agg.RejectedCount)
	assert.Equal(t, 0, agg.PendingCount)
	assert.Equal(t, 0, agg.VerificationRate)
}

func TestSections(t *testing.T) {
	certs := []model.Certificate{
		mkCert("B", "RB1", model.MLStatusVerified, model.FacultyStatusLegit),
		mkCert("A", "RA1", model.MLStatusVerified, model.FacultyStatusLegit),
		mkCert("B", "RB2", model.MLStatusVerified, model.FacultyStatusLegit),
	}

	out := Sections(certs)

	assert.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Section)
	assert.Equal(t, 1, out[0].TotalCertificates)
	assert.Equal(t, "B", out[1].Section)
	assert.Equal(t, 2, out[1].TotalCertificates)
	assert.Equal(t, 100, out[1].VerificationRate)
}

func TestSections_Empty(t *testing.T) {
	assert.Empty(t, Sections(nil))
}

func TestComputeOverview(t *testing.T) {
	certs := []model.Certificate{
		mkCert("A", "RA1", model.MLStatusVerified, model.FacultyStatusLegit),
		mkCert("A", "RA2", model.MLStatusVerified, model.FacultyStatusLegit),
		mkCert("B", "RB1", model.MLStatusVerified, model.FacultyStatusNotLegit),
	}

	ov := ComputeOverview(certs, 90)

	assert.Equal(t, 90, ov.TotalStudents)
	assert.Equal(t, 3, ov.TotalCertificates)
	assert.Equal(t, 2, ov.VerifiedCount)
	assert.Equal(t, 1, ov.RejectedCount)
	assert.Equal(t, 0, ov.PendingCount)
	assert.Equal(t, 67, ov.VerificationRate)
}

func TestComputeOverview_Empty(t *testing.T) {
	ov := ComputeOverview(nil, 0)

	assert.Equal(t, 0, ov.TotalCertificates)
	assert.Equal(t, 0, ov.VerificationRate)
}

func TestPerStudent(t *testing.T) {
	students := []model.Student{
		{RegisterNumber: "RA1", Name: "Asha", Section: "A"},
		{RegisterNumber: "RA2", Name: "Vikram", Section: "A"},
	}
	certs := []model.Certificate{
		mkCert("A", "RA1", model.MLStatusVerified, model.FacultyStatusLegit),
		mkCert("A", "RA1", model.MLStatusPending, model.FacultyStatusPending),
		// Certificate for a student outside the roster slice is ignored.
		mkCert("A", "RX9", model.MLStatusVerified, model.FacultyStatusLegit),
	}

	rows := PerStudent(students, certs)

	assert.Len(t, rows, 2)
	assert.Equal(t, "Asha", rows[0].StudentName)
	assert.Equal(t, 2, rows[0].TotalCertificates)
	assert.Equal(t, 1, rows[0].VerifiedCount)
	assert.Equal(t, 1, rows[0].PendingCount)
	// Roster entries with no certificates still produce a row.
	assert.Equal(t, "RA2", rows[1].RegisterNumber)
	assert.Equal(t, 0, rows[1].TotalCertificates)
}

func TestRate_Rounding(t *testing.T) {
	tests := []struct {
		verified int
		total    int
		want     int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
		{1, 8, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rate(tt.verified, tt.total))
	}
}
