package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/akashgouda-01/dept-changes/internal/model"
)

func TestBuildCertificatesWorkbook(t *testing.T) {
	score := 91.5
	uploadedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	certs := []model.Certificate{
		{
			RegisterNumber: "RA1",
			StudentName:    "Asha Rao",
			Section:        "A",
			DriveLink:      "https://drive.google.com/file/d/abc/view",
			UploadedBy:     "mentor@univ.edu",
			UploadedAt:     uploadedAt,
			MLStatus:       model.MLStatusVerified,
			MLScore:        &score,
			FacultyStatus:  model.FacultyStatusLegit,
		},
		{
			RegisterNumber: "RA2",
			StudentName:    "Vikram N",
			Section:        "A",
			DriveLink:      "https://drive.google.com/file/d/def/view",
			UploadedAt:     uploadedAt,
			MLStatus:       model.MLStatusPending,
			FacultyStatus:  model.FacultyStatusPending,
		},
	}

	content, err := BuildCertificatesWorkbook(certs, "Section-A")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Section-A")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Register Number", rows[0][0])
	assert.Equal(t, "Faculty Status", rows[0][8])

	assert.Equal(t, "RA1", rows[1][0])
	assert.Equal(t, "2026-03-14T10:00:00Z", rows[1][5])
	assert.Equal(t, "VERIFIED", rows[1][6])
	assert.Equal(t, "91.5", rows[1][7])
	assert.Equal(t, "LEGIT", rows[1][8])

	// Records without a score keep the column blank.
	assert.Equal(t, "RA2", rows[2][0])
	assert.Equal(t, "PENDING", rows[2][6])
}

func TestBuildCertificatesWorkbook_EmptySet(t *testing.T) {
	content, err := BuildCertificatesWorkbook(nil, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Certificates")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
