package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCertificate_State(t *testing.T) {
	tests := []struct {
		name    string
		ml      MLStatus
		faculty FacultyStatus
		want    State
	}{
		{"fresh upload", MLStatusPending, FacultyStatusPending, StateSubmitted},
		{"ml cleared", MLStatusVerified, FacultyStatusPending, StateMLVerified},
		{"ml flagged duplicate", MLStatusDuplicate, FacultyStatusPending, StateMLDuplicate},
		{"faculty accepted", MLStatusVerified, FacultyStatusLegit, StateFacultyLegit},
		{"faculty rejected", MLStatusVerified, FacultyStatusNotLegit, StateFacultyNotLegit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Certificate{MLStatus: tt.ml, FacultyStatus: tt.faculty}
			assert.Equal(t, tt.want, c.State())
		})
	}
}

func TestCertificate_Terminal(t *testing.T) {
	tests := []struct {
		name    string
		ml      MLStatus
		faculty FacultyStatus
		want    bool
	}{
		{"submitted is not terminal", MLStatusPending, FacultyStatusPending, false},
		{"awaiting review is not terminal", MLStatusVerified, FacultyStatusPending, false},
		{"duplicate is terminal", MLStatusDuplicate, FacultyStatusPending, true},
		{"legit is terminal", MLStatusVerified, FacultyStatusLegit, true},
		{"not legit is terminal", MLStatusVerified, FacultyStatusNotLegit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Certificate{MLStatus: tt.ml, FacultyStatus: tt.faculty}
			assert.Equal(t, tt.want, c.Terminal())
		})
	}
}
