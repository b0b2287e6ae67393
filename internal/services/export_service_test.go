package services

import (
	"testing"

	ical "github.com/arran4/golang-ical"

	"labo-backend/internal/models"
)

func TestICSStatus(t *testing.T) {
	tests := []struct {
		state string
		want  ical.ObjectStatus
	}{
		{models.StateValidated, ical.ObjectStatusConfirmed},
		{models.StateInProgress, ical.ObjectStatusConfirmed},
		{models.StateCancelled, ical.ObjectStatusCancelled},
		{models.StatePending, ical.ObjectStatusTentative},
		{models.StateMoved, ical.ObjectStatusTentative},
		{"", ical.ObjectStatusTentative},
	}
	for _, tt := range tests {
		if got := icsStatus(tt.state); got != tt.want {
			t.Errorf("icsStatus(%q) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
