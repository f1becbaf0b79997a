package rosterapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

var (
	// ErrNotFound signals a missing roster on detail fetch. Callers treat it
	// as the create-fallback branch, not a fault.
	ErrNotFound = errors.New("roster not found")

	// ErrUnauthorized signals an expired or invalid bearer credential.
	ErrUnauthorized = errors.New("session expired")
)

// RemoteError carries a generic remote failure, preserving any structured
// validation details the server attached so they can be shown verbatim.
type RemoteError struct {
	Status  int
	Message string
	Details []string
}

func (e *RemoteError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("remote service error (%d): %s: %s", e.Status, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("remote service error (%d): %s", e.Status, e.Message)
}

// Session is the bearer credential for the remote data service. It is passed
// explicitly into every call; nothing in this codebase reads credentials from
// ambient state.
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh,omitempty"`
}

func (s Session) Valid() bool {
	return s.AccessToken != ""
}

// Snapshot is the roster payload returned by the detail and create endpoints,
// already normalized into canonical shapes.
type Snapshot struct {
	FlightInfo models.FlightInfo        `json:"flight_info"`
	Pilots     []models.Pilot           `json:"pilots"`
	Cabin      []models.CabinCrewMember `json:"cabin"`
	Passengers []models.Passenger       `json:"passengers"`
}

// CrewPool is the candidate pools returned by the available-crew query.
type CrewPool struct {
	Vehicle    string                      `json:"vehicle"`
	DistanceKm float64                     `json:"flight_distance"`
	Pilots     []models.PilotCandidate     `json:"pilots"`
	Attendants []models.AttendantCandidate `json:"attendants"`
}

type SeatAssignment struct {
	Seat      string `json:"seat"`
	Passenger string `json:"passenger"`
}

// Service is the remote data service contract the core depends on. Storage,
// seat-assignment computation and authentication all live behind it.
type Service interface {
	Login(ctx context.Context, username, password string) (Session, error)
	ListFlights(ctx context.Context, sess Session) ([]models.Flight, error)
	DashboardStats(ctx context.Context, sess Session) (models.DashboardStats, error)

	RosterDetail(ctx context.Context, sess Session, flightNumber string) (Snapshot, error)
	CreateRoster(ctx context.Context, sess Session, flightNumber string, manualPilotIDs, manualAttendantIDs []string) (Snapshot, error)
	UpdatePilots(ctx context.Context, sess Session, flightNumber string, pilotIDs []string) ([]models.Pilot, error)
	AvailableCrew(ctx context.Context, sess Session, flightNumber string) (CrewPool, error)
	AssignSeat(ctx context.Context, sess Session, passengerID, flightNumber string) (SeatAssignment, error)

	SaveSelection(ctx context.Context, sess Session, flightNumber, storageKind string) (string, error)
	ListSaved(ctx context.Context, sess Session) ([]models.SavedRoster, error)
	OpenSaved(ctx context.Context, sess Session, id string) (json.RawMessage, error)
	DeleteSaved(ctx context.Context, sess Session, id string) error
}
