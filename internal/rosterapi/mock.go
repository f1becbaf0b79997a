package rosterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goktugdsert/Flight-Project/internal/models"
	"github.com/goktugdsert/Flight-Project/internal/utils"
)

// Mock is an in-memory Service used for local development and tests. Crew and
// passenger data is derived deterministically from the flight number so the
// same flight always produces the same roster.
type Mock struct {
	mu      sync.Mutex
	rosters map[string]Snapshot
	saved   map[string]models.SavedRoster
	seq     int
}

func NewMock() *Mock {
	return &Mock{
		rosters: map[string]Snapshot{},
		saved:   map[string]models.SavedRoster{},
	}
}

var mockFlights = []models.Flight{
	{Number: "TK1234", Source: "IST", Destination: "ESB", VehicleType: "Boeing 737", PassengerCount: 123, Datetime: "2026-01-11T17:51:00Z"},
	{Number: "BA456", Source: "IST", Destination: "LHR", VehicleType: "Airbus A320", PassengerCount: 150, Datetime: "2026-01-12T08:30:00Z"},
	{Number: "LH101", Source: "MUC", Destination: "IST", VehicleType: "Boeing 777", PassengerCount: 280, Datetime: "2026-01-14T09:15:00Z"},
}

func (m *Mock) Login(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, ErrUnauthorized
	}
	return Session{AccessToken: "mock-" + username, RefreshToken: "mock-refresh"}, nil
}

func (m *Mock) ListFlights(ctx context.Context, sess Session) ([]models.Flight, error) {
	if !sess.Valid() {
		return nil, ErrUnauthorized
	}
	return append([]models.Flight(nil), mockFlights...), nil
}

func (m *Mock) DashboardStats(ctx context.Context, sess Session) (models.DashboardStats, error) {
	if !sess.Valid() {
		return models.DashboardStats{}, ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.DashboardStats{TotalActiveCrew: 24, SavedRostersCount: len(m.saved)}, nil
}

func (m *Mock) RosterDetail(ctx context.Context, sess Session, flightNumber string) (Snapshot, error) {
	if !sess.Valid() {
		return Snapshot{}, ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.rosters[flightNumber]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

func (m *Mock) CreateRoster(ctx context.Context, sess Session, flightNumber string, manualPilotIDs, manualAttendantIDs []string) (Snapshot, error) {
	if !sess.Valid() {
		return Snapshot{}, ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.buildSnapshot(flightNumber)
	if len(manualPilotIDs) > 0 {
		snap.Pilots = pickPilots(m.pilotPool(flightNumber), manualPilotIDs)
	}
	if len(manualAttendantIDs) > 0 {
		snap.Cabin = pickAttendants(m.attendantPool(flightNumber), manualAttendantIDs)
	}
	m.rosters[flightNumber] = snap
	return snap, nil
}

func (m *Mock) UpdatePilots(ctx context.Context, sess Session, flightNumber string, pilotIDs []string) ([]models.Pilot, error) {
	if !sess.Valid() {
		return nil, ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.rosters[flightNumber]
	if !ok {
		return nil, ErrNotFound
	}
	pilots := pickPilots(m.pilotPool(flightNumber), pilotIDs)
	if len(pilots) != len(pilotIDs) {
		return nil, &RemoteError{
			Status:  400,
			Message: "Validation Failed",
			Details: []string{"one or more pilots are not certified for this aircraft"},
		}
	}
	snap.Pilots = pilots
	m.rosters[flightNumber] = snap
	return pilots, nil
}

func (m *Mock) AvailableCrew(ctx context.Context, sess Session, flightNumber string) (CrewPool, error) {
	if !sess.Valid() {
		return CrewPool{}, ErrUnauthorized
	}
	vehicle := vehicleFor(flightNumber)
	return CrewPool{
		Vehicle:    vehicle,
		DistanceKm: 450,
		Pilots:     m.pilotPool(flightNumber),
		Attendants: m.attendantPool(flightNumber),
	}, nil
}

func (m *Mock) AssignSeat(ctx context.Context, sess Session, passengerID, flightNumber string) (SeatAssignment, error) {
	if !sess.Valid() {
		return SeatAssignment{}, ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.rosters[flightNumber]
	if !ok {
		return SeatAssignment{}, ErrNotFound
	}
	for i, p := range snap.Passengers {
		if models.SameID(p.ID, passengerID) {
			if p.IsInfant() {
				return SeatAssignment{}, &RemoteError{Status: 400, Message: "infants do not receive seats"}
			}
			seat := fmt.Sprintf("%d%s", 10+i%20, string(rune('A'+i%6)))
			snap.Passengers[i].Seat = &seat
			m.rosters[flightNumber] = snap
			return SeatAssignment{Seat: seat, Passenger: p.Name}, nil
		}
	}
	return SeatAssignment{}, ErrNotFound
}

func (m *Mock) SaveSelection(ctx context.Context, sess Session, flightNumber, storageKind string) (string, error) {
	if !sess.Valid() {
		return "", ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rosters[flightNumber]; !ok {
		return "", ErrNotFound
	}
	m.seq++
	id := fmt.Sprintf("%s_roster_%d.json", flightNumber, m.seq)
	m.saved[id] = models.SavedRoster{
		ID:           id,
		FlightNumber: flightNumber,
		DateSaved:    time.Now().UTC().Format("02.01.2006 15:04"),
		StorageKind:  storageKind,
	}
	return "Roster saved successfully.", nil
}

func (m *Mock) ListSaved(ctx context.Context, sess Session) ([]models.SavedRoster, error) {
	if !sess.Valid() {
		return nil, ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SavedRoster, 0, len(m.saved))
	for _, r := range m.saved {
		out = append(out, r)
	}
	return out, nil
}

func (m *Mock) OpenSaved(ctx context.Context, sess Session, id string) (json.RawMessage, error) {
	if !sess.Valid() {
		return nil, ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	saved, ok := m.saved[id]
	if !ok {
		return nil, ErrNotFound
	}
	snap := m.rosters[saved.FlightNumber]
	b, _ := json.Marshal(snap)
	return b, nil
}

func (m *Mock) DeleteSaved(ctx context.Context, sess Session, id string) error {
	if !sess.Valid() {
		return ErrUnauthorized
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saved[id]; !ok {
		return ErrNotFound
	}
	delete(m.saved, id)
	return nil
}

// ---- deterministic data ----------------------------------------------------

func vehicleFor(flightNumber string) string {
	for _, f := range mockFlights {
		if f.Number == flightNumber {
			return f.VehicleType
		}
	}
	vehicles := []string{"Boeing 737", "Boeing 777", "Airbus A320"}
	return vehicles[utils.FlightSeed(flightNumber)%3]
}

func (m *Mock) pilotPool(flightNumber string) []models.PilotCandidate {
	vehicle := vehicleFor(flightNumber)
	seniorities := []string{"SENIOR", "JUNIOR", "SENIOR", "TRAINEE", "JUNIOR", "SENIOR"}
	pool := make([]models.PilotCandidate, 0, len(seniorities))
	for i, s := range seniorities {
		pool = append(pool, models.PilotCandidate{
			ID:           fmt.Sprintf("%d", 100+i),
			Name:         fmt.Sprintf("Pilot %c", 'A'+i),
			Seniority:    s,
			VehicleTypes: []string{vehicle},
			AllowedRange: 5000,
			Age:          35 + i,
			Nationality:  "TR",
		})
	}
	return pool
}

func (m *Mock) attendantPool(flightNumber string) []models.AttendantCandidate {
	vehicle := vehicleFor(flightNumber)
	types := []string{"CHIEF", "REGULAR", "REGULAR", "CHEF", "CHIEF", "REGULAR"}
	pool := make([]models.AttendantCandidate, 0, len(types))
	for i, t := range types {
		pool = append(pool, models.AttendantCandidate{
			ID:           fmt.Sprintf("%d", 200+i),
			Name:         fmt.Sprintf("Attendant %c", 'A'+i),
			Type:         t,
			VehicleTypes: []string{vehicle},
		})
	}
	return pool
}

func (m *Mock) buildSnapshot(flightNumber string) Snapshot {
	vehicle := vehicleFor(flightNumber)
	h := utils.FlightSeed(flightNumber)

	snap := Snapshot{
		FlightInfo: models.FlightInfo{
			Number:      flightNumber,
			VehicleType: vehicle,
			Capacity:    190,
			Menu:        "Standard Airline Food",
			Source:      models.Location{Code: "IST", City: "Istanbul", Airport: "Istanbul Airport"},
			Destination: models.Location{Code: "ESB", City: "Ankara", Airport: "Esenboga"},
			Datetime:    "2026-01-11T17:51:00Z",
			Duration:    "1h 05m",
			DistanceKm:  450,
		},
	}

	pilots := m.pilotPool(flightNumber)
	snap.Pilots = []models.Pilot{
		{ID: pilots[0].ID, Name: pilots[0].Name, Role: pilots[0].Seniority},
		{ID: pilots[1].ID, Name: pilots[1].Name, Role: pilots[1].Seniority},
	}
	for _, a := range m.attendantPool(flightNumber)[:4] {
		snap.Cabin = append(snap.Cabin, models.CabinCrewMember{ID: a.ID, Name: a.Name, Role: a.Type, Type: a.Type})
	}

	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("%d", 1000+i)
		p := models.Passenger{
			ID:          id,
			FlightID:    flightNumber,
			Name:        fmt.Sprintf("Passenger %c", 'A'+i),
			Age:         20 + int((h>>uint(i))%40),
			Gender:      []string{"M", "F"}[i%2],
			Nationality: "TR",
			SeatType:    "Economy",
		}
		if i < 2 {
			p.SeatType = "Business"
		}
		if i%3 == 0 {
			seat := fmt.Sprintf("%d%s", 7+i, string(rune('A'+i%6)))
			p.Seat = &seat
		}
		snap.Passengers = append(snap.Passengers, p)
	}
	// one lap infant linked to the first seated passenger
	snap.Passengers = append(snap.Passengers, models.Passenger{
		ID:       "2000",
		FlightID: flightNumber,
		Name:     "Infant Passenger",
		Age:      1,
		Gender:   "F",
		SeatType: "Economy",
		ParentID: snap.Passengers[0].ID,
	})
	return snap
}

func pickPilots(pool []models.PilotCandidate, ids []string) []models.Pilot {
	var out []models.Pilot
	for _, id := range ids {
		for _, c := range pool {
			if models.SameID(c.ID, id) {
				out = append(out, models.Pilot{ID: c.ID, Name: c.Name, Role: strings.ToUpper(c.Seniority)})
				break
			}
		}
	}
	return out
}

func pickAttendants(pool []models.AttendantCandidate, ids []string) []models.CabinCrewMember {
	var out []models.CabinCrewMember
	for _, id := range ids {
		for _, c := range pool {
			if models.SameID(c.ID, id) {
				out = append(out, models.CabinCrewMember{ID: c.ID, Name: c.Name, Role: c.Type, Type: c.Type})
				break
			}
		}
	}
	return out
}
