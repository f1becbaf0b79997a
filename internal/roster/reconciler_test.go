package roster

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goktugdsert/Flight-Project/internal/models"
	"github.com/goktugdsert/Flight-Project/internal/rosterapi"
)

// stubService lets each test control exactly what the remote side does.
type stubService struct {
	rosterDetail func(flightNumber string) (rosterapi.Snapshot, error)
	createRoster func(flightNumber string, pilotIDs, attendantIDs []string) (rosterapi.Snapshot, error)
	updatePilots func(flightNumber string, pilotIDs []string) ([]models.Pilot, error)
	assignSeat   func(passengerID, flightNumber string) (rosterapi.SeatAssignment, error)
}

func (s *stubService) Login(context.Context, string, string) (rosterapi.Session, error) {
	return rosterapi.Session{AccessToken: "t"}, nil
}
func (s *stubService) ListFlights(context.Context, rosterapi.Session) ([]models.Flight, error) {
	return nil, nil
}
func (s *stubService) DashboardStats(context.Context, rosterapi.Session) (models.DashboardStats, error) {
	return models.DashboardStats{}, nil
}
func (s *stubService) RosterDetail(_ context.Context, _ rosterapi.Session, flightNumber string) (rosterapi.Snapshot, error) {
	if s.rosterDetail == nil {
		return rosterapi.Snapshot{}, rosterapi.ErrNotFound
	}
	return s.rosterDetail(flightNumber)
}
func (s *stubService) CreateRoster(_ context.Context, _ rosterapi.Session, flightNumber string, pilotIDs, attendantIDs []string) (rosterapi.Snapshot, error) {
	if s.createRoster == nil {
		return rosterapi.Snapshot{}, errors.New("unexpected CreateRoster call")
	}
	return s.createRoster(flightNumber, pilotIDs, attendantIDs)
}
func (s *stubService) UpdatePilots(_ context.Context, _ rosterapi.Session, flightNumber string, pilotIDs []string) ([]models.Pilot, error) {
	if s.updatePilots == nil {
		return nil, errors.New("unexpected UpdatePilots call")
	}
	return s.updatePilots(flightNumber, pilotIDs)
}
func (s *stubService) AvailableCrew(context.Context, rosterapi.Session, string) (rosterapi.CrewPool, error) {
	return rosterapi.CrewPool{}, nil
}
func (s *stubService) AssignSeat(_ context.Context, _ rosterapi.Session, passengerID, flightNumber string) (rosterapi.SeatAssignment, error) {
	if s.assignSeat == nil {
		return rosterapi.SeatAssignment{}, errors.New("unexpected AssignSeat call")
	}
	return s.assignSeat(passengerID, flightNumber)
}
func (s *stubService) SaveSelection(context.Context, rosterapi.Session, string, string) (string, error) {
	return "saved", nil
}
func (s *stubService) ListSaved(context.Context, rosterapi.Session) ([]models.SavedRoster, error) {
	return nil, nil
}
func (s *stubService) OpenSaved(context.Context, rosterapi.Session, string) (json.RawMessage, error) {
	return nil, rosterapi.ErrNotFound
}
func (s *stubService) DeleteSaved(context.Context, rosterapi.Session, string) error {
	return nil
}

var testSess = rosterapi.Session{AccessToken: "t"}

func snapshotFor(flightNumber, vehicle string) rosterapi.Snapshot {
	return rosterapi.Snapshot{
		FlightInfo: models.FlightInfo{Number: flightNumber, VehicleType: vehicle},
		Pilots: []models.Pilot{
			{ID: "p1", Name: "Captain", Role: "SENIOR"},
			{ID: "p2", Name: "FO", Role: "JUNIOR"},
		},
		Cabin: []models.CabinCrewMember{
			{ID: "c1", Name: "Chief", Role: "CHIEF"},
			{ID: "c2", Name: "Second", Role: "REGULAR"},
		},
		Passengers: []models.Passenger{
			{ID: "1", Name: "Alice", Age: 30},
		},
	}
}

func TestOpenFlightLoadsExistingRoster(t *testing.T) {
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			return snapshotFor(fn, "Boeing 737"), nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())

	view, err := rec.OpenFlight(context.Background(), testSess, "TK1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != StateReady {
		t.Fatalf("expected ready state, got %s", view.State)
	}
	if view.Layout.Name != "Boeing 737" {
		t.Fatalf("layout must be derived from the vehicle type: %+v", view.Layout)
	}
	if len(view.Pilots) != 2 || len(view.Cabin) != 2 || len(view.Passengers) != 1 {
		t.Fatalf("roster lists wrong: %+v", view)
	}
}

func TestOpenFlightCreatesWhenMissing(t *testing.T) {
	created := false
	svc := &stubService{
		createRoster: func(fn string, pilots, attendants []string) (rosterapi.Snapshot, error) {
			created = true
			if len(pilots) != 0 || len(attendants) != 0 {
				t.Fatalf("initial creation must not carry manual overrides")
			}
			return snapshotFor(fn, "Boeing 777"), nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())

	view, err := rec.OpenFlight(context.Background(), testSess, "LH101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("missing roster must trigger creation")
	}
	if view.Layout.Name != "Boeing 777" {
		t.Fatalf("unexpected layout: %s", view.Layout.Name)
	}
}

func TestOpenFlightDeduplicatesFetchedLists(t *testing.T) {
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			snap := snapshotFor(fn, "Boeing 737")
			snap.Passengers = append(snap.Passengers, snap.Passengers[0])
			snap.Pilots = append(snap.Pilots, snap.Pilots[0])
			return snap, nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())

	view, _ := rec.OpenFlight(context.Background(), testSess, "TK1234")
	if len(view.Passengers) != 1 || len(view.Pilots) != 2 {
		t.Fatalf("duplicate rows must collapse: %d passengers, %d pilots", len(view.Passengers), len(view.Pilots))
	}
}

func TestOpenFlightFailureKeepsPriorRoster(t *testing.T) {
	calls := 0
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			calls++
			if calls > 1 {
				return rosterapi.Snapshot{}, errors.New("upstream down")
			}
			return snapshotFor(fn, "Boeing 737"), nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())

	if _, err := rec.OpenFlight(context.Background(), testSess, "TK1234"); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := rec.Refresh(context.Background(), testSess); err == nil {
		t.Fatalf("expected refresh error")
	}

	view := rec.View()
	if view.State != StateReady {
		t.Fatalf("failed refresh must keep the ready state, got %s", view.State)
	}
	if len(view.Passengers) != 1 {
		t.Fatalf("prior roster lost: %+v", view)
	}
}

func TestFailedOpenKeepsPriorFlightIdentity(t *testing.T) {
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			if fn == "BROKEN" {
				return rosterapi.Snapshot{}, errors.New("upstream down")
			}
			return snapshotFor(fn, "Boeing 737"), nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())

	if _, err := rec.OpenFlight(context.Background(), testSess, "TK1234"); err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if _, err := rec.OpenFlight(context.Background(), testSess, "BROKEN"); err == nil {
		t.Fatalf("expected open error")
	}

	view := rec.View()
	if view.State != StateReady {
		t.Fatalf("prior roster must stay available, got %s", view.State)
	}
	if view.FlightNumber != "TK1234" {
		t.Fatalf("retained roster must keep its own flight number, got %q", view.FlightNumber)
	}
	if view.FlightNumber != view.FlightInfo.Number {
		t.Fatalf("flight identity mismatch: %q vs %q", view.FlightNumber, view.FlightInfo.Number)
	}
	if len(view.Pilots) != 2 || len(view.Passengers) != 1 {
		t.Fatalf("prior roster lost: %+v", view)
	}
}

func TestFailedFirstOpenStaysEmpty(t *testing.T) {
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			return rosterapi.Snapshot{}, errors.New("upstream down")
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())

	if _, err := rec.OpenFlight(context.Background(), testSess, "TK1234"); err == nil {
		t.Fatalf("expected open error")
	}
	view := rec.View()
	if view.State != StateEmpty || view.FlightNumber != "" {
		t.Fatalf("nothing to retain, expected empty state: %+v", view)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			if fn == "SLOW1" {
				close(started)
				<-release
			}
			return snapshotFor(fn, "Boeing 737"), nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		rec.OpenFlight(context.Background(), testSess, "SLOW1")
	}()
	<-started

	if _, err := rec.OpenFlight(context.Background(), testSess, "FAST2"); err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	close(release)
	<-done

	view := rec.View()
	if view.FlightNumber != "FAST2" || view.FlightInfo.Number != "FAST2" {
		t.Fatalf("late response must be discarded, ended with %s", view.FlightInfo.Number)
	}
}

func TestReplaceCrewPilotUsesNarrowUpdate(t *testing.T) {
	var gotIDs []string
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			return snapshotFor(fn, "Boeing 737"), nil
		},
		updatePilots: func(fn string, pilotIDs []string) ([]models.Pilot, error) {
			gotIDs = pilotIDs
			return []models.Pilot{
				{ID: "p1", Name: "Captain", Role: "SENIOR"},
				{ID: "p9", Name: "New FO", Role: "SENIOR"},
			}, nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())
	rec.OpenFlight(context.Background(), testSess, "TK1234")

	view, err := rec.ReplaceCrew(context.Background(), testSess, RoleTypePilot, 1, Replacement{ID: "p9", Name: "New FO", Seniority: "SENIOR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotIDs) != 2 || gotIDs[0] != "p1" || gotIDs[1] != "p9" {
		t.Fatalf("pilot id list wrong: %v", gotIDs)
	}
	if view.Pilots[1].Name != "New FO" {
		t.Fatalf("roster not updated: %+v", view.Pilots)
	}
}

func TestReplaceCrewCabinRebuildsRoster(t *testing.T) {
	var gotPilots, gotAttendants []string
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			return snapshotFor(fn, "Boeing 737"), nil
		},
		createRoster: func(fn string, pilotIDs, attendantIDs []string) (rosterapi.Snapshot, error) {
			gotPilots = pilotIDs
			gotAttendants = attendantIDs
			snap := snapshotFor(fn, "Boeing 737")
			snap.Cabin[1] = models.CabinCrewMember{ID: "c9", Name: "Replacement", Role: "REGULAR"}
			return snap, nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())
	rec.OpenFlight(context.Background(), testSess, "TK1234")

	view, err := rec.ReplaceCrew(context.Background(), testSess, RoleTypeCabin, 1, Replacement{ID: "c9", Name: "Replacement", Category: "REGULAR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotPilots) != 2 {
		t.Fatalf("cabin rebuild must pin the current pilots: %v", gotPilots)
	}
	if len(gotAttendants) != 2 || gotAttendants[1] != "c9" {
		t.Fatalf("attendant override list wrong: %v", gotAttendants)
	}
	if view.Cabin[1].Name != "Replacement" {
		t.Fatalf("roster not updated: %+v", view.Cabin)
	}
}

func TestReplaceCrewSafetyRejectionSkipsNetwork(t *testing.T) {
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			return snapshotFor(fn, "Boeing 737"), nil
		},
		updatePilots: func(fn string, pilotIDs []string) ([]models.Pilot, error) {
			t.Fatalf("safety rejection must never reach the remote service")
			return nil, nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())
	rec.OpenFlight(context.Background(), testSess, "TK1234")

	// slot 0 holds the SENIOR captain; the remaining pilot is JUNIOR
	_, err := rec.ReplaceCrew(context.Background(), testSess, RoleTypePilot, 0, Replacement{ID: "p9", Seniority: "JUNIOR"})
	var safety *SafetyError
	if !errors.As(err, &safety) {
		t.Fatalf("expected safety error, got %v", err)
	}

	view := rec.View()
	if view.Pilots[0].ID != "p1" {
		t.Fatalf("rejected swap must not change the roster: %+v", view.Pilots)
	}
}

func TestReplaceCrewRemoteFailureKeepsRoster(t *testing.T) {
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			return snapshotFor(fn, "Boeing 737"), nil
		},
		updatePilots: func(fn string, pilotIDs []string) ([]models.Pilot, error) {
			return nil, &rosterapi.RemoteError{Status: 400, Message: "Validation Failed", Details: []string{"pilot not certified"}}
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())
	rec.OpenFlight(context.Background(), testSess, "TK1234")

	_, err := rec.ReplaceCrew(context.Background(), testSess, RoleTypePilot, 1, Replacement{ID: "p9", Seniority: "SENIOR"})
	var remote *rosterapi.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("remote validation details must be preserved, got %v", err)
	}
	if len(remote.Details) != 1 || remote.Details[0] != "pilot not certified" {
		t.Fatalf("details lost: %+v", remote)
	}

	view := rec.View()
	if view.Pilots[1].ID != "p2" {
		t.Fatalf("failed swap must not change the roster: %+v", view.Pilots)
	}
}

func TestAssignSeatRefreshesRoster(t *testing.T) {
	seated := false
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			snap := snapshotFor(fn, "Boeing 737")
			if seated {
				s := "12C"
				snap.Passengers[0].Seat = &s
			}
			return snap, nil
		},
		assignSeat: func(passengerID, fn string) (rosterapi.SeatAssignment, error) {
			seated = true
			return rosterapi.SeatAssignment{Seat: "12C", Passenger: "Alice"}, nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())
	rec.OpenFlight(context.Background(), testSess, "TK1234")

	assigned, view, err := rec.AssignSeat(context.Background(), testSess, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assigned.Seat != "12C" {
		t.Fatalf("unexpected assignment: %+v", assigned)
	}
	if view.Passengers[0].Seat == nil || *view.Passengers[0].Seat != "12C" {
		t.Fatalf("roster must reflect the fresh fetch: %+v", view.Passengers[0])
	}
}

func TestOperationsRequireOpenRoster(t *testing.T) {
	rec := NewReconciler(&stubService{}, zerolog.Nop())

	if _, err := rec.ReplaceCrew(context.Background(), testSess, RoleTypePilot, 0, Replacement{ID: "x"}); err == nil {
		t.Fatalf("replace without a roster must fail")
	}
	if _, _, err := rec.AssignSeat(context.Background(), testSess, "1"); err == nil {
		t.Fatalf("assign without a roster must fail")
	}
	if _, err := rec.Save(context.Background(), testSess, "nosql"); err == nil {
		t.Fatalf("save without a roster must fail")
	}
	if _, err := rec.SeatMap(); err == nil {
		t.Fatalf("seat map without a roster must fail")
	}
}

func TestViewReturnsCopies(t *testing.T) {
	svc := &stubService{
		rosterDetail: func(fn string) (rosterapi.Snapshot, error) {
			return snapshotFor(fn, "Boeing 737"), nil
		},
	}
	rec := NewReconciler(svc, zerolog.Nop())
	rec.OpenFlight(context.Background(), testSess, "TK1234")

	view := rec.View()
	view.Pilots[0].Name = "Mutated"
	if rec.View().Pilots[0].Name == "Mutated" {
		t.Fatalf("view slices must be copies")
	}
}
