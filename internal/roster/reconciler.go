package roster

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goktugdsert/Flight-Project/internal/models"
	"github.com/goktugdsert/Flight-Project/internal/rosterapi"
)

// State describes the reconciler lifecycle for the currently opened flight.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// View is a read-only copy of the reconciled roster handed out to callers.
type View struct {
	State        State
	FlightNumber string
	FlightInfo   models.FlightInfo
	Layout       models.AircraftConfig
	Pilots       []models.Pilot
	Cabin        []models.CabinCrewMember
	Passengers   []models.Passenger
}

// Reconciler keeps a single flight's roster consistent with the remote
// service. Fetches happen outside the lock; a generation counter discards
// responses that arrive after a newer OpenFlight started, and the previous
// roster is retained whenever a refresh fails.
type Reconciler struct {
	svc rosterapi.Service
	log zerolog.Logger

	mu           sync.Mutex
	gen          uint64
	state        State
	flightNumber string
	info         models.FlightInfo
	layout       models.AircraftConfig
	pilots       []models.Pilot
	cabin        []models.CabinCrewMember
	passengers   []models.Passenger
}

func NewReconciler(svc rosterapi.Service, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		svc:   svc,
		log:   log.With().Str("component", "reconciler").Logger(),
		state: StateEmpty,
	}
}

// OpenFlight loads the roster for flightNumber, creating one remotely when
// none exists yet. A newer OpenFlight invalidates any in-flight load.
func (r *Reconciler) OpenFlight(ctx context.Context, sess rosterapi.Session, flightNumber string) (View, error) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	prev := r.flightNumber
	r.state = StateLoading
	r.flightNumber = flightNumber
	r.mu.Unlock()

	snap, err := r.svc.RosterDetail(ctx, sess, flightNumber)
	if err == rosterapi.ErrNotFound {
		r.log.Info().Str("flight", flightNumber).Msg("no roster found, creating")
		snap, err = r.svc.CreateRoster(ctx, sess, flightNumber, nil, nil)
	}
	if err != nil {
		r.fail(gen, prev, flightNumber, err)
		return r.View(), err
	}
	r.install(gen, flightNumber, snap)
	return r.View(), nil
}

// Refresh re-fetches the current flight's roster without changing it.
func (r *Reconciler) Refresh(ctx context.Context, sess rosterapi.Session) (View, error) {
	r.mu.Lock()
	if r.flightNumber == "" {
		r.mu.Unlock()
		return View{State: StateEmpty}, fmt.Errorf("no flight opened")
	}
	gen := r.gen
	flightNumber := r.flightNumber
	r.mu.Unlock()

	snap, err := r.svc.RosterDetail(ctx, sess, flightNumber)
	if err != nil {
		r.fail(gen, flightNumber, flightNumber, err)
		return r.View(), err
	}
	r.install(gen, flightNumber, snap)
	return r.View(), nil
}

// ReplaceCrew swaps the crew member at slot for incoming. The safety rules
// run locally before any network call. Pilot swaps go through the narrow
// pilot-update endpoint; cabin swaps rebuild the roster with the full crew
// list as manual overrides, which also reshuffles passenger seats remotely.
func (r *Reconciler) ReplaceCrew(ctx context.Context, sess rosterapi.Session, roleType string, slot int, incoming Replacement) (View, error) {
	r.mu.Lock()
	if r.state != StateReady {
		r.mu.Unlock()
		return r.View(), fmt.Errorf("no roster loaded")
	}
	if err := ValidateReplacement(roleType, slot, incoming, r.pilots, r.cabin); err != nil {
		r.mu.Unlock()
		return r.View(), err
	}
	gen := r.gen
	flightNumber := r.flightNumber
	vehicle := r.info.VehicleType
	pilotIDs := make([]string, len(r.pilots))
	for i, p := range r.pilots {
		pilotIDs[i] = p.ID
	}
	cabinIDs := make([]string, len(r.cabin))
	for i, c := range r.cabin {
		cabinIDs[i] = c.ID
	}
	r.mu.Unlock()

	if !LicenseMatch(incoming.Licenses, vehicle) {
		r.log.Warn().
			Str("flight", flightNumber).
			Str("incoming", incoming.Name).
			Str("vehicle", vehicle).
			Msg("replacement crew member has no matching vehicle license")
	}

	switch roleType {
	case RoleTypePilot:
		if slot < 0 || slot >= len(pilotIDs) {
			return r.View(), fmt.Errorf("pilot slot %d out of range", slot)
		}
		pilotIDs[slot] = incoming.ID
		pilots, err := r.svc.UpdatePilots(ctx, sess, flightNumber, pilotIDs)
		if err != nil {
			return r.View(), err
		}
		r.mu.Lock()
		if r.gen == gen {
			r.pilots = dedupePilots(pilots)
		}
		r.mu.Unlock()
		return r.View(), nil
	case RoleTypeCabin:
		if slot < 0 || slot >= len(cabinIDs) {
			return r.View(), fmt.Errorf("cabin slot %d out of range", slot)
		}
		cabinIDs[slot] = incoming.ID
		snap, err := r.svc.CreateRoster(ctx, sess, flightNumber, pilotIDs, cabinIDs)
		if err != nil {
			return r.View(), err
		}
		r.install(gen, flightNumber, snap)
		return r.View(), nil
	default:
		return r.View(), fmt.Errorf("unknown role type %q", roleType)
	}
}

// AssignSeat asks the remote service to seat a passenger, then refreshes so
// the local roster reflects the server's seat allocation.
func (r *Reconciler) AssignSeat(ctx context.Context, sess rosterapi.Session, passengerID string) (rosterapi.SeatAssignment, View, error) {
	r.mu.Lock()
	if r.state != StateReady {
		r.mu.Unlock()
		return rosterapi.SeatAssignment{}, r.View(), fmt.Errorf("no roster loaded")
	}
	flightNumber := r.flightNumber
	r.mu.Unlock()

	assigned, err := r.svc.AssignSeat(ctx, sess, passengerID, flightNumber)
	if err != nil {
		return rosterapi.SeatAssignment{}, r.View(), err
	}
	view, err := r.Refresh(ctx, sess)
	return assigned, view, err
}

// Save archives the current roster selection remotely.
func (r *Reconciler) Save(ctx context.Context, sess rosterapi.Session, storageKind string) (string, error) {
	r.mu.Lock()
	if r.state != StateReady {
		r.mu.Unlock()
		return "", fmt.Errorf("no roster loaded")
	}
	flightNumber := r.flightNumber
	r.mu.Unlock()
	return r.svc.SaveSelection(ctx, sess, flightNumber, storageKind)
}

// View returns a copy of the current roster. Slices are cloned so callers
// cannot mutate reconciler state.
func (r *Reconciler) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return View{
		State:        r.state,
		FlightNumber: r.flightNumber,
		FlightInfo:   r.info,
		Layout:       r.layout,
		Pilots:       append([]models.Pilot(nil), r.pilots...),
		Cabin:        append([]models.CabinCrewMember(nil), r.cabin...),
		Passengers:   append([]models.Passenger(nil), r.passengers...),
	}
}

// SeatMap projects the current roster onto the aircraft layout.
func (r *Reconciler) SeatMap() (SeatMap, error) {
	v := r.View()
	if v.State != StateReady {
		return SeatMap{}, fmt.Errorf("no roster loaded")
	}
	return MapOccupancy(v.Layout, v.Passengers, v.Pilots, v.Cabin), nil
}

// Connections resolves the guardian and companion links for one passenger.
func (r *Reconciler) Connections(passengerID string) (Connections, error) {
	v := r.View()
	if v.State != StateReady {
		return Connections{}, fmt.Errorf("no roster loaded")
	}
	for _, p := range v.Passengers {
		if models.SameID(p.ID, passengerID) {
			return ResolveConnections(p, v.Passengers), nil
		}
	}
	return Connections{}, fmt.Errorf("passenger %q not on roster", passengerID)
}

// install swaps in a fetched snapshot unless a newer load superseded it.
func (r *Reconciler) install(gen uint64, flightNumber string, snap rosterapi.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		r.log.Debug().Str("flight", flightNumber).Msg("discarding stale roster response")
		return
	}
	r.state = StateReady
	r.flightNumber = flightNumber
	r.info = snap.FlightInfo
	r.layout = PlanLayout(snap.FlightInfo.VehicleType)
	r.pilots = dedupePilots(snap.Pilots)
	r.cabin = dedupeCabin(snap.Cabin)
	r.passengers = dedupePassengers(snap.Passengers)
}

// fail records a load failure. The retained roster keeps its own flight
// identity: a failed open of flight B must not leave flight A's crew tagged
// with B's number.
func (r *Reconciler) fail(gen uint64, prevFlight, attempted string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		return
	}
	r.log.Error().Err(err).Str("flight", attempted).Msg("roster load failed")
	if len(r.passengers) > 0 || len(r.pilots) > 0 {
		r.state = StateReady
		r.flightNumber = prevFlight
	} else {
		r.state = StateEmpty
		r.flightNumber = ""
	}
}

func dedupePilots(in []models.Pilot) []models.Pilot {
	return Dedupe(in, func(p models.Pilot) string { return models.NormalizeID(p.ID) })
}

func dedupeCabin(in []models.CabinCrewMember) []models.CabinCrewMember {
	return Dedupe(in, func(c models.CabinCrewMember) string { return models.NormalizeID(c.ID) })
}

func dedupePassengers(in []models.Passenger) []models.Passenger {
	return Dedupe(in, func(p models.Passenger) string { return models.NormalizeID(p.ID) })
}
