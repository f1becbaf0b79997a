package rosterapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

// Client talks to the roster data service over HTTP. All wire-format
// tolerance (alternate field names, numeric vs string ids, seat sentinels)
// is handled here; nothing past this boundary sees raw payloads.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ---- wire shapes -----------------------------------------------------------

type wireError struct {
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Details any    `json:"details"`
}

type wireLocation struct {
	Code string `json:"code"`
	City string `json:"city"`
	Name string `json:"name"`
}

type wireSharedFlight struct {
	IsShared     bool   `json:"is_shared"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
}

type wireFlightInfo struct {
	Number      string           `json:"number"`
	Vehicle     any              `json:"vehicle"` // plain name or {type: name}
	Capacity    int              `json:"capacity"`
	Menu        string           `json:"menu"`
	Source      wireLocation     `json:"source"`
	Destination wireLocation     `json:"destination"`
	Datetime    string           `json:"datetime"`
	Duration    string           `json:"duration"`
	Distance    any              `json:"distance"` // number, or string like "2340 km"
	Shared      wireSharedFlight `json:"shared_flight"`
}

type wireCrewMember struct {
	OriginalID any    `json:"original_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Type       string `json:"type"` // PILOT or CABIN
}

type wirePassenger struct {
	ID          any     `json:"id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	Nationality string  `json:"nationality"`
	SeatNumber  *string `json:"seat_number"`
	SeatType    string  `json:"type"` // "business" or "economy"
	ParentID    any     `json:"parent_id"`
	Affiliated  []any   `json:"affiliated_passengers"`
}

type wireSnapshot struct {
	FlightInfo wireFlightInfo   `json:"flight_info"`
	Crew       []wireCrewMember `json:"crew"`
	Passengers []wirePassenger  `json:"passengers"`
}

type wirePilotCandidate struct {
	PilotID      any      `json:"pilot_id"`
	ID           any      `json:"id"`
	FullName     string   `json:"full_name"`
	Seniority    string   `json:"seniority_level"`
	VehicleTypes []string `json:"vehicle_types"`
	AllowedRange any      `json:"allowed_range"`
	Age          int      `json:"age"`
	Nationality  string   `json:"nationality"`
}

type wireAttendantCandidate struct {
	AttendantID  any      `json:"attendant_id"`
	ID           any      `json:"id"`
	FullName     string   `json:"full_name"`
	Type         string   `json:"attendant_type"`
	VehicleTypes []string `json:"vehicle_types"`
	Recipes      []string `json:"known_recipes"`
}

type wireFlight struct {
	FlightNumber string        `json:"flight_number"`
	Source       *wireLocation `json:"flight_source"`
	Destination  *wireLocation `json:"flight_destination"`
	VehicleType  *struct {
		Name string `json:"name"`
	} `json:"vehicle_type"`
	Datetime       string `json:"flight_datetime"`
	DepartureTime  string `json:"departure_time"`
	PassengerCount int    `json:"passenger_count"`
}

// ---- transport -------------------------------------------------------------

func (c *Client) do(ctx context.Context, sess Session, method, path string, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if sess.Valid() {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &RemoteError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return decodeRemoteError(resp)
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &RemoteError{Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	return nil
}

func decodeRemoteError(resp *http.Response) error {
	var we wireError
	_ = json.NewDecoder(resp.Body).Decode(&we)

	msg := we.Error
	if msg == "" {
		msg = we.Detail
	}
	if msg == "" {
		msg = resp.Status
	}
	return &RemoteError{
		Status:  resp.StatusCode,
		Message: msg,
		Details: detailStrings(we.Details),
	}
}

// detailStrings flattens the server's validation detail payload, which may be
// a single string or a list of reasons.
func detailStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

// ---- operations ------------------------------------------------------------

func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var sess Session
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, Session{}, http.MethodPost, "/api/token/", payload, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (c *Client) ListFlights(ctx context.Context, sess Session) ([]models.Flight, error) {
	// some deployments paginate this endpoint
	var raw json.RawMessage
	if err := c.do(ctx, sess, http.MethodGet, "/api/flights/", nil, &raw); err != nil {
		return nil, err
	}
	var rows []wireFlight
	if err := json.Unmarshal(raw, &rows); err != nil {
		var page struct {
			Results []wireFlight `json:"results"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, &RemoteError{Status: http.StatusOK, Message: "malformed flight list"}
		}
		rows = page.Results
	}

	out := make([]models.Flight, 0, len(rows))
	for _, f := range rows {
		flight := models.Flight{
			Number:         f.FlightNumber,
			Datetime:       f.Datetime,
			PassengerCount: f.PassengerCount,
		}
		if flight.Datetime == "" {
			flight.Datetime = f.DepartureTime
		}
		if f.Source != nil {
			flight.Source = f.Source.Code
		}
		if f.Destination != nil {
			flight.Destination = f.Destination.Code
		}
		if f.VehicleType != nil {
			flight.VehicleType = f.VehicleType.Name
		}
		out = append(out, flight)
	}
	return out, nil
}

func (c *Client) DashboardStats(ctx context.Context, sess Session) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := c.do(ctx, sess, http.MethodGet, "/api/roster/dashboard-stats/", nil, &stats)
	return stats, err
}

func (c *Client) RosterDetail(ctx context.Context, sess Session, flightNumber string) (Snapshot, error) {
	var ws wireSnapshot
	path := "/api/roster/detail/" + url.PathEscape(flightNumber) + "/"
	if err := c.do(ctx, sess, http.MethodGet, path, nil, &ws); err != nil {
		return Snapshot{}, err
	}
	return normalizeSnapshot(ws), nil
}

func (c *Client) CreateRoster(ctx context.Context, sess Session, flightNumber string, manualPilotIDs, manualAttendantIDs []string) (Snapshot, error) {
	payload := map[string]any{"flight_number": flightNumber}
	if len(manualPilotIDs) > 0 {
		payload["manual_pilots"] = manualPilotIDs
	}
	if len(manualAttendantIDs) > 0 {
		payload["manual_attendants"] = manualAttendantIDs
	}
	var ws wireSnapshot
	if err := c.do(ctx, sess, http.MethodPost, "/api/roster/create/", payload, &ws); err != nil {
		return Snapshot{}, err
	}
	return normalizeSnapshot(ws), nil
}

func (c *Client) UpdatePilots(ctx context.Context, sess Session, flightNumber string, pilotIDs []string) ([]models.Pilot, error) {
	payload := map[string]any{
		"flight_number": flightNumber,
		"pilot_ids":     pilotIDs,
	}
	var resp struct {
		CurrentPilots []wireCrewMember `json:"current_pilots"`
	}
	if err := c.do(ctx, sess, http.MethodPost, "/api/roster/update-pilots/", payload, &resp); err != nil {
		return nil, err
	}
	pilots := make([]models.Pilot, 0, len(resp.CurrentPilots))
	for _, m := range resp.CurrentPilots {
		pilots = append(pilots, models.Pilot{
			ID:   models.NormalizeID(m.OriginalID),
			Name: m.Name,
			Role: m.Role,
		})
	}
	return pilots, nil
}

func (c *Client) AvailableCrew(ctx context.Context, sess Session, flightNumber string) (CrewPool, error) {
	var resp struct {
		Vehicle    string                   `json:"vehicle"`
		Distance   any                      `json:"flight_distance"`
		Pilots     []wirePilotCandidate     `json:"pilots"`
		Attendants []wireAttendantCandidate `json:"attendants"`
	}
	path := "/api/available-crew/?flight_number=" + url.QueryEscape(flightNumber)
	if err := c.do(ctx, sess, http.MethodGet, path, nil, &resp); err != nil {
		return CrewPool{}, err
	}

	pool := CrewPool{
		Vehicle:    resp.Vehicle,
		DistanceKm: parseDistance(resp.Distance),
	}
	for _, p := range resp.Pilots {
		id := p.PilotID
		if id == nil {
			id = p.ID
		}
		pool.Pilots = append(pool.Pilots, models.PilotCandidate{
			ID:           models.NormalizeID(id),
			Name:         p.FullName,
			Seniority:    p.Seniority,
			VehicleTypes: p.VehicleTypes,
			AllowedRange: parseDistance(p.AllowedRange),
			Age:          p.Age,
			Nationality:  p.Nationality,
		})
	}
	for _, a := range resp.Attendants {
		id := a.AttendantID
		if id == nil {
			id = a.ID
		}
		pool.Attendants = append(pool.Attendants, models.AttendantCandidate{
			ID:           models.NormalizeID(id),
			Name:         a.FullName,
			Type:         a.Type,
			VehicleTypes: a.VehicleTypes,
			Recipes:      a.Recipes,
		})
	}
	return pool, nil
}

func (c *Client) AssignSeat(ctx context.Context, sess Session, passengerID, flightNumber string) (SeatAssignment, error) {
	payload := map[string]string{
		"passenger_id":  passengerID,
		"flight_number": flightNumber,
	}
	var resp SeatAssignment
	err := c.do(ctx, sess, http.MethodPost, "/api/roster/assign-seat/", payload, &resp)
	return resp, err
}

func (c *Client) SaveSelection(ctx context.Context, sess Session, flightNumber, storageKind string) (string, error) {
	payload := map[string]string{
		"flight_number": flightNumber,
		"db_type":       storageKind,
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, sess, http.MethodPost, "/api/roster/save-selection/", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ListSaved(ctx context.Context, sess Session) ([]models.SavedRoster, error) {
	var rows []struct {
		ID           string `json:"id"`
		FlightNumber string `json:"flight_number"`
		DateSaved    string `json:"date_saved"`
		DBType       string `json:"db_type"`
	}
	if err := c.do(ctx, sess, http.MethodGet, "/api/roster/list-saved/", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]models.SavedRoster, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.SavedRoster{
			ID:           r.ID,
			FlightNumber: r.FlightNumber,
			DateSaved:    r.DateSaved,
			StorageKind:  r.DBType,
		})
	}
	return out, nil
}

func (c *Client) OpenSaved(ctx context.Context, sess Session, id string) (json.RawMessage, error) {
	var raw json.RawMessage
	path := "/api/roster/open-nosql/" + url.PathEscape(id) + "/"
	if err := c.do(ctx, sess, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) DeleteSaved(ctx context.Context, sess Session, id string) error {
	path := "/api/roster/delete-nosql/" + url.PathEscape(id) + "/"
	return c.do(ctx, sess, http.MethodDelete, path, nil, nil)
}

// ---- normalization ---------------------------------------------------------

// seat sentinels the server uses instead of null
const (
	seatStandby = "STANDBY"
	seatInfant  = "INFANT"
)

func normalizeSnapshot(ws wireSnapshot) Snapshot {
	snap := Snapshot{FlightInfo: normalizeFlightInfo(ws.FlightInfo)}

	for _, m := range ws.Crew {
		switch strings.ToUpper(m.Type) {
		case "PILOT":
			snap.Pilots = append(snap.Pilots, models.Pilot{
				ID:   models.NormalizeID(m.OriginalID),
				Name: m.Name,
				Role: m.Role,
			})
		case "CABIN":
			snap.Cabin = append(snap.Cabin, models.CabinCrewMember{
				ID:   models.NormalizeID(m.OriginalID),
				Name: m.Name,
				Role: m.Role,
				Type: m.Role,
			})
		}
	}

	for _, p := range ws.Passengers {
		pass := models.Passenger{
			ID:          models.NormalizeID(p.ID),
			FlightID:    snap.FlightInfo.Number,
			Name:        p.Name,
			Age:         p.Age,
			Gender:      p.Gender,
			Nationality: p.Nationality,
			SeatType:    normalizeSeatType(p.SeatType),
			ParentID:    models.NormalizeID(p.ParentID),
		}
		if p.SeatNumber != nil {
			seat := strings.TrimSpace(*p.SeatNumber)
			if seat != "" && seat != seatStandby && seat != seatInfant {
				pass.Seat = &seat
			}
		}
		for _, raw := range p.Affiliated {
			if id := models.NormalizeID(raw); id != "" {
				pass.Affiliated = append(pass.Affiliated, id)
			}
		}
		snap.Passengers = append(snap.Passengers, pass)
	}
	return snap
}

func normalizeFlightInfo(wf wireFlightInfo) models.FlightInfo {
	info := models.FlightInfo{
		Number:     wf.Number,
		Capacity:   wf.Capacity,
		Menu:       wf.Menu,
		Datetime:   wf.Datetime,
		Duration:   wf.Duration,
		DistanceKm: parseDistance(wf.Distance),
		Source: models.Location{
			Code:    wf.Source.Code,
			City:    wf.Source.City,
			Airport: wf.Source.Name,
		},
		Destination: models.Location{
			Code:    wf.Destination.Code,
			City:    wf.Destination.City,
			Airport: wf.Destination.Name,
		},
		Shared: models.SharedFlight{
			IsShared:     wf.Shared.IsShared,
			Airline:      wf.Shared.Airline,
			FlightNumber: wf.Shared.FlightNumber,
		},
	}

	switch v := wf.Vehicle.(type) {
	case string:
		info.VehicleType = v
	case map[string]any:
		if t, ok := v["type"].(string); ok {
			info.VehicleType = t
		} else if n, ok := v["name"].(string); ok {
			info.VehicleType = n
		}
	}
	return info
}

func normalizeSeatType(raw string) string {
	if strings.EqualFold(raw, "business") {
		return "Business"
	}
	return "Economy"
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// parseDistance accepts the distance field in any of the forms the flight
// directory produces: a JSON number, a bare numeric string, or a decorated
// one like "2340 km".
func parseDistance(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		clean := nonNumeric.ReplaceAllString(t, "")
		f, _ := strconv.ParseFloat(clean, 64)
		return f
	default:
		return 0
	}
}
