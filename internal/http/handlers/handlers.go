package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/goktugdsert/Flight-Project/internal/http/middleware"
	"github.com/goktugdsert/Flight-Project/internal/models"
	"github.com/goktugdsert/Flight-Project/internal/roster"
	"github.com/goktugdsert/Flight-Project/internal/rosterapi"
)

type Handler struct {
	Service    rosterapi.Service
	Reconciler *roster.Reconciler
	Validator  *validator.Validate
	Logger     zerolog.Logger
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type OpenRosterRequest struct {
	FlightNumber string `json:"flight_number" validate:"required"`
}

type ReplaceCrewRequest struct {
	RoleType string   `json:"role_type" validate:"required,oneof=pilot cabin"`
	Slot     int      `json:"slot" validate:"gte=0"`
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name"`
	Rank     string   `json:"rank"`
	Licenses []string `json:"licenses"`
}

type AssignSeatRequest struct {
	PassengerID string `json:"passenger_id" validate:"required"`
}

type SaveRosterRequest struct {
	StorageKind string `json:"storage_kind" validate:"omitempty,oneof=sql nosql"`
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Log in against the roster service
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} rosterapi.Session
// @Failure 401 {object} map[string]any
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	sess, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// @Summary List flights open for rostering
// @Description Optional filters: q (flight number substring), source, dest (airport codes)
// @Tags flights
// @Produce json
// @Success 200 {array} models.Flight
// @Router /api/flights [get]
func (h *Handler) FlightsList(c *gin.Context) {
	flights, err := h.Service.ListFlights(c.Request.Context(), middleware.Session(c))
	if err != nil {
		h.remoteError(c, err)
		return
	}

	q := strings.ToLower(c.Query("q"))
	source := c.Query("source")
	dest := c.Query("dest")
	out := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if q != "" && !strings.Contains(strings.ToLower(f.Number), q) {
			continue
		}
		if source != "" && !strings.EqualFold(f.Source, source) {
			continue
		}
		if dest != "" && !strings.EqualFold(f.Destination, dest) {
			continue
		}
		out = append(out, f)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Dashboard summary counts
// @Tags flights
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Router /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.Service.DashboardStats(c.Request.Context(), middleware.Session(c))
	if err != nil {
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Open a flight's roster, creating one when absent
// @Tags roster
// @Accept json
// @Produce json
// @Success 200 {object} roster.View
// @Failure 400 {object} map[string]any
// @Router /api/roster/open [post]
func (h *Handler) OpenRoster(c *gin.Context) {
	var req OpenRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	view, err := h.Reconciler.OpenFlight(c.Request.Context(), middleware.Session(c), req.FlightNumber)
	if err != nil {
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Current roster view
// @Tags roster
// @Produce json
// @Success 200 {object} roster.View
// @Router /api/roster [get]
func (h *Handler) RosterView(c *gin.Context) {
	view := h.Reconciler.View()
	if view.State != roster.StateReady {
		writeError(c, http.StatusConflict, "NO_ROSTER", "No roster loaded", string(view.State))
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Seat map for the opened roster
// @Tags roster
// @Produce json
// @Success 200 {object} roster.SeatMap
// @Router /api/roster/seatmap [get]
func (h *Handler) SeatMap(c *gin.Context) {
	sm, err := h.Reconciler.SeatMap()
	if err != nil {
		writeError(c, http.StatusConflict, "NO_ROSTER", "No roster loaded", err.Error())
		return
	}
	c.JSON(http.StatusOK, sm)
}

// @Summary Guardian and companion links for a passenger
// @Tags roster
// @Produce json
// @Success 200 {object} roster.Connections
// @Failure 404 {object} map[string]any
// @Router /api/roster/passengers/{id}/connections [get]
func (h *Handler) PassengerConnections(c *gin.Context) {
	conns, err := h.Reconciler.Connections(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Passenger not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, conns)
}

// @Summary Crew candidates available for the opened flight
// @Description Candidates carry soft license warnings and on-board flags. role=pilot or role=cabin narrows the pools.
// @Tags roster
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/roster/available-crew [get]
func (h *Handler) AvailableCrew(c *gin.Context) {
	view := h.Reconciler.View()
	if view.State != roster.StateReady {
		writeError(c, http.StatusConflict, "NO_ROSTER", "No roster loaded", nil)
		return
	}
	pool, err := h.Service.AvailableCrew(c.Request.Context(), middleware.Session(c), view.FlightNumber)
	if err != nil {
		h.remoteError(c, err)
		return
	}

	resp := gin.H{
		"vehicle":         pool.Vehicle,
		"flight_distance": pool.DistanceKm,
	}
	role := c.Query("role")
	if role == "" || role == roster.RoleTypePilot {
		resp["pilots"] = roster.AnnotatePilots(pool.Pilots, view.FlightInfo.VehicleType, view.Pilots)
	}
	if role == "" || role == roster.RoleTypeCabin {
		resp["attendants"] = roster.AnnotateAttendants(pool.Attendants, view.FlightInfo.VehicleType, view.Cabin)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Replace a pilot or cabin crew member
// @Tags roster
// @Accept json
// @Produce json
// @Success 200 {object} roster.View
// @Failure 409 {object} map[string]any
// @Router /api/roster/replace-crew [post]
func (h *Handler) ReplaceCrew(c *gin.Context) {
	var req ReplaceCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	incoming := roster.Replacement{ID: req.ID, Name: req.Name, Licenses: req.Licenses}
	if req.RoleType == roster.RoleTypePilot {
		incoming.Seniority = req.Rank
	} else {
		incoming.Category = req.Rank
	}

	view, err := h.Reconciler.ReplaceCrew(c.Request.Context(), middleware.Session(c), req.RoleType, req.Slot, incoming)
	if err != nil {
		var safety *roster.SafetyError
		if errors.As(err, &safety) {
			writeError(c, http.StatusConflict, "SAFETY_VIOLATION", safety.Reason, nil)
			return
		}
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Ask the roster service to seat a passenger
// @Tags roster
// @Accept json
// @Produce json
// @Success 200 {object} rosterapi.SeatAssignment
// @Router /api/roster/assign-seat [post]
func (h *Handler) AssignSeat(c *gin.Context) {
	var req AssignSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	assigned, view, err := h.Reconciler.AssignSeat(c.Request.Context(), middleware.Session(c), req.PassengerID)
	if err != nil {
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": assigned, "roster": view})
}

// @Summary Archive the current roster selection
// @Tags archive
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/roster/save [post]
func (h *Handler) SaveRoster(c *gin.Context) {
	var req SaveRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if req.StorageKind == "" {
		req.StorageKind = "nosql"
	}
	msg, err := h.Reconciler.Save(c.Request.Context(), middleware.Session(c), req.StorageKind)
	if err != nil {
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// @Summary List archived rosters
// @Tags archive
// @Produce json
// @Success 200 {array} models.SavedRoster
// @Router /api/roster/saved [get]
func (h *Handler) SavedList(c *gin.Context) {
	saved, err := h.Service.ListSaved(c.Request.Context(), middleware.Session(c))
	if err != nil {
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// @Summary Open an archived roster document
// @Tags archive
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/roster/saved/{id} [get]
func (h *Handler) SavedOpen(c *gin.Context) {
	doc, err := h.Service.OpenSaved(c.Request.Context(), middleware.Session(c), c.Param("id"))
	if err != nil {
		h.remoteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", doc)
}

// @Summary Delete an archived roster
// @Tags archive
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/roster/saved/{id} [delete]
func (h *Handler) SavedDelete(c *gin.Context) {
	if err := h.Service.DeleteSaved(c.Request.Context(), middleware.Session(c), c.Param("id")); err != nil {
		h.remoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// remoteError maps roster-service failures onto the error envelope. Server
// validation details are forwarded verbatim so the UI can show them.
func (h *Handler) remoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rosterapi.ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Roster service rejected credentials", nil)
	case errors.Is(err, rosterapi.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	default:
		var remote *rosterapi.RemoteError
		if errors.As(err, &remote) {
			status := remote.Status
			// transport failures carry no HTTP status
			if status < 100 {
				status = http.StatusBadGateway
			}
			writeError(c, status, "REMOTE_ERROR", remote.Message, remote.Details)
			return
		}
		h.Logger.Error().Err(err).Msg("roster service call failed")
		writeError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Roster service unavailable", err.Error())
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
