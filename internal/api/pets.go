package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pawden-app/pawden/internal/app/keeper"
	"github.com/pawden-app/pawden/internal/app/sim"
	"github.com/pawden-app/pawden/internal/domain"
)

// actionResult is the wire shape for an accepted action.
type actionResult struct {
	Pet     domain.Pet   `json:"pet"`
	Evolved bool         `json:"evolved"`
	Aged    bool         `json:"aged"`
	Decayed bool         `json:"decayed"`
	Notices []sim.Notice `json:"notices"`
}

func actionResponse(r *sim.ActionResult) actionResult {
	notices := r.Notices
	if notices == nil {
		notices = []sim.Notice{}
	}
	return actionResult{
		Pet:     r.Pet,
		Evolved: r.Evolved,
		Aged:    r.Aged,
		Decayed: r.Decayed,
		Notices: notices,
	}
}

// ownerID extracts the caller's owner id. Identity verification lives in
// front of this server; an empty id is still rejected.
func ownerID(r *http.Request) string {
	return r.Header.Get("X-Owner-ID")
}

// visitorID extracts the per-device pseudonymous visitor id.
func visitorID(r *http.Request) string {
	return r.Header.Get("X-Visitor-ID")
}

type createPetRequest struct {
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Color      string `json:"color"`
	Notes      string `json:"notes"`
	OwnerLabel string `json:"owner_label"`
}

func (s *Server) handleCreatePet(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if owner == "" {
		writeError(w, http.StatusBadRequest, "missing X-Owner-ID header")
		return
	}

	var req createPetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Species == "" {
		writeError(w, http.StatusBadRequest, "name and species are required")
		return
	}

	pet, err := s.keeper.Create(keeper.CreateParams{
		OwnerID:    owner,
		OwnerLabel: req.OwnerLabel,
		Name:       req.Name,
		Species:    req.Species,
		Breed:      req.Breed,
		Color:      req.Color,
		Notes:      req.Notes,
	}, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pet)
}

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if owner == "" {
		writeError(w, http.StatusBadRequest, "missing X-Owner-ID header")
		return
	}
	pets, err := s.keeper.List(owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if pets == nil {
		pets = []domain.Pet{}
	}
	writeJSON(w, http.StatusOK, pets)
}

func (s *Server) handlePetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.keeper.Status(chi.URLParam(r, "id"), time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleDeletePet(w http.ResponseWriter, r *http.Request) {
	if err := s.keeper.Delete(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type actionRequest struct {
	Action string `json:"action"`
}

func (s *Server) handleOwnerAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.keeper.PerformOwner(
		chi.URLParam(r, "id"), domain.ActionType(req.Action), time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse(result))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	recs, err := s.keeper.History(chi.URLParam(r, "id"), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.InteractionRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

type sharingRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleSharing(w http.ResponseWriter, r *http.Request) {
	var req sharingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pet, err := s.keeper.SetSharing(chi.URLParam(r, "id"), req.Enabled)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

type itemRequest struct {
	Item string `json:"item"`
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pet, err := s.keeper.Purchase(chi.URLParam(r, "id"), req.Item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pet, err := s.keeper.Equip(chi.URLParam(r, "id"), req.Item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) handleUnequip(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pet, err := s.keeper.Unequip(chi.URLParam(r, "id"), req.Item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pet)
}

// ─── Shared-link handlers ───────────────────────────────────────────────────

func (s *Server) handleSharedStatus(w http.ResponseWriter, r *http.Request) {
	visitor := visitorID(r)
	if visitor == "" {
		writeError(w, http.StatusBadRequest, "missing X-Visitor-ID header")
		return
	}
	view, err := s.keeper.SharedStatus(chi.URLParam(r, "shareId"), visitor, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSharedAction(w http.ResponseWriter, r *http.Request) {
	visitor := visitorID(r)
	if visitor == "" {
		writeError(w, http.StatusBadRequest, "missing X-Visitor-ID header")
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.keeper.PerformShared(
		chi.URLParam(r, "shareId"), domain.ActionType(req.Action), visitor, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse(result))
}

// ─── Event-feed handlers ────────────────────────────────────────────────────

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if owner == "" {
		writeError(w, http.StatusBadRequest, "missing X-Owner-ID header")
		return
	}
	events, err := s.notify.Pending(owner, 100)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleEventShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := s.notify.MarkShown(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
