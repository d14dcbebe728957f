package api

import (
	"net/http"

	"location-reports/internal/domain"
)

type locationRequest struct {
	Name     string `json:"name"`
	TimeZone string `json:"timeZone"`
}

type locationResponse struct {
	LocationID int64  `json:"locationId"`
	Name       string `json:"name"`
	TimeZone   string `json:"timeZone"`
}

type agentRequest struct {
	CallSign string `json:"callSign"`
}

type agentResponse struct {
	AgentID  int64  `json:"agentId"`
	CallSign string `json:"callSign"`
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{LocationID: l.ID, Name: l.Name, TimeZone: l.TimeZone}
}

func toAgentResponse(a domain.Agent) agentResponse {
	return agentResponse{AgentID: a.ID, CallSign: a.CallSign}
}

func (h *Handler) createLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	location, err := h.registry.CreateLocation(r.Context(), req.Name, req.TimeZone)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLocationResponse(*location))
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "locationId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	location, err := h.registry.GetLocation(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLocationResponse(*location))
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.registry.ListLocations(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body := make([]locationResponse, len(locations))
	for i, l := range locations {
		body[i] = toLocationResponse(l)
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) createAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	agent, err := h.registry.CreateAgent(r.Context(), req.CallSign)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAgentResponse(*agent))
}

func (h *Handler) getAgent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "agentId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	agent, err := h.registry.GetAgent(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAgentResponse(*agent))
}
