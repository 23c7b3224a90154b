package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// OperatorPageData holds data for the operator template
type OperatorPageData struct {
	Title string
}

func (h *Handlers) handleOperatorPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Operator.Execute(w, OperatorPageData{Title: h.Title})
}

func (h *Handlers) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Draws.Categories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	status, err := h.Draws.Status(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, CategoriesResponse{Categories: cats, Status: status})
}

func (h *Handlers) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Draws.Status(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}

func (h *Handlers) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		respondError(w, BadRequest("category is required"))
		return
	}

	if err := h.Draws.Select(r.Context(), req.Category); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SelectRequest{Category: req.Category})
}

func (h *Handlers) handleDraw(w http.ResponseWriter, r *http.Request) {
	out, err := h.Draws.Draw(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if out.Skipped {
		respondOK(w, DrawResponse{Skipped: true, Message: "No draw for this category"})
		return
	}
	respondOK(w, DrawResponse{Winner: out.Winner})
}

func (h *Handlers) handleGetWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.Draws.LastWinner(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, winner)
}

func (h *Handlers) handleWinnerPreview(w http.ResponseWriter, r *http.Request) {
	size, err := queryInt(r, "size", 800, 1, 4096)
	if err != nil {
		respondError(w, err)
		return
	}
	data, err := h.Draws.Preview(r.Context(), uint(size))
	if err != nil {
		respondError(w, err)
		return
	}
	respondImage(w, "image/jpeg", data)
}

func (h *Handlers) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50, 1, 1000)
	if err != nil {
		respondError(w, err)
		return
	}
	draws, err := h.Draws.History(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, HistoryResponse{Draws: draws})
}

func (h *Handlers) handleGetHistoryEntry(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Draws.HistoryEntry(r.Context(), chi.URLParam(r, "drawID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, rec)
}

func (h *Handlers) handleHistorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Draws.HistorySummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, summary)
}

func (h *Handlers) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.Draws.ClearHistory(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) handleOperatorQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Settings.OperatorQR(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondImage(w, "image/png", png)
}

func (h *Handlers) handleSetBaseURL(w http.ResponseWriter, r *http.Request) {
	var req BaseURLRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !strings.HasPrefix(req.BaseURL, "http://") && !strings.HasPrefix(req.BaseURL, "https://") {
		respondError(w, BadRequest("base_url must start with http:// or https://"))
		return
	}
	if err := h.Settings.SetBaseURL(r.Context(), req.BaseURL); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, req)
}
