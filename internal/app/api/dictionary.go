package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"app/db"
	"app/internal/app/processor"
	"app/pkg/normalizer"

	"github.com/go-chi/chi/v5"
)

type dictionaryResponse struct {
	Entries []db.DictionaryEntry `json:"entries"`
}

func (api *API) listDictionary(w http.ResponseWriter, r *http.Request) {
	entries, err := api.store.ListEntries(r.Context())
	if err != nil {
		api.logger.Error("failed to list dictionary", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, &dictionaryResponse{Entries: entries})
}

func (api *API) searchDictionary(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required")

		return
	}

	entries, err := api.store.SearchEntries(r.Context(), term)
	if err != nil {
		api.logger.Error("failed to search dictionary", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, &dictionaryResponse{Entries: entries})
}

type upsertDictionaryRequest struct {
	OldWord     string `json:"old_word"`
	ModernWord  string `json:"modern_word"`
	Description string `json:"description"`
}

func (api *API) upsertDictionary(w http.ResponseWriter, r *http.Request) {
	var req upsertDictionaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())

		return
	}

	if req.OldWord == "" || req.ModernWord == "" {
		writeError(w, http.StatusBadRequest, "old_word and modern_word are required")

		return
	}

	// keys must be single tokens just like the embedded dictionary
	if _, err := normalizer.NewDictionary(map[string]string{req.OldWord: req.ModernWord}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	if err := api.store.UpsertEntry(r.Context(), req.OldWord, req.ModernWord, req.Description); err != nil {
		api.logger.Error("failed to upsert dictionary entry", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (api *API) baseDictionary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]map[string]string{
		"entries": api.processor.BaseEntries(),
	})
}

type suggestRequest struct {
	Text string `json:"text"`
}

// suggestDictionary runs the language model's word-by-word analysis so
// users can review the pairs before adding them as custom entries.
func (api *API) suggestDictionary(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())

		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")

		return
	}

	mapping, err := api.processor.SuggestMappings(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, processor.ErrTranslatorUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err.Error())

			return
		}

		api.logger.Error("failed to suggest dictionary entries", "err", err)
		writeError(w, http.StatusBadGateway, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, mapping)
}

func entryParam(r *http.Request) string {
	oldWord := chi.URLParam(r, "old_word")
	if decoded, err := url.PathUnescape(oldWord); err == nil {
		oldWord = decoded
	}

	return oldWord
}

func (api *API) getDictionary(w http.ResponseWriter, r *http.Request) {
	entry, err := api.store.GetEntry(r.Context(), entryParam(r))
	if err != nil {
		if db.ErrCode(err) == db.ErrCodeNoRows {
			writeError(w, http.StatusNotFound, "entry not found")

			return
		}

		api.logger.Error("failed to get dictionary entry", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (api *API) deleteDictionary(w http.ResponseWriter, r *http.Request) {
	oldWord := entryParam(r)

	found, err := api.store.DeleteEntry(r.Context(), oldWord)
	if err != nil {
		api.logger.Error("failed to delete dictionary entry", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	if !found {
		writeError(w, http.StatusNotFound, "entry not found")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
