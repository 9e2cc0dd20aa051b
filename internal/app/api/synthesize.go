package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/app/processor"
	"app/pkg/tts"

	"github.com/go-chi/chi/v5"
)

// synthesizeRequest mirrors processor.Request, with pointers where the
// form defaults to enabled so an absent field keeps the default.
type synthesizeRequest struct {
	Text string `json:"text"`

	Provider string `json:"provider"`
	Accent   string `json:"accent"`
	Voice    string `json:"voice"`
	Slow     bool   `json:"slow"`

	ModernWords   *bool `json:"modern_words"`
	Preprocessing *bool `json:"preprocessing"`
	AITranslate   bool  `json:"ai_translate"`
}

func (req *synthesizeRequest) toProcessor() *processor.Request {
	enabled := func(flag *bool) bool {
		if flag == nil {
			return true
		}

		return *flag
	}

	return &processor.Request{
		Text: req.Text,

		Provider: req.Provider,
		Accent:   req.Accent,
		Voice:    req.Voice,
		Slow:     req.Slow,

		ModernWords:   enabled(req.ModernWords),
		Preprocessing: enabled(req.Preprocessing),
		AITranslate:   req.AITranslate,
	}
}

func decodeSynthesizeRequest(w http.ResponseWriter, r *http.Request) (*processor.Request, bool) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())

		return nil, false
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")

		return nil, false
	}

	return req.toProcessor(), true
}

func (api *API) normalizeText(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSynthesizeRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, api.processor.ProcessText(r.Context(), req))
}

func (api *API) synthesize(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSynthesizeRequest(w, r)
	if !ok {
		return
	}

	result, err := api.processor.Synthesize(r.Context(), req)
	if err != nil {
		api.logger.Error("synthesis failed", "err", err)

		status := http.StatusBadGateway
		if errors.Is(err, tts.ErrUnknownProvider) || errors.Is(err, tts.ErrUnsupportedLanguage) {
			status = http.StatusBadRequest
		}

		writeError(w, status, err.Error())

		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (api *API) audioBytes(w http.ResponseWriter, r *http.Request) []byte {
	id := chi.URLParam(r, "id")

	audio, ok := api.processor.Audio(id)
	if !ok {
		writeError(w, http.StatusNotFound, "audio not found or expired")

		return nil
	}

	return audio
}

func (api *API) audio(w http.ResponseWriter, r *http.Request) {
	audio := api.audioBytes(w, r)
	if audio == nil {
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	_, _ = w.Write(audio)
}

const downloadFilename = "tamil_poetry_audio.mp3"

func (api *API) audioDownload(w http.ResponseWriter, r *http.Request) {
	audio := api.audioBytes(w, r)
	if audio == nil {
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	_, _ = w.Write(audio)
}

func (api *API) listProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"providers": api.providers})
}
