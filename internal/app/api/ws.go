package api

import (
	"encoding/json"
	"net/http"

	"app/pkg/ws"
)

type wsEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func sendEvent(client *ws.Client, eventType string, data any) error {
	payload, err := json.Marshal(&wsEvent{Type: eventType, Data: data})
	if err != nil {
		return err
	}

	return client.SendText(payload)
}

// wsSynthesize streams the pipeline stages to the page: text result
// first, then the audio as one binary frame, so the form can show the
// replacement report while synthesis is still running.
func (api *API) wsSynthesize(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		api.logger.Error("failed to upgrade ws connection", "err", err)

		return
	}

	client, done := ws.NewWsClient(conn)
	defer func() {
		_ = client.Close()
		<-done
	}()

	msg, err := client.Read()
	if err != nil {
		return
	}

	// only one request frame is expected; keep the read side drained so
	// a peer that sends more cannot park the connection goroutine
	go client.DrainRead()

	var req synthesizeRequest
	if err := json.Unmarshal(msg.Message, &req); err != nil {
		_ = sendEvent(client, "error", "invalid json: "+err.Error())

		return
	}

	if req.Text == "" {
		_ = sendEvent(client, "error", "text is required")

		return
	}

	procReq := req.toProcessor()

	if err := sendEvent(client, "processing", nil); err != nil {
		return
	}

	textResult := api.processor.ProcessText(r.Context(), procReq)
	if err := sendEvent(client, "text", textResult); err != nil {
		return
	}

	result, err := api.processor.SynthesizeProcessed(r.Context(), procReq, textResult)
	if err != nil {
		api.logger.Error("ws synthesis failed", "err", err)
		_ = sendEvent(client, "error", err.Error())

		return
	}

	if err := client.SendBinary(result.Audio); err != nil {
		return
	}

	_ = sendEvent(client, "done", map[string]any{
		"audio_id":   result.AudioID,
		"size_bytes": result.SizeBytes,
	})
}
