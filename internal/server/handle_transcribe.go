package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/mockmate/interviewprep/internal/speech"
)

// handleTranscribe upgrades to a websocket carrying live answer dictation.
// Each text message from the client is one dictation fragment; the server
// answers with interim transcripts and a final one when the client stops
// or the silence window elapses. The final transcript is also published on
// the user's event stream so the live screen can fill the answer box.
func handleTranscribe(logger *slog.Logger, broker *Broker, secret string, silence time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		userID, err := userIDFromToken(secret, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
		defer cancel()

		recognizer := speech.NewRecognizer(silence)
		go recognizer.Run(ctx)

		// Reader: client fragments feed the recognizer until the socket
		// closes or recognition ends.
		go func() {
			defer recognizer.Stop()
			for {
				typ, msg, err := conn.Read(ctx)
				if err != nil {
					return
				}
				if typ != websocket.MessageText {
					continue
				}
				recognizer.Hear(string(msg))
			}
		}()

		for event := range recognizer.Events() {
			data, _ := json.Marshal(event)
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
			if event.Type == speech.EventFinal {
				broker.Publish(userID, SSEEvent{
					Type:       "transcript",
					Transcript: event.Text,
				})
			}
		}

		conn.Close(websocket.StatusNormalClosure, "transcription ended")
	}
}
