package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mockmate/interviewprep/internal/capture"
	"github.com/mockmate/interviewprep/internal/flow"
	"github.com/mockmate/interviewprep/internal/interview"
	"github.com/mockmate/interviewprep/internal/speech"
)

// handleStartInterview snapshots the current job details and resume into a
// fresh session with generated questions and enters the live screen.
func handleStartInterview(flows *flow.Manager, extended bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		f := flows.Get(user.ID)
		prior := f.State()

		session := interview.Session{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Job:       prior.Job,
			Questions: interview.GenerateQuestions(prior.Job.Role, prior.Job.Company, extended),
		}
		if prior.Resume != nil {
			session.ResumeName = prior.Resume.Name
		}

		state, _ := f.Dispatch(flow.StartInterview{Session: session})
		if state.Session == nil || state.Session.ID != session.ID {
			writeError(w, http.StatusConflict, "cannot start an interview right now")
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
}

// handleSubmitAnswer scores and records one answer. Submitting for a
// question the session does not own leaves the state untouched (409).
// Answering the final question completes the interview.
func handleSubmitAnswer(logger *slog.Logger, flows *flow.Manager, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitAnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "answer text is required")
			return
		}

		user := userFrom(r)
		f := flows.Get(user.ID)

		prior := f.State()
		if prior.Session == nil || prior.Session.Completed() {
			writeError(w, http.StatusConflict, "no active session")
			return
		}
		if _, ok := prior.Session.Question(req.QuestionID); !ok {
			writeError(w, http.StatusConflict, "unknown question for this session")
			return
		}

		state, effects := f.Dispatch(flow.SubmitAnswer{QuestionID: req.QuestionID, Text: req.Text})
		runEffects(r.Context(), logger, store, broker, user.ID, effects)
		writeJSON(w, http.StatusOK, state)
	}
}

// handleSkipQuestion advances past the current question without recording
// an answer; skipping the final question completes the interview.
func handleSkipQuestion(logger *slog.Logger, flows *flow.Manager, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		f := flows.Get(user.ID)

		if f.State().Session == nil {
			writeError(w, http.StatusConflict, "no active session")
			return
		}

		state, effects := f.Dispatch(flow.SkipQuestion{})
		runEffects(r.Context(), logger, store, broker, user.ID, effects)
		writeJSON(w, http.StatusOK, state)
	}
}

func handleCompleteInterview(logger *slog.Logger, flows *flow.Manager, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		f := flows.Get(user.ID)

		if f.State().Session == nil {
			writeError(w, http.StatusConflict, "no active session")
			return
		}

		state, effects := f.Dispatch(flow.CompleteInterview{})
		runEffects(r.Context(), logger, store, broker, user.ID, effects)
		writeJSON(w, http.StatusOK, state)
	}
}

func handleTogglePause(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		state, _ := flows.Get(user.ID).Dispatch(flow.TogglePause{})
		writeJSON(w, http.StatusOK, state)
	}
}

// handleToggleRecording flips the recording flag. While recording, the
// camera preview stream is held via the capture guard; stopping always
// releases it.
func handleToggleRecording(logger *slog.Logger, flows *flow.Manager, guards *GuardRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		f := flows.Get(user.ID)
		guard := guards.Get(user.ID)

		state, _ := f.Dispatch(flow.ToggleRecording{})
		if state.Session != nil {
			if state.Clock.Recording {
				if err := guard.Enable(r.Context(), capture.Camera); err != nil {
					logger.Warn("camera preview unavailable", "user_id", user.ID, "error", err)
				}
			} else {
				guard.Disable(capture.Camera)
			}
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// handleLeaveSession discards the current session. The flow cancels its
// clock; any held capture streams are released as well.
func handleLeaveSession(flows *flow.Manager, guards *GuardRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		guards.Get(user.ID).Close()
		state, _ := flows.Get(user.ID).Dispatch(flow.LeaveSession{})
		writeJSON(w, http.StatusOK, state)
	}
}

// handleViewReport leaves the live screen for the report. The recording
// preview stream is released on the way out, as unmounting the live view
// stops its tracks.
func handleViewReport(flows *flow.Manager, guards *GuardRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		guards.Get(user.ID).Disable(capture.Camera)
		state, _ := flows.Get(user.ID).Dispatch(flow.ViewReport{})
		writeJSON(w, http.StatusOK, state)
	}
}

func handleRetakeInterview(flows *flow.Manager, guards *GuardRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		guards.Get(user.ID).Disable(capture.Camera)
		state, _ := flows.Get(user.ID).Dispatch(flow.RetakeInterview{})
		writeJSON(w, http.StatusOK, state)
	}
}

type ReportResponse struct {
	Session interview.Session `json:"session"`
	Rating  string            `json:"rating"`
	Clock   flow.Clock        `json:"clock"`
}

// handleReport returns the completed session for the report screen. With
// no session to report on it renders nothing, per the defensive contract.
func handleReport(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		state := flows.Get(user.ID).State()

		if state.Session == nil {
			writeError(w, http.StatusNotFound, "no session to report on")
			return
		}
		writeJSON(w, http.StatusOK, ReportResponse{
			Session: *state.Session,
			Rating:  interview.RatingLabel(state.Session.Score),
			Clock:   state.Clock,
		})
	}
}

// handleSpeak reads the current question aloud; a new request cancels any
// utterance still playing.
func handleSpeak(flows *flow.Manager, speaker *speech.Speaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		state := flows.Get(user.ID).State()

		if state.Session == nil || state.QuestionIndex >= len(state.Session.Questions) {
			writeError(w, http.StatusConflict, "no question to read")
			return
		}

		speaker.Speak(state.Session.Questions[state.QuestionIndex].Text)
		writeJSON(w, http.StatusOK, map[string]bool{"speaking": true})
	}
}

func handleCancelSpeech(speaker *speech.Speaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		speaker.Cancel()
		writeJSON(w, http.StatusOK, map[string]bool{"speaking": false})
	}
}
