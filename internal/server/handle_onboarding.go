package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mockmate/interviewprep/internal/capture"
	"github.com/mockmate/interviewprep/internal/flow"
	"github.com/mockmate/interviewprep/internal/interview"
)

type JobDetailsRequest struct {
	Role           string `json:"role"`
	Company        string `json:"company"`
	JobDescription string `json:"jobDescription"`
}

func handleJobDetails(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JobDetailsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user := userFrom(r)
		state, _ := flows.Get(user.ID).Dispatch(flow.EditJob{Job: interview.JobDetails{
			Role:           strings.TrimSpace(req.Role),
			Company:        strings.TrimSpace(req.Company),
			JobDescription: req.JobDescription,
		}})
		writeJSON(w, http.StatusOK, state)
	}
}

type ResumeRequest struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// handleResume records resume metadata; an empty name clears the draft.
func handleResume(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResumeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var resume *flow.ResumeFile
		if name := strings.TrimSpace(req.Name); name != "" {
			resume = &flow.ResumeFile{Name: name, Size: req.Size}
		}

		user := userFrom(r)
		state, _ := flows.Get(user.ID).Dispatch(flow.SetResume{Resume: resume})
		writeJSON(w, http.StatusOK, state)
	}
}

type DeviceRequest struct {
	Device  flow.Device `json:"device"` // camera or microphone
	Enabled bool        `json:"enabled"`
}

// handleDevice toggles a capture device. Toggling on blocks on the capture
// guard; a denial records permission=denied with the device left disabled,
// and a grant that arrives after the user toggled back off is discarded.
func handleDevice(flows *flow.Manager, guards *GuardRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeviceRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var kind capture.Kind
		switch req.Device {
		case flow.DeviceCamera:
			kind = capture.Camera
		case flow.DeviceMicrophone:
			kind = capture.Microphone
		default:
			writeError(w, http.StatusBadRequest, "device must be camera or microphone")
			return
		}

		user := userFrom(r)
		f := flows.Get(user.ID)
		guard := guards.Get(user.ID)

		if !req.Enabled {
			guard.Disable(kind)
			state, _ := f.Dispatch(flow.SetDevice{
				Device:     req.Device,
				Enabled:    false,
				Permission: flow.PermissionPending,
			})
			writeJSON(w, http.StatusOK, state)
			return
		}

		intent := flow.SetDevice{Device: req.Device, Enabled: true, Permission: flow.PermissionGranted}
		switch err := guard.Enable(r.Context(), kind); {
		case err == nil:
		case errors.Is(err, capture.ErrPermissionDenied):
			intent.Enabled = false
			intent.Permission = flow.PermissionDenied
		default:
			// Cancelled mid-acquisition: the off toggle already won.
			intent.Enabled = false
			intent.Permission = flow.PermissionPending
		}

		state, _ := f.Dispatch(intent)
		writeJSON(w, http.StatusOK, state)
	}
}

// handleContinue applies the onboarding completeness gate. When the gate
// holds the screen advances to summary; otherwise 409 with the unchanged
// state's screen.
func handleContinue(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		f := flows.Get(user.ID)

		if !flow.CanContinue(f.State()) {
			writeError(w, http.StatusConflict, "onboarding is not complete")
			return
		}
		state, _ := f.Dispatch(flow.ContinueOnboarding{})
		writeJSON(w, http.StatusOK, state)
	}
}

func handleEditSetup(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		state, _ := flows.Get(user.ID).Dispatch(flow.EditSetup{})
		writeJSON(w, http.StatusOK, state)
	}
}
