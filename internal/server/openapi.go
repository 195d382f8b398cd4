package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/mockmate/interviewprep/internal/flow"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "InterviewPrep API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the mock-interview rehearsal app.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/auth
	postAuth, _ := r.NewOperationContext(http.MethodPost, "/api/auth")
	postAuth.SetSummary("Sign up or sign in")
	postAuth.SetDescription("Mock authentication: any email succeeds. Returns a bearer token.")
	postAuth.AddReqStructure(AuthRequest{})
	postAuth.AddRespStructure(AuthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAuth.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postAuth)

	// GET /api/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/state")
	getState.SetSummary("Current application state")
	getState.SetDescription("The state slice screens render from. Requires Bearer token.")
	getState.AddRespStructure(flow.State{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// PUT /api/onboarding/job
	putJob, _ := r.NewOperationContext(http.MethodPut, "/api/onboarding/job")
	putJob.SetSummary("Edit job details")
	putJob.AddReqStructure(JobDetailsRequest{})
	putJob.AddRespStructure(flow.State{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(putJob)

	// POST /api/onboarding/device
	postDevice, _ := r.NewOperationContext(http.MethodPost, "/api/onboarding/device")
	postDevice.SetSummary("Toggle a capture device")
	postDevice.SetDescription("Enabling blocks on device acquisition; a denial leaves the device disabled with permission=denied.")
	postDevice.AddReqStructure(DeviceRequest{})
	postDevice.AddRespStructure(flow.State{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postDevice)

	// POST /api/onboarding/continue
	postContinue, _ := r.NewOperationContext(http.MethodPost, "/api/onboarding/continue")
	postContinue.SetSummary("Finish onboarding")
	postContinue.AddRespStructure(flow.State{}, openapi.WithHTTPStatus(http.StatusOK))
	postContinue.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postContinue)

	// POST /api/interview/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/interview/start")
	postStart.SetSummary("Start an interview session")
	postStart.AddRespStructure(flow.State{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postStart)

	// POST /api/interview/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/interview/answer")
	postAnswer.SetSummary("Submit an answer")
	postAnswer.SetDescription("Scores and records the answer; answering the final question completes the interview.")
	postAnswer.AddReqStructure(SubmitAnswerRequest{})
	postAnswer.AddRespStructure(flow.State{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	// GET /api/report
	getReport, _ := r.NewOperationContext(http.MethodGet, "/api/report")
	getReport.SetSummary("Interview report")
	getReport.AddRespStructure(ReportResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getReport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getReport)

	// GET /api/history
	getHistory, _ := r.NewOperationContext(http.MethodGet, "/api/history")
	getHistory.SetSummary("Completed-session archive")
	getHistory.AddRespStructure([]HistoryRow{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHistory)

	// GET /api/session/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/session/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Clock ticks, transcripts and completion events. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/session/transcribe
	getTranscribe, _ := r.NewOperationContext(http.MethodGet, "/api/session/transcribe")
	getTranscribe.SetSummary("WebSocket dictation stream")
	getTranscribe.SetDescription("Send dictation fragments as text messages; receive interim and final transcripts.")
	getTranscribe.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getTranscribe)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}
