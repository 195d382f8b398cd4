package flow

import "github.com/mockmate/interviewprep/internal/interview"

// Intent is a user (or timer) action requesting a state transition.
type Intent interface{ isIntent() }

// OpenAuth shows the auth overlay in the given mode.
type OpenAuth struct{ Mode AuthMode }

// CloseAuth hides the auth overlay.
type CloseAuth struct{}

// Authenticate installs the (mock-authenticated) user and moves to onboarding.
type Authenticate struct{ User interview.User }

// EditJob replaces the job details draft.
type EditJob struct{ Job interview.JobDetails }

// SetResume replaces or clears the resume draft.
type SetResume struct{ Resume *ResumeFile }

// SetDevice records the outcome of a device toggle attempt.
type SetDevice struct {
	Device     Device
	Enabled    bool
	Permission Permission
}

// ContinueOnboarding moves to the summary screen when the gate passes.
type ContinueOnboarding struct{}

// EditSetup returns to onboarding from the summary or completion overlay.
type EditSetup struct{}

// StartInterview installs a freshly built session and enters the live screen.
type StartInterview struct{ Session interview.Session }

// SubmitAnswer scores and records an answer for the given question.
type SubmitAnswer struct {
	QuestionID string
	Text       string
}

// SkipQuestion advances past the current question without recording an answer.
type SkipQuestion struct{}

// CompleteInterview stamps the session and opens the completion overlay.
type CompleteInterview struct{}

// ViewReport closes the completion overlay and shows the report.
type ViewReport struct{}

// RetakeInterview closes the completion overlay and returns to onboarding.
type RetakeInterview struct{}

// LeaveSession discards the current session and returns to landing.
type LeaveSession struct{}

// Navigate moves between the landing and archive screens.
type Navigate struct{ Screen Screen }

// ToggleRecording flips the recording flag that routes clock ticks.
type ToggleRecording struct{}

// TogglePause suspends or resumes all clock counters.
type TogglePause struct{}

// Tick advances the session clock by one second.
type Tick struct{}

func (OpenAuth) isIntent()           {}
func (CloseAuth) isIntent()          {}
func (Authenticate) isIntent()       {}
func (EditJob) isIntent()            {}
func (SetResume) isIntent()          {}
func (SetDevice) isIntent()          {}
func (ContinueOnboarding) isIntent() {}
func (EditSetup) isIntent()          {}
func (StartInterview) isIntent()     {}
func (SubmitAnswer) isIntent()       {}
func (SkipQuestion) isIntent()       {}
func (CompleteInterview) isIntent()  {}
func (ViewReport) isIntent()         {}
func (RetakeInterview) isIntent()    {}
func (LeaveSession) isIntent()       {}
func (Navigate) isIntent()           {}
func (ToggleRecording) isIntent()    {}
func (TogglePause) isIntent()        {}
func (Tick) isIntent()               {}

// Effect is work the caller must perform after a transition.
type Effect interface{ isEffect() }

// StartClock begins the 1 Hz session clock.
type StartClock struct{}

// StopClock cancels the session clock.
type StopClock struct{}

// ArchiveSession appends the completed session to history.
type ArchiveSession struct{ Session interview.Session }

func (StartClock) isEffect()     {}
func (StopClock) isEffect()      {}
func (ArchiveSession) isEffect() {}
