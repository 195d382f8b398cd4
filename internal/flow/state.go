// Package flow is the view/session state machine behind the rehearsal UI.
// Screens are rendered elsewhere; every user action arrives here as an
// Intent, and Reduce returns a wholly new State plus the effects the caller
// must carry out. Every intent is safe in every state: guarded intents
// simply leave the state unchanged.
package flow

import "github.com/mockmate/interviewprep/internal/interview"

type Screen string

const (
	ScreenLanding     Screen = "landing"
	ScreenOnboarding  Screen = "onboarding"
	ScreenSummary     Screen = "summary"
	ScreenLiveSession Screen = "live-session"
	ScreenReport      Screen = "report"
	ScreenUserHistory Screen = "user-history"
)

type AuthMode string

const (
	AuthSignUp AuthMode = "signup"
	AuthSignIn AuthMode = "signin"
)

type Device string

const (
	DeviceCamera     Device = "camera"
	DeviceMicrophone Device = "microphone"
)

type Permission string

const (
	PermissionPending Permission = "pending"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// TechnicalSetup tracks device intent and the last acquisition outcome.
// A toggle-on that fails leaves enabled=false, permission=denied.
type TechnicalSetup struct {
	CameraEnabled    bool       `json:"cameraEnabled"`
	MicEnabled       bool       `json:"micEnabled"`
	CameraPermission Permission `json:"cameraPermission"`
	MicPermission    Permission `json:"micPermission"`
}

// ResumeFile is the uploaded resume draft; only metadata is kept.
type ResumeFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Clock is the session timer state: total elapsed seconds split into the
// user-speaking and AI-speaking buckets by the recording flag.
type Clock struct {
	Elapsed      int  `json:"elapsed"`
	UserSpeaking int  `json:"userSpeaking"`
	AISpeaking   int  `json:"aiSpeaking"`
	Recording    bool `json:"recording"`
	Paused       bool `json:"paused"`
}

// State is the root application state. Handlers never mutate it in place;
// Reduce publishes a complete replacement on every intent.
type State struct {
	Screen              Screen               `json:"screen"`
	User                *interview.User      `json:"user"`
	ShowAuthModal       bool                 `json:"showAuthModal"`
	AuthMode            AuthMode             `json:"authMode"`
	Job                 interview.JobDetails `json:"jobDetails"`
	Resume              *ResumeFile          `json:"resumeFile"`
	Setup               TechnicalSetup       `json:"technicalSetup"`
	Session             *interview.Session   `json:"currentSession"`
	QuestionIndex       int                  `json:"questionIndex"`
	ShowCompletionModal bool                 `json:"showCompletionModal"`
	Clock               Clock                `json:"clock"`
}

// NewState is the state at process start: landing screen, no user, both
// device permissions pending.
func NewState() State {
	return State{
		Screen:   ScreenLanding,
		AuthMode: AuthSignUp,
		Setup: TechnicalSetup{
			CameraPermission: PermissionPending,
			MicPermission:    PermissionPending,
		},
	}
}

// CanContinue is the onboarding completeness gate: role, company and resume
// present, and both devices enabled. All five must hold at once.
func CanContinue(s State) bool {
	return s.Job.Role != "" &&
		s.Job.Company != "" &&
		s.Resume != nil &&
		s.Setup.CameraEnabled &&
		s.Setup.MicEnabled
}

// cloneSession copies a session deeply enough that appending answers never
// aliases a previously published state.
func cloneSession(s *interview.Session) *interview.Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Questions = append([]interview.Question(nil), s.Questions...)
	c.Answers = append([]interview.Answer(nil), s.Answers...)
	return &c
}
