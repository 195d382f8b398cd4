package flow

import (
	"time"

	"github.com/mockmate/interviewprep/internal/interview"
)

// Env holds the impure collaborators the reducer needs. Tests substitute
// deterministic stubs; production wiring uses the random scorer and wall
// clock.
type Env struct {
	Scorer          interview.Scorer
	Now             func() time.Time
	DurationSeconds func() int
}

// DefaultEnv returns production wiring: random scoring, wall-clock time,
// randomized completion duration.
func DefaultEnv() Env {
	scorer := interview.NewRandomScorer(time.Now().UnixNano())
	return Env{
		Scorer:          scorer,
		Now:             time.Now,
		DurationSeconds: scorer.RandomDuration,
	}
}

// Reduce is the single transition function. It takes the prior state and an
// intent and returns a wholly new state plus the effects to run. Intents
// whose guard fails return the state unchanged with no effects.
func Reduce(s State, intent Intent, env Env) (State, []Effect) {
	switch in := intent.(type) {
	case OpenAuth:
		s.ShowAuthModal = true
		s.AuthMode = in.Mode
		return s, nil

	case CloseAuth:
		s.ShowAuthModal = false
		return s, nil

	case Authenticate:
		u := in.User
		s.User = &u
		s.ShowAuthModal = false
		s.Screen = ScreenOnboarding
		return s, nil

	case EditJob:
		s.Job = in.Job
		return s, nil

	case SetResume:
		s.Resume = in.Resume
		return s, nil

	case SetDevice:
		switch in.Device {
		case DeviceCamera:
			s.Setup.CameraEnabled = in.Enabled
			s.Setup.CameraPermission = in.Permission
		case DeviceMicrophone:
			s.Setup.MicEnabled = in.Enabled
			s.Setup.MicPermission = in.Permission
		}
		return s, nil

	case ContinueOnboarding:
		if !CanContinue(s) {
			return s, nil
		}
		s.Screen = ScreenSummary
		return s, nil

	case EditSetup:
		s.ShowCompletionModal = false
		s.Screen = ScreenOnboarding
		return s, nil

	case StartInterview:
		if s.User == nil {
			return s, nil
		}
		s.Session = cloneSession(&in.Session)
		s.QuestionIndex = 0
		s.Clock = Clock{}
		s.ShowCompletionModal = false
		s.Screen = ScreenLiveSession
		return s, []Effect{StartClock{}}

	case SubmitAnswer:
		if s.Session == nil || s.Session.Completed() {
			return s, nil
		}
		question, ok := s.Session.Question(in.QuestionID)
		if !ok {
			return s, nil
		}

		score, feedback := env.Scorer.Score(in.Text, question)
		answer := interview.Answer{
			QuestionID: in.QuestionID,
			Text:       in.Text,
			Score:      score,
			Feedback:   feedback,
			Timestamp:  env.Now(),
		}

		// Scoring and recording always happen before the index advances
		// or completion triggers. A resubmission replaces the prior
		// answer in place rather than appending a duplicate.
		session := cloneSession(s.Session)
		replaced := false
		for i, a := range session.Answers {
			if a.QuestionID == in.QuestionID {
				session.Answers[i] = answer
				replaced = true
				break
			}
		}
		if !replaced {
			session.Answers = append(session.Answers, answer)
		}
		session.Score = interview.OverallScore(session.Answers)
		s.Session = session

		// Only an answer to the current question moves the interview
		// forward; resubmitting an earlier one updates it in place and
		// leaves the index where it is.
		if session.Questions[s.QuestionIndex].ID != in.QuestionID {
			return s, nil
		}
		if s.QuestionIndex >= len(session.Questions)-1 {
			return complete(s, env)
		}
		s.QuestionIndex++
		return s, nil

	case SkipQuestion:
		if s.Session == nil || s.Session.Completed() {
			return s, nil
		}
		if s.QuestionIndex >= len(s.Session.Questions)-1 {
			return complete(s, env)
		}
		s.QuestionIndex++
		return s, nil

	case CompleteInterview:
		if s.Session == nil || s.Session.Completed() {
			return s, nil
		}
		return complete(s, env)

	case ViewReport:
		s.ShowCompletionModal = false
		s.Screen = ScreenReport
		return s, nil

	case RetakeInterview:
		s.ShowCompletionModal = false
		s.Screen = ScreenOnboarding
		return s, nil

	case LeaveSession:
		s.Session = nil
		s.Clock = Clock{}
		s.ShowCompletionModal = false
		s.Screen = ScreenLanding
		return s, []Effect{StopClock{}}

	case Navigate:
		if in.Screen != ScreenLanding && in.Screen != ScreenUserHistory {
			return s, nil
		}
		s.Screen = in.Screen
		return s, nil

	case ToggleRecording:
		if s.Session == nil || s.Screen != ScreenLiveSession {
			return s, nil
		}
		s.Clock.Recording = !s.Clock.Recording
		return s, nil

	case TogglePause:
		if s.Session == nil || s.Screen != ScreenLiveSession {
			return s, nil
		}
		s.Clock.Paused = !s.Clock.Paused
		return s, nil

	case Tick:
		if s.Session == nil || s.Session.Completed() ||
			s.Screen != ScreenLiveSession || s.Clock.Paused {
			return s, nil
		}
		s.Clock.Elapsed++
		if s.Clock.Recording {
			s.Clock.UserSpeaking++
		} else {
			s.Clock.AISpeaking++
		}
		return s, nil
	}

	return s, nil
}

// complete stamps the session exactly once, opens the completion overlay and
// emits the archive effect. The screen stays on live-session under the
// overlay, matching the source flow.
func complete(s State, env Env) (State, []Effect) {
	session := cloneSession(s.Session)
	now := env.Now()
	session.CompletedAt = &now
	session.DurationSec = env.DurationSeconds()
	s.Session = session
	s.ShowCompletionModal = true
	return s, []Effect{StopClock{}, ArchiveSession{Session: *session}}
}
