package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/mark3labs/vacancy/internal/logger"
)

// ErrUnsupported is returned by Start when no recognizer is available.
var ErrUnsupported = errors.New("speech recognition unsupported: speech_command is not configured")

// MsgUnsupported is the notice shown when voice input is requested without a
// recognizer.
const MsgUnsupported = "Распознавание речи не поддерживается: укажите speech_command в настройках"

// Adapter owns at most one recognition session at a time.
type Adapter struct {
	rec  Recognizer
	lang string

	mu        sync.Mutex
	recording bool
	cancel    context.CancelFunc
	session   int
	onEnd     func(error)
}

// NewAdapter wraps rec, which may be nil when recognition is unavailable.
func NewAdapter(rec Recognizer, lang string) *Adapter {
	return &Adapter{rec: rec, lang: lang}
}

// Supported reports whether Start can ever succeed.
func (a *Adapter) Supported() bool {
	return a.rec != nil
}

// OnEnd registers fn to run whenever a session ends, with the recognition
// error if there was one. Stop does not trigger it.
func (a *Adapter) OnEnd(fn func(error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEnd = fn
}

// IsRecording reports whether a session is active.
func (a *Adapter) IsRecording() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recording
}

// Start begins a session. onResult receives the transcript and the session
// ends on its own afterwards. Calling Start while recording does nothing.
func (a *Adapter) Start(onResult func(string)) error {
	if a.rec == nil {
		return ErrUnsupported
	}

	a.mu.Lock()
	if a.recording {
		a.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.session++
	id := a.session
	a.recording = true
	a.cancel = cancel
	a.mu.Unlock()

	logger.Debug("speech: session %d started (%s)", id, a.lang)

	go func() {
		text, err := a.rec.Recognize(ctx, a.lang)

		a.mu.Lock()
		if a.session != id || !a.recording {
			// Stopped, possibly followed by a new session.
			a.mu.Unlock()
			return
		}
		a.release()
		onEnd := a.onEnd
		a.mu.Unlock()

		if err != nil {
			logger.Warn("speech: session %d failed: %v", id, err)
		} else if text != "" && onResult != nil {
			onResult(text)
		}
		if onEnd != nil {
			onEnd(err)
		}
	}()

	return nil
}

// Stop ends the active session, if any.
func (a *Adapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.recording {
		logger.Debug("speech: session %d stopped", a.session)
	}
	a.release()
}

// Close releases the adapter on teardown.
func (a *Adapter) Close() error {
	a.Stop()
	return nil
}

// release drops the session handle. Callers hold mu.
func (a *Adapter) release() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.recording = false
}
