package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/japaniel/wordchallenge/pkg/history"
)

var (
	// ErrNoWord is returned when a sentence is submitted before any word has
	// been loaded. Callers treat it as a no-op.
	ErrNoWord = errors.New("no current word")
	// ErrEmptyDraft is returned when the draft is blank.
	ErrEmptyDraft = errors.New("sentence draft is empty")
	// ErrAlreadySubmitted is returned when the current draft was already scored.
	ErrAlreadySubmitted = errors.New("sentence already submitted")
	// ErrSubmissionInFlight is returned when a submission is still awaiting its score.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrMissingWordID is returned when the current word carries no identifier.
	ErrMissingWordID = errors.New("current word has no id")
	// ErrStale is returned when a response arrived after the state it was
	// requested for had been replaced. The response is discarded.
	ErrStale = errors.New("stale response discarded")
	// ErrHistoryWrite wraps failures to append to the history store.
	ErrHistoryWrite = errors.New("history write failed")
)

// WordSource fetches practice words.
type WordSource interface {
	RandomWord(ctx context.Context) (Word, error)
}

// Validator scores a sentence written for a word.
type Validator interface {
	Validate(ctx context.Context, wordID int64, sentence string) (float64, error)
}

// Notifier surfaces a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// State is a snapshot of the session.
type State struct {
	// Word is nil until the first word has loaded.
	Word      *Word
	Draft     string
	Score     float64
	Feedback  FeedbackLevel
	Submitted bool
	// InFlight is true while a submission awaits its score.
	InFlight bool
	// Fetching is true while a word request is outstanding.
	Fetching bool
}

// Result describes a scored submission.
type Result struct {
	Score    float64
	Feedback FeedbackLevel
	Entry    history.Entry
}

// Session is a single practice session. It is safe for concurrent use; the
// network calls run without holding the state lock.
type Session struct {
	words     WordSource
	validator Validator
	history   history.Store

	// Notifier receives user-facing failure messages. nil means none.
	Notifier Notifier
	// Logger is used for diagnostics. nil means no logging.
	Logger *zap.Logger
	// Now is the clock used for history timestamps.
	Now func() time.Time
	// ID identifies the session in logs.
	ID string

	mu        sync.Mutex
	word      *Word
	draft     string
	score     float64
	feedback  FeedbackLevel
	submitted bool
	inFlight  bool

	// generation changes whenever a pending submission must no longer
	// apply: a new word was loaded or the draft was edited.
	generation uint64
	// loadSeq orders word requests; only the newest may apply.
	loadSeq     uint64
	loadPending int
}

// NewSession creates a session with no word loaded.
func NewSession(words WordSource, validator Validator, store history.Store) *Session {
	return &Session{
		words:     words,
		validator: validator,
		history:   store,
		Now:       time.Now,
		ID:        uuid.NewString(),
		feedback:  Neutral,
	}
}

func (s *Session) log() *zap.Logger {
	l := s.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("session_id", s.ID))
}

func (s *Session) notify(msg string) {
	if s.Notifier != nil {
		s.Notifier.Notify(msg)
	}
}

func (s *Session) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Draft:     s.draft,
		Score:     s.score,
		Feedback:  s.feedback,
		Submitted: s.submitted,
		InFlight:  s.inFlight,
		Fetching:  s.loadPending > 0,
	}
	if s.word != nil {
		w := *s.word
		st.Word = &w
	}
	return st
}

// CanSubmit reports whether SubmitSentence would send a request.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.word != nil && strings.TrimSpace(s.draft) != "" && !s.submitted && !s.inFlight
}

// LoadNextWord fetches a word and, on success, replaces the session state
// wholesale. On failure the state is left as it was.
func (s *Session) LoadNextWord(ctx context.Context) (Word, error) {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.loadPending++
	s.mu.Unlock()

	w, err := s.words.RandomWord(ctx)

	s.mu.Lock()
	s.loadPending--
	if seq != s.loadSeq {
		s.mu.Unlock()
		s.log().Debug("dropping superseded word response", zap.Uint64("seq", seq))
		return Word{}, ErrStale
	}
	if err != nil {
		s.mu.Unlock()
		s.log().Error("word fetch failed", zap.Error(err))
		if !errors.Is(err, context.Canceled) {
			s.notify(failureMessage("Error loading word", err))
		}
		return Word{}, fmt.Errorf("load word: %w", err)
	}
	s.word = &w
	s.draft = ""
	s.score = 0
	s.feedback = Neutral
	s.submitted = false
	s.inFlight = false
	s.generation++
	s.mu.Unlock()

	s.log().Info("word loaded",
		zap.Stringer("word_id", w.ID),
		zap.String("word", w.Word),
		zap.String("difficulty", string(w.Difficulty)))
	return w, nil
}

// EditDraft replaces the draft with text. Editing after a submission reopens
// the draft: the score and feedback reset and a new submission is allowed.
func (s *Session) EditDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
	if s.submitted {
		s.score = 0
		s.feedback = Neutral
		s.submitted = false
	}
	if s.inFlight {
		// The pending response belongs to the previous draft.
		s.inFlight = false
	}
	s.generation++
}

// SubmitSentence sends the draft for scoring. On success the score and
// feedback are updated, one history entry is appended and the draft is
// marked submitted. Failures do not change the score, feedback, history or
// submitted flag.
func (s *Session) SubmitSentence(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.word == nil {
		s.mu.Unlock()
		return Result{}, ErrNoWord
	}
	if strings.TrimSpace(s.draft) == "" {
		s.mu.Unlock()
		return Result{}, ErrEmptyDraft
	}
	if s.submitted {
		s.mu.Unlock()
		return Result{}, ErrAlreadySubmitted
	}
	if s.inFlight {
		s.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}
	word := *s.word
	id, ok := word.ID.Get()
	if !ok {
		s.mu.Unlock()
		s.log().Warn("refusing to submit sentence for word without id", zap.String("word", word.Word))
		s.notify("Error validating sentence (word has no id)")
		return Result{}, ErrMissingWordID
	}
	sentence := s.draft
	gen := s.generation
	s.inFlight = true
	s.mu.Unlock()

	log := s.log().With(zap.Int64("word_id", id), zap.Uint64("generation", gen))
	score, err := s.validator.Validate(ctx, id, sentence)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Debug("dropping stale validation response", zap.Error(err))
		return Result{}, ErrStale
	}
	s.inFlight = false
	if err != nil {
		s.mu.Unlock()
		log.Error("validate sentence failed", zap.Error(err))
		if !errors.Is(err, context.Canceled) {
			s.notify(failureMessage("Error validating sentence", err))
		}
		return Result{}, fmt.Errorf("validate sentence: %w", err)
	}
	fb := FeedbackFor(score)
	s.score = score
	s.feedback = fb
	s.submitted = true
	s.mu.Unlock()

	entry := history.Entry{
		Word:       word.Word,
		Sentence:   sentence,
		Score:      score,
		Difficulty: string(word.Difficulty),
		Timestamp:  s.now().UTC().Format(time.RFC3339Nano),
	}
	log.Info("validate result", zap.Float64("score", score), zap.String("feedback", string(fb)))

	res := Result{Score: score, Feedback: fb, Entry: entry}
	if err := s.history.Append(ctx, entry); err != nil {
		log.Error("append history failed", zap.Error(err))
		s.notify(fmt.Sprintf("Error saving history: %v", err))
		return res, fmt.Errorf("%w: %w", ErrHistoryWrite, err)
	}
	return res, nil
}

// failureMessage formats the user-facing message for a failed request.
func failureMessage(prefix string, err error) string {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return fmt.Sprintf("%s (status %d)", prefix, sc.StatusCode())
	}
	return prefix + " (network error)"
}
