package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/stockmaster/internal/questions"
)

// ErrNoSession is returned by Practice operations that need a started session.
var ErrNoSession = fmt.Errorf("%w: no active session", ErrInvalidTransition)

// Kind tags what sort of run a session is in the event log.
type Kind string

const (
	KindPractice Kind = "practice"
	KindSpeed    Kind = "speed"
	KindSwipe    Kind = "swipe"
	KindLesson   Kind = "lesson"
)

// SessionInfo identifies a running session to a Recorder.
type SessionInfo struct {
	ID        string
	Kind      Kind
	Filter    string
	Mode      Mode
	Total     int
	StartedAt time.Time
}

// AnswerRecord is one judged answer as seen by a Recorder.
type AnswerRecord struct {
	Outcome

	// Attempt is 1 for the first answer to a question, 2 for the first
	// retry and so on.
	Attempt int
	Elapsed time.Duration
}

// Recorder observes session lifecycle events. Implementations persist
// them; their errors never interrupt the session.
type Recorder interface {
	SessionStarted(ctx context.Context, info SessionInfo) error
	AnswerRecorded(ctx context.Context, info SessionInfo, rec AnswerRecord) error
	SessionEnded(ctx context.Context, info SessionInfo, sum Summary) error
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) SessionStarted(context.Context, SessionInfo) error               { return nil }
func (NopRecorder) AnswerRecorded(context.Context, SessionInfo, AnswerRecord) error { return nil }
func (NopRecorder) SessionEnded(context.Context, SessionInfo, Summary) error        { return nil }

// Option configures a Practice.
type Option func(*Practice)

func WithMode(m Mode) Option { return func(p *Practice) { p.mode = m } }

func WithKind(k Kind) Option { return func(p *Practice) { p.kind = k } }

func WithRecorder(r Recorder) Option {
	return func(p *Practice) {
		if r != nil {
			p.rec = r
		}
	}
}

func WithSource(src Source) Option {
	return func(p *Practice) {
		if src != nil {
			p.src = src
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Practice) {
		if now != nil {
			p.now = now
		}
	}
}

// Practice drives sessions for a presenter: it samples questions, runs the
// state machine and reports to a Recorder. It remembers how the last
// session was built so Restart can re-sample with the same parameters.
type Practice struct {
	repo *questions.Repository
	mode Mode
	kind Kind
	rec  Recorder
	src  Source
	now  func() time.Time

	build func() ([]questions.Question, error)
	label string

	sess      *Session
	info      SessionInfo
	askedAt   time.Time
	attempt   int
	points    int
	ended     bool
	summary   Summary
	hasResult bool
}

// NewPractice returns a controller over repo. repo may be nil when every
// session is started with StartWith.
func NewPractice(repo *questions.Repository, opts ...Option) *Practice {
	p := &Practice{
		repo: repo,
		kind: KindPractice,
		rec:  NopRecorder{},
		now:  time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	if p.src == nil {
		p.src = NewSource()
	}
	return p
}

// Start samples count questions matching f and begins a session.
func (p *Practice) Start(ctx context.Context, f Filter, count int) error {
	if count <= 0 {
		return fmt.Errorf("question count must be positive, got %d", count)
	}
	if p.repo == nil {
		return ErrEmptyPool
	}
	repo, src := p.repo, p.src
	return p.StartWith(ctx, f.String(), func() ([]questions.Question, error) {
		qs := Sample(f.Pool(repo), count, src)
		if len(qs) == 0 {
			return nil, fmt.Errorf("%s: %w", f, ErrEmptyPool)
		}
		return qs, nil
	})
}

// StartWith begins a session over the list build returns. build is kept
// and called again on Restart. label is what the event log records as the
// session's filter.
func (p *Practice) StartWith(ctx context.Context, label string, build func() ([]questions.Question, error)) error {
	qs, err := build()
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		return ErrEmptyPool
	}
	p.abandon(ctx)
	p.build = build
	p.label = label
	return p.begin(ctx, qs)
}

func (p *Practice) begin(ctx context.Context, qs []questions.Question) error {
	if p.sess == nil {
		s, err := New(qs, p.mode)
		if err != nil {
			return err
		}
		p.sess = s
	} else if err := p.sess.Restart(qs); err != nil {
		return err
	}

	now := p.now()
	p.info = SessionInfo{
		ID:        uuid.New().String(),
		Kind:      p.kind,
		Filter:    p.label,
		Mode:      p.mode,
		Total:     len(qs),
		StartedAt: now,
	}
	p.askedAt = now
	p.attempt = 0
	p.points = 0
	p.ended = false
	p.hasResult = false
	p.summary = Summary{}

	_ = p.rec.SessionStarted(ctx, p.info)
	return nil
}

// Submit answers the current question.
func (p *Practice) Submit(ctx context.Context, c questions.Choice) (Outcome, error) {
	if p.sess == nil || p.ended {
		return Outcome{}, ErrNoSession
	}
	out, err := p.sess.Answer(c)
	if err != nil {
		return Outcome{}, err
	}
	p.attempt++
	_ = p.rec.AnswerRecorded(ctx, p.info, AnswerRecord{
		Outcome: out,
		Attempt: p.attempt,
		Elapsed: p.now().Sub(p.askedAt),
	})
	return out, nil
}

// Next leaves the feedback state. When the session completes, the
// recorder is told and Summary becomes available.
func (p *Practice) Next(ctx context.Context) error {
	if p.sess == nil || p.ended {
		return ErrNoSession
	}
	prev := p.sess.Index()
	if err := p.sess.Advance(); err != nil {
		return err
	}
	if p.sess.Index() != prev {
		p.attempt = 0
		p.askedAt = p.now()
	}
	if p.sess.Complete() {
		p.finish(ctx, EndCompleted)
	}
	return nil
}

// Restart re-samples with the parameters of the last Start. A session in
// progress is recorded as abandoned. If re-sampling fails the current
// session is kept.
func (p *Practice) Restart(ctx context.Context) error {
	if p.build == nil {
		return ErrNoSession
	}
	qs, err := p.build()
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		return ErrEmptyPool
	}
	p.abandon(ctx)
	return p.begin(ctx, qs)
}

// EndEarly abandons a session in progress and returns its partial summary.
// ok is false when there is nothing to end.
func (p *Practice) EndEarly(ctx context.Context) (sum Summary, ok bool) {
	return p.stop(ctx, EndAbandoned)
}

// Expire ends a timed session whose clock ran out.
func (p *Practice) Expire(ctx context.Context) (sum Summary, ok bool) {
	return p.stop(ctx, EndExpired)
}

func (p *Practice) stop(ctx context.Context, reason EndReason) (Summary, bool) {
	if p.sess == nil || p.ended {
		return Summary{}, false
	}
	p.finish(ctx, reason)
	return p.summary, true
}

func (p *Practice) abandon(ctx context.Context) {
	if p.sess != nil && !p.ended {
		p.finish(ctx, EndAbandoned)
	}
}

func (p *Practice) finish(ctx context.Context, reason EndReason) {
	p.summary = Summarize(p.sess, reason, p.now().Sub(p.info.StartedAt))
	p.summary.Points = p.points
	p.ended = true
	p.hasResult = true
	_ = p.rec.SessionEnded(ctx, p.info, p.summary)
}

// AddPoints adds game points to the running score.
func (p *Practice) AddPoints(n int) { p.points += n }

func (p *Practice) Points() int { return p.points }

// Current returns the question being asked, if any.
func (p *Practice) Current() (questions.Question, bool) {
	if p.sess == nil || p.ended {
		return questions.Question{}, false
	}
	return p.sess.Current()
}

// Phase returns the session phase. An ended session reports PhaseComplete.
func (p *Practice) Phase() Phase {
	if p.sess == nil || p.ended {
		return PhaseComplete
	}
	return p.sess.Phase()
}

func (p *Practice) Correct() int {
	if p.sess == nil {
		return 0
	}
	return p.sess.Correct()
}

func (p *Practice) Progress() float64 {
	if p.sess == nil {
		return 0
	}
	return p.sess.Progress()
}

// Result is only available once the session is complete.
func (p *Practice) Result() (Result, error) {
	if p.sess == nil {
		return Result{}, ErrNoSession
	}
	return SessionResult(p.sess)
}

// Summary returns the summary of the last ended session.
func (p *Practice) Summary() (Summary, bool) {
	return p.summary, p.hasResult
}

// Session exposes the underlying state machine for rendering.
func (p *Practice) Session() *Session { return p.sess }

func (p *Practice) Info() SessionInfo { return p.info }

func (p *Practice) Label() string { return p.label }

// Active reports whether a session is running.
func (p *Practice) Active() bool { return p.sess != nil && !p.ended }

// IsEmptyPool reports whether err means a filter matched no questions.
func IsEmptyPool(err error) bool { return errors.Is(err, ErrEmptyPool) }
