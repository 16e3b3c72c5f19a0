package game

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// Random draws a number from [min, max).
type Random func(min, max int) int

// Clock returns the current time.
type Clock func() time.Time

// DefaultRandom works for every min < max, even if max-min does not fit
// into an int.
func DefaultRandom(min, max int) int {
	span := uint64(max) - uint64(min)
	return min + int(rand.Uint64N(span))
}

func NewSession() *Session {
	return &Session{
		Random: DefaultRandom,
		Clock:  time.Now,
	}
}

// Session is one play-through from Start to a terminal outcome. A Session
// can be restarted, which discards everything of the previous play-through.
type Session struct {
	Random Random
	Clock  Clock

	id        string
	limits    Limits
	target    int
	triesUsed int
	startedAt time.Time
	endedAt   time.Time
	active    bool

	mutex sync.Mutex
}

func (this *Session) Start(limits Limits) error {
	if err := limits.Validate(); err != nil {
		return err
	}

	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return fmt.Errorf("cannot generate session id: %w", err)
	}

	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.id = id
	this.limits = limits
	this.target = this.random()(limits.Min, limits.Max)
	this.triesUsed = 0
	this.startedAt = this.now()
	this.endedAt = time.Time{}
	this.active = true

	return nil
}

func (this *Session) SubmitGuess(value int) (Outcome, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if !this.active {
		return Outcome{}, ErrNotActive
	}

	this.triesUsed++
	result := Outcome{
		Guess:     value,
		TriesUsed: this.triesUsed,
		TriesLeft: this.triesLeft(),
	}

	switch {
	case value == this.target:
		result.Kind = OutcomeCorrect
		result.Target = this.target
		this.end()
	case !this.limits.IsUnlimited() && this.triesUsed >= this.limits.MaxTries:
		result.Kind = OutcomeExhausted
		result.Target = this.target
		this.end()
	case value > this.target:
		result.Kind = OutcomeTooHigh
	default:
		result.Kind = OutcomeTooLow
	}

	result.Elapsed = this.elapsed()
	return result, nil
}

// End aborts the current play-through. Calling it on an inactive session
// does nothing.
func (this *Session) End() {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.active {
		this.end()
	}
}

func (this *Session) IsActive() bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	return this.active
}

func (this *Session) Snapshot() Snapshot {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	return Snapshot{
		Id:        this.id,
		Limits:    this.limits,
		TriesUsed: this.triesUsed,
		TriesLeft: this.triesLeft(),
		StartedAt: this.startedAt,
		Elapsed:   this.elapsed(),
		Active:    this.active,
	}
}

func (this *Session) end() {
	this.active = false
	this.endedAt = this.now()
}

func (this *Session) triesLeft() int {
	if this.limits.IsUnlimited() {
		return -1
	}
	return max(this.limits.MaxTries-this.triesUsed, 0)
}

func (this *Session) elapsed() time.Duration {
	if this.startedAt.IsZero() {
		return 0
	}
	end := this.endedAt
	if this.active || end.IsZero() {
		end = this.now()
	}
	return max(end.Sub(this.startedAt), 0)
}

func (this *Session) random() Random {
	if v := this.Random; v != nil {
		return v
	}
	return DefaultRandom
}

func (this *Session) now() time.Time {
	if v := this.Clock; v != nil {
		return v()
	}
	return time.Now()
}

// Snapshot is a copy of the public state of a Session. It never contains the
// target.
type Snapshot struct {
	Id        string        `json:"id,omitempty"`
	Limits    Limits        `json:"limits"`
	TriesUsed int           `json:"triesUsed"`
	TriesLeft int           `json:"triesLeft"`
	StartedAt time.Time     `json:"startedAt,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
	Active    bool          `json:"active"`
}

func (this Snapshot) IsZero() bool {
	return this.Id == ""
}
