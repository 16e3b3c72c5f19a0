package homeassistant

import (
	"time"

	"github.com/blaubaer/guessing-game/pkg/signal"
)

type stateGetResponse struct {
	EntityId    string         `json:"entity_id"`
	State       signal.State   `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged time.Time      `json:"last_changed"`
	LastUpdated time.Time      `json:"last_updated"`
}

type statePostRequest struct {
	State      signal.State   `json:"state"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// stateAttrGame is the part of the game published as attributes of the
// entity. It is compared to decide whether an update is required.
type stateAttrGame struct {
	SessionId   string `json:"session_id,omitempty"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	MaxTries    int    `json:"max_tries"`
	TriesUsed   int    `json:"tries_used"`
	LastGuess   *int   `json:"last_guess,omitempty"`
	LastOutcome string `json:"last_outcome,omitempty"`
}

func newStateAttrGame(ctx signal.Context) stateAttrGame {
	s := ctx.Snapshot()
	result := stateAttrGame{
		SessionId: s.Id,
		Min:       s.Limits.Min,
		Max:       s.Limits.Max,
		MaxTries:  s.Limits.MaxTries,
		TriesUsed: s.TriesUsed,
	}
	if o, ok := ctx.Outcome(); ok {
		guess := o.Guess
		result.LastGuess = &guess
		result.LastOutcome = o.Kind.String()
	}
	return result
}

func (this stateAttrGame) isEqualTo(o *stateAttrGame) bool {
	if (this.LastGuess == nil) != (o.LastGuess == nil) {
		return false
	}
	if this.LastGuess != nil && *this.LastGuess != *o.LastGuess {
		return false
	}
	return this.SessionId == o.SessionId &&
		this.Min == o.Min &&
		this.Max == o.Max &&
		this.MaxTries == o.MaxTries &&
		this.TriesUsed == o.TriesUsed &&
		this.LastOutcome == o.LastOutcome
}

func (this stateAttrGame) applyTo(attributes map[string]any) {
	attributes["session_id"] = this.SessionId
	attributes["min"] = this.Min
	attributes["max"] = this.Max
	attributes["max_tries"] = this.MaxTries
	attributes["tries_used"] = this.TriesUsed
	if v := this.LastGuess; v != nil {
		attributes["last_guess"] = *v
	} else {
		delete(attributes, "last_guess")
	}
	if v := this.LastOutcome; v != "" {
		attributes["last_outcome"] = v
	} else {
		delete(attributes, "last_outcome")
	}
}

func (this *stateGetResponse) getAttrGame() stateAttrGame {
	var result stateAttrGame
	if this.Attributes == nil {
		return result
	}
	result.SessionId, _ = this.Attributes["session_id"].(string)
	result.Min = attrInt(this.Attributes["min"])
	result.Max = attrInt(this.Attributes["max"])
	result.MaxTries = attrInt(this.Attributes["max_tries"])
	result.TriesUsed = attrInt(this.Attributes["tries_used"])
	if v, ok := this.Attributes["last_guess"]; ok {
		guess := attrInt(v)
		result.LastGuess = &guess
	}
	result.LastOutcome, _ = this.Attributes["last_outcome"].(string)
	return result
}

func attrInt(v any) int {
	switch tv := v.(type) {
	case float64:
		return int(tv)
	case int:
		return tv
	default:
		return 0
	}
}
