package game

import (
	"fmt"
	"strconv"
	"strings"
)

type Field uint8

const (
	FieldMin      = Field(0)
	FieldMax      = Field(1)
	FieldMaxTries = Field(2)
)

var (
	AllFields = Fields{
		FieldMin,
		FieldMax,
		FieldMaxTries,
	}
)

func (this Field) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-field-%d", this)
	}
	return string(v)
}

func (this Field) MarshalText() (text []byte, err error) {
	switch this {
	case FieldMin:
		return []byte("min"), nil
	case FieldMax:
		return []byte("max"), nil
	case FieldMaxTries:
		return []byte("maxTries"), nil
	default:
		return nil, fmt.Errorf("illegal field: %d", this)
	}
}

type Fields []Field

func (this Fields) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Fields) String() string {
	return strings.Join(this.Strings(), ",")
}

// Limits are the boundaries a Session is started with. The target is drawn
// from [Min, Max). MaxTries of 0 means unlimited.
type Limits struct {
	Min      int
	Max      int
	MaxTries int
}

func (this Limits) Validate() error {
	if this.Min >= this.Max {
		return &ValidationError{
			Field:  FieldMax,
			Value:  strconv.Itoa(this.Max),
			Reason: fmt.Sprintf("has to be greater than min %d", this.Min),
		}
	}
	if this.MaxTries < 0 {
		return &ValidationError{
			Field:  FieldMaxTries,
			Value:  strconv.Itoa(this.MaxTries),
			Reason: "must not be negative",
		}
	}
	return nil
}

func (this Limits) IsUnlimited() bool {
	return this.MaxTries <= 0
}

// ParseLimits parses the raw field values in the order min, max, maxTries
// and reports the first failing one. An empty maxTries means unlimited.
func ParseLimits(min, max, maxTries string) (Limits, error) {
	var result Limits
	var err error

	if result.Min, err = parseRequiredInt(FieldMin, min); err != nil {
		return Limits{}, err
	}
	if result.Max, err = parseRequiredInt(FieldMax, max); err != nil {
		return Limits{}, err
	}
	if strings.TrimSpace(maxTries) != "" {
		if result.MaxTries, err = parseRequiredInt(FieldMaxTries, maxTries); err != nil {
			return Limits{}, err
		}
	}

	if err := result.Validate(); err != nil {
		return Limits{}, err
	}
	return result, nil
}

// ParseGuess parses a single guess as typed by the player.
func ParseGuess(plain string) (int, error) {
	trimmed := strings.TrimSpace(plain)
	if trimmed == "" {
		return 0, &InputError{}
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &InputError{Value: trimmed}
	}
	return v, nil
}

func parseRequiredInt(field Field, plain string) (int, error) {
	trimmed := strings.TrimSpace(plain)
	if trimmed == "" {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: trimmed, Reason: "not an integer"}
	}
	return v, nil
}
