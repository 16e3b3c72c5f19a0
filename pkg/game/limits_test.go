package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimits(t *testing.T) {
	cases := []struct {
		name          string
		min, max, mt  string
		expected      Limits
		expectedField *Field
	}{
		{"regular", "1", "100", "5", Limits{1, 100, 5}, nil},
		{"spaces", " 1 ", "\t100", " 5", Limits{1, 100, 5}, nil},
		{"unlimited", "1", "100", "", Limits{1, 100, 0}, nil},
		{"negative", "-10", "-1", "0", Limits{-10, -1, 0}, nil},
		{"missingMin", "", "100", "", Limits{}, fieldRef(FieldMin)},
		{"illegalMin", "a", "100", "", Limits{}, fieldRef(FieldMin)},
		{"missingMax", "1", "", "", Limits{}, fieldRef(FieldMax)},
		{"illegalMax", "1", "1.5", "", Limits{}, fieldRef(FieldMax)},
		{"illegalMaxTries", "1", "100", "x", Limits{}, fieldRef(FieldMaxTries)},
		{"negativeMaxTries", "1", "100", "-3", Limits{}, fieldRef(FieldMaxTries)},
		{"emptyRange", "5", "5", "", Limits{}, fieldRef(FieldMax)},
		{"invertedRange", "10", "5", "", Limits{}, fieldRef(FieldMax)},
		{"minReportedFirst", "x", "y", "z", Limits{}, fieldRef(FieldMin)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, actualErr := ParseLimits(c.min, c.max, c.mt)
			if c.expectedField == nil {
				require.NoError(t, actualErr)
				assert.Equal(t, c.expected, actual)
				return
			}
			verr, ok := actualErr.(*ValidationError)
			require.True(t, ok, "expected validation error, got %v", actualErr)
			assert.Equal(t, *c.expectedField, verr.Field)
			assert.Equal(t, Limits{}, actual)
		})
	}
}

func TestParseGuess(t *testing.T) {
	actual, err := ParseGuess(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, actual)

	actual, err = ParseGuess("-7")
	require.NoError(t, err)
	assert.Equal(t, -7, actual)

	_, err = ParseGuess("")
	assert.Equal(t, &InputError{}, err)

	_, err = ParseGuess("forty")
	assert.Equal(t, &InputError{Value: "forty"}, err)
	assert.EqualError(t, err, `illegal guess "forty": not an integer`)
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "min,max,maxTries", AllFields.String())
	assert.Equal(t, "illegal-field-9", Field(9).String())
}

func fieldRef(v Field) *Field {
	return &v
}
