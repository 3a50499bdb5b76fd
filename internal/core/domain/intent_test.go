package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIntentIsValid(t *testing.T) {
	for _, intent := range AllIntents {
		assert.True(t, intent.IsValid(), intent)
	}
	assert.False(t, UserIntent("pricing").IsValid())
	assert.False(t, UserIntent("").IsValid())
}

func TestAllIntentsOrder(t *testing.T) {
	// Tie-break priority order. Changing this changes classification
	// results on tied scores.
	want := []UserIntent{
		IntentProductInquiry,
		IntentFeatureQuestion,
		IntentComparison,
		IntentStatsROI,
		IntentImplementation,
		IntentUseCase,
		IntentOffTopic,
	}
	assert.Equal(t, want, AllIntents)
}

func TestUserIntentDescription(t *testing.T) {
	for _, intent := range AllIntents {
		assert.NotEmpty(t, intent.Description(), intent)
	}
	assert.Equal(t, unknownDescription, UserIntent("invalid").Description())
}

func TestValidationErrorUnwrapsToErrValidation(t *testing.T) {
	err := &ValidationError{Violations: []string{"title: required field is empty", "sections[0].headline: 3 chars, minimum is 10"}}

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "title: required field is empty")
	assert.Contains(t, err.Error(), "; ")

	empty := &ValidationError{}
	assert.Equal(t, ErrValidation.Error(), empty.Error())
}
