package domain

import (
	"fmt"
	"strings"
)

// Intent is the directional hint behind a pricing request.
type Intent string

const (
	IntentIncrease Intent = "increase"
	IntentDecrease Intent = "decrease"
	IntentReview   Intent = "review"
)

// ParseIntent accepts the three known intents, case-insensitively.
func ParseIntent(s string) (Intent, error) {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentIncrease:
		return IntentIncrease, nil
	case IntentDecrease:
		return IntentDecrease, nil
	case IntentReview:
		return IntentReview, nil
	}
	return "", fmt.Errorf("intent %q: %w", s, ErrInvalidInput)
}
