package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/checkhealth/goals/internal/model"
)

// GoalCreatedChannel is the channel downstream consumers subscribe to.
const GoalCreatedChannel = "goal.created"

var (
	ErrNotificationFailed = errors.New("goal.created notification failed")
	ErrMissingGoal        = errors.New("goal is nil")
	ErrMissingCategory    = errors.New("goal has no category")
)

// GoalCreatedEvent is the payload published on GoalCreatedChannel.
type GoalCreatedEvent struct {
	GoalID      int64  `json:"goalId"`
	UserID      string `json:"userId"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier announces newly created goals over a Transport.
type Notifier struct {
	transport Transport
	marshal   func(v any) ([]byte, error)
}

func NewNotifier(transport Transport) *Notifier {
	return &Notifier{
		transport: transport,
		marshal:   json.Marshal,
	}
}

// GoalCreated publishes goal to GoalCreatedChannel. Every failure wraps
// ErrNotificationFailed; callers decide whether it matters.
func (n *Notifier) GoalCreated(ctx context.Context, goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: %w", ErrNotificationFailed, ErrMissingGoal)
	}
	if goal.Category == "" {
		return fmt.Errorf("%w: goal %d: %w", ErrNotificationFailed, goal.ID, ErrMissingCategory)
	}

	payload, err := n.marshal(GoalCreatedEvent{
		GoalID:      goal.ID,
		UserID:      goal.UserID,
		Category:    goal.Category.String(),
		Title:       goal.Title,
		Description: goal.Description,
	})
	if err != nil {
		return fmt.Errorf("%w: serialize: %w", ErrNotificationFailed, err)
	}

	err = n.transport.Send(ctx, GoalCreatedChannel, string(payload))
	if err != nil {
		return fmt.Errorf("%w: send: %w", ErrNotificationFailed, err)
	}

	return nil
}
