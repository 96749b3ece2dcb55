package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/checkhealth/goals/internal/model"
	"github.com/checkhealth/goals/internal/repository"
)

// Notifier announces newly created goals.
type Notifier interface {
	GoalCreated(ctx context.Context, goal *model.Goal) error
}

// GoalFilter narrows Goals. Zero fields match everything.
type GoalFilter struct {
	UserID    string
	Status    model.GoalStatus
	Category  model.Category
	StartFrom *time.Time
	StartTo   *time.Time
}

func (f GoalFilter) matches(g *model.Goal) bool {
	if f.UserID != "" && g.UserID != f.UserID {
		return false
	}
	if f.Status != "" && g.Status != f.Status {
		return false
	}
	if f.Category != "" && g.Category != f.Category {
		return false
	}
	if f.StartFrom != nil || f.StartTo != nil {
		if g.StartDate == nil {
			return false
		}
		if f.StartFrom != nil && g.StartDate.Before(*f.StartFrom) {
			return false
		}
		if f.StartTo != nil && g.StartDate.After(*f.StartTo) {
			return false
		}
	}
	return true
}

type GoalService struct {
	repo     repository.GoalRepository
	notifier Notifier
	now      func() time.Time
}

func NewGoalService(repo repository.GoalRepository, notifier Notifier) *GoalService {
	return &GoalService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create persists a new goal built from skeleton. The goal always starts
// active; a missing progress is derived from its type and dates. A failed
// notification is logged and does not fail the call.
func (s *GoalService) Create(ctx context.Context, skeleton *model.Goal) (*model.Goal, error) {
	goal := *skeleton
	goal.ID = 0
	goal.Status = model.GoalStatusActive

	now := s.now()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	if goal.Type != "" && !goal.Type.Known() {
		slog.WarnContext(ctx, "unknown goal type, using daily progress defaults", "type", goal.Type)
	}

	if goal.Progress == nil {
		progress := model.DefaultProgress(goal.Type, goal.StartDate, goal.EndDate)
		goal.Progress = &progress
	}

	err := s.repo.Create(ctx, &goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.InfoContext(ctx, "goal created", "goal_id", goal.ID, "user_id", goal.UserID)

	err = s.notifier.GoalCreated(ctx, &goal)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send goal created event", "error", err, "goal_id", goal.ID)
	}

	return &goal, nil
}

// Goals returns the goals matching filter. The most selective named query
// runs in the store; remaining criteria are applied to its result.
func (s *GoalService) Goals(ctx context.Context, filter GoalFilter) ([]*model.Goal, error) {
	var (
		goals []*model.Goal
		err   error
	)

	switch {
	case filter.UserID != "" && filter.Status != "":
		goals, err = s.repo.ByUserIDAndStatus(ctx, filter.UserID, filter.Status)
	case filter.UserID != "":
		goals, err = s.repo.ByUserID(ctx, filter.UserID)
	case filter.Status != "":
		goals, err = s.repo.ByStatus(ctx, filter.Status)
	case filter.Category != "":
		goals, err = s.repo.ByCategory(ctx, filter.Category)
	case filter.StartFrom != nil && filter.StartTo != nil:
		goals, err = s.repo.ByStartDateBetween(ctx, *filter.StartFrom, *filter.StartTo)
	default:
		goals, err = s.repo.Goals(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	filtered := goals[:0]
	for _, g := range goals {
		if filter.matches(g) {
			filtered = append(filtered, g)
		}
	}

	return filtered, nil
}

// Find returns the goal with the given id. A missing goal is reported
// through found, not as an error.
func (s *GoalService) Find(ctx context.Context, goalID int64) (*model.Goal, bool, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return goal, true, nil
}

// Update overwrites the editable fields of a goal with those of changes.
// id, createdAt and progress are kept.
func (s *GoalService) Update(ctx context.Context, goalID int64, changes *model.Goal) (*model.Goal, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	goal.Title = changes.Title
	goal.Description = changes.Description
	goal.Category = changes.Category
	goal.Type = changes.Type
	goal.StartDate = changes.StartDate
	goal.EndDate = changes.EndDate
	goal.Frequency = changes.Frequency
	goal.Difficulty = changes.Difficulty
	goal.Reward = changes.Reward
	goal.Status = changes.Status
	goal.Notifications = changes.Notifications

	err = s.repo.Update(ctx, goal)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "goal updated", "goal_id", goal.ID)
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, goalID int64) error {
	exists, err := s.repo.Exists(ctx, goalID)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrGoalNotFound
	}

	err = s.repo.Delete(ctx, goalID)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "goal deleted", "goal_id", goalID)
	return nil
}

// UpdateProgress adds increment to the completed count and marks the goal
// completed once it reaches the total. Increments may be zero or negative.
// Status never moves back from completed. A goal without progress is saved
// unchanged.
func (s *GoalService) UpdateProgress(ctx context.Context, goalID int64, increment int) (*model.Goal, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	if goal.Progress != nil {
		goal.Progress.Completed += increment
		if goal.IsCompleted() {
			goal.Status = model.GoalStatusCompleted
		}
	}

	err = s.repo.Update(ctx, goal)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "goal progress updated",
		"goal_id", goal.ID,
		"increment", increment,
		"status", goal.Status,
	)
	return goal, nil
}
