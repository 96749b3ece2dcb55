package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/checkhealth/goals/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressMessageDefaults(t *testing.T) {
	points := -20
	tests := []struct {
		name string
		goal *model.Goal
		want string
	}{
		{
			name: "all fields",
			goal: &model.Goal{
				Progress: &model.Progress{Completed: 3, Total: 4, Unit: model.UnitWeeks},
				Reward:   &model.Reward{Points: &points},
			},
			want: "Progress updated! You completed 3 of 4 weeks and earned -20 points.",
		},
		{
			name: "missing unit and reward",
			goal: &model.Goal{Progress: &model.Progress{Completed: 1, Total: 30}},
			want: "Progress updated! You completed 1 of 30 days and earned 0 points.",
		},
		{
			name: "reward without points",
			goal: &model.Goal{
				Progress: &model.Progress{Completed: 0, Total: 1, Unit: model.UnitGoal},
				Reward:   &model.Reward{Badge: "Starter"},
			},
			want: "Progress updated! You completed 0 of 1 goal and earned 0 points.",
		},
		{
			name: "no progress",
			goal: &model.Goal{},
			want: "Progress updated! You completed 0 of 0 days and earned 0 points.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.goal).message())
		})
	}
}

func TestToGoalResponseWithoutProgress(t *testing.T) {
	created := time.Date(2026, time.February, 3, 10, 0, 0, 0, time.FixedZone("BRT", -3*60*60))
	resp := toGoalResponse(&model.Goal{
		ID:        12,
		UserID:    "u",
		Title:     "Rest",
		Status:    model.GoalStatusActive,
		CreatedAt: created,
	})

	assert.Equal(t, "12", resp.ID)
	assert.Empty(t, resp.Message)
	assert.Nil(t, resp.Progress)
	assert.Nil(t, resp.Gamification.PointsEarned)
	assert.Equal(t, 1, resp.Gamification.UserLevel)
	assert.Equal(t, time.UTC, resp.CreatedAt.Location())
	assert.True(t, created.Equal(resp.CreatedAt))
	assert.Equal(t, 13, resp.CreatedAt.Hour())
}

func TestToGoalEmptyEnumsStayUnset(t *testing.T) {
	req := &GoalRequest{UserID: "u", Title: "Walk"}

	goal, err := req.toGoal()
	require.NoError(t, err)
	assert.Empty(t, goal.Category)
	assert.Empty(t, goal.Type)
	assert.Empty(t, goal.Difficulty)
	assert.Empty(t, goal.Status)
	assert.Nil(t, goal.StartDate)
	assert.Nil(t, goal.Progress)
}

func TestToGoalRejectsUnknownEnum(t *testing.T) {
	req := &GoalRequest{UserID: "u", Title: "Walk", Category: "physical_health"}

	_, err := req.toGoal()
	assert.True(t, errors.Is(err, model.ErrInvalidEnumValue))
	assert.Contains(t, err.Error(), `category "physical_health"`)
}
