package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/checkhealth/goals/internal/model"
	"github.com/checkhealth/goals/internal/repository"
	"github.com/checkhealth/goals/internal/validation"
)

type FrequencyJSON struct {
	Periodicity    string `json:"periodicity"`
	TimesPerPeriod int    `json:"timesPerPeriod"`
}

type RewardJSON struct {
	Points *int   `json:"points"`
	Badge  string `json:"badge,omitempty"`
}

type ProgressJSON struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Unit      string `json:"unit"`
}

// GoalRequest is the body of create and update calls.
// Progress is only honored on create.
type GoalRequest struct {
	UserID        string         `json:"userId"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	Type          string         `json:"type"`
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate"`
	Frequency     *FrequencyJSON `json:"frequency"`
	Difficulty    string         `json:"difficulty"`
	Reward        *RewardJSON    `json:"reward"`
	Status        string         `json:"status"`
	Notifications *bool          `json:"notifications"`
	Progress      *ProgressJSON  `json:"progress"`
}

type ProgressRequest struct {
	Increment *int `json:"increment"`
}

type GamificationJSON struct {
	PointsEarned *int   `json:"pointsEarned"`
	Badge        string `json:"badge,omitempty"`
	UserLevel    int    `json:"userLevel"`
}

type GoalResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	Type          string           `json:"type,omitempty"`
	StartDate     string           `json:"startDate,omitempty"`
	EndDate       string           `json:"endDate,omitempty"`
	Frequency     *FrequencyJSON   `json:"frequency,omitempty"`
	Difficulty    string           `json:"difficulty,omitempty"`
	Reward        *RewardJSON      `json:"reward,omitempty"`
	Status        string           `json:"status"`
	Notifications *bool            `json:"notifications,omitempty"`
	Progress      *ProgressJSON    `json:"progress,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	Gamification  GamificationJSON `json:"gamification"`
	Message       string           `json:"message,omitempty"`
}

// userLevel is fixed until levels are derived from accumulated points.
const userLevel = 1

const progressMessage = "Progress updated! You completed %d of %d %s and earned %d points."

// progressSummary holds the values of the progress message.
// defaultSummary supplies every value the goal leaves unset.
type progressSummary struct {
	Completed int
	Total     int
	Unit      string
	Points    int
}

var defaultSummary = progressSummary{Unit: model.UnitDays}

func summarize(g *model.Goal) progressSummary {
	s := defaultSummary
	if g.Progress != nil {
		s.Completed = g.Progress.Completed
		s.Total = g.Progress.Total
		if g.Progress.Unit != "" {
			s.Unit = g.Progress.Unit
		}
	}
	if g.Reward != nil && g.Reward.Points != nil {
		s.Points = *g.Reward.Points
	}
	return s
}

func (s progressSummary) message() string {
	return fmt.Sprintf(progressMessage, s.Completed, s.Total, s.Unit, s.Points)
}

// validateCreate checks the fields required for a new goal.
func (req *GoalRequest) validateCreate() error {
	if err := validation.ValidateUserID(req.UserID); err != nil {
		return err
	}
	return req.validateUpdate()
}

func (req *GoalRequest) validateUpdate() error {
	if err := validation.ValidateTitle(req.Title); err != nil {
		return err
	}
	return validation.ValidateDescription(req.Description)
}

// toGoal maps a request onto a goal skeleton. Unknown enum strings are
// rejected with model.ErrInvalidEnumValue; empty strings leave the field unset.
func (req *GoalRequest) toGoal() (*model.Goal, error) {
	goal := &model.Goal{
		UserID:        req.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Notifications: req.Notifications,
	}

	var err error
	if req.Category != "" {
		if goal.Category, err = model.ParseCategory(req.Category); err != nil {
			return nil, err
		}
	}
	if req.Type != "" {
		if goal.Type, err = model.ParseGoalType(req.Type); err != nil {
			return nil, err
		}
	}
	if req.Difficulty != "" {
		if goal.Difficulty, err = model.ParseDifficulty(req.Difficulty); err != nil {
			return nil, err
		}
	}
	if req.Status != "" {
		if goal.Status, err = model.ParseGoalStatus(req.Status); err != nil {
			return nil, err
		}
	}

	if goal.StartDate, err = parseDate("startDate", req.StartDate); err != nil {
		return nil, err
	}
	if goal.EndDate, err = parseDate("endDate", req.EndDate); err != nil {
		return nil, err
	}

	if req.Frequency != nil {
		goal.Frequency = &model.Frequency{
			Periodicity:    req.Frequency.Periodicity,
			TimesPerPeriod: req.Frequency.TimesPerPeriod,
		}
	}
	if req.Reward != nil {
		goal.Reward = &model.Reward{
			Points: req.Reward.Points,
			Badge:  req.Reward.Badge,
		}
	}
	if req.Progress != nil {
		goal.Progress = &model.Progress{
			Completed: req.Progress.Completed,
			Total:     req.Progress.Total,
			Unit:      req.Progress.Unit,
		}
	}

	return goal, nil
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(repository.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(repository.DateLayout)
}

func toGoalResponse(g *model.Goal) GoalResponse {
	resp := GoalResponse{
		ID:            strconv.FormatInt(g.ID, 10),
		UserID:        g.UserID,
		Title:         g.Title,
		Description:   g.Description,
		Category:      g.Category.String(),
		Type:          g.Type.String(),
		StartDate:     formatDate(g.StartDate),
		EndDate:       formatDate(g.EndDate),
		Difficulty:    g.Difficulty.String(),
		Status:        g.Status.String(),
		Notifications: g.Notifications,
		CreatedAt:     g.CreatedAt.UTC(),
		Gamification:  GamificationJSON{UserLevel: userLevel},
	}

	if g.Frequency != nil {
		resp.Frequency = &FrequencyJSON{
			Periodicity:    g.Frequency.Periodicity,
			TimesPerPeriod: g.Frequency.TimesPerPeriod,
		}
	}
	if g.Reward != nil {
		resp.Reward = &RewardJSON{Points: g.Reward.Points, Badge: g.Reward.Badge}
		resp.Gamification.PointsEarned = g.Reward.Points
		resp.Gamification.Badge = g.Reward.Badge
	}
	if g.Progress != nil {
		resp.Progress = &ProgressJSON{
			Completed: g.Progress.Completed,
			Total:     g.Progress.Total,
			Unit:      g.Progress.Unit,
		}
		resp.Message = summarize(g).message()
	}

	return resp
}

func toGoalResponses(goals []*model.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return out
}
