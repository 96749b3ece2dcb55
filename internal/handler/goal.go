package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/checkhealth/goals/internal/model"
	"github.com/checkhealth/goals/internal/repository"
	"github.com/checkhealth/goals/internal/service"
)

const maxBodyBytes = 1 << 20

var errInvalidGoalID = errors.New("invalid goal id")

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.validateCreate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	skeleton, err := req.toGoal()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.goalService.Create(r.Context(), skeleton)
	if err != nil {
		slog.Error("failed to create goal", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	writeJSON(w, http.StatusCreated, toGoalResponse(goal))
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseGoalFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goals, err := h.goalService.Goals(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list goals", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load goals")
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponses(goals))
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goalID, err := goalIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, found, err := h.goalService.Find(r.Context(), goalID)
	if err != nil {
		slog.Error("failed to get goal", "error", err, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to load goal")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, repository.ErrGoalNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	goalID, err := goalIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req GoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.validateUpdate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	changes, err := req.toGoal()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.goalService.Update(r.Context(), goalID, changes)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update goal", goalID)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID, err := goalIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.goalService.Delete(r.Context(), goalID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to delete goal", goalID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	goalID, err := goalIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Increment == nil {
		writeError(w, http.StatusBadRequest, "increment is required")
		return
	}

	goal, err := h.goalService.UpdateProgress(r.Context(), goalID, *req.Increment)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update progress", goalID)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (h *GoalHandler) writeServiceError(w http.ResponseWriter, err error, msg string, goalID int64) {
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, repository.ErrGoalNotFound.Error())
		return
	}

	slog.Error(msg, "error", err, "goal_id", goalID)
	writeError(w, http.StatusInternalServerError, msg)
}

func goalIDFromPath(r *http.Request) (int64, error) {
	goalID, err := strconv.ParseInt(r.PathValue("goal_id"), 10, 64)
	if err != nil {
		return 0, errInvalidGoalID
	}
	return goalID, nil
}

func parseGoalFilter(r *http.Request) (service.GoalFilter, error) {
	query := r.URL.Query()
	filter := service.GoalFilter{UserID: query.Get("userId")}

	var err error
	if s := query.Get("status"); s != "" {
		if filter.Status, err = model.ParseGoalStatus(s); err != nil {
			return filter, err
		}
	}
	if c := query.Get("category"); c != "" {
		if filter.Category, err = model.ParseCategory(c); err != nil {
			return filter, err
		}
	}
	if filter.StartFrom, err = parseDate("startFrom", query.Get("startFrom")); err != nil {
		return filter, err
	}
	if filter.StartTo, err = parseDate("startTo", query.Get("startTo")); err != nil {
		return filter, err
	}

	return filter, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
