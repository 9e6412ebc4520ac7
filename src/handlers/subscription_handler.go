package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subtrack/src/db"
	sqldb "subtrack/src/db/sql"
	"subtrack/src/models"
	"subtrack/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const otherCategory = "Other"

func GetSubscriptions(pool sqldb.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := sqldb.GetAllSubscriptions(r.Context(), pool, today())
		if err != nil {
			zap.L().Error("failed to list subscriptions", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "failed to list subscriptions")
			return
		}
		if subs == nil {
			subs = []models.Subscription{}
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

func CreateSubscription(pool sqldb.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateSubscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			zap.L().Warn("failed to decode create subscription body", zap.Error(err))
			writeJSONError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := util.ValidateStruct(req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		category := strings.TrimSpace(req.Category)
		if category == otherCategory && strings.TrimSpace(req.CustomCategory) != "" {
			category = strings.TrimSpace(req.CustomCategory)
		}
		if category == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		cycle := req.BillingCycle
		if cycle == "" {
			cycle = util.CycleMonthly
		}
		start, _ := time.Parse(util.DateLayout, req.StartDate) // checked by isodate

		id, err := sqldb.CreateSubscription(r.Context(), pool, sqldb.NewSubscription{
			Name:         strings.TrimSpace(req.Name),
			Amount:       decimal.NewFromFloat(req.Amount),
			BillingCycle: cycle,
			Category:     category,
			StartDate:    start,
		})
		if err != nil {
			zap.L().Error("failed to create subscription", zap.String("name", req.Name), zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "failed to create subscription")
			return
		}
		db.ClearAllCaches()

		zap.L().Info("created subscription", zap.Int64("id", id), zap.String("category", category))
		writeJSON(w, http.StatusCreated, models.CreateSubscriptionResponse{
			ID:      id,
			Message: "Subscription added successfully",
		})
	}
}

func DeleteSubscription(pool sqldb.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid subscription id")
			return
		}

		err = sqldb.DeleteSubscription(r.Context(), pool, id)
		if errors.Is(err, sqldb.ErrSubscriptionNotFound) {
			writeJSONError(w, http.StatusNotFound, "subscription not found")
			return
		}
		if err != nil {
			zap.L().Error("failed to delete subscription", zap.Int64("id", id), zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "failed to delete subscription")
			return
		}
		db.ClearAllCaches()

		zap.L().Info("deleted subscription", zap.Int64("id", id))
		writeJSON(w, http.StatusOK, messageResponse{Message: "Subscription deleted successfully"})
	}
}
