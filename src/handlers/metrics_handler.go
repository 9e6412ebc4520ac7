package handlers

import (
	"fmt"
	"net/http"

	"subtrack/src/db"
	sqldb "subtrack/src/db/sql"
	"subtrack/src/models"
	"subtrack/src/util"

	"go.uber.org/zap"
)

func GetMetrics(pool sqldb.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cacheKey := fmt.Sprintf("%s:%s", db.MetricsCache, today().Format(util.DateLayout))
		if cached, found := db.GetCache(cacheKey); found {
			if metrics, ok := cached.(*models.MetricsSummary); ok {
				writeJSON(w, http.StatusOK, metrics)
				return
			}
		}

		version := db.CacheVersion(db.MetricsCache)
		metrics, err := sqldb.GetMetrics(r.Context(), pool)
		if err != nil {
			zap.L().Error("failed to compute metrics", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "failed to compute metrics")
			return
		}
		db.SetCache(db.MetricsCache, cacheKey, metrics, version)
		writeJSON(w, http.StatusOK, metrics)
	}
}

func GetRenewals(pool sqldb.Querier, horizonDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := today()
		cacheKey := fmt.Sprintf("%s:%s:%d", db.RenewalsCache, day.Format(util.DateLayout), horizonDays)
		if cached, found := db.GetCache(cacheKey); found {
			if renewals, ok := cached.([]models.RenewalEntry); ok {
				writeJSON(w, http.StatusOK, renewals)
				return
			}
		}

		version := db.CacheVersion(db.RenewalsCache)
		renewals, err := sqldb.GetUpcomingRenewals(r.Context(), pool, day, horizonDays)
		if err != nil {
			zap.L().Error("failed to list renewals", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "failed to list renewals")
			return
		}
		if renewals == nil {
			renewals = []models.RenewalEntry{}
		}
		db.SetCache(db.RenewalsCache, cacheKey, renewals, version)
		writeJSON(w, http.StatusOK, renewals)
	}
}
