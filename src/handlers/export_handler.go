package handlers

import (
	"bytes"
	"net/http"

	sqldb "subtrack/src/db/sql"
	"subtrack/src/export"
	"subtrack/src/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExportSubscriptions streams the insights workbook as an attachment.
func ExportSubscriptions(pool sqldb.Querier, horizonDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := today()
		report := export.Report{GeneratedAt: now(), HorizonDays: horizonDays}

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			report.Metrics, err = sqldb.GetMetrics(ctx, pool)
			return err
		})
		g.Go(func() error {
			var err error
			report.Subscriptions, err = sqldb.GetAllSubscriptions(ctx, pool, day)
			return err
		})
		g.Go(func() error {
			var err error
			report.Renewals, err = sqldb.GetUpcomingRenewals(ctx, pool, day, horizonDays)
			return err
		})
		if err := g.Wait(); err != nil {
			zap.L().Error("failed to load export data", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "failed to export subscriptions")
			return
		}
		if report.Renewals == nil {
			report.Renewals = []models.RenewalEntry{}
		}

		// Buffer so a build failure can still be reported as JSON.
		var buf bytes.Buffer
		if err := export.Write(&buf, report); err != nil {
			zap.L().Error("failed to build workbook", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "failed to export subscriptions")
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			zap.L().Warn("failed to send workbook", zap.Error(err))
		}
	}
}
