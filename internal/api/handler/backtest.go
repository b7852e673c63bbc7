package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"hindsight/internal/api/job"
	"hindsight/internal/api/response"
	"hindsight/internal/backtest"
	"hindsight/internal/collector"
	"hindsight/internal/core"
	"hindsight/internal/metrics"
	"hindsight/internal/storage/archive"
	"hindsight/internal/strategy"
)

// BacktestRequest is the request body for starting a backtest.
// Either period or an explicit start/end pair must be given.
type BacktestRequest struct {
	Symbol   string         `json:"symbol"`
	Strategy string         `json:"strategy"`
	Period   string         `json:"period,omitempty"`
	Start    string         `json:"start,omitempty"`
	End      string         `json:"end,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// BacktestHandler handles backtest API requests.
type BacktestHandler struct {
	jobs     *job.Store
	registry *strategy.Registry
	provider collector.HistoryProvider
	reports  *archive.Reports
	metrics  *metrics.Registry
	logger   *zap.Logger
	timeout  time.Duration
}

// NewBacktestHandler creates a new backtest handler. The reports archive
// and metrics registry are optional and may be nil.
func NewBacktestHandler(
	jobs *job.Store,
	registry *strategy.Registry,
	provider collector.HistoryProvider,
	reports *archive.Reports,
	reg *metrics.Registry,
	logger *zap.Logger,
	timeout time.Duration,
) *BacktestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BacktestHandler{
		jobs:     jobs,
		registry: registry,
		provider: provider,
		reports:  reports,
		metrics:  reg,
		logger:   logger,
		timeout:  timeout,
	}
}

// Create starts a new backtest job.
func (h *BacktestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		werr := core.WrapError(core.ErrConfigInvalid, err)
		response.Error(w, response.StatusFor(werr), werr)
		return
	}

	if req.Symbol == "" || req.Strategy == "" {
		werr := core.WrapError(core.ErrConfigMissing, fmt.Errorf("symbol and strategy are required"))
		response.Error(w, response.StatusFor(werr), werr)
		return
	}

	start, end, err := resolveRange(req)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	src, err := h.registry.Get(req.Strategy)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	if err := src.Init(strategy.Config{Enabled: true, Params: req.Params}); err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	j := h.jobs.Create(req.Symbol, req.Strategy)
	jobID := j.ID

	go h.runBacktest(jobID, src, req.Symbol, start, end)

	response.JSON(w, http.StatusAccepted, map[string]any{
		"job_id": jobID,
		"status": j.Status,
	})
}

// resolveRange turns a period preset or explicit dates into a date range.
func resolveRange(req BacktestRequest) (time.Time, time.Time, error) {
	if req.Period != "" {
		start, end, ok := collector.PeriodRange(req.Period, time.Now().UTC())
		if !ok {
			return time.Time{}, time.Time{}, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown period: %s", req.Period))
		}
		return start, end, nil
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		return time.Time{}, time.Time{}, core.WrapError(core.ErrConfigInvalid, err)
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		return time.Time{}, time.Time{}, core.WrapError(core.ErrConfigInvalid, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("end must be after start"))
	}
	return start, end, nil
}

// runBacktest executes the backtest and updates job status.
func (h *BacktestHandler) runBacktest(
	jobID string,
	src strategy.Source,
	symbol string,
	start, end time.Time,
) {
	h.jobs.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusRunning
	})
	if h.metrics != nil {
		h.metrics.JobStarted()
		defer h.metrics.JobFinished()
	}

	started := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	report, err := h.execute(ctx, src, symbol, start, end)
	if h.metrics != nil {
		status := "completed"
		if err != nil {
			status = "failed"
		}
		h.metrics.RecordBacktest(src.Name(), status, time.Since(started).Seconds())
	}

	if err != nil {
		h.logger.Warn("backtest failed",
			zap.String("job_id", jobID),
			zap.String("symbol", symbol),
			zap.String("strategy", src.Name()),
			zap.Error(err),
		)
		h.jobs.Update(jobID, func(j *job.Job) {
			j.Status = job.StatusFailed
			j.Error = asCoreError(err)
		})
		return
	}

	if h.reports != nil {
		if key, aerr := h.reports.Save(ctx, src.Name(), report); aerr != nil {
			h.logger.Warn("archiving report failed", zap.String("job_id", jobID), zap.Error(aerr))
			if h.metrics != nil {
				h.metrics.RecordArchiveWrite(h.reports.Backend(), "error")
			}
		} else {
			h.logger.Debug("report archived", zap.String("key", key))
			if h.metrics != nil {
				h.metrics.RecordArchiveWrite(h.reports.Backend(), "ok")
			}
		}
	}

	h.jobs.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Result = report
	})
}

// execute fetches the price history and runs the simulation.
func (h *BacktestHandler) execute(
	ctx context.Context,
	src strategy.Source,
	symbol string,
	start, end time.Time,
) (*backtest.Report, error) {
	bars, err := h.provider.FetchDaily(ctx, symbol, start, end)
	if h.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		h.metrics.RecordFetch(h.provider.Name(), status)
	}
	if err != nil {
		return nil, err
	}

	engine, err := backtest.New(symbol, bars, src)
	if err != nil {
		return nil, err
	}
	report, err := engine.Run()
	if err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RecordTrades(report.NumTrades)
		for sig, n := range engine.SignalCounts() {
			h.metrics.RecordSignals(src.Name(), sig.String(), n)
		}
	}
	return report, nil
}

// GetStatus returns the status of a backtest job.
func (h *BacktestHandler) GetStatus(w http.ResponseWriter, r *http.Request, jobID string) {
	j, err := h.jobs.Get(jobID)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	resp := map[string]any{
		"job_id":   j.ID,
		"symbol":   j.Symbol,
		"strategy": j.Strategy,
		"status":   j.Status,
	}

	if j.Status == job.StatusComplete {
		resp["result"] = j.Result
	}
	if j.Status == job.StatusFailed && j.Error != nil {
		resp["error"] = map[string]string{
			"code":    j.Error.Code,
			"message": j.Error.Message,
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

func asCoreError(err error) *core.Error {
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		return coreErr
	}
	return core.WrapError(core.ErrCollectorFailed, err)
}
