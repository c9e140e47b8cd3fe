package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/formcoach/internal/analysis/pose"
	"github.com/2beens/formcoach/internal/analysis/segment"
	"github.com/2beens/formcoach/internal/telemetry/metrics"
	"github.com/2beens/formcoach/internal/telemetry/tracing"
	"github.com/2beens/formcoach/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=analysis_mocks_test.go -package=analysis_test

type formAnalyzer interface {
	Analyze(ctx context.Context, frames []pose.Frame) (*Result, error)
	Phases() []segment.PhaseName
}

type AnalyzeRequest struct {
	Frames []pose.Frame `json:"frames"`
}

type ExerciseInfo struct {
	Exercise Exercise            `json:"exercise"`
	Phases   []segment.PhaseName `json:"phases"`
}

type ListExercisesResponse struct {
	Exercises []ExerciseInfo `json:"exercises"`
}

type HandlerParams struct {
	MetricsManager  *metrics.Manager
	CacheSizeMb     int
	CacheExpireSecs int
}

type Handler struct {
	analyzers      map[Exercise]formAnalyzer
	cache          *resultsCache
	metricsManager *metrics.Manager
}

func NewHandler(params HandlerParams) *Handler {
	return NewHandlerWithAnalyzers(
		params,
		NewSquatAnalyzer(),
		NewDeadliftAnalyzer(),
		NewPushUpAnalyzer(),
	)
}

func NewHandlerWithAnalyzers(
	params HandlerParams,
	squat, deadlift, pushUp formAnalyzer,
) *Handler {
	return &Handler{
		analyzers: map[Exercise]formAnalyzer{
			ExerciseSquat:    squat,
			ExerciseDeadlift: deadlift,
			ExercisePushUp:   pushUp,
		},
		cache:          newResultsCache(params.CacheSizeMb, params.CacheExpireSecs),
		metricsManager: params.MetricsManager,
	}
}

func (handler *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.analyze")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	exercise, err := ParseExercise(vars["exercise"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	analyzer, ok := handler.analyzers[exercise]
	if !ok {
		http.Error(w, "exercise not supported", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("analyze %s, read request body: %s", exercise, err)
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	if cached, ok := handler.cache.get(exercise, body); ok {
		log.Tracef("analyze %s: serving cached result", exercise)
		handler.metricsManager.CounterAnalysisCacheHits.Inc()
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	var req AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Tracef("analyze %s, unmarshal json params: %s", exercise, err)
		http.Error(w, "invalid analyze request", http.StatusBadRequest)
		return
	}

	analysisStart := time.Now()
	result, err := analyzer.Analyze(ctx, req.Frames)
	if err != nil {
		handler.countAnalysis(exercise, "error")
		var incompleteErr *pose.IncompleteLandmarksError
		if errors.Is(err, pose.ErrEmptyInput) || errors.As(err, &incompleteErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("analyze %s: %s", exercise, err)
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}
	handler.metricsManager.HistAnalysisDuration.Observe(time.Since(analysisStart).Seconds())
	handler.countAnalysis(exercise, "ok")

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("analyze %s, marshal result: %s", exercise, err)
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	handler.cache.set(exercise, body, resultJson)

	log.Debugf(
		"analyzed %s: %d frames, score %d, %d reps",
		exercise, len(req.Frames), result.Score, result.RepCount,
	)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resultJson)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.listExercises")
	defer span.End()

	resp := ListExercisesResponse{}
	for _, exercise := range Exercises() {
		analyzer, ok := handler.analyzers[exercise]
		if !ok {
			continue
		}
		resp.Exercises = append(resp.Exercises, ExerciseInfo{
			Exercise: exercise,
			Phases:   analyzer.Phases(),
		})
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("list exercises, marshal response: %s", err)
		http.Error(w, "failed to list exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) countAnalysis(exercise Exercise, status string) {
	handler.metricsManager.CounterAnalyses.With(prometheus.Labels{
		"exercise": string(exercise),
		"status":   status,
	}).Inc()
}
