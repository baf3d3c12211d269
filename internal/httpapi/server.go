package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agentd/internal/agent"
	"agentd/internal/tasks"
	"agentd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Ready() bool
	Execute(ctx context.Context, input string) (string, error)
	ExecuteAsync(input string) string
	TaskStatus(id string) (tasks.Snapshot, bool)
	ScheduleTaskCleanup(id string)
}

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts returns a context that is canceled when either a or b is done.
// The returned cancel func must be called to release the goroutine when handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
			cancel()
		case <-b.Done():
			cancel()
		}
	}()
	return ctx, cancel
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.RootResponse{Status: "ok", Message: "agentd is running"}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/mcp/execute", func(w http.ResponseWriter, r *http.Request) { handleExecute(svc, w, r) })
		r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) { handleTaskStatus(svc, w, r) })
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Swagger UI
	MountSwagger(r)

	return r
}

func handleExecute(svc Service, w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeJSONError(w, http.StatusBadRequest, "INPUT is required")
		return
	}
	if !svc.Ready() {
		writeJSONError(w, http.StatusServiceUnavailable, "agent backend is not ready yet, try again later")
		return
	}
	countExecute(req.Polling)

	lvl := requestLogLevel(r)
	start := time.Now()
	if lvl >= LevelInfo {
		if zlog != nil {
			z := zlog.Info().Str("path", r.URL.Path).Bool("polling", req.Polling)
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("execute start")
		} else {
			log.Printf("execute start path=%s polling=%v", r.URL.Path, req.Polling)
		}
	}

	if req.Polling {
		id := svc.ExecuteAsync(req.Input)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(types.TaskCreationResponse{TaskID: id})
		logExecuteEnd(r, lvl, http.StatusAccepted, start, nil)
		return
	}

	// Join server base context with request context so shutdown cancels work too.
	joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	out, err := svc.Execute(joinedCtx, req.Input)
	if err != nil {
		// If context was canceled (client disconnect), just return.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status := http.StatusInternalServerError
		if agent.IsNotReady(err) {
			status = http.StatusServiceUnavailable
		} else if he, ok := err.(HTTPError); ok {
			status = he.StatusCode()
		}
		writeJSONError(w, status, err.Error())
		logExecuteEnd(r, lvl, status, start, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.FinalOutput{Output: out})
	logExecuteEnd(r, lvl, http.StatusOK, start, nil)
}

func handleTaskStatus(svc Service, w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, ok := svc.TaskStatus(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "task id does not exist or has expired")
		return
	}
	resp := types.TaskStatusResponse{TaskID: id, Status: string(snap.Status), Result: snap.Result}
	switch snap.Status {
	case tasks.StatusCompleted:
		// Keep the result cached for late pollers; cleanup happens later.
		svc.ScheduleTaskCleanup(id)
	case tasks.StatusFailed:
		resp.Result = map[string]any{"error": snap.Err}
		svc.ScheduleTaskCleanup(id)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func logExecuteEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("execute end")
		return
	}
	if err != nil {
		log.Printf("execute end status=%d dur=%s err=%v", status, time.Since(start), err)
		return
	}
	log.Printf("execute end status=%d dur=%s", status, time.Since(start))
}
