package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/launchpad/internal/domain/launch"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/logging"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/monitoring"
)

// Observable is anything reporting launch progress
type Observable interface {
	Progress() launch.Progress
}

// StatusServer exposes read-only launch progress and metrics over HTTP
type StatusServer struct {
	router  *gin.Engine
	logger  *logging.Logger
	metrics *monitoring.Metrics

	mu       sync.RWMutex
	attempts map[string]Observable
}

// AttemptStatus is one entry of the status listing
type AttemptStatus struct {
	ID string `json:"id"`
	launch.Progress
}

// NewStatusServer creates the router. development keeps gin in debug mode.
func NewStatusServer(logger *logging.Logger, metrics *monitoring.Metrics, development bool) *StatusServer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics(nil)
	}

	if !development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))

	s := &StatusServer{
		router:   router,
		logger:   logger,
		metrics:  metrics,
		attempts: make(map[string]Observable),
	}

	// Register routes
	router.GET("/health", s.health)
	router.GET("/status", s.listStatus)
	router.GET("/status/:id", s.getStatus)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return s
}

// Router returns the underlying engine
func (s *StatusServer) Router() *gin.Engine {
	return s.router
}

// Track publishes an attempt under attemptID
func (s *StatusServer) Track(attemptID string, o Observable) {
	s.mu.Lock()
	s.attempts[attemptID] = o
	s.mu.Unlock()
}

// Untrack stops publishing an attempt
func (s *StatusServer) Untrack(attemptID string) {
	s.mu.Lock()
	delete(s.attempts, attemptID)
	s.mu.Unlock()
}

func (s *StatusServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"metrics": s.metrics.GetSnapshot(),
	})
}

func (s *StatusServer) listStatus(c *gin.Context) {
	s.mu.RLock()
	list := make([]AttemptStatus, 0, len(s.attempts))
	for id, o := range s.attempts {
		list = append(list, AttemptStatus{ID: id, Progress: o.Progress()})
	}
	s.mu.RUnlock()

	// attempt ids are ULIDs, so this is creation order
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	c.JSON(http.StatusOK, gin.H{"attempts": list, "count": len(list)})
}

func (s *StatusServer) getStatus(c *gin.Context) {
	id := c.Param("id")

	s.mu.RLock()
	o, ok := s.attempts[id]
	s.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		return
	}
	c.JSON(http.StatusOK, AttemptStatus{ID: id, Progress: o.Progress()})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *StatusServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting status server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down status server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
