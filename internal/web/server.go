// Package web exposes a read-only HTTP view of the task store.
//
// Every handler goes through the store's snapshot API, so the single
// store lock covers concurrent HTTP reads the same way it covers the
// sweeper and the interactive shell. There are no mutating routes:
// mutations stay with the CLI, which owns the write-through discipline.
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Loboguar4/TaskForge/internal/runlog"
	"github.com/Loboguar4/TaskForge/internal/store"
	"github.com/Loboguar4/TaskForge/internal/task"
)

// Server serves the read-only task API.
type Server struct {
	store  *store.Store
	runs   *runlog.Store
	router *gin.Engine
}

// NewServer wires the routes. runs may be nil when the run log is
// disabled; /api/runs then reports 404.
func NewServer(st *store.Store, runs *runlog.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		store:  st,
		runs:   runs,
		router: router,
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleTasks)
		api.GET("/tasks/:id", s.handleTask)
		api.GET("/pending", s.handlePending)
		api.GET("/completed", s.handleCompleted)
		api.GET("/search", s.handleSearch)
		api.GET("/runs", s.handleRuns)
	}

	return s
}

// Run starts the HTTP server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for callers that manage the http.Server
// themselves, e.g. for graceful shutdown or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// TaskSummary is the JSON shape of one task.
type TaskSummary struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Category            string     `json:"category,omitempty"`
	Description         string     `json:"description,omitempty"`
	Deadline            *time.Time `json:"deadline"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	LastElapsedSeconds  int64      `json:"last_elapsed_seconds"`
	TotalElapsedSeconds int64      `json:"total_elapsed_seconds"`
	TimerState          string     `json:"timer_state"`
	RunStartedAt        *time.Time `json:"run_started_at"`
}

func summarize(t task.Task) TaskSummary {
	return TaskSummary{
		ID:                  t.ID,
		Title:               t.Title,
		Category:            t.Category,
		Description:         t.Description,
		Deadline:            t.Deadline,
		Status:              string(t.Status),
		CreatedAt:           t.CreatedAt,
		CompletedAt:         t.CompletedAt,
		LastElapsedSeconds:  int64(t.LastElapsed.Seconds()),
		TotalElapsedSeconds: int64(t.TotalElapsed.Seconds()),
		TimerState:          string(t.TimerState),
		RunStartedAt:        t.RunStartedAt,
	}
}

func summarizeAll(tasks []task.Task) []TaskSummary {
	out := make([]TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, summarize(t))
	}
	return out
}
