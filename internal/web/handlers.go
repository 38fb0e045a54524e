package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tasks": summarizeAll(s.store.All()),
		"count": s.store.Len(),
	})
}

// handleTask resolves a full id or an unambiguous id prefix.
func (s *Server) handleTask(c *gin.Context) {
	id := c.Param("id")

	matches := s.store.FindByIDPrefix(id)
	switch len(matches) {
	case 0:
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case 1:
		c.JSON(http.StatusOK, summarize(matches[0]))
	default:
		c.JSON(http.StatusConflict, gin.H{
			"error":   "id prefix is ambiguous",
			"matches": summarizeAll(matches),
		})
	}
}

func (s *Server) handlePending(c *gin.Context) {
	tasks := s.store.ListPending()
	c.JSON(http.StatusOK, gin.H{
		"tasks": summarizeAll(tasks),
		"count": len(tasks),
	})
}

func (s *Server) handleCompleted(c *gin.Context) {
	tasks := s.store.ListCompleted()
	c.JSON(http.StatusOK, gin.H{
		"tasks": summarizeAll(tasks),
		"count": len(tasks),
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	results := s.store.Search(query)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": summarizeAll(results),
		"count":   len(results),
	})
}

func (s *Server) handleRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run log is disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := s.runs.RecentRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type runView struct {
		TaskID          string    `json:"task_id"`
		Title           string    `json:"title"`
		StartedAt       time.Time `json:"started_at"`
		EndedAt         time.Time `json:"ended_at"`
		DurationSeconds int64     `json:"duration_seconds"`
	}
	out := make([]runView, 0, len(runs))
	for _, r := range runs {
		out = append(out, runView{
			TaskID:          r.TaskID,
			Title:           r.Title,
			StartedAt:       r.StartedAt,
			EndedAt:         r.EndedAt,
			DurationSeconds: int64(r.Duration.Seconds()),
		})
	}

	c.JSON(http.StatusOK, gin.H{"runs": out, "count": len(out)})
}
