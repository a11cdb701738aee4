package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunEscalations triggers one escalation pass on demand. External cron
// wiring stays thin: the endpoint runs the same pass the scheduler does
// and reports the tallies back.
func (s *Server) RunEscalations(c *gin.Context) {
	report, err := s.escalationSvc.Run(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
