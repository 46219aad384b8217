package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) ejecutarProceso(c *gin.Context) {
	resultado := s.procesoSvc.RunOnce(c.Request.Context())
	c.JSON(http.StatusOK, resultado)
}

func (s *Server) listLogsProceso(c *gin.Context) {
	limit := 30
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit invalido"})
			return
		}
		limit = parsed
	}

	logs, err := s.procesoRepo.ListLogs(c.Request.Context(), s.db, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron listar los logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
