package server

import (
	"net/http"

	clasificaciondomain "github.com/estudioandino/cobranza/internal/clasificacion/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) previewClasificacion(c *gin.Context) {
	resultados, err := s.clasificacionSvc.ComputeClassifications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo calcular la clasificacion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resultados": resultados})
}

type aplicarClasificacionRequest struct {
	UsuarioID *int64 `json:"usuario_id"`
}

func (s *Server) aplicarClasificacion(c *gin.Context) {
	var req aplicarClasificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo invalido"})
		return
	}

	resultados, err := s.clasificacionSvc.ComputeClassifications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo calcular la clasificacion"})
		return
	}

	var cambios []clasificaciondomain.ResultadoClasificacion
	for _, resultado := range resultados {
		if resultado.RequiereCambio {
			cambios = append(cambios, resultado)
		}
	}

	if err := s.clasificacionSvc.ApplyChanges(c.Request.Context(), cambios, req.UsuarioID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "algunos cambios no se aplicaron",
			"aplicados": len(cambios),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"aplicados": len(cambios)})
}
