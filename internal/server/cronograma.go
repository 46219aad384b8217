package server

import (
	"errors"
	"net/http"
	"strconv"

	cronogramadomain "github.com/estudioandino/cobranza/internal/cronograma/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) getCronograma(c *gin.Context) {
	anio, err := strconv.Atoi(c.Param("anio"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anio invalido"})
		return
	}
	digito, err := strconv.Atoi(c.Param("digito"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "digito invalido"})
		return
	}

	entradas, err := s.cronogramaSvc.ResolveVencimientos(c.Request.Context(), digito, anio)
	if err != nil {
		if errors.Is(err, cronogramadomain.ErrDigitoInvalido) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo resolver el cronograma"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vencimientos": entradas})
}
