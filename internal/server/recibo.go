package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/estudioandino/cobranza/internal/recibo"
	"github.com/gin-gonic/gin"
)

func (s *Server) descargarRecibo(c *gin.Context) {
	pagoID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pago invalido"})
		return
	}

	emitido, err := s.reciboSvc.EmitirRecibo(c.Request.Context(), pagoID)
	if err != nil {
		switch {
		case errors.Is(err, recibo.ErrPagoNoEncontrado):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, recibo.ErrPagoNoConfirmado):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el recibo"})
		}
		return
	}

	doc, err := io.ReadAll(emitido.PDF)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo leer el recibo"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="recibo-`+emitido.Numero+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
