package server

import (
	"net/http"
	"strings"

	zonedomain "github.com/coopaguas/facturador/internal/zone/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListZones(c *gin.Context) {
	zones, err := s.zoneSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, zones)
}

func (s *Server) GetZoneByID(c *gin.Context) {
	zone, err := s.zoneSvc.GetByID(c.Request.Context(), zonedomain.GetZoneRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, zone)
}
