package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	extractdomain "github.com/mizanapp/mizan/internal/extract/domain"
	"github.com/mizanapp/mizan/internal/schema"
)

func (s *Server) CreateExtract(c *gin.Context) {
	var rec schema.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.extractSvc.Create(c.Request.Context(), rec)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListExtracts(c *gin.Context) {
	resp, err := s.extractSvc.List(c.Request.Context(), extractdomain.ListFilter{
		ProjectName:    strings.TrimSpace(c.Query("project_name")),
		ContractorName: strings.TrimSpace(c.Query("contractor_name")),
		Status:         strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetExtract(c *gin.Context) {
	resp, err := s.extractSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateExtract(c *gin.Context) {
	var rec schema.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.extractSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), rec)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteExtract(c *gin.Context) {
	if err := s.extractSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
