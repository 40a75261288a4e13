package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	assignmentdomain "github.com/mizanapp/mizan/internal/assignment/domain"
	"github.com/mizanapp/mizan/internal/schema"
)

func (s *Server) CreateAssignmentOrder(c *gin.Context) {
	var rec schema.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assignmentSvc.Create(c.Request.Context(), rec)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAssignmentOrders(c *gin.Context) {
	resp, err := s.assignmentSvc.List(c.Request.Context(), assignmentdomain.ListFilter{
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

func (s *Server) GetAssignmentOrder(c *gin.Context) {
	resp, err := s.assignmentSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAssignmentOrder(c *gin.Context) {
	var rec schema.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assignmentSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), rec)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAssignmentOrder(c *gin.Context) {
	if err := s.assignmentSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
