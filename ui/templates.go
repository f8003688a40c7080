package ui

import (
	"bytes"
	"log"
	"strings"

	"doegen/internal/errors"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// Render to a buffer first so a template error never leaves half a page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		log.Printf("Template data type: %T", data)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	if !strings.Contains(buf.String(), "</html>") {
		log.Printf("WARNING: Rendered template %s appears truncated - missing </html> tag", templateName)
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// renderFormError shows err on the form page with the status it maps to
func (s *Server) renderFormError(c *gin.Context, templateName string, data *pageData, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("%s: %v", c.Request.URL.Path, err)
	}
	data.Error = err.Error()
	s.renderTemplate(c, status, templateName, data)
}

// abortWithError answers non-page routes (downloads, plots) with JSON
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("%s: %v", c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
