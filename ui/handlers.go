package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"doegen/app"
	"doegen/domain/design"
	"doegen/internal/config"
	"doegen/internal/errors"
	"doegen/ports"

	"github.com/gin-gonic/gin"
)

// pageData is shared by the index, DOE and LHS pages
type pageData struct {
	Title  string
	Mode   string
	Help   template.HTML
	Error  string
	Notice string

	DOE      *doeForm
	LHS      *lhsForm
	Samplers []string
	Limits   config.LHSConfig

	Run     *app.DesignRun
	Preview [][]string
	Hidden  int
	Summary *app.TableSummary
	Query   template.URL
	Formats []string
}

func (s *Server) newPage(mode design.Mode) *pageData {
	title := "Design table generator"
	if mode != "" {
		title = mode.Label() + " | " + title
	}
	return &pageData{
		Title:    title,
		Mode:     string(mode),
		Help:     s.help,
		Samplers: s.design.SamplerNames(),
		Limits:   s.limits,
		Formats:  []string{"csv", "xlsx"},
	}
}

// attachRun fills the result part of a page
func (s *Server) attachRun(data *pageData, run *app.DesignRun, query template.URL) {
	data.Run = run
	data.Query = query
	data.Preview = run.Table.Head(s.preview)
	data.Hidden = run.Table.Len() - len(data.Preview)
	if run.Table.Numeric() {
		data.Summary = app.Summarize(run.Table)
	}
}

func formValues(c *gin.Context) (url.Values, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("unreadable form: %v", err))
	}
	return c.Request.Form, nil
}

// handleIndex serves the landing page; ?mode=doe|lhs forwards to that form
func (s *Server) handleIndex(c *gin.Context) {
	switch c.Query("mode") {
	case string(design.ModeDOE):
		c.Redirect(http.StatusSeeOther, "/doe")
		return
	case string(design.ModeLHS):
		c.Redirect(http.StatusSeeOther, "/lhs")
		return
	}
	s.renderTemplate(c, http.StatusOK, "index.html", s.newPage(""))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"samplers": s.design.SamplerNames(),
	})
}

// handleDOE serves both steps of the DOE form and generates on POST once
// values have been entered
func (s *Server) handleDOE(c *gin.Context) {
	data := s.newPage(design.ModeDOE)
	data.DOE = &doeForm{}

	values, err := formValues(c)
	if err != nil {
		s.renderFormError(c, "doe.html", data, err)
		return
	}
	form, err := parseDOEForm(values)
	data.DOE = form
	if err != nil {
		s.renderFormError(c, "doe.html", data, err)
		return
	}
	if c.Request.Method != http.MethodPost || !form.Started() {
		if len(form.Names) > 0 {
			data.Notice = "Enter the values of each factor."
		}
		s.renderTemplate(c, http.StatusOK, "doe.html", data)
		return
	}

	factors, err := form.Factors()
	if err != nil {
		s.renderFormError(c, "doe.html", data, err)
		return
	}
	run, err := s.design.GenerateDOE(c.Request.Context(), app.DOERequest{Factors: factors})
	if err != nil {
		s.renderFormError(c, "doe.html", data, err)
		return
	}
	s.attachRun(data, run, form.Query())
	s.renderTemplate(c, http.StatusOK, "doe.html", data)
}

// handleLHS serves the LHS form and generates on POST. Generated runs are
// archived when an output directory is configured.
func (s *Server) handleLHS(c *gin.Context) {
	data := s.newPage(design.ModeLHS)
	data.LHS = &lhsForm{Samples: s.limits.DefaultSamples, Seed: s.limits.Seed, Sampler: s.limits.Sampler}

	values, err := formValues(c)
	if err != nil {
		s.renderFormError(c, "lhs.html", data, err)
		return
	}
	form, err := parseLHSForm(values, s.limits)
	data.LHS = form
	if err != nil {
		s.renderFormError(c, "lhs.html", data, err)
		return
	}
	if c.Request.Method != http.MethodPost || !form.Started() {
		if len(form.Names) > 0 {
			data.Notice = "Enter the lower and upper limit of each factor."
		}
		s.renderTemplate(c, http.StatusOK, "lhs.html", data)
		return
	}

	run, err := s.generateLHS(c, form)
	if err != nil {
		s.renderFormError(c, "lhs.html", data, err)
		return
	}
	if written, err := s.design.Archive(c.Request.Context(), run); err != nil {
		s.logger.Warn("archive of run %s failed: %v", run.ID, err)
		data.Notice = "The run could not be archived: " + err.Error()
	} else if len(written) > 0 {
		data.Notice = fmt.Sprintf("Saved %s.csv", run.ArchiveBase)
	}
	s.attachRun(data, run, form.Query())
	s.renderTemplate(c, http.StatusOK, "lhs.html", data)
}

func (s *Server) generateLHS(c *gin.Context, form *lhsForm) (*app.DesignRun, error) {
	factors, err := form.Factors()
	if err != nil {
		return nil, err
	}
	seed := form.Seed
	return s.design.GenerateLHS(c.Request.Context(), app.LHSRequest{
		Factors: factors,
		Samples: form.Samples,
		Seed:    &seed,
		Sampler: form.Sampler,
	})
}

// lhsFromQuery regenerates the run a download or plot link describes
func (s *Server) lhsFromQuery(c *gin.Context) (*app.DesignRun, error) {
	form, err := parseLHSForm(c.Request.URL.Query(), s.limits)
	if err != nil {
		return nil, err
	}
	return s.generateLHS(c, form)
}

func (s *Server) handleDOEDownload(c *gin.Context) {
	form, err := parseDOEForm(c.Request.URL.Query())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	factors, err := form.Factors()
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	run, err := s.design.GenerateDOE(c.Request.Context(), app.DOERequest{Factors: factors})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.sendTable(c, run)
}

func (s *Server) handleLHSDownload(c *gin.Context) {
	run, err := s.lhsFromQuery(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.sendTable(c, run)
}

// sendTable exports the run in the requested format as an attachment
func (s *Server) sendTable(c *gin.Context, run *app.DesignRun) {
	format := c.DefaultQuery("format", "csv")
	exporter, ok := s.exporters[format]
	if !ok {
		s.abortWithError(c, errors.InvalidInput(fmt.Sprintf("unknown format %q", format)))
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, run.Table); err != nil {
		s.abortWithError(c, errors.ExportFailed(format, err))
		return
	}

	filename := run.FileBase + exporter.Extension()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, exporter.ContentType(), buf.Bytes())
}

func (s *Server) handlePairPlot(c *gin.Context) {
	s.sendPlot(c, s.pairplot)
}

func (s *Server) handleChart(c *gin.Context) {
	s.sendPlot(c, s.chart)
}

// sendPlot renders the scatter matrix of the queried run, titled with the
// run's archive name
func (s *Server) sendPlot(c *gin.Context, plotter ports.MatrixPlotter) {
	run, err := s.lhsFromQuery(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := plotter.Render(&buf, run.Table, run.ArchiveBase); err != nil {
		s.abortWithError(c, errors.Wrap(err, "failed to render scatter matrix"))
		return
	}
	c.Data(http.StatusOK, plotter.ContentType(), buf.Bytes())
}
