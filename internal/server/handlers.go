package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/dataset"
	"github.com/arloliu/potency/errs"
	"github.com/arloliu/potency/format"
	"github.com/arloliu/potency/formula"
	"github.com/arloliu/potency/internal/logging"
	"github.com/arloliu/potency/report"
)

type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Field     string `json:"field,omitempty"`
	Group     string `json:"group,omitempty"`
	Row       int    `json:"row,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// fail writes err with its HTTP status. Messages are passed through verbatim.
func (s *Server) fail(c *gin.Context, status int, err error) {
	body := errorBody{
		Error:     err.Error(),
		Kind:      errs.Kind(err),
		RequestID: c.GetString(ctxRequestID),
	}

	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		body.Field, body.Group, body.Row = ve.Field, ve.Group, ve.Row
	}
	if status == http.StatusBadRequest || status == http.StatusRequestEntityTooLarge {
		body.Kind = "request"
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.LogAttrs(c.Request.Context(), level, "request failed",
		slog.String(logging.KeyRequestID, body.RequestID),
		slog.String(logging.KeyErrorKind, body.Kind),
		logging.Err(err),
	)

	c.AbortWithStatusJSON(status, body)
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errs.ErrInvalidOption):
		return http.StatusBadRequest
	case errs.Kind(err) != errs.KindInternal:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readObservations decodes the body as JSON or delimited text by Content-Type.
func (s *Server) readObservations(c *gin.Context) ([]assay.Observation, error) {
	var opts []dataset.Option
	if s.cfg.Analysis.IgnoreUnknownGroups || c.Query("ignore_unknown_groups") == "true" {
		opts = append(opts, dataset.WithIgnoreUnknownGroups())
	}

	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch mediaType {
	case "application/json":
		return dataset.ReadJSON(c.Request.Body, opts...)
	case "text/tab-separated-values":
		opts = append(opts, dataset.WithComma('\t'))
	}

	return dataset.Read(c.Request.Body, opts...)
}

func (s *Server) estimateOptions(c *gin.Context) ([]assay.Option, error) {
	tolerance := s.cfg.Analysis.SlopeTolerance
	if raw := c.Query("tolerance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: tolerance %q", errs.ErrInvalidOption, raw)
		}
		tolerance = v
	}

	return []assay.Option{assay.WithSlopeTolerance(tolerance)}, nil
}

// estimate runs the shared read, estimate and bookkeeping steps. On failure the
// response has already been written.
func (s *Server) estimate(c *gin.Context) ([]assay.Observation, *assay.Result, string, bool) {
	obs, err := s.readObservations(c)
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, errs.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.metrics.estimates.WithLabelValues(errs.Kind(err)).Inc()
		s.fail(c, status, err)

		return nil, nil, "", false
	}

	id := dataset.FingerprintHex(obs)
	etag := `"` + id + `"`
	c.Header("ETag", etag)

	opts, err := s.estimateOptions(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, nil, "", false
	}

	res, err := assay.Estimate(obs, opts...)
	if err != nil {
		s.metrics.estimates.WithLabelValues(errs.Kind(err)).Inc()
		s.fail(c, statusFor(err), err)

		return nil, nil, "", false
	}
	s.metrics.estimates.WithLabelValues(outcomeSuccess).Inc()

	s.logger.Debug("estimated",
		slog.String(logging.KeyDatasetID, id),
		slog.String(logging.KeyRequestID, c.GetString(ctxRequestID)),
		slog.Float64("relative_potency", res.RelativePotency),
	)

	return obs, res, id, true
}

func (s *Server) handleEstimate(c *gin.Context) {
	rf, err := format.ParseReportFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	_, res, id, ok := s.estimate(c)
	if !ok {
		return
	}
	if match := c.GetHeader("If-None-Match"); match != "" && strings.Trim(match, `"`) == id {
		c.Status(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, res, rf, report.WithDatasetID(id)); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, rf.ContentType(), buf.Bytes())
}

func (s *Server) handlePlot(c *gin.Context) {
	img := s.cfg.ImageFormat()
	if raw := c.Query("image"); raw != "" {
		var err error
		if img, err = format.ParseImageFormat(raw); err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
	}

	obs, res, _, ok := s.estimate(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.PlotDoseResponse(&buf, obs, res, img); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, img.ContentType(), buf.Bytes())
}

func (s *Server) handleExport(c *gin.Context) {
	ct := s.cfg.CompressionType()
	if raw := c.Query("compression"); raw != "" {
		var err error
		if ct, err = format.ParseCompressionType(raw); err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
	}
	rf, err := format.ParseReportFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	_, res, id, ok := s.estimate(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	stats, err := report.Export(&buf, res, rf, ct, report.WithDatasetID(id))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	name := report.ExportName("potency-"+id, rf, ct)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("X-Uncompressed-Size", strconv.FormatInt(stats.OriginalSize, 10))
	c.Data(http.StatusOK, "application/octet-stream", buf.Bytes())
}

// bindJSON decodes a JSON body, reporting malformed input as a 400.
func (s *Server) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(c, http.StatusRequestEntityTooLarge, err)
		} else if errors.Is(err, io.EOF) {
			s.fail(c, http.StatusBadRequest, errors.New("empty request body"))
		} else {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		}

		return false
	}

	return true
}

func (s *Server) handlePredictDOE(c *gin.Context) {
	in := formula.DefaultDOEInputs()
	if !s.bindJSON(c, &in) {
		return
	}

	p, err := formula.PredictDOE(in)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.metrics.predictions.WithLabelValues("doe").Inc()

	c.JSON(http.StatusOK, gin.H{"inputs": in, "potency": p})
}

func (s *Server) handlePredictCytokine(c *gin.Context) {
	in := formula.DefaultCytokineInputs()
	if !s.bindJSON(c, &in) {
		return
	}

	pred, err := formula.PredictCytokine(in)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.metrics.predictions.WithLabelValues("cytokine").Inc()

	c.JSON(http.StatusOK, gin.H{"inputs": in, "prediction": pred})
}

func (s *Server) handlePredictStability(c *gin.Context) {
	cond, err := formula.ParseStorageCondition(c.DefaultQuery("condition", string(formula.Refrigerated)))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	horizon := formula.StudyHorizonMonths
	if raw := c.Query("horizon"); raw != "" {
		if horizon, err = strconv.ParseFloat(raw, 64); err != nil {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("invalid horizon %q", raw))
			return
		}
	}
	points, err := strconv.Atoi(c.DefaultQuery("points", "19"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("invalid points %q", c.Query("points")))
		return
	}

	if raw := c.Query("image"); raw != "" {
		img, err := format.ParseImageFormat(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
		var buf bytes.Buffer
		if err := report.PlotStability(&buf, cond, horizon, img); err != nil {
			s.fail(c, statusFor(err), err)
			return
		}
		s.metrics.predictions.WithLabelValues("stability").Inc()
		c.Data(http.StatusOK, img.ContentType(), buf.Bytes())

		return
	}

	curve, err := formula.Curve(cond, horizon, points)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	shelf, err := formula.ShelfLife(cond)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	rate, _ := cond.DecayRate()
	s.metrics.predictions.WithLabelValues("stability").Inc()

	c.JSON(http.StatusOK, gin.H{
		"condition":  cond,
		"decay_rate": rate,
		"shelf_life": shelf,
		"summary":    shelf.String(),
		"curve":      curve,
	})
}
