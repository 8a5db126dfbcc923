package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnlens/internal/analysis/runner"
	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/http/response"
	"github.com/yungbote/learnlens/internal/ingest"
	"github.com/yungbote/learnlens/internal/platform/apierr"
	"github.com/yungbote/learnlens/internal/platform/ctxutil"
	"github.com/yungbote/learnlens/internal/platform/logger"
)

const (
	codeInvalidRequest   = "invalid_request"
	codeRequestTooLarge  = "request_too_large"
	codeUnreadableInput  = "unreadable_input"
	codeAnalysisTimeout  = "analysis_timeout"
	multipartMemoryBytes = 32 << 20
	heartbeatInterval    = 15 * time.Second
)

type ConceptExtractor interface {
	ExtractConcepts(ctx context.Context, req domain.AnalysisRequest) (domain.Chapter, domain.ConceptGraph, error)
}

type RequestValidator interface {
	ValidateStructure(req *domain.AnalysisRequest) error
}

type AnalysisHandler struct {
	log        *logger.Logger
	runner     *runner.Runner
	extractor  ConceptExtractor
	validator  RequestValidator
	runTimeout time.Duration
}

func NewAnalysisHandler(log *logger.Logger, r *runner.Runner, extractor ConceptExtractor, validator RequestValidator, runTimeout time.Duration) *AnalysisHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AnalysisHandler{
		log:        log.With("handler", "AnalysisHandler"),
		runner:     r,
		extractor:  extractor,
		validator:  validator,
		runTimeout: runTimeout,
	}
}

// analysisBody accepts either a prepared chapter or raw text to be sectioned.
type analysisBody struct {
	Chapter            *domain.Chapter        `json:"chapter"`
	Title              string                 `json:"title"`
	Text               string                 `json:"text"`
	Format             string                 `json:"format"`
	Domain             string                 `json:"domain"`
	IncludeCrossDomain bool                   `json:"includeCrossDomain"`
	CustomConcepts     []domain.CustomConcept `json:"customConcepts"`
}

type ExtractResponse struct {
	ChapterID    string              `json:"chapterId"`
	Title        string              `json:"title"`
	WordCount    int                 `json:"wordCount"`
	Sections     []domain.Section    `json:"sections"`
	ConceptGraph domain.ConceptGraph `json:"conceptGraph"`
}

// Analyze runs a full analysis and returns the report in the response.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	ctx := c.Request.Context()
	if h.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.runTimeout)
		defer cancel()
	}
	res, err := h.runner.Analyze(ctx, req, nil)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && c.Request.Context().Err() == nil {
			response.RespondError(c, http.StatusGatewayTimeout, codeAnalysisTimeout, fmt.Errorf("analysis exceeded %s", h.runTimeout))
			return
		}
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}

// Stream runs an analysis and reports it as server-sent events: one event per
// run message, named after its type. A client disconnect cancels the run.
func (h *AnalysisHandler) Stream(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	ctx := c.Request.Context()
	run, err := h.runner.Submit(ctx, req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	ctxutil.SetRunID(ctx, run.ID)
	log := h.log.With(ctxutil.LogFields(ctx)...)

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("X-Run-Id", run.ID)
	w.WriteHeader(http.StatusOK)
	w.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()
	for {
		select {
		case <-ctx.Done():
			run.Cancel()
			log.Debug("stream client gone", "error", ctx.Err())
			return
		case <-heartbeat.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			w.Flush()
		case m, ok := <-run.Messages:
			if !ok {
				return
			}
			if err := writeEvent(w, m); err != nil {
				log.Warn("write stream event failed", "error", err)
				run.Cancel()
				return
			}
			w.Flush()
		}
	}
}

func writeEvent(w io.Writer, m domain.RunMessage) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", m.Type, b)
	return err
}

// ExtractConcepts runs only concept extraction and returns the graph.
func (h *AnalysisHandler) ExtractConcepts(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if h.validator != nil {
		if err := h.validator.ValidateStructure(&req); err != nil {
			response.RespondErr(c, err)
			return
		}
	}
	ch, g, err := h.extractor.ExtractConcepts(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, ExtractResponse{
		ChapterID:    ch.ID,
		Title:        ch.Title,
		WordCount:    ch.WordCount,
		Sections:     ch.Sections,
		ConceptGraph: g,
	})
}

func (h *AnalysisHandler) bind(c *gin.Context) (domain.AnalysisRequest, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return h.bindMultipart(c)
	}
	var body analysisBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return domain.AnalysisRequest{}, bindError(err)
	}
	req := domain.AnalysisRequest{
		Domain:             strings.TrimSpace(body.Domain),
		IncludeCrossDomain: body.IncludeCrossDomain,
		CustomConcepts:     body.CustomConcepts,
	}
	switch {
	case body.Chapter != nil:
		req.Chapter = *body.Chapter
	case strings.TrimSpace(body.Text) != "":
		format, err := ingest.ParseFormat(body.Format)
		if err != nil {
			return domain.AnalysisRequest{}, apierr.New(http.StatusBadRequest, codeInvalidRequest, err)
		}
		if format == ingest.FormatPDF {
			return domain.AnalysisRequest{}, apierr.New(http.StatusBadRequest, codeInvalidRequest,
				errors.New("pdf input must be uploaded as a multipart file"))
		}
		ch, err := ingest.Build(ingest.Input{Title: body.Title, Format: format, Text: body.Text, Domain: req.Domain})
		if err != nil {
			return domain.AnalysisRequest{}, apierr.New(http.StatusUnprocessableEntity, codeUnreadableInput, err)
		}
		req.Chapter = ch
	default:
		return domain.AnalysisRequest{}, apierr.New(http.StatusBadRequest, codeInvalidRequest,
			errors.New("either chapter or text is required"))
	}
	return req, nil
}

// bindMultipart reads an uploaded chapter from the "file" field. Other form
// fields: title, format, domain, includeCrossDomain and repeated concept
// values in "name[:tier]" form.
func (h *AnalysisHandler) bindMultipart(c *gin.Context) (domain.AnalysisRequest, error) {
	if err := c.Request.ParseMultipartForm(multipartMemoryBytes); err != nil {
		return domain.AnalysisRequest{}, bindError(err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.AnalysisRequest{}, apierr.New(http.StatusBadRequest, codeInvalidRequest, errors.New("multipart request needs a file field"))
	}
	f, err := fh.Open()
	if err != nil {
		return domain.AnalysisRequest{}, apierr.New(http.StatusBadRequest, codeInvalidRequest, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.AnalysisRequest{}, bindError(err)
	}

	format, err := ingest.ParseFormat(c.PostForm("format"))
	if err != nil {
		return domain.AnalysisRequest{}, apierr.New(http.StatusBadRequest, codeInvalidRequest, err)
	}
	req := domain.AnalysisRequest{Domain: strings.TrimSpace(c.PostForm("domain"))}
	if v := strings.TrimSpace(c.PostForm("includeCrossDomain")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return domain.AnalysisRequest{}, apierr.Newf(http.StatusBadRequest, codeInvalidRequest, "includeCrossDomain: %w", err)
		}
		req.IncludeCrossDomain = b
	}
	for _, v := range c.PostFormArray("concept") {
		cc, err := ingest.ParseCustomConcept(v)
		if err != nil {
			return domain.AnalysisRequest{}, apierr.New(http.StatusBadRequest, codeInvalidRequest, err)
		}
		req.CustomConcepts = append(req.CustomConcepts, cc)
	}

	ch, err := ingest.Build(ingest.Input{
		Title:  c.PostForm("title"),
		Name:   fh.Filename,
		Format: format,
		Data:   data,
		Domain: req.Domain,
	})
	if err != nil {
		return domain.AnalysisRequest{}, apierr.New(http.StatusUnprocessableEntity, codeUnreadableInput, err)
	}
	req.Chapter = ch
	return req, nil
}

func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apierr.Newf(http.StatusRequestEntityTooLarge, codeRequestTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
	}
	return apierr.Newf(http.StatusBadRequest, codeInvalidRequest, "invalid request body: %w", err)
}
