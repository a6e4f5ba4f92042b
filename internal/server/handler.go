package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/ai"
	"github.com/YashPatkar/ShortlistAI/internal/config"
	apperrors "github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/ingest"
	"github.com/YashPatkar/ShortlistAI/internal/jd"
	"github.com/YashPatkar/ShortlistAI/internal/observability"
	"github.com/YashPatkar/ShortlistAI/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// createResumeStatusHandler reports whether a resume is currently stored
func (s *Server) createResumeStatusHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("shortlistai.api")
		ctx, span := tracer.Start(ctx, "api.resume_status")
		defer span.End()

		resume, err := s.Store.Get(ctx)
		if err != nil {
			if isResumeNotFound(err) {
				span.SetAttributes(attribute.Bool("resume.exists", false))
				writeJSONResponse(w, span, ResumeStatusResponse{Exists: false})
				return
			}
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read resume status", errorMessage(err), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(attribute.Bool("resume.exists", true))
		writeJSONResponse(w, span, ResumeStatusResponse{
			Exists:    true,
			Filename:  resume.Filename,
			UpdatedAt: &resume.UpdatedAt,
		})
	}
}

// createUploadHandler accepts a PDF resume, extracts its text, and stores
// it as the single active resume
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("shortlistai.api")
		ctx, span := tracer.Start(ctx, "api.resume_upload")
		defer span.End()

		file, header, err := r.FormFile("file")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "No file provided", "multipart field 'file' is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", err)
			}
		}()

		if header.Filename == "" {
			writeErrorResponse(w, "No file provided", "uploaded file has no filename", http.StatusBadRequest)
			return
		}
		if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
			writeErrorResponse(w, "File must be a PDF", "only .pdf uploads are accepted", http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read uploaded file", errorMessage(err), http.StatusBadRequest)
			return
		}
		if len(content) == 0 {
			writeErrorResponse(w, "Empty file", "uploaded file contains no data", http.StatusBadRequest)
			return
		}
		if maxSize := s.AppConfig.App.MaxFileSize; maxSize > 0 && int64(len(content)) > maxSize {
			writeErrorResponse(w, "File too large", "Resume file size must be less than 1 MB.", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.file_size_bytes", len(content)),
			attribute.String("operation", "upload"),
		)

		extractedText, err := ingest.ExtractPDFText(content)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			writeErrorResponse(w, "Failed to process PDF", errorMessage(err), http.StatusBadRequest)
			return
		}

		metrics := om.GetMetrics()
		resume, err := s.Store.Save(ctx, header.Filename, content, extractedText)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "storage"))
			metrics.RecordBusinessMetric(ctx, "resume_uploaded", false,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to save resume", errorMessage(err), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_uploaded", true,
			attribute.Int("file_size_bytes", len(content)),
			attribute.Int("extracted_text_length", len(extractedText)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.extracted_text_length", len(extractedText)),
		)

		writeJSONResponse(w, span, UploadResponse{
			Message:   "Resume uploaded successfully",
			Filename:  resume.Filename,
			UpdatedAt: resume.UpdatedAt,
		})
	}
}

// createAnalyzeJDHandler matches the stored resume against a job
// description supplied as text or as a screenshot
func (s *Server) createAnalyzeJDHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		tracer := om.Tracer("shortlistai.api")
		ctx, span := tracer.Start(ctx, "api.analyze_jd")
		defer span.End()

		// The stored resume is checked before any job description work
		resume, err := s.Store.Get(ctx)
		if err != nil {
			if isResumeNotFound(err) {
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, "No resume uploaded", "No resume uploaded. Please upload a resume first.", http.StatusBadRequest)
				return
			}
			span.RecordError(err)
			writeErrorResponse(w, "Failed to load resume", errorMessage(err), http.StatusInternalServerError)
			return
		}

		jdText, ok := s.resolveJobDescription(ctx, w, r, span)
		if !ok {
			return
		}

		span.SetAttributes(
			attribute.Int("request.jd_length", len(jdText)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()

		// Plausibility filter: heuristics plus an advisory model check.
		// A classify service that cannot be created degrades to
		// heuristics only rather than blocking the request.
		verdict := s.validateJobDescription(ctx, jdText)
		if !verdict.IsValid {
			span.SetAttributes(attribute.String("rejection.reason", verdict.Reason))
			metrics.RecordBusinessMetric(ctx, "jd_rejected", true,
				attribute.String("reason", verdict.Reason))
			writeErrorResponse(w, "Invalid job description", verdict.Reason, http.StatusBadRequest)
			return
		}

		// Create AI service for the analyze operation
		analyzeConfig := s.AppConfig.GetAnalyzeConfig()
		aiService, err := ai.NewService(&analyzeConfig, config.OperationAnalyze, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", errorMessage(err), http.StatusInternalServerError)
			return
		}

		var result types.AnalysisResult
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Analyze(ctx, resume.ExtractedText, jdText)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "jd_analyzed", false,
				attribute.String("error", err.Error()))
			if isMalformedOutput(err) {
				writeErrorResponse(w, "AI analysis failed", errorMessage(err), http.StatusInternalServerError)
			} else {
				writeErrorResponse(w, "Analysis error", errorMessage(err), http.StatusInternalServerError)
			}
			return
		}

		metrics.RecordBusinessMetric(ctx, "jd_analyzed", true,
			attribute.Float64("match_score", result.MatchScore),
			attribute.String("contact_mode", string(result.ContactMode)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("match_score", result.MatchScore),
			attribute.String("contact_mode", string(result.ContactMode)),
		)

		writeJSONResponse(w, span, result)
	}
}

// resolveJobDescription extracts the job description text from the request.
// A screenshot takes precedence over pasted text. Returns false if a
// response has already been written.
func (s *Server) resolveJobDescription(ctx context.Context, w http.ResponseWriter, r *http.Request, span oteltrace.Span) (string, bool) {
	var jdText string
	var haveInput bool

	if imgFile, _, err := r.FormFile("jd_image"); err == nil {
		haveInput = true
		defer func() {
			if err := imgFile.Close(); err != nil {
				s.Logger.Warn("Failed to close job description image", "error", err)
			}
		}()

		imgBytes, err := io.ReadAll(imgFile)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to process image", errorMessage(err), http.StatusBadRequest)
			return "", false
		}

		text, err := ingest.ExtractImageText(ctx, imgBytes)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ocr"))
			writeErrorResponse(w, "Failed to process image", errorMessage(err), http.StatusBadRequest)
			return "", false
		}

		span.SetAttributes(attribute.String("request.jd_source", "image"))
		jdText = text
	} else {
		jdText = r.FormValue("jd_text")
		if jdText != "" {
			haveInput = true
			span.SetAttributes(attribute.String("request.jd_source", "text"))
		}
	}

	if !haveInput {
		writeErrorResponse(w, "Missing job description", "Either jd_text or jd_image must be provided", http.StatusBadRequest)
		return "", false
	}

	jdText = jd.NormalizeText(jdText)
	if strings.TrimSpace(jdText) == "" {
		writeErrorResponse(w, "Empty job description", "Job description text is empty", http.StatusBadRequest)
		return "", false
	}

	return jdText, true
}

// validateJobDescription runs the two-stage plausibility filter
func (s *Server) validateJobDescription(ctx context.Context, jdText string) types.ValidationVerdict {
	classifyConfig := s.AppConfig.GetClassifyConfig()

	var classifier jd.Classifier
	if classifyService, err := ai.NewService(&classifyConfig, config.OperationClassify, s.Logger); err == nil {
		classifier = classifyService.Provider
	} else {
		s.Logger.Warn("Classify service unavailable, falling back to heuristics only", "error", err)
	}

	validator := jd.NewValidator(classifier, s.Logger)
	return validator.Validate(ctx, jdText)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// isResumeNotFound reports whether err is the missing-resume condition
func isResumeNotFound(err error) bool {
	var appErr *apperrors.AppError
	return stderrors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeResumeNotFound
}

// isMalformedOutput reports whether err came from unparseable model output
func isMalformedOutput(err error) bool {
	var appErr *apperrors.AppError
	return stderrors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeMalformedOutput
}

// errorMessage extracts the human-readable message from an error
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func writeJSONResponse(w http.ResponseWriter, span oteltrace.Span, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
