package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports"
	"github.com/plainbrief/plainbrief/internal/core/usecase"
)

type briefMetadata struct {
	BriefID   string            `json:"briefId"`
	Audience  domain.Audience   `json:"audience"`
	Model     string            `json:"model,omitempty"`
	Usage     domain.TokenUsage `json:"usage"`
	Citations []string          `json:"citations,omitempty"`
}

func metadataFor(result *ports.BriefResult) briefMetadata {
	return briefMetadata{
		BriefID:   result.Brief.ID,
		Audience:  result.Brief.Audience,
		Model:     result.Model,
		Usage:     result.Usage,
		Citations: result.Citations,
	}
}

func (rt *Router) simplifyText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Text     string `json:"text"`
		Audience string `json:"audience"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	audience := domain.NormalizeAudience(req.Audience)
	start := time.Now()
	result, err := rt.simplifyUC.SimplifyText(r.Context(), req.Text, audience)
	if err != nil {
		rt.recordSimplify(string(audience), "text", mapErrorToHTTPStatus(err), start)
		writeDomainError(w, err)
		return
	}
	rt.recordSimplify(string(audience), "text", http.StatusOK, start)
	rt.recordResultMetrics(result)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"originalText":        result.Brief.OriginalText,
		"simplifiedText":      result.Brief.SimplifiedText,
		"complexity":          result.Complexity,
		"complexityReasoning": result.Reasoning,
		"jargons":             result.Jargons,
		"metadata":            metadataFor(result),
	})
}

func (rt *Router) simplifyFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read uploaded file: "+err.Error())
		return
	}

	mimetype := fileHeader.Header.Get("Content-Type")
	upload := domain.UploadedFile{
		Filename: fileHeader.Filename,
		MimeType: mimetype,
		Data:     data,
	}
	audience := domain.NormalizeAudience(r.FormValue("audience"))
	format := string(usecase.DetectFormat(mimetype, fileHeader.Filename))

	start := time.Now()
	result, err := rt.simplifyUC.SimplifyFile(r.Context(), upload, audience)
	if err != nil {
		rt.recordSimplify(string(audience), "file", mapErrorToHTTPStatus(err), start)
		rt.recordExtraction(format, "error")
		writeDomainError(w, err)
		return
	}
	rt.recordSimplify(string(audience), "file", http.StatusOK, start)
	rt.recordExtraction(format, "ok")
	rt.recordResultMetrics(&result.BriefResult)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"originalText":        result.Brief.OriginalText,
		"simplifiedText":      result.Brief.SimplifiedText,
		"complexity":          result.Complexity,
		"complexityReasoning": result.Reasoning,
		"fileMetadata":        result.FileMetadata,
		"metadata":            metadataFor(&result.BriefResult),
	})
}

func (rt *Router) analyzeComplexity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		OriginalText   string `json:"originalText"`
		SimplifiedText string `json:"simplifiedText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.OriginalText) == "" {
		writeError(w, http.StatusBadRequest, "originalText is required")
		return
	}
	if strings.TrimSpace(req.SimplifiedText) == "" {
		writeError(w, http.StatusBadRequest, "simplifiedText is required")
		return
	}

	report := rt.scorer.Analyze(req.OriginalText, req.SimplifiedText)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"complexity": report,
	})
}

func (rt *Router) getBrief(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/briefs/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "brief id is required")
		return
	}

	brief, err := rt.dashboard.GetBrief(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"brief":   brief,
	})
}

func (rt *Router) recordSimplify(audience, input string, status int, start time.Time) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordSimplify(serviceName, audience, input, outcomeForStatus(status), time.Since(start))
}

func (rt *Router) recordExtraction(format, outcome string) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordExtraction(serviceName, format, outcome)
}

func (rt *Router) recordResultMetrics(result *ports.BriefResult) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordTokenUsage(serviceName, result.Model, result.Usage.PromptTokens, result.Usage.CompletionTokens)
	rt.metrics.RecordJargonTerms(serviceName, len(result.Jargons))
}
