package httpadapter

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/scoring"
	"github.com/plainbrief/plainbrief/internal/core/usecase"
	"github.com/plainbrief/plainbrief/internal/export"
)

type fixture struct {
	router     *Router
	simplifier *fakeSimplifier
	briefs     *fakeBriefRepo
	publisher  *fakePublisher
	history    *fakeHistoryRepo
	saved      *fakeSavedRepo
	settings   *fakeSettingsRepo
	pdf        *fakeExtractor
	docx       *fakeExtractor
	image      *fakeExtractor
	posts      *fakePostRepo
	storage    *fakeStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		simplifier: &fakeSimplifier{result: domain.Simplification{Text: "plain version", Model: "sonar"}},
		briefs:     newFakeBriefRepo(),
		publisher:  &fakePublisher{},
		history:    &fakeHistoryRepo{},
		saved:      &fakeSavedRepo{},
		settings:   &fakeSettingsRepo{current: domain.DefaultSettings()},
		pdf:        &fakeExtractor{result: domain.ExtractedFile{Text: "pdf body text", Metadata: domain.FileMetadata{PageCount: 1}}},
		docx:       &fakeExtractor{result: domain.ExtractedFile{Text: "docx body text"}},
		image:      &fakeExtractor{result: domain.ExtractedFile{Text: "ocr body text"}},
		posts:      &fakePostRepo{},
		storage:    &fakeStorage{},
	}

	scorer := scoring.New(nil)
	normalizer := usecase.NewNormalizeFileUseCase(f.pdf, f.docx, f.image, usecase.SizeLimits{
		PDFBytes:     10 * 1024 * 1024,
		DOCXBytes:    5 * 1024 * 1024,
		ImageBytes:   5 * 1024 * 1024,
		DefaultBytes: 5 * 1024 * 1024,
	})
	simplifyUC := usecase.NewSimplifyUseCase(
		f.simplifier,
		usecase.NewJargonUseCase(&fakeJargonService{terms: []string{"API"}}, 10, nil),
		normalizer,
		scorer,
		f.briefs,
		f.publisher,
		5000,
		nil,
	)
	dashboard := usecase.NewDashboardUseCase(f.briefs, f.history, f.saved, f.settings, nil)
	posts := usecase.NewPostUseCase(f.storage, f.posts)
	exporter := export.NewService(f.history, nil)

	f.router = NewRouter(simplifyUC, dashboard, posts, scorer, exporter, nil, nil)
	return f
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return payload
}

func TestSimplifyEndpointHappyPath(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/simplify", map[string]string{
		"text":     "We must reduce API latency.",
		"audience": "Executive",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["success"] != true {
		t.Fatalf("success = %v", payload["success"])
	}
	if payload["simplifiedText"] != "plain version" {
		t.Fatalf("simplifiedText = %v", payload["simplifiedText"])
	}
	if payload["complexityReasoning"] == "" {
		t.Fatalf("missing reasoning")
	}
	jargons, ok := payload["jargons"].([]any)
	if !ok || len(jargons) != 1 {
		t.Fatalf("jargons = %v", payload["jargons"])
	}
	if len(f.publisher.ids) != 1 {
		t.Fatalf("published = %v", f.publisher.ids)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}
}

func TestSimplifyEndpointRejectsOversizedTextBeforeUpstream(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/simplify", map[string]string{
		"text": strings.Repeat("a", 5001),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.simplifier.calls != 0 {
		t.Fatalf("upstream called %d times", f.simplifier.calls)
	}
}

func TestSimplifyEndpointUnknownAudienceDefaultsToManager(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/simplify", map[string]string{
		"text":     "some text",
		"audience": "Astronaut",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	metadata, _ := payload["metadata"].(map[string]any)
	if metadata["audience"] != "Manager" {
		t.Fatalf("audience = %v", metadata["audience"])
	}
}

func TestSimplifyEndpointUpstreamFailureMapsTo500(t *testing.T) {
	f := newFixture(t)
	f.simplifier.err = domain.WrapError(domain.ErrUpstream, "simplify text", errNotFound)
	handler := f.router.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/simplify", map[string]string{"text": "some text"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["success"] != false {
		t.Fatalf("success = %v", payload["success"])
	}
}

func multipartUpload(t *testing.T, field, filename, contentType string, data []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range extra {
		_ = writer.WriteField(k, v)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestSimplifyFileRoutesDocxSuffixWithGenericMimetype(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	body, contentType := multipartUpload(t, "file", "report.docx", "application/octet-stream", []byte("PK"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/simplify-file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if f.docx.calls != 1 || f.pdf.calls != 0 {
		t.Fatalf("dispatch: docx=%d pdf=%d", f.docx.calls, f.pdf.calls)
	}
	if f.simplifier.gotText != "docx body text" {
		t.Fatalf("simplified %q", f.simplifier.gotText)
	}
	payload := decodeBody(t, rec)
	if _, ok := payload["fileMetadata"]; !ok {
		t.Fatalf("missing fileMetadata: %v", payload)
	}
	if _, ok := payload["jargons"]; ok {
		t.Fatalf("file path must not return jargons")
	}
}

func TestSimplifyFileRejectsOversizedPDF(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	big := bytes.Repeat([]byte("a"), 12*1024*1024)
	body, contentType := multipartUpload(t, "file", "big.pdf", "application/pdf", big, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/simplify-file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.pdf.calls != 0 {
		t.Fatalf("extractor must not run on oversized upload")
	}
}

func TestSimplifyFileUnsupportedTypeRejected(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	body, contentType := multipartUpload(t, "file", "notes.txt", "text/plain", []byte("hello"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/simplify-file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAnalyzeComplexityEndpoint(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/analyze-complexity", map[string]string{
		"originalText":   "The API uses microservices and middleware.",
		"simplifiedText": "The system has small parts.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	complexity, ok := payload["complexity"].(map[string]any)
	if !ok {
		t.Fatalf("complexity = %v", payload["complexity"])
	}
	original, _ := complexity["original"].(map[string]any)
	if original["jargonCount"].(float64) != 3 {
		t.Fatalf("jargonCount = %v", original["jargonCount"])
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/analyze-complexity", map[string]string{
		"simplifiedText": "only one side",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing originalText: status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/analyze-complexity", map[string]string{
		"originalText": "The API uses microservices.",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing simplifiedText: status = %d", rec.Code)
	}
}

func TestGetBriefEndpoint(t *testing.T) {
	f := newFixture(t)
	handler := f.router.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/simplify", map[string]string{"text": "persist me please"})
	payload := decodeBody(t, rec)
	metadata, _ := payload["metadata"].(map[string]any)
	id, _ := metadata["briefId"].(string)
	if id == "" {
		t.Fatalf("no brief id in metadata: %v", payload)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/briefs/"+id, nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d", rec2.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/briefs/ghost", nil)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req)
	if rec3.Code != http.StatusNotFound {
		t.Fatalf("ghost status = %d", rec3.Code)
	}
}
