package elevenlabs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

const (
	apiKeyHeader = "xi-api-key"
	userAgent    = "elevenlabs-sdk-go/1.0"

	streamChunkSize  = 4096
	maxStreamLineLen = 1 << 20
)

// mimeTypes is the fixed lookup table used when building multipart file
// parts. Unknown extensions fall back to application/octet-stream.
var mimeTypes = map[string]string{
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".mpga": "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".webm": "video/webm",
}

const fallbackMIMEType = "application/octet-stream"

// FilePart is a named file field in a multipart request: raw bytes, a
// filename, and a MIME type.
type FilePart struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// NewFilePart wraps a byte stream and filename into a multipart file part,
// inferring the MIME type from the filename's extension.
func NewFilePart(r io.Reader, filename string) *FilePart {
	return &FilePart{
		Reader:      r,
		Filename:    filename,
		ContentType: mimeTypeForFilename(filename),
	}
}

func mimeTypeForFilename(name string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	return fallbackMIMEType
}

// Transport performs authenticated HTTP exchanges against the API base
// address and translates each outcome into either a decoded value or an
// *APIError. It holds no mutable state and never retries.
type Transport struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *Logger
}

func newTransport(cfg *Config) *Transport {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		}
	}
	return &Transport{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: hc,
		log:        cfg.Logger.WithComponent("transport"),
	}
}

func (t *Transport) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return nil, newConnectionError(err.Error())
	}
	req.Header.Set(apiKeyHeader, t.apiKey)
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func (t *Transport) jsonRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, newJSONError(err.Error())
		}
		reader = bytes.NewReader(data)
	}
	req, err := t.newRequest(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Get issues a GET request. The response is JSON-decoded into out when the
// content type indicates JSON; otherwise out must be a *[]byte receiving the
// raw body. A nil out discards the body.
func (t *Transport) Get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := t.newRequest(ctx, http.MethodGet, pathWithQuery(path, query), nil)
	if err != nil {
		return err
	}
	return t.do(req, out)
}

// Post issues a POST request with a JSON body.
func (t *Transport) Post(ctx context.Context, path string, body, out any) error {
	req, err := t.jsonRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return t.do(req, out)
}

// Patch issues a PATCH request with a JSON body.
func (t *Transport) Patch(ctx context.Context, path string, body, out any) error {
	req, err := t.jsonRequest(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}
	return t.do(req, out)
}

// Delete issues a DELETE request. body may be nil; some endpoints require
// delete semantics with a JSON payload.
func (t *Transport) Delete(ctx context.Context, path string, body, out any) error {
	req, err := t.jsonRequest(ctx, http.MethodDelete, path, body)
	if err != nil {
		return err
	}
	return t.do(req, out)
}

// GetBinary issues a GET request and returns the response body as opaque
// bytes regardless of declared content type.
func (t *Transport) GetBinary(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := t.newRequest(ctx, http.MethodGet, pathWithQuery(path, query), nil)
	if err != nil {
		return nil, err
	}
	return t.doBinary(req)
}

// PostBinary issues a POST request with a JSON body and returns the response
// body as opaque bytes.
func (t *Transport) PostBinary(ctx context.Context, path string, body any) ([]byte, error) {
	req, err := t.jsonRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return t.doBinary(req)
}

// PostMultipart encodes fields as multipart/form-data and issues a POST
// request. Field values may be strings, *FilePart, []*FilePart (repeated
// field), or any value formattable with fmt.Sprint. Nil values are omitted.
func (t *Transport) PostMultipart(ctx context.Context, path string, fields map[string]any, out any) error {
	req, err := t.multipartRequest(ctx, path, fields)
	if err != nil {
		return err
	}
	return t.do(req, out)
}

// PostMultipartBinary is PostMultipart for endpoints returning opaque bytes.
func (t *Transport) PostMultipartBinary(ctx context.Context, path string, fields map[string]any) ([]byte, error) {
	req, err := t.multipartRequest(ctx, path, fields)
	if err != nil {
		return nil, err
	}
	return t.doBinary(req)
}

// PostStreaming issues a POST request and invokes onChunk synchronously for
// each chunk of the response body as it arrives. It returns once the stream
// completes, or an *APIError on a non-2xx status.
func (t *Transport) PostStreaming(ctx context.Context, path string, body any, onChunk func([]byte)) error {
	req, err := t.jsonRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return newConnectionError(err.Error())
	}
	defer resp.Body.Close()

	if apiErr := t.checkStreamStatus(resp); apiErr != nil {
		return apiErr
	}

	buf := make([]byte, streamChunkSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			onChunk(chunk)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return newConnectionError(err.Error())
		}
	}
}

// PostMultipartStreaming is PostStreaming with a multipart/form-data body.
func (t *Transport) PostMultipartStreaming(ctx context.Context, path string, fields map[string]any, onChunk func([]byte)) error {
	req, err := t.multipartRequest(ctx, path, fields)
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return newConnectionError(err.Error())
	}
	defer resp.Body.Close()

	if apiErr := t.checkStreamStatus(resp); apiErr != nil {
		return apiErr
	}

	buf := make([]byte, streamChunkSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			onChunk(chunk)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return newConnectionError(err.Error())
		}
	}
}

// PostStreamingWithTimestamps issues a POST request whose response body is a
// stream of newline-delimited JSON objects. Bytes are buffered and split on
// newline boundaries, so a chunk boundary falling mid-object is handled;
// each complete line is decoded and passed to onEvent. Malformed lines are
// skipped; the skipped count is reported through the logger at warn level
// rather than surfaced to the caller.
func (t *Transport) PostStreamingWithTimestamps(ctx context.Context, path string, body any, onEvent func(json.RawMessage)) error {
	req, err := t.jsonRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return newConnectionError(err.Error())
	}
	defer resp.Body.Close()

	if apiErr := t.checkStreamStatus(resp); apiErr != nil {
		return apiErr
	}

	skipped := 0
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 64*1024), maxStreamLineLen)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		ev := make(json.RawMessage, len(line))
		copy(ev, line)
		onEvent(ev)
	}
	if skipped > 0 {
		t.log.Warnf("timestamp stream: skipped %d malformed lines", skipped)
	}
	if err := sc.Err(); err != nil {
		return newConnectionError(err.Error())
	}
	return nil
}

func (t *Transport) multipartRequest(ctx context.Context, path string, fields map[string]any) (*http.Request, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for name, value := range fields {
		if err := writeMultipartField(w, name, value); err != nil {
			return nil, newConnectionError(err.Error())
		}
	}
	if err := w.Close(); err != nil {
		return nil, newConnectionError(err.Error())
	}

	req, err := t.newRequest(ctx, http.MethodPost, path, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

func writeMultipartField(w *multipart.Writer, name string, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case *FilePart:
		return writeFilePart(w, name, v)
	case []*FilePart:
		for _, fp := range v {
			if err := writeFilePart(w, name, fp); err != nil {
				return err
			}
		}
		return nil
	case string:
		return w.WriteField(name, v)
	default:
		return w.WriteField(name, fmt.Sprint(v))
	}
}

func writeFilePart(w *multipart.Writer, name string, fp *FilePart) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, fp.Filename))
	h.Set("Content-Type", fp.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, fp.Reader)
	return err
}

// do performs an exchange where the full response body is read before the
// call returns. Every verb funnels through this (or doBinary) for status
// interpretation.
func (t *Transport) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return newConnectionError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newConnectionError(err.Error())
	}
	t.log.LogRequest(req.Method, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}

	if isJSONContentType(resp.Header.Get("Content-Type")) {
		if err := json.Unmarshal(body, out); err != nil {
			return newJSONError(err.Error())
		}
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = body
		return nil
	}
	return newJSONError(fmt.Sprintf("unexpected content type %q", resp.Header.Get("Content-Type")))
}

func (t *Transport) doBinary(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, newConnectionError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newConnectionError(err.Error())
	}
	t.log.LogRequest(req.Method, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, body)
	}
	return body, nil
}

func (t *Transport) checkStreamStatus(resp *http.Response) *APIError {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return newStatusError(resp.StatusCode, body)
}

func isJSONContentType(ct string) bool {
	return strings.Contains(ct, "application/json")
}

func pathWithQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
