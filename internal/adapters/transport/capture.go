package transport

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// filesystemCapture persists every request/response pair to its own file in
// a scoped directory, for inspecting what the server actually said.
type filesystemCapture struct {
	directory string
	counter   uint64
	log       zerolog.Logger
}

func newFilesystemCapture(dir string, log zerolog.Logger) (*filesystemCapture, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create capture directory: %w", err)
	}
	return &filesystemCapture{directory: dir, log: log}, nil
}

func (f *filesystemCapture) record(_ *resty.Client, res *resty.Response) error {
	id := strconv.FormatUint(atomic.AddUint64(&f.counter, 1), 10)
	path := filepath.Join(f.directory, id+".txt")
	if err := os.WriteFile(path, []byte(formatExchange(res)), 0o600); err != nil {
		f.log.Warn().Str("id", id).Err(err).Msg("failed to write capture file")
	}
	return nil
}

// 1: request method
// 2: request url
// 3: request headers ("Key: Value" lines)
// 4: request body
// 5: response status
// 6: response effective url
// 7: response headers ("Key: Value" lines)
// 8: response body
const exchangeTemplate = `---- REQUEST ----

%s %s

%s

%s

---- RESPONSE ----

%s %s

%s

%s`

func formatExchange(res *resty.Response) string {
	requestHeaders := ""
	requestBody := ""
	if raw := res.Request.RawRequest; raw != nil {
		requestHeaders = formatHeaders(raw.Header)
		requestBody = formatRequestBody(raw)
	}

	effectiveURL := res.Request.URL
	if raw := res.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		effectiveURL = raw.Request.URL.String()
	}

	return fmt.Sprintf(
		exchangeTemplate,

		res.Request.Method, res.Request.URL,
		requestHeaders,
		requestBody,

		strconv.Itoa(res.StatusCode()), effectiveURL,
		formatHeaders(res.Header()),
		res.String(),
	)
}

func formatHeaders(headers http.Header) string {
	var out strings.Builder
	for key, values := range headers {
		for _, value := range values {
			fmt.Fprintf(&out, "%s: %s\n", key, value)
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatRequestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	read, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(read)
}
