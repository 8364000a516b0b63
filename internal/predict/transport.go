package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"unicode/utf8"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/pkg/errors"

	"github.com/example/glyphpad/internal/payload"
)

// RequestIDHeader carries the per-submission id to the endpoint.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// response mirrors the endpoint's JSON body. Pointers distinguish absent
// fields from zero values.
type response struct {
	PredictionIndex *int    `json:"prediction_index"`
	PredictionChar  *string `json:"prediction_char"`
	// Error is usually a string but some backends send an object.
	Error json.RawMessage `json:"error,omitempty"`
}

// failure reports whether the error field marks the call as failed, and the
// message to show when it is a plain string.
func (r *response) failure() (string, bool) {
	raw := bytes.TrimSpace(r.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg, msg != ""
	}
	return "", true
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart writes the payload as the single file field of a
// multipart/form-data body.
func encodeMultipart(field string) httptransport.EncodeRequestFunc {
	return func(_ context.Context, r *http.Request, request interface{}) error {
		p, ok := request.(*payload.Payload)
		if !ok || p == nil {
			return &encodeError{err: errors.Errorf("unexpected request %T", request)}
		}
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(field), quoteEscaper.Replace(p.Filename)))
		ct := p.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return &encodeError{err: err}
		}
		if _, err := part.Write(p.Data); err != nil {
			return &encodeError{err: err}
		}
		if err := w.Close(); err != nil {
			return &encodeError{err: err}
		}
		data := body.Bytes()
		r.Header.Set("Content-Type", w.FormDataContentType())
		r.ContentLength = int64(len(data))
		r.Body = io.NopCloser(bytes.NewReader(data))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
		return nil
	}
}

// setRequestID copies the submission id from the context onto the request.
func setRequestID(ctx context.Context, r *http.Request) context.Context {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		r.Header.Set(RequestIDHeader, id)
	}
	return ctx
}

// decodeResponse turns the endpoint's answer into a Result, a *ServerError
// or a *TransportError. An "error" field fails the call whatever the status.
func decodeResponse(_ context.Context, r *http.Response) (interface{}, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "read response")}
	}
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransportError{Err: errors.Wrapf(err, "decode response (status %d)", r.StatusCode)}
	}
	ok := r.StatusCode >= 200 && r.StatusCode < 300
	msg, failed := resp.failure()
	if !ok || failed {
		return nil, &ServerError{Status: r.StatusCode, Message: msg}
	}
	if resp.PredictionIndex == nil || resp.PredictionChar == nil || utf8.RuneCountInString(*resp.PredictionChar) != 1 {
		return nil, &ServerError{Status: r.StatusCode, Malformed: true}
	}
	return &Result{Index: *resp.PredictionIndex, Char: *resp.PredictionChar}, nil
}
