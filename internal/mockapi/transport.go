package mockapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"BoutiqueAdmin/pkg/kit"
)

// ErrBodyTooLarge is returned for request bodies over the mock's body limit.
var ErrBodyTooLarge = errors.New("request body too large")

// Transport is an http.RoundTripper that sends requests to the real backend
// and, when the backend cannot be reached, answers from the mock route table.
// Requests the table does not claim get the original transport error back,
// unchanged, and so do requests whose own context is already done: a
// cancelled call never reaches the store.
type Transport struct {
	Base http.RoundTripper
	Mock *Routes
	Log  *zap.Logger

	// FallbackOn5xx also answers from the mock when the backend responds
	// with a server error.
	FallbackOn5xx bool
}

func NewTransport(base http.RoundTripper, mock *Routes, log *zap.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Transport{Base: base, Mock: mock, Log: log}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, err := drainBody(req)
	if err != nil {
		return nil, err
	}

	out := req.Clone(req.Context())
	out.Body = bodyReader(body)
	if body != nil {
		out.GetBody = func() (io.ReadCloser, error) { return bodyReader(body), nil }
	}

	resp, rtErr := t.Base.RoundTrip(out)
	if rtErr == nil {
		if !t.FallbackOn5xx || resp.StatusCode < http.StatusInternalServerError ||
			req.Context().Err() != nil || !t.Mock.ClaimsRequest(req) {
			return resp, nil
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		t.Log.Info("backend server error, serving mock response",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("backend_status", resp.StatusCode),
		)
		return t.serveMock(req, body), nil
	}

	if req.Context().Err() != nil || !t.Mock.ClaimsRequest(req) {
		return nil, rtErr
	}

	t.Log.Info("backend unreachable, serving mock response",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Error(rtErr),
	)
	return t.serveMock(req, body), nil
}

func (t *Transport) serveMock(req *http.Request, body []byte) *http.Response {
	mreq := req.Clone(req.Context())
	mreq.Body = bodyReader(body)
	if mreq.Body == nil {
		mreq.Body = http.NoBody
	}

	rec := newRecorder()
	t.Mock.ServeHTTP(rec, mreq)
	rec.header.Set(kit.SourceHeader, "true")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", rec.status, http.StatusText(rec.status)),
		StatusCode:    rec.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        rec.header,
		Body:          io.NopCloser(bytes.NewReader(rec.body.Bytes())),
		ContentLength: int64(rec.body.Len()),
		Request:       req,
	}
}

// drainBody reads and closes the request body so it can be replayed against
// the mock after the backend attempt consumed it. Bodies over maxBodyBytes
// are refused before anything is sent.
func drainBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer func() { _ = req.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxBodyBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, maxBodyBytes)
	}
	return b, nil
}

func bodyReader(b []byte) io.ReadCloser {
	if b == nil {
		return nil
	}
	return io.NopCloser(bytes.NewReader(b))
}

// recorder is the in-memory ResponseWriter the mock writes into.
type recorder struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newRecorder() *recorder {
	return &recorder{header: http.Header{}, status: http.StatusOK}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.status = code
	r.wroteHeader = true
}

func (r *recorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	return r.body.Write(p)
}
