// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package azuretesting provides canned HTTP responses and credentials
// for testing code built on the Azure SDK.
package azuretesting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/juju/errors"
)

// MockSender is a policy.Transporter that replies with canned
// responses, in the order they were appended.
type MockSender struct {
	// PathPattern, if set, is a regular expression the request
	// URL path must match.
	PathPattern string

	mu        sync.Mutex
	responses []*http.Response
	errs      []error
}

var _ policy.Transporter = (*MockSender)(nil)

// AppendResponse queues a response.
func (s *MockSender) AppendResponse(resp *http.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
	s.errs = append(s.errs, nil)
}

// AppendError queues a transport failure.
func (s *MockSender) AppendError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, nil)
	s.errs = append(s.errs, err)
}

// Remaining reports how many queued replies have not been used.
func (s *MockSender) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses)
}

// Do is part of the policy.Transporter interface.
func (s *MockSender) Do(req *http.Request) (*http.Response, error) {
	if s.PathPattern != "" {
		matched, err := regexp.MatchString(s.PathPattern, req.URL.Path)
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, errors.Errorf("request path %q did not match pattern %q", req.URL.Path, s.PathPattern)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.responses) == 0 {
		return nil, errors.Errorf("no response queued for %s %s", req.Method, req.URL.Path)
	}
	resp, err := s.responses[0], s.errs[0]
	s.responses, s.errs = s.responses[1:], s.errs[1:]
	if resp != nil {
		resp.Request = req
	}
	return resp, err
}

// Senders is a policy.Transporter that hands each request to the
// next sender in the list, discarding senders once they are used up.
type Senders []*MockSender

// Do is part of the policy.Transporter interface.
func (s *Senders) Do(req *http.Request) (*http.Response, error) {
	for len(*s) > 0 && (*s)[0].Remaining() == 0 {
		*s = (*s)[1:]
	}
	if len(*s) == 0 {
		return nil, errors.Errorf("no sender for %s %s", req.Method, req.URL.Path)
	}
	return (*s)[0].Do(req)
}

// NewSenderWithValue returns a sender replying once with 200 OK and
// v marshalled as JSON.
func NewSenderWithValue(v interface{}) *MockSender {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	sender := &MockSender{}
	sender.AppendResponse(NewResponseWithBodyAndStatus(NewBody(string(data)), http.StatusOK, ""))
	return sender
}

// NewSenderWithStatus returns a sender replying once with an empty
// body and the given status.
func NewSenderWithStatus(status int) *MockSender {
	sender := &MockSender{}
	sender.AppendResponse(NewResponseWithBodyAndStatus(NewBody(""), status, ""))
	return sender
}

// NewErrorSender returns a sender replying once with an ARM error body.
func NewErrorSender(status int, code, message string) *MockSender {
	body := fmt.Sprintf(`{"error":{"code":%q,"message":%q}}`, code, message)
	sender := &MockSender{}
	sender.AppendResponse(NewResponseWithBodyAndStatus(NewBody(body), status, ""))
	return sender
}

// NewBody returns a response body holding s.
func NewBody(s string) io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(s))
}

// NewResponseWithBodyAndStatus returns a JSON response.
func NewResponseWithBodyAndStatus(body io.ReadCloser, status int, statusText string) *http.Response {
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		Status:     fmt.Sprintf("%d %s", status, statusText),
		StatusCode: status,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     header,
		Body:       body,
	}
}

// Request is a request seen by a RequestRecorder.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// RequestRecorder returns a transporter recording each request in
// requests before passing it on to next.
func RequestRecorder(next policy.Transporter, requests *[]Request) policy.Transporter {
	return &recorder{next: next, requests: requests}
}

type recorder struct {
	mu       sync.Mutex
	next     policy.Transporter
	requests *[]Request
}

func (r *recorder) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	r.mu.Lock()
	*r.requests = append(*r.requests, Request{
		Method: req.Method,
		Path:   req.URL.Path,
		Body:   body,
	})
	r.mu.Unlock()
	return r.next.Do(req)
}
