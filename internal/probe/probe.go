// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package probe checks whether web app addresses respond.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("webappslots.probe")

const (
	// maxBodyLength is the number of response body bytes kept in a
	// check result.
	maxBodyLength = 200

	defaultTimeout  = 30 * time.Second
	defaultRetryMax = 3
)

// Config holds the parameters of a Checker.
type Config struct {
	// HTTPClient is used to send requests. If nil, a default
	// client is used.
	HTTPClient *http.Client

	// Timeout bounds a single check, including retries.
	Timeout time.Duration

	// RetryMax is the number of retries after a failed request.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Checker issues HTTP GET requests against web app addresses.
type Checker struct {
	client  *retryablehttp.Client
	timeout time.Duration
}

// NewChecker returns a Checker for the given configuration.
func NewChecker(cfg Config) *Checker {
	client := retryablehttp.NewClient()
	if cfg.HTTPClient != nil {
		client.HTTPClient = cfg.HTTPClient
	}
	client.RetryMax = defaultRetryMax
	if cfg.RetryMax > 0 {
		client.RetryMax = cfg.RetryMax
	}
	if cfg.RetryWaitMin > 0 {
		client.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		client.RetryWaitMax = cfg.RetryWaitMax
	}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = leveledLogger{logger}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Checker{
		client:  client,
		timeout: timeout,
	}
}

// CheckAddress requests url and returns a short description of the
// response. Failures are described in the result rather than returned.
func (c *Checker) CheckAddress(ctx context.Context, url string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Sprintf("invalid address %q: %v", url, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debugf("checking %s: %v", url, err)
		return fmt.Sprintf("error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyLength+1))
	if err != nil {
		return fmt.Sprintf("%s (reading body: %v)", resp.Status, err)
	}
	return summarise(resp.Status, body)
}

func summarise(status string, body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if len(body) > maxBodyLength {
		if len(text) > maxBodyLength {
			text = text[:maxBodyLength]
		}
		text = trimPartialRune(text) + "..."
	}
	if text == "" {
		return status
	}
	return status + ": " + text
}

// trimPartialRune drops a multi-byte character cut short at the end
// of text.
func trimPartialRune(text string) string {
	for i := 0; i < utf8.UTFMax && text != ""; i++ {
		r, size := utf8.DecodeLastRuneInString(text)
		if r != utf8.RuneError || size != 1 {
			break
		}
		text = text[:len(text)-1]
	}
	return text
}

// leveledLogger adapts a loggo.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger loggo.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorf("%s%s", msg, formatKeyValues(keysAndValues))
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf("%s%s", msg, formatKeyValues(keysAndValues))
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Tracef("%s%s", msg, formatKeyValues(keysAndValues))
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf("%s%s", msg, formatKeyValues(keysAndValues))
}

func formatKeyValues(keysAndValues []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}
