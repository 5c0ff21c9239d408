// Package backend carries the request/response plumbing shared by the AI
// service clients: JSON dispatch over the single-attempt HTTP client and
// classification of backend failures into the canonical error taxonomy.
package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/httpclient"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

// maxBodyBytes caps response reads; image payloads can carry base64 content.
const maxBodyBytes = 32 << 20

// PostJSON marshals body, posts it, and returns the response bytes. Non-2xx
// responses come back as an AppError classified from the status and the
// backend's error body.
func PostJSON(ctx context.Context, hc *httpclient.Client, url string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode request body")
	}
	resp, err := hc.PostJSON(ctx, url, payload)
	if err != nil {
		return nil, err
	}
	return readBody(resp)
}

// Get fetches url and returns the response bytes, classifying failures the
// same way PostJSON does.
func Get(ctx context.Context, hc *httpclient.Client, url string) ([]byte, error) {
	resp, err := hc.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return readBody(resp)
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConnectionError, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, StatusError(resp.StatusCode, data)
	}
	return data, nil
}

// StatusError builds an AppError from a non-2xx response, honoring any
// taxonomy code the backend declared in its error body.
func StatusError(status int, body []byte) *apperrors.AppError {
	code := firstString(body, "error.code", "detail.error.code")
	message := firstString(body, "error.message", "detail.error.message", "detail", "message")
	if message == "" {
		message = http.StatusText(status)
	}
	err := apperrors.FromStatus(status, code, message)
	if s := firstString(body, "error.suggestion", "detail.error.suggestion"); s != "" {
		err = err.WithSuggestion(s)
	}
	return err
}

// Failure builds an AppError from a 2xx body whose success flag is false.
// Codes outside the taxonomy are reported as AI_SERVICE_ERROR so the frontend
// never sees a retryable flag we did not assign.
func Failure(body []byte) *apperrors.AppError {
	code := firstString(body, "error.code")
	message := firstString(body, "error.message", "message")
	if message == "" {
		message = "backend reported failure"
	}
	if !apperrors.Known(code) {
		code = apperrors.CodeAIServiceError
	}
	err := apperrors.New(code, message)
	if s := firstString(body, "error.suggestion"); s != "" {
		err = err.WithSuggestion(s)
	}
	return err
}

// Succeeded reports the body's success flag; a missing flag on a 2xx response
// counts as success.
func Succeeded(body []byte) bool {
	v := gjson.GetBytes(body, "success")
	return !v.Exists() || v.Bool()
}

func firstString(body []byte, paths ...string) string {
	for _, p := range paths {
		if v := gjson.GetBytes(body, p); v.Exists() && v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
