package errors

import (
	"net/http"
	"testing"
)

func TestRetryableFlags(t *testing.T) {
	cases := map[string]bool{
		CodeGridTooSmall:     true,
		CodeMissingData:      true,
		CodeAIServiceError:   true,
		CodeInvalidRequest:   false,
		CodeRateLimited:      true,
		CodeCreditsExhausted: false,
		CodeTimeout:          true,
		CodeConnectionError:  true,
		CodeInternal:         false,
		"SOMETHING_NEW":      false,
	}
	for code, want := range cases {
		if got := Retryable(code); got != want {
			t.Errorf("Retryable(%s) = %v, want %v", code, got, want)
		}
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		declared string
		want     string
	}{
		{"declared code wins", http.StatusBadRequest, CodeMissingData, CodeMissingData},
		{"declared grid code wins over 4xx", http.StatusUnprocessableEntity, CodeGridTooSmall, CodeGridTooSmall},
		{"unknown declared falls through", http.StatusBadRequest, "HTTP_400", CodeInvalidRequest},
		{"429", http.StatusTooManyRequests, "", CodeRateLimited},
		{"402", http.StatusPaymentRequired, "", CodeCreditsExhausted},
		{"500", http.StatusInternalServerError, "", CodeAIServiceError},
		{"503", http.StatusServiceUnavailable, "", CodeAIServiceError},
		{"unclassifiable", 0, "", CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromStatus(tt.status, tt.declared, "boom")
			if got.Code != tt.want {
				t.Errorf("FromStatus(%d, %q) = %s, want %s", tt.status, tt.declared, got.Code, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := New(CodeConnectionError, "refused")
	err := Wrap(cause, CodeAIServiceError, "chart backend unavailable")
	if err.Unwrap() != cause {
		t.Fatal("Unwrap did not return cause")
	}
	if !Is(err, CodeAIServiceError) {
		t.Fatal("Is failed for wrapped error")
	}
	if !err.Retryable() {
		t.Fatal("AI_SERVICE_ERROR should be retryable")
	}
}
