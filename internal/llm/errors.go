package llm

import (
	"github.com/studypilot/backend/internal/generation"
)

// statusKind maps a provider HTTP status to a pipeline error kind:
// 401/403 credential rejected, 429 quota, 5xx unavailable. Anything else
// that arrived as an API error is treated as a transport-level problem.
func statusKind(status int) generation.Kind {
	switch {
	case status == 401 || status == 403:
		return generation.KindServiceUnauthorized
	case status == 429:
		return generation.KindRateLimited
	case status >= 500:
		return generation.KindServiceUnavailable
	default:
		return generation.KindNetworkError
	}
}
