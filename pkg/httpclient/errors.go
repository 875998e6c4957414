package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Humanoid-1/Web-backend/pkg/errors"
)

// errorBody accepts both {"error":{"code","message"}} and the gateway style
// {"error":{"code","description"}}.
type errorBody struct {
	Error *struct {
		Code        string `json:"code"`
		Message     string `json:"message"`
		Description string `json:"description"`
	} `json:"error"`
}

// ParseResponseError consumes and closes a non-2xx response and maps it to an AppError.
func ParseResponseError(resp *http.Response, service string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", service, resp.StatusCode, err)
	}

	code, message := "", string(raw)
	var body errorBody
	if json.Unmarshal(raw, &body) == nil && body.Error != nil {
		code = body.Error.Code
		message = body.Error.Message
		if message == "" {
			message = body.Error.Description
		}
	}
	msg := fmt.Sprintf("%s: %s", service, message)

	switch status := resp.StatusCode; {
	case status == http.StatusNotFound:
		return apperrors.NotFound(service, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(msg)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		// Our credentials were rejected; the caller cannot fix that.
		return apperrors.ServiceUnavailable(msg, fmt.Errorf("%s rejected credentials (%d)", service, status))
	case status == http.StatusConflict:
		return apperrors.Conflict(msg)
	case status == http.StatusUnprocessableEntity:
		return apperrors.PaymentFailed(msg)
	case status == http.StatusTooManyRequests:
		return apperrors.TooManyRequests(msg)
	case status >= 500:
		return apperrors.ServiceUnavailable(msg, fmt.Errorf("%s status %d code %q", service, status, code))
	default:
		return fmt.Errorf("%s returned unexpected status %d: %s", service, status, message)
	}
}
