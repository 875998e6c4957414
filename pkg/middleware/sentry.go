package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/Humanoid-1/Web-backend/pkg/logger"
)

// Sentry opens a Sentry transaction per request and attaches a cloned hub to the
// context so errors captured downstream carry request tags. Panics are reported
// and re-raised for Recovery to answer. It is a pass-through when Sentry was
// never initialised.
func Sentry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sentry.CurrentHub().Client() == nil {
			next.ServeHTTP(w, r)
			return
		}

		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}

		options := []sentry.SpanOption{
			sentry.WithOpName("http.server"),
			sentry.WithTransactionSource(sentry.SourceURL),
		}
		if trace := r.Header.Get(sentry.SentryTraceHeader); trace != "" {
			options = append(options, sentry.ContinueFromHeaders(trace, r.Header.Get(sentry.SentryBaggageHeader)))
		}

		ctx := sentry.SetHubOnContext(r.Context(), hub)
		tx := sentry.StartTransaction(ctx, r.Method+" "+r.URL.Path, options...)
		defer tx.Finish()

		hub.Scope().SetRequest(r)
		if id := logger.CorrelationIDFromContext(r.Context()); id != "" {
			hub.Scope().SetTag("correlation_id", id)
		}

		defer func() {
			if rec := recover(); rec != nil {
				tx.Status = sentry.SpanStatusInternalError
				hub.RecoverWithContext(tx.Context(), rec)
				panic(rec)
			}
		}()

		sr := newStatusRecorder(w)
		next.ServeHTTP(sr, r.WithContext(tx.Context()))

		if c := ClaimsFromContext(r.Context()); c != nil {
			hub.Scope().SetUser(sentry.User{ID: c.UserID, Email: c.Email})
		}
		tx.Status = spanStatus(sr.status)
		tx.SetData("http.response.status_code", sr.status)
	})
}

func spanStatus(status int) sentry.SpanStatus {
	switch {
	case status < 400:
		return sentry.SpanStatusOK
	case status == http.StatusUnauthorized:
		return sentry.SpanStatusUnauthenticated
	case status == http.StatusForbidden:
		return sentry.SpanStatusPermissionDenied
	case status == http.StatusNotFound:
		return sentry.SpanStatusNotFound
	case status == http.StatusConflict:
		return sentry.SpanStatusAlreadyExists
	case status == http.StatusTooManyRequests:
		return sentry.SpanStatusResourceExhausted
	case status < 500:
		return sentry.SpanStatusInvalidArgument
	case status == http.StatusServiceUnavailable:
		return sentry.SpanStatusUnavailable
	case status == http.StatusGatewayTimeout:
		return sentry.SpanStatusDeadlineExceeded
	default:
		return sentry.SpanStatusInternalError
	}
}
