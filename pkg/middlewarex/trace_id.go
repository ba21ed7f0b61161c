package middlewarex

import (
	"net/http"

	"github.com/rs/xid"

	"tg_escrow/pkg/contextx"
)

const headerNameTraceID = "X-Trace-Id"

// TraceID прокидывает идентификатор запроса из заголовка либо выдаёт
// новый. Он же возвращается клиенту и попадает в supportId ошибок.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(headerNameTraceID)

		if traceID == "" {
			traceID = xid.New().String()
		}

		ctx := contextx.WithTraceID(r.Context(), contextx.TraceID(traceID))

		w.Header().Set(headerNameTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
