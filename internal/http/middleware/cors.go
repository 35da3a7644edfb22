package middleware

import (
	"fmt"

	"github.com/valyala/fasthttp"
)

// CORS enforces an explicit origin allow-list. Requests without an
// Origin header (same-origin, curl, health checks) pass through
// untouched; requests from unlisted origins are rejected.
func CORS(allowedOrigins []string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek("Origin"))
			if origin == "" {
				next(ctx)
				return
			}

			if _, ok := allowed[origin]; !ok {
				ctx.SetStatusCode(fasthttp.StatusForbidden)
				ctx.SetBodyString(fmt.Sprintf("The CORS policy for this site does not allow access from the specified Origin: %s", origin))
				return
			}

			ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
			ctx.Response.Header.Set("Vary", "Origin")

			if string(ctx.Method()) == fasthttp.MethodOptions {
				ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-access-token")
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			next(ctx)
		}
	}
}
