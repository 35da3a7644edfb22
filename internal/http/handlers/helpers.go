package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/richfield/wordClockApi/internal/auth"
	httpctx "github.com/richfield/wordClockApi/internal/http/ctx"
)

// MustClaims returns the verified claims from context, or sends 401 and
// returns (nil, false). Only reachable when the auth gate was skipped.
func MustClaims(ctx *fasthttp.RequestCtx) (*auth.Claims, bool) {
	claims, ok := httpctx.ClaimsFromCtx(ctx)
	if !ok || claims == nil {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString("unauthorized")
		return nil, false
	}
	return claims, true
}

func jsonResponse(ctx *fasthttp.RequestCtx, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString("encoding error")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func errResponse(ctx *fasthttp.RequestCtx, status int, msg string) {
	jsonResponse(ctx, status, map[string]any{"error": msg})
}

func RequestLogger(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		log.Printf("%s %s -> %d (%s) ip=%s", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start), ctx.RemoteAddr())
	}
}
