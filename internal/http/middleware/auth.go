package middleware

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/richfield/wordClockApi/internal/auth"
	httpctx "github.com/richfield/wordClockApi/internal/http/ctx"
)

// extractToken pulls a bearer token from the request. Locations are
// tried in order: body field, query parameter, x-access-token header,
// Authorization header. First present value wins.
func extractToken(ctx *fasthttp.RequestCtx) string {
	if body := ctx.PostBody(); len(body) > 0 {
		var fields struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(body, &fields); err == nil && fields.Token != "" {
			return fields.Token
		}
	}

	if token := string(ctx.QueryArgs().Peek("token")); token != "" {
		return token
	}

	if token := string(ctx.Request.Header.Peek("x-access-token")); token != "" {
		return token
	}

	if header := string(ctx.Request.Header.Peek("Authorization")); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	return ""
}

// Authorize resolves the request's token to verified claims and a
// rotated replacement token. It does not touch the response; attaching
// the new token is the caller's decision.
func Authorize(ctx *fasthttp.RequestCtx, issuer *auth.Issuer) (*auth.Claims, string, error) {
	token := extractToken(ctx)
	if token == "" {
		return nil, "", auth.ErrNoToken
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		return nil, "", err
	}

	newToken, err := issuer.Rotate(claims)
	if err != nil {
		return nil, "", err
	}

	return claims, newToken, nil
}

// TokenAuth protects a route with bearer-token authentication. On
// success the verified claims are placed on the request context and the
// rotated token is exposed through the Token response header so
// cross-origin clients can pick it up.
func TokenAuth(issuer *auth.Issuer) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			claims, newToken, err := Authorize(ctx, issuer)
			if err != nil {
				if errors.Is(err, auth.ErrNoToken) {
					ctx.SetStatusCode(fasthttp.StatusForbidden)
					ctx.SetBodyString("A token is required for authentication")
					return
				}
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				ctx.SetBodyString("Invalid Token")
				return
			}

			ctx.Response.Header.Set("Token", newToken)
			ctx.Response.Header.Set("Access-Control-Expose-Headers", "Token")

			httpctx.SetClaims(ctx, claims)
			next(ctx)
		}
	}
}
