package ctx

import (
	"github.com/valyala/fasthttp"

	"github.com/richfield/wordClockApi/internal/auth"
)

const ClaimsKey = "claims"

func SetClaims(ctx *fasthttp.RequestCtx, claims *auth.Claims) {
	ctx.SetUserValue(ClaimsKey, claims)
}

func ClaimsFromCtx(ctx *fasthttp.RequestCtx) (*auth.Claims, bool) {
	v := ctx.UserValue(ClaimsKey)
	if v == nil {
		return nil, false
	}
	c, ok := v.(*auth.Claims)
	return c, ok
}
