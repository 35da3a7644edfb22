package middleware

import (
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/richfield/wordClockApi/internal/auth"
	"github.com/richfield/wordClockApi/internal/config"
	httpctx "github.com/richfield/wordClockApi/internal/http/ctx"
)

func testIssuer() *auth.Issuer {
	return auth.NewIssuer(&config.Config{TokenSecret: "test-secret"})
}

func newRequestCtx(method, uri string, body []byte) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != nil {
		req.SetBody(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func TestExtractToken_Locations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		setup func() *fasthttp.RequestCtx
		want  string
	}{
		{
			name: "body field",
			setup: func() *fasthttp.RequestCtx {
				return newRequestCtx("POST", "/api/settings", []byte(`{"token":"from-body"}`))
			},
			want: "from-body",
		},
		{
			name: "query param",
			setup: func() *fasthttp.RequestCtx {
				return newRequestCtx("GET", "/api/settings?token=from-query", nil)
			},
			want: "from-query",
		},
		{
			name: "x-access-token header",
			setup: func() *fasthttp.RequestCtx {
				ctx := newRequestCtx("GET", "/api/settings", nil)
				ctx.Request.Header.Set("x-access-token", "from-header")
				return ctx
			},
			want: "from-header",
		},
		{
			name: "authorization bearer",
			setup: func() *fasthttp.RequestCtx {
				ctx := newRequestCtx("GET", "/api/settings", nil)
				ctx.Request.Header.Set("Authorization", "Bearer from-bearer")
				return ctx
			},
			want: "from-bearer",
		},
		{
			name: "body wins over query and headers",
			setup: func() *fasthttp.RequestCtx {
				ctx := newRequestCtx("POST", "/api/settings?token=from-query", []byte(`{"token":"from-body"}`))
				ctx.Request.Header.Set("x-access-token", "from-header")
				return ctx
			},
			want: "from-body",
		},
		{
			name: "absent",
			setup: func() *fasthttp.RequestCtx {
				return newRequestCtx("GET", "/api/settings", nil)
			},
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractToken(tc.setup())
			if got != tc.want {
				t.Fatalf("extractToken: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestTokenAuth_NoToken(t *testing.T) {
	t.Parallel()

	called := false
	handler := TokenAuth(testIssuer())(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := newRequestCtx("GET", "/api/me", nil)
	handler(ctx)

	if called {
		t.Fatalf("downstream handler invoked without a token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusForbidden {
		t.Fatalf("status: got %d want %d", ctx.Response.StatusCode(), fasthttp.StatusForbidden)
	}
	if string(ctx.Response.Body()) != "A token is required for authentication" {
		t.Fatalf("unexpected body: %s", ctx.Response.Body())
	}
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	called := false
	handler := TokenAuth(testIssuer())(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := newRequestCtx("GET", "/api/me", nil)
	ctx.Request.Header.Set("x-access-token", "tampered.token.value")
	handler(ctx)

	if called {
		t.Fatalf("downstream handler invoked with an invalid token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", ctx.Response.StatusCode(), fasthttp.StatusUnauthorized)
	}
	if string(ctx.Response.Body()) != "Invalid Token" {
		t.Fatalf("unexpected body: %s", ctx.Response.Body())
	}
}

func TestTokenAuth_RotatesAndInjectsClaims(t *testing.T) {
	t.Parallel()

	issuer := testIssuer()
	token, err := issuer.Issue(9, "alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	var seen *auth.Claims
	handler := TokenAuth(issuer)(func(ctx *fasthttp.RequestCtx) {
		seen, _ = httpctx.ClaimsFromCtx(ctx)
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	ctx := newRequestCtx("GET", "/api/me", nil)
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status: got %d want 200", ctx.Response.StatusCode())
	}
	if seen == nil || seen.UserID != 9 || seen.Username != "alice" {
		t.Fatalf("claims not injected: %+v", seen)
	}

	rotated := string(ctx.Response.Header.Peek("Token"))
	if rotated == "" {
		t.Fatalf("rotated token missing from Token response header")
	}
	if rotated == token {
		t.Fatalf("rotated token identical to the presented token")
	}
	if exposed := string(ctx.Response.Header.Peek("Access-Control-Expose-Headers")); exposed != "Token" {
		t.Fatalf("Access-Control-Expose-Headers: got %q want %q", exposed, "Token")
	}

	rotatedClaims, err := issuer.Verify(rotated)
	if err != nil {
		t.Fatalf("rotated token does not verify: %v", err)
	}
	if rotatedClaims.UserID != 9 {
		t.Fatalf("rotated claims user: got %d want 9", rotatedClaims.UserID)
	}
	origClaims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("original token does not verify: %v", err)
	}
	if !rotatedClaims.ExpiresAt.After(origClaims.ExpiresAt.Time) {
		t.Fatalf("rotated expiry %v not after original %v", rotatedClaims.ExpiresAt, origClaims.ExpiresAt)
	}
}
