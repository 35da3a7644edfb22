package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "github.com/richfield/wordClockApi/internal/db"
	"github.com/richfield/wordClockApi/internal/settings"
)

// GetSettings returns the authenticated account's resolved settings
// document: the stored bytes when complete, the system default
// otherwise. The substitution happens on every read and is never
// written back.
func GetSettings(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		claims, ok := MustClaims(ctx)
		if !ok {
			return
		}

		user, err := dbpkg.FindByID(db, claims.UserID)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}

		var stored []byte
		if user != nil {
			stored = []byte(user.Settings)
		}

		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetContentType("application/json")
		ctx.SetBody(settings.Resolve(stored))
	}
}

// UpdateSettings replaces the stored document with exactly the
// submitted body, shape unchecked. An incomplete document stays in
// storage and falls back to defaults on the next read.
func UpdateSettings(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		claims, ok := MustClaims(ctx)
		if !ok {
			return
		}

		body := ctx.PostBody()
		if err := dbpkg.UpdateSettings(db, claims.UserID, body); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}

		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetContentType("application/json")
		ctx.SetBody(body)
	}
}
