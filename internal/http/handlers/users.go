package handlers

import (
	"strconv"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "github.com/richfield/wordClockApi/internal/db"
)

// ListUsers returns every account in the success/data envelope the
// display clients expect.
func ListUsers(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		users, err := dbpkg.AllUsers(db)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		if users == nil {
			users = []dbpkg.User{}
		}
		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{
			"message": "success",
			"data":    users,
		})
	}
}

// GetUser returns a single account by id. The data field is an array,
// empty when the id matches nothing.
func GetUser(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		idStr, _ := ctx.UserValue("id").(string)
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid user ID")
			return
		}

		user, err := dbpkg.FindByID(db, uint(id))
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}

		data := []dbpkg.User{}
		if user != nil {
			data = append(data, *user)
		}
		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{
			"message": "success",
			"data":    data,
		})
	}
}
