package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/richfield/wordClockApi/internal/auth"
	dbpkg "github.com/richfield/wordClockApi/internal/db"
)

type credentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// Register creates a new account. The username pre-check produces the
// friendly "already exists" message; the store's unique index is what
// actually guarantees uniqueness under concurrent registration.
func Register(db *gorm.DB, hasher *auth.Hasher) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var creds credentials
		if err := json.Unmarshal(ctx.PostBody(), &creds); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		if creds.Username == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "Username is missing")
			return
		}

		existing, err := dbpkg.FindByUsername(db, creds.Username)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		if existing != nil {
			jsonResponse(ctx, fasthttp.StatusBadRequest, "Record already exists. Please login")
			return
		}

		hash, salt, err := hasher.Hash(creds.Password)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}

		user := &dbpkg.User{
			Username:     creds.Username,
			PasswordHash: hash,
			Salt:         salt,
			DateCreated:  time.Now(),
			Settings:     datatypes.JSON("{}"),
		}
		if err := dbpkg.CreateUser(db, user); err != nil {
			// Duplicate insert that slipped past the pre-check lands here.
			jsonResponse(ctx, fasthttp.StatusBadRequest, "Record already exists. Please login")
			return
		}

		jsonResponse(ctx, fasthttp.StatusCreated, "Success")
	}
}

// Login verifies credentials and answers with the account record plus a
// fresh short-lived token attached. The token is not persisted; active
// clients extend it through rotation on every authorized call.
func Login(db *gorm.DB, hasher *auth.Hasher, issuer *auth.Issuer) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var creds credentials
		if err := json.Unmarshal(ctx.PostBody(), &creds); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		if creds.Username == "" || creds.Password == "" {
			jsonResponse(ctx, fasthttp.StatusBadRequest, "All input is required")
			return
		}

		user, err := dbpkg.FindByUsername(db, creds.Username)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		if user == nil {
			jsonResponse(ctx, fasthttp.StatusBadRequest, "User not found")
			return
		}

		if !hasher.Verify(creds.Password, user.PasswordHash) {
			jsonResponse(ctx, fasthttp.StatusBadRequest, "No Match")
			return
		}

		token, err := issuer.Issue(user.ID, user.Username)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to sign token")
			return
		}

		if err := dbpkg.TouchLogin(db, user.ID); err != nil {
			log.Printf("warning: failed to record login time for user %d: %v", user.ID, err)
		}

		user.Token = token
		jsonResponse(ctx, fasthttp.StatusOK, []dbpkg.User{*user})
	}
}

// Me returns the username of the authenticated account.
func Me(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		claims, ok := MustClaims(ctx)
		if !ok {
			return
		}

		user, err := dbpkg.FindByID(db, claims.UserID)
		if err != nil || user == nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load user")
			return
		}

		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{"Username": user.Username})
	}
}
