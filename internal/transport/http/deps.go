package http

import (
	"github.com/go-notes-api/internal/infrastructure/dynamo"
	"github.com/go-notes-api/internal/infrastructure/google"
	jwtinfra "github.com/go-notes-api/internal/infrastructure/jwt"
	redisinfra "github.com/go-notes-api/internal/infrastructure/redis"
	"github.com/go-notes-api/internal/infrastructure/ses"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo      *dynamo.UserRepo
	OtpRepo       *dynamo.OtpRepo
	NoteRepo      *dynamo.NoteRepo
	OtpLimiter    *redisinfra.Limiter
	Mailer        ses.Mailer
	TokenVerifier google.TokenVerifier
	JWTProvider   *jwtinfra.Provider
}
