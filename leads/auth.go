package leads

import (
	"context"

	"leadsweb/leadsapi"
	"leadsweb/session"

	"github.com/rohanthewiz/logger"
)

// Login messages
const (
	MsgInvalidLogin = "Invalid email or password"
	MsgUnreachable  = "Unable to reach the server"
	MsgSessionSave  = "Unable to save session"
)

// Authenticator is the part of the backend client used by Login
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Login exchanges credentials for a token and stores it.
// Email and password go to the backend as typed. On any failure the store
// is left without a token so a previous session cannot survive a refused login.
func Login(ctx context.Context, auth Authenticator, store session.Store, email, password string) Result {
	token, err := auth.Login(ctx, email, password)
	if err != nil {
		if cerr := store.Clear(); cerr != nil {
			logger.LogErr(cerr, "Failed to clear session token")
		}
		if leadsapi.IsStatus(err) {
			logger.Info("Login refused", "email", email)
			return Result{Message: MsgInvalidLogin}
		}
		logger.LogErr(err, "Login request failed")
		return Result{Message: MsgUnreachable}
	}

	if err := store.Set(token); err != nil {
		logger.LogErr(err, "Failed to store session token")
		return Result{Message: MsgSessionSave}
	}

	logger.Info("Logged in", "email", email)
	return Result{Nav: NavList}
}
