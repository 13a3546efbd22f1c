package cli

import (
	"errors"

	"leadsweb/leadsapi"
	"leadsweb/session"

	"github.com/rohanthewiz/logger"
)

var errNotLoggedIn = errors.New("not logged in: run 'leadsweb login' first")

var errSessionExpired = errors.New("session expired or rejected: run 'leadsweb login' again")

// backendError turns a 401/403 into errSessionExpired and drops the dead token
func backendError(st session.Store, err error) error {
	if !leadsapi.IsUnauthorized(err) {
		return err
	}
	if cerr := st.Clear(); cerr != nil {
		logger.LogErr(cerr, "failed to clear session")
	}
	return errSessionExpired
}
