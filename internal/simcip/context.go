package simcip

import "github.com/musiguello/logixsim/internal/simsession"

// Context bundles a connection's session state with the handle generator
// its handlers draw session/connection ids from.
type Context struct {
	Session   *simsession.Context
	HandleGen HandleGenerator
}
