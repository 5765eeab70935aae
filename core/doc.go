// Package core contains the remote authentication contracts, the
// RemoteAuthentication adapter and its domain errors. Transport
// implementations live in lower-level packages and depend on core; core must
// not depend on a concrete transport.
package core
