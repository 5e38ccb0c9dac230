package gitwire

import (
	"errors"
	"fmt"
)

// Sentinel errors comparable with errors.Is. Each pairs with a structured
// type below carrying the offending detail, comparable with errors.As.
var (
	// ErrInvalidAdvertisement is returned for a malformed ref line, a
	// duplicate ref name, a duplicate peel, or a duplicate ls-refs
	// attribute.
	ErrInvalidAdvertisement = errors.New("gitwire: invalid advertisement")

	// ErrNoRemoteRepository is returned when the stream closes with no
	// advertisement at all.
	ErrNoRemoteRepository = errors.New("gitwire: no remote repository")

	// ErrRemoteDoesNotHaveSpec is returned when an explicit (non-wildcard)
	// refspec source is absent from the advertisement.
	ErrRemoteDoesNotHaveSpec = errors.New("gitwire: remote does not have refspec source")

	// ErrRemoteBranchNotFound is returned when a caller-required initial
	// branch is absent from the advertisement.
	ErrRemoteBranchNotFound = errors.New("gitwire: remote branch not found")

	// ErrIncompleteObjectGraph is returned when the post-transfer
	// connectivity check still finds a wanted object missing.
	ErrIncompleteObjectGraph = errors.New("gitwire: incomplete object graph after fetch")

	// ErrTimeout is returned when a blocked read or write exceeds its
	// configured deadline.
	ErrTimeout = errors.New("gitwire: operation timed out")

	// ErrUnableToCheckConnectivity is returned when the connectivity check
	// itself fails with an I/O error, as opposed to reporting a clean miss.
	ErrUnableToCheckConnectivity = errors.New("gitwire: unable to check connectivity")
)

// RemoteRepositoryError wraps an "ERR <msg>" line sent by the peer.
type RemoteRepositoryError struct {
	Message string
}

func (e *RemoteRepositoryError) Error() string {
	return fmt.Sprintf("gitwire: remote repository error: %s", e.Message)
}

// Is makes errors.Is match any *RemoteRepositoryError target, whatever its
// message, since the message varies per instance.
func (e *RemoteRepositoryError) Is(target error) bool {
	_, ok := target.(*RemoteRepositoryError)
	return ok
}

// TransportFailure wraps a non-protocol transport or I/O error. The fetch
// planner uses this to distinguish "something broke in the pipe" from the
// protocol-level sentinels above, which it propagates verbatim instead.
type TransportFailure struct {
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("gitwire: transport failure: %s", e.Err)
}

func (e *TransportFailure) Unwrap() error { return e.Err }

func (e *TransportFailure) Is(target error) bool {
	_, ok := target.(*TransportFailure)
	return ok
}

// WrapTransportFailure wraps err as a *TransportFailure, unless it already
// is one or is one of the protocol-level sentinels that must propagate
// verbatim (RemoteRepositoryError, ErrNoRemoteRepository,
// ErrRemoteBranchNotFound).
func WrapTransportFailure(err error) error {
	if err == nil {
		return nil
	}
	var rre *RemoteRepositoryError
	var tf *TransportFailure
	if errors.As(err, &rre) || errors.As(err, &tf) ||
		errors.Is(err, ErrNoRemoteRepository) || errors.Is(err, ErrRemoteBranchNotFound) {
		return err
	}
	return &TransportFailure{Err: err}
}
