package kubeauth

import (
	"errors"
	"fmt"
)

// ErrCredentialNotFound is matched by errors.Is for every
// CredentialNotFoundError.
var ErrCredentialNotFound = errors.New("credential not found")

type CredentialNotFoundError struct {
	ID string
}

func (e *CredentialNotFoundError) Error() string {
	return fmt.Sprintf("[withkube] unable to find credentials with id '%s'", e.ID)
}

func (e *CredentialNotFoundError) Is(target error) bool {
	return target == ErrCredentialNotFound
}

// UnsupportedCredentialTypeError is returned when no converter is registered
// for the kind of a stored credential.
type UnsupportedCredentialTypeError struct {
	ID   string
	Kind Kind
}

func (e *UnsupportedCredentialTypeError) Error() string {
	return fmt.Sprintf("[withkube] unsupported credentials type %s", e.Kind)
}

// AuthBuildError wraps a failure to turn a credential of a supported kind
// into material, such as a malformed kubeconfig or a wrong keystore
// passphrase.
type AuthBuildError struct {
	ID  string
	Err error
}

func (e *AuthBuildError) Error() string {
	return fmt.Sprintf("[withkube] unable to build authentication from credentials '%s': %s", e.ID, e.Err)
}

func (e *AuthBuildError) Unwrap() error {
	return e.Err
}
