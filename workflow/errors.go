package workflow

import (
	"errors"
	"fmt"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

// Sentinel errors for classifying transition failures with errors.Is.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorized      = errors.New("unauthorized")
)

type ErrorKind int

const (
	KindInvalid ErrorKind = iota
	KindUnauthorized
)

// TransitionError reports a refused status change, carrying the attempted
// edge and actor role for logging and response bodies.
type TransitionError struct {
	From models.ProjectStatus
	To   models.ProjectStatus
	Role Role
	Kind ErrorKind
}

func (e *TransitionError) Error() string {
	if e.Kind == KindUnauthorized {
		return fmt.Sprintf("role %q may not move project from %q to %q", e.Role, e.From, e.To)
	}
	return fmt.Sprintf("no transition from %q to %q", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	switch target {
	case ErrInvalidTransition:
		return e.Kind == KindInvalid
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	}
	return false
}
