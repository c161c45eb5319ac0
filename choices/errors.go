package choices

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports invalid or contradictory construction arguments.
	ErrConfiguration = errors.New("invalid choices configuration")

	// ErrMissingID reports a mapping entry without an "id" key.
	ErrMissingID = fmt.Errorf("%w: missing id", ErrConfiguration)

	// ErrDuplicateChoice reports a code name or id used more than once.
	ErrDuplicateChoice = errors.New("duplicate choice")

	// ErrUnorderableChoices reports ids that cannot be ordered against each other.
	ErrUnorderableChoices = errors.New("choice ids are not mutually ordered")

	// ErrUnknownChoice reports a code name that is not part of the table.
	ErrUnknownChoice = errors.New("unknown choice")

	// ErrChoiceNotFound reports an id that no entry carries.
	ErrChoiceNotFound = errors.New("choice not found")

	// ErrUnknownAttribute reports an attribute an otherwise matched entry does not have.
	ErrUnknownAttribute = errors.New("unknown choice attribute")
)
