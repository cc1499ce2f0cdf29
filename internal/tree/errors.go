package tree

import "errors"

var (
	// ErrParentCount indicates AddChild was called with a parent list that
	// is not one or two persons long.
	ErrParentCount = errors.New("tree: child must have one or two parents")
	// ErrAlreadyPartnered indicates SetPartner would overwrite an existing
	// partner link.
	ErrAlreadyPartnered = errors.New("tree: person already has a partner")
	// ErrUnknownPerson indicates a handle that was never issued by this tree.
	ErrUnknownPerson = errors.New("tree: unknown person")
)
