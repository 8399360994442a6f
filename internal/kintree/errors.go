package kintree

import "fmt"

// DuplicateLinkError reports two links sharing one name.
type DuplicateLinkError struct {
	Link string
}

func (e *DuplicateLinkError) Error() string {
	return fmt.Sprintf("duplicate link %q", e.Link)
}

// UnknownLinkError reports a joint whose parent or child name resolves to no
// known link.
type UnknownLinkError struct {
	Joint string
	Link  string
}

func (e *UnknownLinkError) Error() string {
	return fmt.Sprintf("joint %q references unknown link %q", e.Joint, e.Link)
}

// MultipleParentsError reports a link that is the child of more than one
// joint.
type MultipleParentsError struct {
	Link string
}

func (e *MultipleParentsError) Error() string {
	return fmt.Sprintf("link %q has multiple parent joints", e.Link)
}

// CycleError reports a cyclic parent→child relation, naming one link on the
// cycle.
type CycleError struct {
	Link string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("kinematic cycle through link %q", e.Link)
}
