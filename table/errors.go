package table

import "fmt"

// InternalError models spec §7 class 2 (INTERNAL_ERROR): a null collaborator,
// an out-of-range row, merging into a non-superset type, deleting from an
// empty table, or similarly corrupt caller state. It indicates a bug in the
// caller or a prior corrupting operation; callers are not expected to
// recover from it locally.
type InternalError struct {
	Op  string
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("table: internal error in %s: %s", e.Op, e.Msg)
}

// OutOfMemoryError models spec §7 class 1 (OUT_OF_MEMORY). Go's allocator
// does not hand back an error code on failure the way the source's
// ecs_os_calloc does — a real allocation failure panics the process, which
// already matches "fatal by default... process-level abort." The one place
// this package can detect an allocation-adjacent failure before the runtime
// would panic anyway is an element-count/size overflow, guarded explicitly
// in newData and Column.grow's callers.
type OutOfMemoryError struct {
	Op  string
	Msg string
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("table: out of memory in %s: %s", e.Op, e.Msg)
}

func internalf(op, format string, args ...any) *InternalError {
	return &InternalError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
