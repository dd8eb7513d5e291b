package treeview

import "fmt"

// ConsistencyError reports that the host broke the notification contract,
// for example by reparenting under an item that was never observed. The
// engine panics with it; there is no recovery that keeps the registry sound.
type ConsistencyError struct {
	Op   string // operation that detected the problem
	Item any    // item identity involved
	Role Role   // widget role involved, or RoleNone
	Msg  string
}

func (e *ConsistencyError) Error() string {
	if e.Role == RoleNone {
		return fmt.Sprintf("treeview: %s %v: %s", e.Op, e.Item, e.Msg)
	}
	return fmt.Sprintf("treeview: %s %v (%s): %s", e.Op, e.Item, e.Role, e.Msg)
}

func violation(op string, item any, role Role, format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Op: op, Item: item, Role: role, Msg: fmt.Sprintf(format, args...)}
}
