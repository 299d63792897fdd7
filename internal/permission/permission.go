// Package permission decides whether a requester may perform an action on a
// resource. Handlers and use cases ask a Policy instead of comparing ids
// themselves.
package permission

import "net/http"

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// IsSafe reports whether the action cannot mutate state.
func (a Action) IsSafe() bool {
	return a == ActionRead
}

// ActionFromMethod maps an HTTP method onto an action. GET, HEAD and OPTIONS
// are the safe set.
func ActionFromMethod(method string) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	case http.MethodPost:
		return ActionCreate
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionUpdate
	}
}

// Owned is anything with a single owning identity.
type Owned interface {
	OwnerID() string
}

type Policy interface {
	Allow(requesterID string, resource Owned, action Action) bool
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(requesterID string, resource Owned, action Action) bool

func (f PolicyFunc) Allow(requesterID string, resource Owned, action Action) bool {
	return f(requesterID, resource, action)
}

// OwnerOrReadOnly lets anyone read and only the owner write.
var OwnerOrReadOnly Policy = PolicyFunc(func(requesterID string, resource Owned, action Action) bool {
	if action.IsSafe() {
		return true
	}
	if requesterID == "" || resource == nil {
		return false
	}
	return resource.OwnerID() == requesterID
})
