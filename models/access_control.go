package models

import "strings"

// Operation is a oneM2M request operation.
type Operation int

const (
	OperationCreate   Operation = 1
	OperationRetrieve Operation = 2
	OperationUpdate   Operation = 3
	OperationDelete   Operation = 4
	OperationNotify   Operation = 5
	// OperationDiscovery is a RETRIEVE with filter usage "discovery". It has
	// its own access control bit.
	OperationDiscovery Operation = 6
)

func (o Operation) String() string {
	switch o {
	case OperationCreate:
		return "CREATE"
	case OperationRetrieve:
		return "RETRIEVE"
	case OperationUpdate:
		return "UPDATE"
	case OperationDelete:
		return "DELETE"
	case OperationNotify:
		return "NOTIFY"
	case OperationDiscovery:
		return "DISCOVERY"
	default:
		return "UNKNOWN"
	}
}

// Permission is the access control operation bitmask ("acop").
type Permission int

const (
	PermissionCreate   Permission = 1
	PermissionRetrieve Permission = 2
	PermissionUpdate   Permission = 4
	PermissionDelete   Permission = 8
	PermissionNotify   Permission = 16
	PermissionDiscover Permission = 32
	PermissionAll      Permission = 63
)

// Permission returns the access control bit required by the operation.
func (o Operation) Permission() Permission {
	switch o {
	case OperationCreate:
		return PermissionCreate
	case OperationRetrieve:
		return PermissionRetrieve
	case OperationUpdate:
		return PermissionUpdate
	case OperationDelete:
		return PermissionDelete
	case OperationNotify:
		return PermissionNotify
	case OperationDiscovery:
		return PermissionDiscover
	default:
		return 0
	}
}

// Has reports whether all bits of other are set in p.
func (p Permission) Has(other Permission) bool {
	return other != 0 && p&other == other
}

// SetOfACRs is the "pv"/"pvs" attribute of an ACP.
type SetOfACRs struct {
	AccessControlRules []AccessControlRule `json:"acr"`
}

// AccessControlRule grants Operations to the listed Originators.
type AccessControlRule struct {
	Originators []string           `json:"acor"`
	Operations  Permission         `json:"acop"`
	Contexts    []AccessControlCtx `json:"acod,omitempty"`
}

// AccessControlCtx narrows a rule. Only child resource types are supported.
type AccessControlCtx struct {
	ChildResourceTypes []ResourceType `json:"chty,omitempty"`
}

// MatchesOriginator reports whether originator is covered by the rule's acor
// list. "all" matches everybody and a trailing "*" matches by prefix.
func (r AccessControlRule) MatchesOriginator(originator string) bool {
	for _, acor := range r.Originators {
		switch {
		case acor == "all":
			return true
		case acor == originator:
			return true
		case strings.HasSuffix(acor, "*") && strings.HasPrefix(originator, strings.TrimSuffix(acor, "*")):
			return true
		}
	}
	return false
}

// AllowsChildType reports whether the rule contexts permit creating a child of
// type ty. A rule without chty contexts allows every type.
func (r AccessControlRule) AllowsChildType(ty ResourceType) bool {
	restricted := false
	for _, ctx := range r.Contexts {
		if len(ctx.ChildResourceTypes) == 0 {
			continue
		}
		restricted = true
		for _, c := range ctx.ChildResourceTypes {
			if c == ty {
				return true
			}
		}
	}
	return !restricted
}
