package models

import (
	"strconv"
	"strings"
)

// ResourceType is the oneM2M numeric resource type (the "ty" attribute).
type ResourceType int

const (
	TypeUnknown      ResourceType = 0
	TypeACP          ResourceType = 1
	TypeAE           ResourceType = 2
	TypeContainer    ResourceType = 3
	TypeContentInst  ResourceType = 4
	TypeCSEBase      ResourceType = 5
	TypeSubscription ResourceType = 23
)

var shortNames = map[ResourceType]string{
	TypeACP:          "m2m:acp",
	TypeAE:           "m2m:ae",
	TypeContainer:    "m2m:cnt",
	TypeContentInst:  "m2m:cin",
	TypeCSEBase:      "m2m:cb",
	TypeSubscription: "m2m:sub",
}

var idPrefixes = map[ResourceType]string{
	TypeACP:          "acp",
	TypeAE:           "ae",
	TypeContainer:    "cnt",
	TypeContentInst:  "cin",
	TypeCSEBase:      "cb",
	TypeSubscription: "sub",
}

// allowedChildren lists the resource types that may be created under a parent
// of the given type.
var allowedChildren = map[ResourceType][]ResourceType{
	TypeCSEBase:   {TypeAE, TypeContainer, TypeACP, TypeSubscription},
	TypeAE:        {TypeContainer, TypeACP, TypeSubscription},
	TypeContainer: {TypeContainer, TypeContentInst, TypeSubscription},
}

// SupportedResourceTypes is announced by the CSEBase in its "srt" attribute.
var SupportedResourceTypes = []ResourceType{
	TypeACP, TypeAE, TypeContainer, TypeContentInst, TypeCSEBase, TypeSubscription,
}

// ShortName returns the wrapper key used on the wire, e.g. "m2m:cnt".
func (t ResourceType) ShortName() string {
	return shortNames[t]
}

// IDPrefix returns the prefix used for generated resource identifiers.
func (t ResourceType) IDPrefix() string {
	return idPrefixes[t]
}

// IsValid reports whether t is one of the supported resource types.
func (t ResourceType) IsValid() bool {
	_, ok := shortNames[t]
	return ok
}

// CanHaveChild reports whether a resource of type child may be created under t.
func (t ResourceType) CanHaveChild(child ResourceType) bool {
	for _, c := range allowedChildren[t] {
		if c == child {
			return true
		}
	}
	return false
}

func (t ResourceType) String() string {
	if name, ok := shortNames[t]; ok {
		return name
	}
	return "ty(" + strconv.Itoa(int(t)) + ")"
}

// ResourceTypeFromShortName resolves a wrapper key like "m2m:ae" to its type.
func ResourceTypeFromShortName(name string) (ResourceType, bool) {
	for t, n := range shortNames {
		if n == name {
			return t, true
		}
	}
	return TypeUnknown, false
}

// ParseResourceType parses the numeric "ty" value used in query strings and
// Content-Type parameters.
func ParseResourceType(s string) (ResourceType, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return TypeUnknown, false
	}
	t := ResourceType(v)
	return t, t.IsValid()
}
