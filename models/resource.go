package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyPrimitiveContent = errors.New("empty primitive content")
	ErrWrongResourceWrapper  = errors.New("resource wrapper does not match resource type")
)

// Resource is the flattened representation of every supported oneM2M resource
// type. Attributes that do not apply to Type stay nil or empty and are omitted
// on the wire.
type Resource struct {
	// common attributes
	Type             ResourceType `json:"ty,omitempty"`
	ResourceID       string       `json:"ri,omitempty"`
	ResourceName     string       `json:"rn,omitempty"`
	ParentID         string       `json:"pi,omitempty"`
	CreationTime     *Timestamp   `json:"ct,omitempty"`
	LastModifiedTime *Timestamp   `json:"lt,omitempty"`
	ExpirationTime   *Timestamp   `json:"et,omitempty"`
	Labels           []string     `json:"lbl,omitempty"`
	ACPIDs           []string     `json:"acpi,omitempty"`
	Creator          string       `json:"cr,omitempty"`
	StateTag         *int64       `json:"st,omitempty"`

	// CSEBase
	CSEID                    string         `json:"csi,omitempty"`
	CSEType                  int            `json:"cst,omitempty"`
	SupportedResourceTypes   []ResourceType `json:"srt,omitempty"`
	SupportedReleaseVersions []string       `json:"srv,omitempty"`

	// CSEBase and AE
	PointOfAccess []string `json:"poa,omitempty"`

	// AE
	AppID               string `json:"api,omitempty"`
	AEID                string `json:"aei,omitempty"`
	RequestReachability *bool  `json:"rr,omitempty"`

	// Container
	MaxNrOfInstances     *int64 `json:"mni,omitempty"`
	MaxByteSize          *int64 `json:"mbs,omitempty"`
	CurrentNrOfInstances *int64 `json:"cni,omitempty"`
	CurrentByteSize      *int64 `json:"cbs,omitempty"`

	// ContentInstance
	ContentInfo string  `json:"cnf,omitempty"`
	ContentSize *int64  `json:"cs,omitempty"`
	Content     *string `json:"con,omitempty"`

	// Subscription
	NotificationURIs          []string                   `json:"nu,omitempty"`
	EventNotificationCriteria *EventNotificationCriteria `json:"enc,omitempty"`
	ExpirationCounter         *int64                     `json:"exc,omitempty"`
	NotificationContentType   *NotificationContentType   `json:"nct,omitempty"`
	SubscriberURI             string                     `json:"su,omitempty"`

	// AccessControlPolicy
	Privileges     *SetOfACRs `json:"pv,omitempty"`
	SelfPrivileges *SetOfACRs `json:"pvs,omitempty"`

	// StructuredPath is the CSE-relative structured resource name, e.g.
	// "cse-in/NoiseCancellationSystem/Schedule". It is kept out of the
	// resource document and stored in its own column.
	StructuredPath string `json:"-"`
}

// EventNotificationCriteria selects the events a subscription reacts to.
type EventNotificationCriteria struct {
	NotificationEventTypes []NotificationEventType `json:"net,omitempty"`
	ChildResourceTypes     []ResourceType          `json:"chty,omitempty"`
}

// Wrap returns the wire form {"m2m:xxx": resource}.
func (r Resource) Wrap() map[string]Resource {
	return map[string]Resource{r.Type.ShortName(): r}
}

// MarshalWrapped encodes the resource in its wire form.
func (r Resource) MarshalWrapped() ([]byte, error) {
	return json.Marshal(r.Wrap())
}

// DecodeWrapped decodes primitive content of the form {"m2m:xxx": {...}}.
// When expected is not TypeUnknown the wrapper key must match it.
func DecodeWrapped(data []byte, expected ResourceType) (Resource, error) {
	if len(data) == 0 {
		return Resource{}, ErrEmptyPrimitiveContent
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return Resource{}, fmt.Errorf("decode primitive content: %w", err)
	}
	if len(wrapper) != 1 {
		return Resource{}, fmt.Errorf("%w: expected exactly one root element, got %d", ErrWrongResourceWrapper, len(wrapper))
	}

	for key, raw := range wrapper {
		ty, ok := ResourceTypeFromShortName(key)
		if !ok {
			return Resource{}, fmt.Errorf("%w: unknown root element %q", ErrWrongResourceWrapper, key)
		}
		if expected != TypeUnknown && ty != expected {
			return Resource{}, fmt.Errorf("%w: got %q for %s", ErrWrongResourceWrapper, key, expected)
		}

		var res Resource
		if err := json.Unmarshal(raw, &res); err != nil {
			return Resource{}, fmt.Errorf("decode %s: %w", key, err)
		}
		if res.Type != TypeUnknown && res.Type != ty {
			return Resource{}, fmt.Errorf("%w: ty=%d inside %q", ErrWrongResourceWrapper, res.Type, key)
		}
		res.Type = ty
		return res, nil
	}

	return Resource{}, ErrEmptyPrimitiveContent
}

// AttributeKeys returns the wire names of all attributes present in the
// encoded resource. It is used to detect read-only attributes in updates and
// to build modified-attribute notifications.
func AttributeKeys(data []byte) ([]string, error) {
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	return keys, nil
}

// PickAttributes returns a map with only the named attributes of r. The
// attribute type is always included.
func PickAttributes(r Resource, names []string) (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var all map[string]any
	if err = json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	picked := make(map[string]any, len(names)+1)
	for _, n := range names {
		if v, ok := all[n]; ok {
			picked[n] = v
		}
	}
	picked["ty"] = r.Type
	return picked, nil
}

// IsExpired reports whether the resource expiration time is before now.
func (r Resource) IsExpired(now Timestamp) bool {
	return r.ExpirationTime != nil && r.ExpirationTime.Before(now.Time)
}

// Int64 returns a pointer to v. It helps populating optional numeric
// attributes.
func Int64(v int64) *int64 {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Deref returns the pointed-to value or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
