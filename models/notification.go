package models

import (
	"encoding/json"
	"fmt"
)

// NotificationEventType is a value of enc/net.
type NotificationEventType int

const (
	EventUpdate            NotificationEventType = 1
	EventDelete            NotificationEventType = 2
	EventCreateDirectChild NotificationEventType = 3
	EventDeleteDirectChild NotificationEventType = 4
)

// NotificationContentType is the "nct" attribute of a subscription.
type NotificationContentType int

const (
	ContentAllAttributes      NotificationContentType = 1
	ContentModifiedAttributes NotificationContentType = 2
	ContentResourceID         NotificationContentType = 3
)

// Notification is the m2m:sgn payload sent to notification targets.
type Notification struct {
	Event                 *NotificationEvent `json:"nev,omitempty"`
	VerificationRequest   *bool              `json:"vrq,omitempty"`
	SubscriptionDeletion  *bool              `json:"sud,omitempty"`
	SubscriptionReference string             `json:"sur,omitempty"`
	Creator               string             `json:"cr,omitempty"`
}

// NotificationEvent carries the representation of the resource that caused
// the notification.
type NotificationEvent struct {
	Representation json.RawMessage       `json:"rep,omitempty"`
	EventType      NotificationEventType `json:"net,omitempty"`
}

// NotificationEnvelope is the wire form {"m2m:sgn": {...}}.
type NotificationEnvelope struct {
	Notification Notification `json:"m2m:sgn"`
}

// IsVerification reports whether n is a subscription verification request.
func (n Notification) IsVerification() bool {
	return n.VerificationRequest != nil && *n.VerificationRequest
}

// IsDeletion reports whether n announces the deletion of the subscription.
func (n Notification) IsDeletion() bool {
	return n.SubscriptionDeletion != nil && *n.SubscriptionDeletion
}

// RepresentedResource decodes the wrapped resource carried in nev/rep.
func (n Notification) RepresentedResource(expected ResourceType) (Resource, error) {
	if n.Event == nil || len(n.Event.Representation) == 0 {
		return Resource{}, fmt.Errorf("%w: notification has no representation", ErrEmptyPrimitiveContent)
	}
	return DecodeWrapped(n.Event.Representation, expected)
}

// ContainsEvent reports whether net is selected by the criteria. Without
// criteria only update events are selected.
func (c *EventNotificationCriteria) ContainsEvent(net NotificationEventType) bool {
	if c == nil || len(c.NotificationEventTypes) == 0 {
		return net == EventUpdate
	}
	for _, e := range c.NotificationEventTypes {
		if e == net {
			return true
		}
	}
	return false
}

// ContainsChildType reports whether chty filtering lets ty through.
func (c *EventNotificationCriteria) ContainsChildType(ty ResourceType) bool {
	if c == nil || len(c.ChildResourceTypes) == 0 {
		return true
	}
	for _, t := range c.ChildResourceTypes {
		if t == ty {
			return true
		}
	}
	return false
}
