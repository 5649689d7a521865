package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

const aeIDLength = 8

// createProhibited lists attributes assigned by the CSE that a CREATE must
// not carry.
var createProhibited = []string{"ri", "pi", "ct", "lt", "st", "cni", "cbs", "cs", "csi", "aei"}

// updateReadOnly lists attributes an UPDATE must not carry.
var updateReadOnly = []string{"ty", "ri", "rn", "pi", "ct", "lt", "cr", "csi", "aei", "api", "cni", "cbs", "st", "cs"}

// decodeContent decodes wrapped primitive content and also returns the raw
// attributes it carries.
func decodeContent(content []byte, ty models.ResourceType) (models.Resource, map[string]json.RawMessage, error) {
	res, err := models.DecodeWrapped(content, ty)
	if err != nil {
		return models.Resource{}, nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	var wrapper map[string]map[string]json.RawMessage
	if err = json.Unmarshal(content, &wrapper); err != nil {
		return models.Resource{}, nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	attrs := wrapper[ty.ShortName()]
	if attrs == nil {
		attrs = map[string]json.RawMessage{}
	}
	return res, attrs, nil
}

func presentAttributes(attrs map[string]json.RawMessage, names []string) []string {
	present := make([]string, 0)
	for _, n := range names {
		if _, ok := attrs[n]; ok {
			present = append(present, n)
		}
	}
	sort.Strings(present)
	return present
}

// mergeAttributes overlays attrs on res. A null value removes the attribute.
func mergeAttributes(res models.Resource, attrs map[string]json.RawMessage) (models.Resource, error) {
	doc, err := json.Marshal(res)
	if err != nil {
		return models.Resource{}, err
	}

	merged := make(map[string]json.RawMessage)
	if err = json.Unmarshal(doc, &merged); err != nil {
		return models.Resource{}, err
	}
	for name, value := range attrs {
		if string(value) == "null" {
			delete(merged, name)
			continue
		}
		merged[name] = value
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return models.Resource{}, err
	}

	var out models.Resource
	if err = json.Unmarshal(data, &out); err != nil {
		return models.Resource{}, err
	}
	out.Type = res.Type
	out.StructuredPath = res.StructuredPath
	return out, nil
}

// registerAE applies the AE registration rules and returns the originator
// the AE is registered with.
func (s *resourceService) registerAE(ctx context.Context, res *models.Resource, originator string) (string, error) {
	switch originator {
	case "", "C":
		originator = "C" + utils.RandomString(aeIDLength)
	case "S":
		originator = "S" + utils.RandomString(aeIDLength)
	}

	originator = strings.TrimPrefix(originator, "/")
	if strings.Contains(originator, "/") {
		return "", fmt.Errorf("%w: originator %q cannot be used as AE-ID", ErrBadRequest, originator)
	}

	if !matchesAnyPattern(originator, s.allowedAE) {
		return "", fmt.Errorf("%w: %s", ErrOriginatorNotAllowedToRegister, originator)
	}

	if res.AppID == "" {
		return "", fmt.Errorf("%w: api is required", ErrBadRequest)
	}
	if res.AppID[0] != 'R' && res.AppID[0] != 'N' {
		return "", fmt.Errorf("%w: %s", ErrAppIDNotAllowed, res.AppID)
	}
	if res.RequestReachability == nil {
		res.RequestReachability = models.Bool(false)
	}

	_, err := s.repo.Get(ctx, originator)
	if err == nil {
		return "", fmt.Errorf("%w: %s", ErrOriginatorHasAlreadyRegistered, originator)
	}
	if !errors.Is(err, store.ErrResourceNotFound) {
		return "", err
	}

	res.AEID = originator
	res.ResourceID = originator
	return originator, nil
}

// assignCommonAttributes sets the identifiers, timestamps and creator of a
// new resource below parent.
func (s *resourceService) assignCommonAttributes(ctx context.Context, res *models.Resource, parent models.Resource, originator string) error {
	if res.ResourceID == "" {
		ri, err := s.newResourceID(ctx, res.Type)
		if err != nil {
			return err
		}
		res.ResourceID = ri
	}

	if res.ResourceName == "" {
		res.ResourceName = res.ResourceID
	}
	if strings.ContainsAny(res.ResourceName, "/ ") || res.ResourceName == virtualLatest || res.ResourceName == virtualOldest {
		return fmt.Errorf("%w: invalid resource name %q", ErrBadRequest, res.ResourceName)
	}

	now := s.clock.Now()
	res.ParentID = parent.ResourceID
	res.CreationTime = &now
	res.LastModifiedTime = &now
	res.Creator = originator
	res.StructuredPath = parent.StructuredPath + "/" + res.ResourceName

	return s.assignExpiration(res, now)
}

// assignExpiration defaults et to now plus the maximum expiration delta and
// clamps larger values to it.
func (s *resourceService) assignExpiration(res *models.Resource, now models.Timestamp) error {
	limit := models.NewTimestamp(now.Add(s.maxExpiration))

	switch {
	case res.ExpirationTime == nil:
		res.ExpirationTime = &limit
	case !res.ExpirationTime.After(now.Time):
		return fmt.Errorf("%w: expiration time %s is in the past", ErrBadRequest, res.ExpirationTime)
	case res.ExpirationTime.After(limit.Time):
		res.ExpirationTime = &limit
	}
	return nil
}

func (s *resourceService) prepareContainer(res *models.Resource) error {
	if res.MaxNrOfInstances == nil && s.defaultMNI > 0 {
		res.MaxNrOfInstances = models.Int64(s.defaultMNI)
	}
	if res.MaxByteSize == nil && s.defaultMBS > 0 {
		res.MaxByteSize = models.Int64(s.defaultMBS)
	}
	if err := validateContainerLimits(*res); err != nil {
		return err
	}

	res.CurrentNrOfInstances = models.Int64(0)
	res.CurrentByteSize = models.Int64(0)
	res.StateTag = models.Int64(0)
	return nil
}

func validateContainerLimits(res models.Resource) error {
	if models.Deref(res.MaxNrOfInstances) < 0 || models.Deref(res.MaxByteSize) < 0 {
		return fmt.Errorf("%w: mni and mbs must not be negative", ErrBadRequest)
	}
	return nil
}

func (s *resourceService) prepareContentInstance(res *models.Resource, parent models.Resource) error {
	if res.Content == nil {
		return fmt.Errorf("%w: con is required", ErrBadRequest)
	}

	size := int64(len(*res.Content))
	if parent.MaxByteSize != nil && size > *parent.MaxByteSize {
		return fmt.Errorf("%w: content size %d exceeds mbs %d", ErrContentsUnacceptable, size, *parent.MaxByteSize)
	}

	res.ContentSize = &size
	res.StateTag = models.Int64(models.Deref(parent.StateTag) + 1)
	return nil
}

func (s *resourceService) addInstanceToContainer(ctx context.Context, cnt models.Resource, cin models.Resource) error {
	cnt.StateTag = cin.StateTag
	cnt.CurrentNrOfInstances = models.Int64(models.Deref(cnt.CurrentNrOfInstances) + 1)
	cnt.CurrentByteSize = models.Int64(models.Deref(cnt.CurrentByteSize) + models.Deref(cin.ContentSize))

	cnt, err := s.enforceContainerLimits(ctx, cnt)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, cnt)
}

func (s *resourceService) removeInstanceFromContainer(ctx context.Context, cnt models.Resource, cin models.Resource) error {
	cni := models.Deref(cnt.CurrentNrOfInstances) - 1
	cbs := models.Deref(cnt.CurrentByteSize) - models.Deref(cin.ContentSize)
	cnt.CurrentNrOfInstances = models.Int64(max(cni, 0))
	cnt.CurrentByteSize = models.Int64(max(cbs, 0))
	return s.repo.Update(ctx, cnt)
}

// enforceContainerLimits removes the oldest content instances of cnt while
// it holds more instances or bytes than allowed. The returned container
// carries the adjusted counters; storing it is left to the caller.
func (s *resourceService) enforceContainerLimits(ctx context.Context, cnt models.Resource) (models.Resource, error) {
	for {
		cni := models.Deref(cnt.CurrentNrOfInstances)
		cbs := models.Deref(cnt.CurrentByteSize)

		overCount := cnt.MaxNrOfInstances != nil && cni > *cnt.MaxNrOfInstances
		overSize := cnt.MaxByteSize != nil && cbs > *cnt.MaxByteSize
		if cni <= 0 || (!overCount && !overSize) {
			return cnt, nil
		}

		oldest, err := s.repo.OldestChild(ctx, cnt.ResourceID, models.TypeContentInst)
		if errors.Is(err, store.ErrResourceNotFound) {
			cnt.CurrentNrOfInstances = models.Int64(0)
			cnt.CurrentByteSize = models.Int64(0)
			return cnt, nil
		}
		if err != nil {
			return cnt, err
		}

		if err = s.repo.Delete(ctx, oldest.ResourceID); err != nil {
			return cnt, err
		}
		logger.FromContext(ctx).Debug().Str("cnt", cnt.ResourceID).Str("cin", oldest.ResourceID).Msg("oldest content instance removed")

		cnt.CurrentNrOfInstances = models.Int64(cni - 1)
		cnt.CurrentByteSize = models.Int64(max(cbs-models.Deref(oldest.ContentSize), 0))
	}
}

// prepareSubscription validates a new or updated subscription, fills in the
// defaults and verifies notification URIs not present in previous.
func (s *resourceService) prepareSubscription(ctx context.Context, res *models.Resource, previous []string, originator string) error {
	if len(res.NotificationURIs) == 0 {
		return fmt.Errorf("%w: nu is required", ErrBadRequest)
	}
	if res.ExpirationCounter != nil && *res.ExpirationCounter <= 0 {
		return fmt.Errorf("%w: exc must be greater than 0", ErrBadRequest)
	}

	if res.NotificationContentType == nil {
		nct := models.ContentAllAttributes
		res.NotificationContentType = &nct
	}
	if nct := *res.NotificationContentType; nct < models.ContentAllAttributes || nct > models.ContentResourceID {
		return fmt.Errorf("%w: unsupported nct %d", ErrBadRequest, nct)
	}

	if res.EventNotificationCriteria == nil {
		res.EventNotificationCriteria = &models.EventNotificationCriteria{}
	}
	enc := res.EventNotificationCriteria
	if len(enc.NotificationEventTypes) == 0 {
		enc.NotificationEventTypes = []models.NotificationEventType{models.EventUpdate}
	}
	for _, net := range enc.NotificationEventTypes {
		if net < models.EventUpdate || net > models.EventDeleteDirectChild {
			return fmt.Errorf("%w: unsupported net %d", ErrBadRequest, net)
		}
	}
	for _, ty := range enc.ChildResourceTypes {
		if !ty.IsValid() {
			return fmt.Errorf("%w: unsupported chty %d", ErrBadRequest, ty)
		}
	}

	if !s.verify {
		return nil
	}
	for _, nu := range res.NotificationURIs {
		if nu == originator || contains(previous, nu) {
			continue
		}
		if err := s.notifications.VerifySubscription(ctx, *res, originator, nu); err != nil {
			return err
		}
	}
	return nil
}

func validateACP(res models.Resource) error {
	if res.Privileges == nil || res.SelfPrivileges == nil {
		return fmt.Errorf("%w: pv and pvs are required", ErrBadRequest)
	}

	for _, set := range []*models.SetOfACRs{res.Privileges, res.SelfPrivileges} {
		for _, rule := range set.AccessControlRules {
			if rule.Operations < 0 || rule.Operations > models.PermissionAll {
				return fmt.Errorf("%w: invalid acop %d", ErrBadRequest, rule.Operations)
			}
		}
	}
	return nil
}

// response builds the answer of an operation according to the requested
// result content. allowed lists the rcn values the operation supports.
func (s *resourceService) response(ctx context.Context, code models.ResponseStatusCode, req models.Request, res models.Resource, fallback models.ResultContent, allowed ...models.ResultContent) (models.Response, error) {
	rcn := fallback
	if req.ResultContent != nil {
		rcn = *req.ResultContent
	}

	supported := false
	for _, a := range allowed {
		supported = supported || a == rcn
	}
	if !supported {
		return models.Response{}, fmt.Errorf("%w: rcn %d is not supported for %s", ErrBadRequest, rcn, req.Operation)
	}

	resp := models.Response{StatusCode: code, RequestID: req.RequestID}

	switch rcn {
	case models.ResultContentAttributes:
		resp.Content = res.Wrap()
	case models.ResultContentChildReferences:
		children, err := s.repo.Children(ctx, res.ResourceID)
		if err != nil {
			return models.Response{}, err
		}
		refs := make([]models.ChildReference, len(children))
		for i, c := range children {
			refs[i] = models.ChildReference{Name: c.ResourceName, Type: c.Type, Value: c.StructuredPath}
		}
		resp.Content = map[string]models.ChildReferenceList{"m2m:rrl": {References: refs}}
	case models.ResultContentChildResources:
		embedded, err := s.embedChildren(ctx, res)
		if err != nil {
			return models.Response{}, err
		}
		resp.Content = map[string]any{res.Type.ShortName(): embedded}
	}

	return resp, nil
}

// embedChildren returns the attributes of res with its direct children added
// under their short names.
func (s *resourceService) embedChildren(ctx context.Context, res models.Resource) (map[string]any, error) {
	doc, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]any)
	if err = json.Unmarshal(doc, &attrs); err != nil {
		return nil, err
	}

	children, err := s.repo.Children(ctx, res.ResourceID)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		key := c.Type.ShortName()
		list, _ := attrs[key].([]models.Resource)
		attrs[key] = append(list, c)
	}

	return attrs, nil
}

func matchesAnyPattern(value string, patterns []string) bool {
	for _, p := range patterns {
		switch {
		case p == "*" || p == value:
			return true
		case strings.HasSuffix(p, "*") && strings.HasPrefix(value, strings.TrimSuffix(p, "*")):
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
