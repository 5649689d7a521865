package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

const (
	virtualLatest = "la"
	virtualOldest = "ol"

	resourceIDDigits   = 7
	resourceIDAttempts = 5
)

// resourceService is the dispatcher of the CSE. It resolves request targets,
// enforces the resource type rules and keeps container counters and
// subscriptions consistent with the stored tree.
type resourceService struct {
	repo          store.ResourceRepository
	security      SecurityService
	notifications NotificationService
	clock         Clock

	cseID           string
	cseRI           string
	cseRN           string
	cseType         string
	admin           string
	releaseVersions []string
	poa             []string

	maxExpiration time.Duration
	defaultMNI    int64
	defaultMBS    int64
	allowedAE     []string
	verify        bool
	reset         bool

	logger *logger.Logger
}

// NewResourceService constructs the [ResourceService] of the CSE described
// by cfg.
func NewResourceService(repo store.ResourceRepository, security SecurityService, notifications NotificationService, clock Clock, cfg *config.StructuredConfig, logger *logger.Logger) ResourceService {
	return &resourceService{
		repo:            repo,
		security:        security,
		notifications:   notifications,
		clock:           clock,
		cseID:           cfg.CSE.CSEID,
		cseRI:           cfg.CSE.ResourceID,
		cseRN:           cfg.CSE.ResourceName,
		cseType:         cfg.CSE.Type,
		admin:           cfg.CSE.Originator,
		releaseVersions: cfg.CSE.SupportedReleaseVersions,
		poa:             cfg.PointsOfAccess(),
		maxExpiration:   cfg.CSE.MaxExpirationDelta,
		defaultMNI:      cfg.CSE.Container.MaxNrOfInstances,
		defaultMBS:      cfg.CSE.Container.MaxByteSize,
		allowedAE:       cfg.CSE.Registration.AllowedAEOriginators,
		verify:          cfg.CSE.VerificationEnabled(),
		reset:           cfg.Database.ResetEnabled(),
		logger:          logger,
	}
}

func (s *resourceService) Handle(ctx context.Context, req models.Request) (models.Response, error) {
	switch req.Operation {
	case models.OperationCreate:
		return s.Create(ctx, req)
	case models.OperationRetrieve:
		if req.FilterCriteria.IsDiscovery() {
			return s.Discover(ctx, req)
		}
		return s.Retrieve(ctx, req)
	case models.OperationDiscovery:
		return s.Discover(ctx, req)
	case models.OperationUpdate:
		return s.Update(ctx, req)
	case models.OperationDelete:
		return s.Delete(ctx, req)
	case models.OperationNotify:
		return models.Response{}, fmt.Errorf("%w: notifications to the CSE are not supported", ErrNotImplemented)
	default:
		return models.Response{}, fmt.Errorf("%w: unknown operation %d", ErrBadRequest, req.Operation)
	}
}

func (s *resourceService) Create(ctx context.Context, req models.Request) (models.Response, error) {
	log := logger.FromContext(ctx)

	parent, virtual, err := s.resolve(ctx, req.To)
	if err != nil {
		return models.Response{}, err
	}
	if virtual != "" {
		return models.Response{}, fmt.Errorf("%w: cannot create below %q", ErrOperationNotAllowed, virtual)
	}

	ty := req.ResourceType
	if !ty.IsValid() || ty == models.TypeCSEBase {
		return models.Response{}, fmt.Errorf("%w: unsupported resource type %d", ErrBadRequest, ty)
	}
	if !parent.Type.CanHaveChild(ty) {
		return models.Response{}, fmt.Errorf("%w: %s below %s", ErrInvalidChildResourceType, ty, parent.Type)
	}

	res, attrs, err := decodeContent(req.Content, ty)
	if err != nil {
		return models.Response{}, err
	}
	if names := presentAttributes(attrs, createProhibited); len(names) > 0 {
		return models.Response{}, fmt.Errorf("%w: attributes not allowed on create: %s", ErrBadRequest, strings.Join(names, ", "))
	}

	originator := req.Originator
	if ty == models.TypeAE {
		if originator, err = s.registerAE(ctx, &res, originator); err != nil {
			return models.Response{}, err
		}
	} else {
		if originator == "" {
			return models.Response{}, fmt.Errorf("%w: originator is required", ErrBadRequest)
		}
		if err = s.security.CheckAccess(ctx, originator, models.OperationCreate, parent, ty); err != nil {
			return models.Response{}, err
		}
	}

	if err = s.assignCommonAttributes(ctx, &res, parent, originator); err != nil {
		return models.Response{}, err
	}

	_, err = s.repo.GetByPath(ctx, res.StructuredPath)
	if err == nil {
		return models.Response{}, fmt.Errorf("%w: %s", ErrConflict, res.StructuredPath)
	}
	if !errors.Is(err, store.ErrResourceNotFound) {
		return models.Response{}, err
	}

	if ty == models.TypeContentInst {
		unlock := s.containers.Lock(parent.ResourceID)
		defer unlock()
		if parent, err = s.reloadContainer(ctx, parent); err != nil {
			return models.Response{}, err
		}
	}

	switch ty {
	case models.TypeContainer:
		err = s.prepareContainer(&res)
	case models.TypeContentInst:
		err = s.prepareContentInstance(&res, parent)
	case models.TypeSubscription:
		err = s.prepareSubscription(ctx, &res, nil, originator)
	case models.TypeACP:
		err = validateACP(res)
	}
	if err != nil {
		return models.Response{}, err
	}

	if err = s.repo.Create(ctx, res); err != nil {
		if errors.Is(err, store.ErrResourceAlreadyExists) {
			return models.Response{}, fmt.Errorf("%w: %s", ErrConflict, res.StructuredPath)
		}
		return models.Response{}, err
	}

	if ty == models.TypeContentInst {
		if err = s.addInstanceToContainer(ctx, parent, res); err != nil {
			return models.Response{}, err
		}
	}

	log.Info().
		Str("ri", res.ResourceID).
		Str("srn", res.StructuredPath).
		Str("type", ty.String()).
		Str("originator", originator).
		Msg("resource created")

	s.notifications.NotifyEvent(ctx, parent, models.EventCreateDirectChild, res, nil)

	return s.response(ctx, models.RSCCreated, req, res, models.ResultContentAttributes,
		models.ResultContentNothing, models.ResultContentAttributes)
}

func (s *resourceService) Retrieve(ctx context.Context, req models.Request) (models.Response, error) {
	res, _, err := s.resolve(ctx, req.To)
	if err != nil {
		return models.Response{}, err
	}

	if err = s.security.CheckAccess(ctx, req.Originator, models.OperationRetrieve, res, models.TypeUnknown); err != nil {
		return models.Response{}, err
	}

	return s.response(ctx, models.RSCOK, req, res, models.ResultContentAttributes,
		models.ResultContentAttributes, models.ResultContentChildReferences, models.ResultContentChildResources)
}

func (s *resourceService) Discover(ctx context.Context, req models.Request) (models.Response, error) {
	target, _, err := s.resolve(ctx, req.To)
	if err != nil {
		return models.Response{}, err
	}

	if err = s.security.CheckAccess(ctx, req.Originator, models.OperationDiscovery, target, models.TypeUnknown); err != nil {
		return models.Response{}, err
	}

	fc := req.FilterCriteria
	descendants, err := s.repo.Descendants(ctx, target.StructuredPath, fc.ResourceTypes...)
	if err != nil {
		return models.Response{}, err
	}

	baseDepth := depth(target.StructuredPath)
	uril := make([]string, 0, len(descendants))
	for _, d := range descendants {
		if fc.Level > 0 && depth(d.StructuredPath)-baseDepth > fc.Level {
			continue
		}
		if len(fc.Labels) > 0 && !containsAny(d.Labels, fc.Labels) {
			continue
		}

		err = s.security.CheckAccess(ctx, req.Originator, models.OperationDiscovery, d, models.TypeUnknown)
		if errors.Is(err, ErrOriginatorHasNoPrivilege) {
			continue
		}
		if err != nil {
			return models.Response{}, err
		}

		uril = append(uril, d.StructuredPath)
		if fc.Limit > 0 && len(uril) >= fc.Limit {
			break
		}
	}

	return models.Response{
		StatusCode: models.RSCOK,
		RequestID:  req.RequestID,
		Content:    map[string][]string{"m2m:uril": uril},
	}, nil
}

func (s *resourceService) Update(ctx context.Context, req models.Request) (models.Response, error) {
	target, virtual, err := s.resolve(ctx, req.To)
	if err != nil {
		return models.Response{}, err
	}
	if virtual != "" || target.Type == models.TypeContentInst || target.Type == models.TypeCSEBase {
		return models.Response{}, fmt.Errorf("%w: %s cannot be updated", ErrOperationNotAllowed, target.Type)
	}

	if err = s.security.CheckAccess(ctx, req.Originator, models.OperationUpdate, target, models.TypeUnknown); err != nil {
		return models.Response{}, err
	}

	if target.Type == models.TypeContainer {
		unlock := s.containers.Lock(target.ResourceID)
		defer unlock()
		if target, err = s.reloadContainer(ctx, target); err != nil {
			return models.Response{}, err
		}
	}

	_, attrs, err := decodeContent(req.Content, target.Type)
	if err != nil {
		return models.Response{}, err
	}
	if names := presentAttributes(attrs, updateReadOnly); len(names) > 0 {
		return models.Response{}, fmt.Errorf("%w: read-only attributes: %s", ErrBadRequest, strings.Join(names, ", "))
	}

	updated, err := mergeAttributes(target, attrs)
	if err != nil {
		return models.Response{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	now := s.clock.Now()
	updated.LastModifiedTime = &now
	if _, ok := attrs["et"]; ok {
		if err = s.assignExpiration(&updated, now); err != nil {
			return models.Response{}, err
		}
	}

	switch updated.Type {
	case models.TypeContainer:
		if err = validateContainerLimits(updated); err != nil {
			return models.Response{}, err
		}
		st := models.Deref(updated.StateTag) + 1
		updated.StateTag = &st
		if updated, err = s.enforceContainerLimits(ctx, updated); err != nil {
			return models.Response{}, err
		}
	case models.TypeSubscription:
		err = s.prepareSubscription(ctx, &updated, target.NotificationURIs, req.Originator)
	case models.TypeACP:
		err = validateACP(updated)
	}
	if err != nil {
		return models.Response{}, err
	}

	if err = s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, store.ErrResourceNotFound) {
			return models.Response{}, fmt.Errorf("%w: %s", ErrNotFound, target.StructuredPath)
		}
		return models.Response{}, err
	}

	modified := make([]string, 0, len(attrs))
	for name := range attrs {
		modified = append(modified, name)
	}
	sort.Strings(modified)

	logger.FromContext(ctx).Info().Str("ri", updated.ResourceID).Strs("attributes", modified).Msg("resource updated")

	s.notifications.NotifyEvent(ctx, updated, models.EventUpdate, updated, modified)

	return s.response(ctx, models.RSCUpdated, req, updated, models.ResultContentAttributes,
		models.ResultContentNothing, models.ResultContentAttributes)
}

func (s *resourceService) Delete(ctx context.Context, req models.Request) (models.Response, error) {
	target, _, err := s.resolve(ctx, req.To)
	if err != nil {
		return models.Response{}, err
	}
	if target.Type == models.TypeCSEBase {
		return models.Response{}, fmt.Errorf("%w: the CSEBase cannot be deleted", ErrOperationNotAllowed)
	}

	if err = s.security.CheckAccess(ctx, req.Originator, models.OperationDelete, target, models.TypeUnknown); err != nil {
		return models.Response{}, err
	}

	if err = s.deleteResource(ctx, target); err != nil {
		return models.Response{}, err
	}

	return s.response(ctx, models.RSCDeleted, req, target, models.ResultContentNothing,
		models.ResultContentNothing, models.ResultContentAttributes)
}

func (s *resourceService) RemoveExpired(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	expired, err := s.repo.Expired(ctx, s.clock.Now().Time)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, res := range expired {
		if res.Type == models.TypeCSEBase {
			continue
		}

		// the resource may have gone together with an expired ancestor
		current, getErr := s.repo.Get(ctx, res.ResourceID)
		if errors.Is(getErr, store.ErrResourceNotFound) {
			continue
		}
		if getErr != nil {
			return removed, getErr
		}

		if err = s.deleteResource(ctx, current); err != nil {
			return removed, err
		}
		removed++
		log.Info().Str("ri", current.ResourceID).Str("srn", current.StructuredPath).Msg("expired resource removed")
	}

	return removed, nil
}

// deleteResource removes res and its subtree. Subscriptions below the removed
// resources are notified before anything is deleted.
func (s *resourceService) deleteResource(ctx context.Context, res models.Resource) error {
	if res.Type == models.TypeContentInst {
		unlock := s.containers.Lock(res.ParentID)
		defer unlock()
	}

	descendants, err := s.repo.Descendants(ctx, res.StructuredPath)
	if err != nil {
		return err
	}

	all := append([]models.Resource{res}, descendants...)
	sort.SliceStable(all, func(i, j int) bool {
		return depth(all[i].StructuredPath) > depth(all[j].StructuredPath)
	})

	for _, r := range all {
		if r.Type != models.TypeSubscription {
			s.notifications.NotifyEvent(ctx, r, models.EventDelete, r, nil)
		}
	}
	for _, r := range all {
		if r.Type == models.TypeSubscription {
			s.notifications.NotifySubscriptionDeleted(ctx, r)
		}
	}

	parent, err := s.repo.Get(ctx, res.ParentID)
	hasParent := err == nil
	if err != nil && !errors.Is(err, store.ErrResourceNotFound) {
		return err
	}
	if hasParent {
		s.notifications.NotifyEvent(ctx, parent, models.EventDeleteDirectChild, res, nil)
	}

	ris := make([]string, len(all))
	for i, r := range all {
		ris[i] = r.ResourceID
	}
	if err = s.repo.Delete(ctx, ris...); err != nil {
		return err
	}

	if hasParent && res.Type == models.TypeContentInst && parent.Type == models.TypeContainer {
		if err = s.removeInstanceFromContainer(ctx, parent, res); err != nil {
			return err
		}
	}

	logger.FromContext(ctx).Info().Str("ri", res.ResourceID).Int("removed", len(ris)).Msg("resource deleted")
	return nil
}

// reloadContainer reads cnt again once its lock is held, so counters written
// by a concurrent request are not lost.
func (s *resourceService) reloadContainer(ctx context.Context, cnt models.Resource) (models.Resource, error) {
	if cnt.Type != models.TypeContainer {
		return cnt, nil
	}
	current, err := s.repo.Get(ctx, cnt.ResourceID)
	if errors.Is(err, store.ErrResourceNotFound) {
		return models.Resource{}, fmt.Errorf("%w: %s", ErrNotFound, cnt.StructuredPath)
	}
	return current, err
}

// resolve finds the target resource of a request. The second result is "la"
// or "ol" when the target was a virtual child of a container.
func (s *resourceService) resolve(ctx context.Context, to string) (models.Resource, string, error) {
	path := s.normalizeTarget(to)

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	if len(segments) > 1 && (last == virtualLatest || last == virtualOldest) {
		cnt, err := s.lookup(ctx, strings.Join(segments[:len(segments)-1], "/"))
		if err != nil {
			return models.Resource{}, "", err
		}
		if cnt.Type != models.TypeContainer {
			return models.Resource{}, "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		var cin models.Resource
		if last == virtualLatest {
			cin, err = s.repo.LatestChild(ctx, cnt.ResourceID, models.TypeContentInst)
		} else {
			cin, err = s.repo.OldestChild(ctx, cnt.ResourceID, models.TypeContentInst)
		}
		if errors.Is(err, store.ErrResourceNotFound) {
			return models.Resource{}, "", fmt.Errorf("%w: %s has no content instances", ErrNotFound, cnt.StructuredPath)
		}
		if err != nil {
			return models.Resource{}, "", err
		}
		return cin, last, nil
	}

	res, err := s.lookup(ctx, path)
	return res, "", err
}

func (s *resourceService) lookup(ctx context.Context, path string) (models.Resource, error) {
	var (
		res models.Resource
		err error
	)

	switch {
	case path == s.cseRN || strings.HasPrefix(path, s.cseRN+"/"):
		res, err = s.repo.GetByPath(ctx, path)
	case path != "" && !strings.Contains(path, "/"):
		res, err = s.repo.Get(ctx, path)
	default:
		return models.Resource{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if errors.Is(err, store.ErrResourceNotFound) {
		return models.Resource{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return res, err
}

// normalizeTarget turns SP-relative ("~/id-in/cse-in/...") and shortcut
// ("-/...") addresses into CSE-relative ones.
func (s *resourceService) normalizeTarget(to string) string {
	path := strings.TrimRight(strings.TrimPrefix(strings.TrimSpace(to), "/"), "/")
	csi := strings.TrimPrefix(s.cseID, "/")

	switch {
	case path == "":
		return s.cseRN
	case strings.HasPrefix(path, "~/"):
		rest := strings.TrimPrefix(path, "~/")
		if rest == csi {
			return s.cseRN
		}
		if strings.HasPrefix(rest, csi+"/") {
			return strings.TrimPrefix(rest, csi+"/")
		}
		return path
	case path == "-":
		return s.cseRN
	case strings.HasPrefix(path, "-/"):
		return s.cseRN + path[1:]
	}

	return path
}

func (s *resourceService) newResourceID(ctx context.Context, ty models.ResourceType) (string, error) {
	for i := 0; i < resourceIDAttempts; i++ {
		ri := ty.IDPrefix() + utils.RandomDigits(resourceIDDigits)
		_, err := s.repo.Get(ctx, ri)
		if errors.Is(err, store.ErrResourceNotFound) {
			return ri, nil
		}
		if err != nil {
			return "", err
		}
	}

	return ty.IDPrefix() + utils.RandomString(2*resourceIDDigits), nil
}

func depth(srn string) int {
	return strings.Count(srn, "/")
}

func containsAny(values, wanted []string) bool {
	for _, w := range wanted {
		for _, v := range values {
			if v == w {
				return true
			}
		}
	}
	return false
}
