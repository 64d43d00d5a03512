package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/singleflight"

	"github.com/rvega1204/job-manager/internal/apperr"
	"github.com/rvega1204/job-manager/internal/cache"
	dom "github.com/rvega1204/job-manager/internal/domain"
	"github.com/rvega1204/job-manager/internal/repo"
)

const (
	maxCompanyLen  = 50
	maxPositionLen = 100
)

// JobService handles owner-scoped job CRUD. The owner id always comes from
// the verified token, never from the request body.
type JobService struct {
	repo  repo.JobRepo
	cache *cache.JobCache
	sf    singleflight.Group
}

// NewJobService creates a JobService. If c is nil, caching is disabled.
func NewJobService(r repo.JobRepo, c *cache.JobCache) *JobService {
	return &JobService{repo: r, cache: c}
}

// Create stores a new job for the owner. An empty status defaults to
// pending.
func (s *JobService) Create(ctx context.Context, ownerID, company, position, status string) (dom.Job, error) {
	owner, err := parseOwnerID(ownerID)
	if err != nil {
		return dom.Job{}, err
	}
	company = strings.TrimSpace(company)
	position = strings.TrimSpace(position)
	st := dom.Status(status)
	if st == "" {
		st = dom.StatusPending
	}
	if err := validateJob(company, position, st); err != nil {
		return dom.Job{}, err
	}

	j, err := s.repo.Create(ctx, dom.Job{
		Company:   company,
		Position:  position,
		Status:    st,
		CreatedBy: owner,
	})
	if err != nil {
		return dom.Job{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return j, nil
}

// List returns the owner's jobs ascending by creation time. An owner with
// no jobs gets an empty list, not an error.
func (s *JobService) List(ctx context.Context, ownerID string) ([]dom.Job, error) {
	owner, err := parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		v, err, _ := s.sf.Do("list:"+ownerID, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, owner)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, ownerID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Job), nil
	}
	return s.repo.List(ctx, owner)
}

// GetByID returns one job. A job owned by someone else reads as not found.
func (s *JobService) GetByID(ctx context.Context, ownerID, id string) (dom.Job, error) {
	owner, jobID, err := parseIDs(ownerID, id)
	if err != nil {
		return dom.Job{}, err
	}
	j, err := s.repo.GetByID(ctx, owner, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Job{}, apperr.New(apperr.KindNotFound, "Job not found")
		}
		return dom.Job{}, err
	}
	return j, nil
}

// Update applies a partial update, re-validating the resulting fields
// against the same constraints as Create.
func (s *JobService) Update(ctx context.Context, ownerID, id string, company, position, status *string) (dom.Job, error) {
	owner, jobID, err := parseIDs(ownerID, id)
	if err != nil {
		return dom.Job{}, err
	}
	existing, err := s.repo.GetByID(ctx, owner, jobID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Job{}, apperr.New(apperr.KindNotFound, "Job not found")
		}
		return dom.Job{}, err
	}
	patch := existing
	if company != nil {
		patch.Company = strings.TrimSpace(*company)
	}
	if position != nil {
		patch.Position = strings.TrimSpace(*position)
	}
	if status != nil {
		patch.Status = dom.Status(*status)
	}
	if err := validateJob(patch.Company, patch.Position, patch.Status); err != nil {
		return dom.Job{}, err
	}
	j, err := s.repo.Update(ctx, owner, jobID, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Job{}, apperr.New(apperr.KindNotFound, "Job not found")
		}
		return dom.Job{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return j, nil
}

// Delete removes one job with the same ownership-scoped matching as GetByID.
func (s *JobService) Delete(ctx context.Context, ownerID, id string) error {
	owner, jobID, err := parseIDs(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, owner, jobID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.KindNotFound, "Job not found")
		}
		return err
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

func (s *JobService) invalidateCache(ctx context.Context, ownerID string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}

func validateJob(company, position string, status dom.Status) error {
	if company == "" {
		return apperr.New(apperr.KindValidationFailed, "Company is required")
	}
	if len(company) > maxCompanyLen {
		return apperr.New(apperr.KindValidationFailed, "Company cannot exceed 50 characters")
	}
	if position == "" {
		return apperr.New(apperr.KindValidationFailed, "Position is required")
	}
	if len(position) > maxPositionLen {
		return apperr.New(apperr.KindValidationFailed, "Position cannot exceed 100 characters")
	}
	if !status.Valid() {
		return apperr.New(apperr.KindValidationFailed, "Status must be one of pending, interview, declined")
	}
	return nil
}

// parseOwnerID converts the token's owner id into a store id. The token is
// trusted for the claim but the claim still has to be a well-formed id.
func parseOwnerID(ownerID string) (primitive.ObjectID, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.KindAuthenticationFailed, "Authentication Failed")
	}
	return owner, nil
}

func parseIDs(ownerID, id string) (primitive.ObjectID, primitive.ObjectID, error) {
	owner, err := parseOwnerID(ownerID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	jobID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperr.New(apperr.KindBadRequest, "Invalid id format")
	}
	return owner, jobID, nil
}
