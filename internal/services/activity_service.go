package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrActivityNotFound = errors.New("activity not found")

type ActivityService struct {
	db     *gorm.DB
	media  *MediaService
	policy *AccessPolicy
}

func NewActivityService(db *gorm.DB, media *MediaService, policy *AccessPolicy) *ActivityService {
	return &ActivityService{db: db, media: media, policy: policy}
}

// Create validates and stores a new activity. There is no draft workflow:
// activities are published on creation.
func (s *ActivityService) Create(creator *models.User, req *dto.CreateActivityRequest) (*models.Activity, error) {
	required := map[string]string{
		"farmerName":   req.FarmerName,
		"farmerMobile": req.FarmerMobile,
		"village":      req.Village,
		"taluka":       req.Taluka,
		"district":     req.District,
		"cropOrHybrid": req.CropOrHybrid,
	}
	for field, value := range required {
		if value == "" {
			return nil, fmt.Errorf("%w: missing field %s", ErrValidation, field)
		}
	}
	if req.FarmersInvolved <= 0 {
		return nil, fmt.Errorf("%w: farmersInvolved must be positive", ErrValidation)
	}

	activityType := req.ActivityType
	if activityType == "" {
		activityType = models.ActivitySpecial
	}
	switch activityType {
	case models.ActivitySpecial:
		if req.TentativeExpense == nil {
			return nil, fmt.Errorf("%w: tentativeExpense is required for Special activities", ErrValidation)
		}
	case models.ActivityGeneral:
		if req.ContactType != models.ContactCalling && req.ContactType != models.ContactDirect {
			return nil, fmt.Errorf("%w: contactType is required for General activities", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: invalid activityType %q", ErrValidation, activityType)
	}

	now := time.Now().UTC()
	activity := models.Activity{
		ID:               uuid.New(),
		CreatorID:        creator.ID,
		EmpID:            creator.EmpID,
		Title:            req.Title,
		FarmerName:       req.FarmerName,
		FarmerMobile:     req.FarmerMobile,
		Village:          req.Village,
		Taluka:           req.Taluka,
		District:         req.District,
		CropOrHybrid:     req.CropOrHybrid,
		FarmersInvolved:  req.FarmersInvolved,
		TentativeExpense: req.TentativeExpense,
		Remarks:          req.Remarks,
		ActivityType:     activityType,
		ContactType:      req.ContactType,
		Photos:           datatypes.NewJSONSlice(req.Photos),
		IsPublished:      true,
		PublishedAt:      &now,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return &activity, nil
}

// List returns activities visible to the requester. scope=team widens the
// creator set to the requester's whole subtree; targetID narrows it to one
// user, subject to the access policy. Expenses are redacted and photo URLs
// re-signed per activity.
func (s *ActivityService) List(ctx context.Context, requester *models.User, scope string, targetID *uuid.UUID) ([]dto.ActivityResponse, error) {
	var creatorIDs []uuid.UUID

	switch {
	case scope == "team":
		ids, err := s.policy.TeamIDs(requester)
		if err != nil {
			return nil, err
		}
		creatorIDs = ids
	case targetID != nil:
		allowed, err := s.policy.CanViewResourcesOf(requester, *targetID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: not authorized to view this user's activities", ErrForbidden)
		}
		creatorIDs = []uuid.UUID{*targetID}
	default:
		creatorIDs = []uuid.UUID{requester.ID}
	}

	var activities []models.Activity
	if err := s.db.Where("creator_id IN ?", creatorIDs).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	names, err := s.creatorNames(activities)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, s.toResponse(ctx, requester, &activities[i], names))
	}
	return responses, nil
}

// Update applies an RBM patch. A non-nil photo list replaces the stored one
// wholesale; the client decides which objects it kept.
func (s *ActivityService) Update(id uuid.UUID, req *dto.UpdateActivityRequest) (*models.Activity, error) {
	var activity models.Activity
	if err := s.db.First(&activity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.FarmerName != nil {
		activity.FarmerName = *req.FarmerName
	}
	if req.FarmerMobile != nil {
		activity.FarmerMobile = *req.FarmerMobile
	}
	if req.Village != nil {
		activity.Village = *req.Village
	}
	if req.Taluka != nil {
		activity.Taluka = *req.Taluka
	}
	if req.District != nil {
		activity.District = *req.District
	}
	if req.CropOrHybrid != nil {
		activity.CropOrHybrid = *req.CropOrHybrid
	}
	if req.FarmersInvolved != nil {
		activity.FarmersInvolved = *req.FarmersInvolved
	}
	if req.TentativeExpense != nil {
		activity.TentativeExpense = req.TentativeExpense
	}
	if req.Remarks != nil {
		activity.Remarks = *req.Remarks
	}
	if req.ActivityType != nil {
		activity.ActivityType = *req.ActivityType
	}
	if req.ContactType != nil {
		activity.ContactType = *req.ContactType
	}
	if req.Photos != nil {
		activity.Photos = datatypes.NewJSONSlice(req.Photos)
	}

	if err := s.db.Save(&activity).Error; err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return &activity, nil
}

// Delete soft-deletes an activity; cascading user deletion later removes the
// row and its photos for good.
func (s *ActivityService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Activity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (s *ActivityService) creatorNames(activities []models.Activity) (map[uuid.UUID]string, error) {
	idSet := make(map[uuid.UUID]struct{})
	for i := range activities {
		idSet[activities[i].CreatorID] = struct{}{}
	}
	if len(idSet) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var creators []models.User
	if err := s.db.Select("id", "name").Where("id IN ?", ids).Find(&creators).Error; err != nil {
		return nil, fmt.Errorf("failed to load creators: %w", err)
	}

	names := make(map[uuid.UUID]string, len(creators))
	for _, c := range creators {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (s *ActivityService) toResponse(ctx context.Context, requester *models.User, activity *models.Activity, names map[uuid.UUID]string) dto.ActivityResponse {
	resp := dto.ActivityResponse{
		ID:              activity.ID,
		CreatorID:       activity.CreatorID,
		CreatorName:     names[activity.CreatorID],
		EmpID:           activity.EmpID,
		Title:           activity.Title,
		FarmerName:      activity.FarmerName,
		FarmerMobile:    activity.FarmerMobile,
		Village:         activity.Village,
		Taluka:          activity.Taluka,
		District:        activity.District,
		CropOrHybrid:    activity.CropOrHybrid,
		FarmersInvolved: activity.FarmersInvolved,
		Remarks:         activity.Remarks,
		ActivityType:    activity.ActivityType,
		ContactType:     activity.ContactType,
		Photos:          s.media.SignPhotos(ctx, activity.Photos),
		IsPublished:     activity.IsPublished,
		PublishedAt:     activity.PublishedAt,
		CreatedAt:       activity.CreatedAt,
		UpdatedAt:       activity.UpdatedAt,
	}

	if s.policy.CanSeeExpense(requester, activity.CreatorID) {
		resp.TentativeExpense = activity.TentativeExpense
	}

	return resp
}
