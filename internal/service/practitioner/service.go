package practitioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/apconnect/directory-api/internal/model"
	"github.com/apconnect/directory-api/internal/repository"
	"github.com/apconnect/directory-api/internal/storage"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
	"github.com/apconnect/directory-api/pkg/metrics"
)

// Submission validation messages
const (
	MsgNameRequired      = "Name is required"
	MsgAHPRARequired     = "AHPRA number is required"
	MsgConditionRequired = "At least one condition must be selected"
	MsgLocationRequired  = "At least one location is required"
)

var photoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type PractitionerServicer interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req *model.CreateProfileRequest) (*model.Practitioner, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Practitioner, error)
	UpdateAvailability(ctx context.Context, userID uuid.UUID, req *model.AvailabilityRequest) error
	AddLocation(ctx context.Context, userID uuid.UUID, req *model.AddLocationRequest) (*model.Location, error)
	DeleteLocation(ctx context.Context, userID, locationID uuid.UUID) error
	AddTrainingRecord(ctx context.Context, userID uuid.UUID, req *model.AddTrainingRequest) (*model.TrainingRecord, error)
	SubmitForVerification(ctx context.Context, userID uuid.UUID) error
	GetDashboard(ctx context.Context, userID uuid.UUID) (*model.Dashboard, error)
	UploadPhoto(ctx context.Context, userID uuid.UUID, photo Photo) (string, error)
}

// Photo is an uploaded profile image.
type Photo struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

type Service struct {
	practitioners repository.PractitionerRepository
	locations     repository.LocationRepository
	training      repository.TrainingRepository
	storage       storage.Storage
	metrics       *metrics.Metrics
	maxPhotoBytes int64
}

func NewService(
	practitioners repository.PractitionerRepository,
	locations repository.LocationRepository,
	training repository.TrainingRepository,
	store storage.Storage,
	m *metrics.Metrics,
	maxPhotoBytes int64,
) *Service {
	return &Service{
		practitioners: practitioners,
		locations:     locations,
		training:      training,
		storage:       store,
		metrics:       m,
		maxPhotoBytes: maxPhotoBytes,
	}
}

// current loads the caller's own practitioner profile.
func (s *Service) current(ctx context.Context, userID uuid.UUID) (*model.Practitioner, error) {
	p, err := s.practitioners.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("practitioner profile", err)
	}
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("error fetching practitioner")
		return nil, apperrors.Internal("failed to fetch practitioner profile", err)
	}
	return p, nil
}

func (s *Service) CreateProfile(ctx context.Context, userID uuid.UUID, req *model.CreateProfileRequest) (*model.Practitioner, error) {
	if _, err := s.practitioners.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.Conflict("practitioner profile already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Error().Err(err).Msg("error checking existing profile")
		return nil, apperrors.Internal("failed to create profile", err)
	}

	base := BaseSlug(req.FirstName, req.LastName)
	existing, err := s.practitioners.CountSlugPrefix(ctx, base)
	if err != nil {
		log.Error().Err(err).Str("slug", base).Msg("error counting slugs")
		return nil, apperrors.Internal("failed to create profile", err)
	}

	p := &model.Practitioner{
		UserID:        userID,
		Slug:          NextSlug(base, existing),
		Title:         model.NullString(req.Title),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		AHPRANumber:   strings.TrimSpace(req.AHPRANumber),
		ProfileStatus: model.ProfileStatusDraft,
		APStatus:      model.APStatusPending,
	}
	if err := s.practitioners.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("profile could not be created, please try again", err)
		}
		log.Error().Err(err).Msg("error creating profile")
		return nil, apperrors.Internal("failed to create profile", err)
	}

	s.metrics.ProfilesCreated.Inc()
	log.Info().Str("slug", p.Slug).Stringer("practitioner_id", p.ID).Msg("practitioner profile created")
	return p, nil
}

// splitQualifications splits a comma separated list, dropping blanks.
func splitQualifications(s string) []string {
	out := []string{}
	for _, q := range strings.Split(s, ",") {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Practitioner, error) {
	p, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}

	conditions := []string{}
	for _, c := range req.Conditions {
		if c = strings.TrimSpace(c); c != "" {
			conditions = append(conditions, c)
		}
	}

	p.Title = model.NullString(req.Title)
	p.FirstName = strings.TrimSpace(req.FirstName)
	p.LastName = strings.TrimSpace(req.LastName)
	p.Bio = model.NullString(req.Bio)
	p.AHPRANumber = strings.TrimSpace(req.AHPRANumber)
	p.Qualifications = splitQualifications(req.Qualifications)
	p.ClinicName = model.NullString(req.ClinicName)
	p.Website = model.NullString(req.Website)
	p.ContactEmail = model.NullString(req.ContactEmail)
	p.ContactPhone = model.NullString(req.ContactPhone)
	p.APConditions = conditions
	p.Telehealth = req.Telehealth.Bool()
	p.FundingMedicare = req.FundingMedicare.Bool()
	p.FundingDVA = req.FundingDVA.Bool()
	p.FundingNDIS = req.FundingNDIS.Bool()
	p.FundingPrivate = req.FundingPrivate.Bool()
	p.FundingWorkcover = req.FundingWorkcover.Bool()
	p.ReferralProcess = model.NullString(req.ReferralProcess)
	p.ReferralEmail = model.NullString(req.ReferralEmail)
	p.ReferralPhone = model.NullString(req.ReferralPhone)

	if err := s.practitioners.UpdateProfile(ctx, p); err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error updating profile")
		return nil, apperrors.Internal("failed to update profile", err)
	}
	return p, nil
}

// parseWaitlist maps a blank field to NULL and anything else to a week count.
func parseWaitlist(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	weeks, err := strconv.Atoi(raw)
	if err != nil || weeks < 0 {
		return nil, apperrors.BadRequest("waitlist weeks must be a whole number", err)
	}
	return &weeks, nil
}

func (s *Service) UpdateAvailability(ctx context.Context, userID uuid.UUID, req *model.AvailabilityRequest) error {
	weeks, err := parseWaitlist(req.WaitlistWeeks)
	if err != nil {
		return err
	}

	err = s.practitioners.UpdateAvailability(ctx, userID, req.AcceptingPatients.Bool(), weeks)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("practitioner profile", err)
	}
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("error updating availability")
		return apperrors.Internal("failed to update availability", err)
	}
	return nil
}

func (s *Service) AddLocation(ctx context.Context, userID uuid.UUID, req *model.AddLocationRequest) (*model.Location, error) {
	p, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := &model.Location{
		PractitionerID: p.ID,
		Name:           model.NullString(req.Name),
		Address:        model.NullString(req.Address),
		Suburb:         model.NullString(req.Suburb),
		State:          strings.ToUpper(strings.TrimSpace(req.State)),
		Postcode:       model.NullString(req.Postcode),
		IsPrimary:      req.IsPrimary.Bool(),
	}
	if err := s.locations.Add(ctx, loc); err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error adding location")
		return nil, apperrors.Internal("failed to add location", err)
	}
	return loc, nil
}

func (s *Service) DeleteLocation(ctx context.Context, userID, locationID uuid.UUID) error {
	p, err := s.current(ctx, userID)
	if err != nil {
		return err
	}

	err = s.locations.Delete(ctx, locationID, p.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("location", err)
	}
	if err != nil {
		log.Error().Err(err).Stringer("location_id", locationID).Msg("error deleting location")
		return apperrors.Internal("failed to delete location", err)
	}
	return nil
}

func (s *Service) AddTrainingRecord(ctx context.Context, userID uuid.UUID, req *model.AddTrainingRequest) (*model.TrainingRecord, error) {
	p, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if raw := strings.TrimSpace(req.CompletedAt); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apperrors.BadRequest("completion date must be YYYY-MM-DD", err)
		}
		completedAt = &t
	}

	record := &model.TrainingRecord{
		PractitionerID: p.ID,
		Provider:       strings.TrimSpace(req.Provider),
		Program:        strings.TrimSpace(req.Program),
		CompletedAt:    completedAt,
		CertificateID:  model.NullString(req.CertificateID),
		IsPIGraduate:   model.IsPIProvider(req.Provider),
		Verified:       false,
	}
	if err := s.training.Create(ctx, record); err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error adding training")
		return nil, apperrors.Internal("failed to add training record", err)
	}
	return record, nil
}

// submissionProblems lists what stops a profile from being submitted.
func submissionProblems(p *model.Practitioner, locationCount int) []string {
	var problems []string
	if p.FirstName == "" || p.LastName == "" {
		problems = append(problems, MsgNameRequired)
	}
	if p.AHPRANumber == "" {
		problems = append(problems, MsgAHPRARequired)
	}
	if len(p.APConditions) == 0 {
		problems = append(problems, MsgConditionRequired)
	}
	if locationCount == 0 {
		problems = append(problems, MsgLocationRequired)
	}
	return problems
}

// SubmitForVerification queues the profile for admin review. The profile stays
// in draft until an admin approves it.
func (s *Service) SubmitForVerification(ctx context.Context, userID uuid.UUID) error {
	p, err := s.current(ctx, userID)
	if err != nil {
		return err
	}

	count, err := s.locations.CountByPractitioner(ctx, p.ID)
	if err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error counting locations")
		return apperrors.Internal("failed to submit for verification", err)
	}

	if problems := submissionProblems(p, count); len(problems) > 0 {
		return apperrors.BadRequest(fmt.Sprintf("Cannot submit: %s", strings.Join(problems, ", ")), nil)
	}

	err = s.practitioners.SetStatus(ctx, p.ID, model.StatusChange{
		ProfileStatus: model.ProfileStatusDraft,
		APStatus:      model.APStatusPending,
	})
	if err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error submitting for verification")
		return apperrors.Internal("failed to submit for verification", err)
	}

	log.Info().Stringer("practitioner_id", p.ID).Msg("profile submitted for verification")
	return nil
}

// GetDashboard returns the caller's profile with all training records and the
// completion checklist. Without a profile it returns an onboarding dashboard.
func (s *Service) GetDashboard(ctx context.Context, userID uuid.UUID) (*model.Dashboard, error) {
	p, err := s.practitioners.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &model.Dashboard{Onboarding: true}, nil
	}
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("error fetching practitioner")
		return nil, apperrors.Internal("failed to load dashboard", err)
	}

	locations, err := s.locations.ListByPractitioner(ctx, p.ID)
	if err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error fetching locations")
		return nil, apperrors.Internal("failed to load dashboard", err)
	}
	training, err := s.training.ListByPractitioner(ctx, p.ID, false)
	if err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error fetching training")
		return nil, apperrors.Internal("failed to load dashboard", err)
	}

	details := &model.PractitionerDetails{Practitioner: *p, Locations: locations, TrainingRecords: training}
	if details.Locations == nil {
		details.Locations = []*model.Location{}
	}
	if details.TrainingRecords == nil {
		details.TrainingRecords = []*model.TrainingRecord{}
	}

	completion := model.NewCompletion(details)
	details.ProfileCompleteness = completion.Percentage

	return &model.Dashboard{Practitioner: details, Completion: completion}, nil
}

// UploadPhoto stores a profile image and points photo_url at it.
func (s *Service) UploadPhoto(ctx context.Context, userID uuid.UUID, photo Photo) (string, error) {
	ext, ok := photoTypes[photo.ContentType]
	if !ok {
		return "", apperrors.BadRequest("photo must be a JPEG, PNG or WebP image", nil)
	}
	if s.maxPhotoBytes > 0 && photo.Size > s.maxPhotoBytes {
		return "", apperrors.BadRequest(fmt.Sprintf("photo must be at most %d bytes", s.maxPhotoBytes), nil)
	}

	p, err := s.current(ctx, userID)
	if err != nil {
		return "", err
	}

	key := path.Join("practitioners", p.ID.String(), uuid.NewString()+ext)
	url, err := s.storage.Upload(ctx, key, photo.Body, photo.Size, photo.ContentType)
	if err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error uploading photo")
		return "", apperrors.Internal("failed to upload photo", err)
	}

	if err := s.practitioners.UpdatePhoto(ctx, p.ID, url); err != nil {
		log.Error().Err(err).Stringer("practitioner_id", p.ID).Msg("error saving photo url")
		return "", apperrors.Internal("failed to upload photo", err)
	}
	return url, nil
}
