package service

import (
	"context"
	"strings"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

type TemplateService struct {
	templateRepo domain.TemplateRepository
}

func NewTemplateService(templateRepo domain.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

func (s *TemplateService) List(ctx context.Context, userID string) ([]*domain.WorkoutTemplate, error) {
	return s.templateRepo.ListByUser(ctx, userID)
}

func (s *TemplateService) Get(ctx context.Context, userID, id string) (*domain.WorkoutTemplate, error) {
	return s.templateRepo.GetByID(ctx, userID, id)
}

func (s *TemplateService) Create(ctx context.Context, userID string, tmpl *domain.WorkoutTemplate) error {
	tmpl.UserID = userID
	normalizeTemplate(tmpl)
	return s.templateRepo.Create(ctx, tmpl)
}

// Update replaces the editable content of an existing template
func (s *TemplateService) Update(ctx context.Context, userID, id string, tmpl *domain.WorkoutTemplate) (*domain.WorkoutTemplate, error) {
	existing, err := s.templateRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tmpl.ID = existing.ID
	tmpl.UserID = userID
	tmpl.CreatedAt = existing.CreatedAt
	normalizeTemplate(tmpl)

	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *TemplateService) Delete(ctx context.Context, userID, id string) error {
	return s.templateRepo.Delete(ctx, userID, id)
}

// normalizeTemplate numbers days in order and drops blank tags
func normalizeTemplate(tmpl *domain.WorkoutTemplate) {
	tmpl.PlanName = strings.TrimSpace(tmpl.PlanName)
	for i := range tmpl.Days {
		tmpl.Days[i].DayNumber = i + 1
	}

	tags := make([]string, 0, len(tmpl.Tags))
	for _, tag := range tmpl.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	tmpl.Tags = tags
}
