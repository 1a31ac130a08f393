package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

// ContentService manages the content registry that slots reference.
type ContentService struct {
	docs      planDocuments
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewContentService constructs a ContentService.
func NewContentService(docs planDocuments, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		docs:      docs,
		validator: registerPlanValidations(validate),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns all contents ordered by creation time.
func (s *ContentService) List(ctx context.Context, ks repository.Keyspace) ([]models.Content, error) {
	contents, err := s.docs.LoadContents(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load contents")
	}
	result := make([]models.Content, 0, len(contents))
	for _, content := range contents {
		result = append(result, content)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Get returns one content.
func (s *ContentService) Get(ctx context.Context, ks repository.Keyspace, id string) (*models.Content, error) {
	contents, err := s.docs.LoadContents(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load contents")
	}
	content, ok := contents[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("content %s not found", id))
	}
	return &content, nil
}

// Save creates a content, or replaces it when the id already exists.
func (s *ContentService) Save(ctx context.Context, ks repository.Keyspace, req dto.CreateContentRequest) (*models.Content, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid content payload")
	}
	contents, err := s.docs.LoadContents(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load contents")
	}

	ts := s.now()
	content := models.Content{
		ID:                req.ID,
		Title:             req.Title,
		Description:       req.Description,
		Rechtsgebiet:      req.Rechtsgebiet,
		Unterrechtsgebiet: req.Unterrechtsgebiet,
		Kapitel:           req.Kapitel,
		ThemeID:           req.ThemeID,
		BlockType:         models.BlockType(req.BlockType),
		Tasks:             req.Tasks,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	if content.BlockType == "" {
		content.BlockType = models.BlockTypeTheme
	}
	if content.Tasks == nil {
		content.Tasks = []models.Task{}
	}
	for i := range content.Tasks {
		if content.Tasks[i].ID == "" {
			content.Tasks[i].ID = uuid.NewString()
		}
	}
	if prev, ok := contents[content.ID]; ok {
		content.CreatedAt = prev.CreatedAt
	}
	contents[content.ID] = content

	if err := s.docs.SaveContents(ctx, ks, contents); err != nil {
		return nil, storeFailure(err, "save content")
	}
	return &content, nil
}

// Delete removes a content. Slots still referencing it are left alone and simply
// stop producing sessions.
func (s *ContentService) Delete(ctx context.Context, ks repository.Keyspace, id string) error {
	contents, err := s.docs.LoadContents(ctx, ks)
	if err != nil {
		return storeFailure(err, "load contents")
	}
	if _, ok := contents[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("content %s not found", id))
	}
	delete(contents, id)
	if err := s.docs.SaveContents(ctx, ks, contents); err != nil {
		return storeFailure(err, "delete content")
	}
	return nil
}
