package services

import (
	"context"
	"fmt"

	"github.com/GLADI8R/landscape2/internal/core/ports/driven"
	"github.com/GLADI8R/landscape2/internal/core/ports/driving"
	"github.com/GLADI8R/landscape2/internal/logger"
)

// Ensure ValidateService implements the interface.
var _ driving.ValidateService = (*ValidateService)(nil)

// ValidateService checks that landscape input files can be loaded.
type ValidateService struct {
	source driven.DataSource
}

// NewValidateService creates a validate service.
func NewValidateService(source driven.DataSource) *ValidateService {
	return &ValidateService{source: source}
}

// ValidateData loads the landscape data file.
func (s *ValidateService) ValidateData(ctx context.Context) error {
	data, err := s.source.LandscapeData(ctx)
	if err != nil {
		return fmt.Errorf("the landscape data file provided is not valid: %w", err)
	}
	logger.Debug("landscape data contains %d categories and %d items", len(data.Categories), len(data.Items))
	return nil
}
