package services

import (
	"context"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/internal/repository"
)

const settingBaseURL = "base_url"

// SettingsService handles operator settings
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// GetBaseURL returns the URL other screens use to reach the operator page
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	v, err := s.repo.GetSetting(ctx, settingBaseURL)
	if err == repository.ErrNotFound {
		return "", nil
	}
	return v, err
}

func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, settingBaseURL, strings.TrimSuffix(url, "/"))
}

// OperatorQR encodes the operator page URL as a PNG QR code
func (s *SettingsService) OperatorQR(ctx context.Context) ([]byte, error) {
	baseURL, err := s.GetBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		return nil, ErrBaseURLNotSet
	}
	return qrcode.Encode(baseURL+"/", qrcode.Medium, 256)
}
