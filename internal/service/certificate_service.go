package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"learnlocal_backend/internal/config"
	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/repository"
	"learnlocal_backend/internal/util"
	"learnlocal_backend/pkg/logger"
	"learnlocal_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CertificateService struct {
	CertRepo     *repository.CertificateRepository
	UserRepo     *repository.UserRepository
	ModuleRepo   *repository.ModuleRepository
	ProgressRepo *repository.ProgressRepository
	Cfg          *config.Config
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	userRepo *repository.UserRepository,
	moduleRepo *repository.ModuleRepository,
	progressRepo *repository.ProgressRepository,
	cfg *config.Config,
) *CertificateService {
	return &CertificateService{
		CertRepo:     certRepo,
		UserRepo:     userRepo,
		ModuleRepo:   moduleRepo,
		ProgressRepo: progressRepo,
		Cfg:          cfg,
	}
}

// Issue mints a certificate once the completed-lesson ratio clears the
// configured threshold. The check is deliberately looser than the module
// completion flag: quizzes are not required.
func (s *CertificateService) Issue(userID, moduleID uint) (*model.Certificate, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	if _, err := s.CertRepo.FindByUserAndModule(userID, moduleID); err == nil {
		return nil, util.ErrCertificateIssued
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	totalLessons := module.TotalLessons()
	if totalLessons == 0 {
		return nil, util.ErrModuleWithoutContent
	}

	completedLessons, err := s.ProgressRepo.CountCompleted(userID, moduleID, model.ItemLesson)
	if err != nil {
		return nil, err
	}

	if float64(completedLessons)/float64(totalLessons) < s.Cfg.Certificate.LessonThreshold {
		return nil, util.ErrModuleNotCompleted
	}

	timeSpent, err := s.ProgressRepo.SumCompletedTime(userID, moduleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	completionDate := now
	if mp, err := s.ProgressRepo.FindModuleProgress(userID, moduleID); err == nil && mp.CompletionDate != nil {
		completionDate = *mp.CompletionDate
	}

	cert := &model.Certificate{
		UserID:         userID,
		ModuleID:       moduleID,
		Code:           s.generateCode(userID, moduleID, now),
		UserName:       user.Username,
		ModuleTitle:    module.Title,
		TimeSpent:      timeSpent,
		CompletionDate: completionDate,
		IssuedAt:       now,
	}

	if err := s.CertRepo.Create(cert); err != nil {
		// A concurrent second attempt loses the race on the unique index.
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, util.ErrCertificateIssued
		}
		return nil, err
	}

	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.Uint("userId", userID),
		zap.Uint("moduleId", moduleID),
		zap.String("code", cert.Code),
	)

	return cert, nil
}

// generateCode composes prefix, issuance timestamp and the two ids. Not
// cryptographically random; uniqueness relies on the millisecond clock plus
// the id pair, which the unique column backs up.
func (s *CertificateService) generateCode(userID, moduleID uint, now time.Time) string {
	return fmt.Sprintf("%s-%d-%d-%d", s.Cfg.Certificate.Prefix, now.UnixMilli(), userID, moduleID)
}

func (s *CertificateService) Verify(code string) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) ListForUser(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.ListByUser(userID)
}
