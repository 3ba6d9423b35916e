package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/emi-service/internal/calculator"
	"github.com/Dan9191/emi-service/internal/config"
	"github.com/Dan9191/emi-service/internal/models"
	"github.com/Dan9191/emi-service/internal/report"
	"github.com/Dan9191/emi-service/internal/repository"
	"github.com/Dan9191/emi-service/internal/utils"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrAlreadyExists      = repository.ErrAlreadyExists
	ErrSnapshotTampered   = errors.New("calculation snapshot signature mismatch")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrKeyRateUnavailable = errors.New("key rate unavailable")
)

const (
	keyRateCacheKey = "emi:key_rate"
	keyRateTTL      = 12 * time.Hour
	benchmarkLender = "Key rate benchmark"
)

// Store persists users and calculation snapshots
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	SaveCalculation(ctx context.Context, calc *models.Calculation) error
	FindCalculation(ctx context.Context, id string) (*models.Calculation, error)
	DeleteCalculation(ctx context.Context, id string) error
}

// Mailer delivers summary reports
type Mailer interface {
	SendEMISummary(to, username, summary string) error
}

// KeyRateProvider fetches the central bank key rate including bank margin
type KeyRateProvider interface {
	GetKeyRate(ctx context.Context) (float64, error)
}

// Service handles business logic
type Service struct {
	store    Store
	cache    repository.CacheRepository
	mailer   Mailer
	keyRates KeyRateProvider
	lenders  []models.LenderRate
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
}

// NewService initializes a new service
func NewService(
	store Store,
	cache repository.CacheRepository,
	mailer Mailer,
	keyRates KeyRateProvider,
	lenders []models.LenderRate,
	log *logrus.Logger,
	cfg *config.Config,
) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		mailer:   mailer,
		keyRates: keyRates,
		lenders:  lenders,
		log:      log,
		config:   cfg,
		now:      time.Now,
	}
}

// Calculate runs a compute cycle over the raw input and stores the signed snapshot
func (s *Service) Calculate(ctx context.Context, input models.CalculationInput) (*models.Calculation, error) {
	req := calculator.ParseRequest(input)

	calc, err := calculator.Compute(req, s.Lenders(ctx))
	if err != nil {
		s.log.Debugf("Calculation refused: %v", err)
		return nil, err
	}

	calc.ID = uuid.NewString()
	calc.CreatedAt = s.now().UTC()
	if calc.Signature, err = s.sign(calc); err != nil {
		return nil, err
	}

	if err := s.store.SaveCalculation(ctx, calc); err != nil {
		return nil, fmt.Errorf("failed to store calculation: %w", err)
	}

	s.log.Infof("Calculation %s: loan %.2f at %.2f%% for %d years, EMI %.2f",
		calc.ID, calc.EMI.LoanAmount, req.AnnualRatePercent, req.TenureYears, calc.EMI.MonthlyEMI)
	return calc, nil
}

// GetCalculation returns a stored snapshot after checking its signature
func (s *Service) GetCalculation(ctx context.Context, id string) (*models.Calculation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("calculation %w", ErrNotFound)
	}

	calc, err := s.store.FindCalculation(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := unsignedPayload(calc)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyHMAC(payload, calc.Signature, s.config.HMACSecret) {
		s.log.Errorf("Calculation %s failed signature check", id)
		return nil, ErrSnapshotTampered
	}
	return calc, nil
}

// Summary renders the text report of a stored snapshot
func (s *Service) Summary(ctx context.Context, id string) (string, error) {
	calc, err := s.GetCalculation(ctx, id)
	if err != nil {
		return "", err
	}
	return report.Summary(calc, s.now()), nil
}

// ResetCalculation discards a stored snapshot
func (s *Service) ResetCalculation(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("calculation %w", ErrNotFound)
	}
	if err := s.store.DeleteCalculation(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Calculation %s discarded", id)
	return nil
}

// EmailSummary sends the report of a stored snapshot to the given user
func (s *Service) EmailSummary(ctx context.Context, id string, userID int64) error {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	summary, err := s.Summary(ctx, id)
	if err != nil {
		return err
	}

	if err := s.mailer.SendEMISummary(user.Email, user.Username, summary); err != nil {
		return err
	}

	s.log.Infof("Summary of calculation %s sent to user %d", id, userID)
	return nil
}

// Lenders returns the comparison table, with the key-rate benchmark appended
// when enabled and a rate is cached. It never calls the upstream service.
func (s *Service) Lenders(ctx context.Context) []models.LenderRate {
	lenders := append([]models.LenderRate(nil), s.lenders...)
	if !s.config.KeyRateBenchmark {
		return lenders
	}
	if rate, ok := s.cachedKeyRate(ctx); ok {
		lenders = append(lenders, models.LenderRate{Name: benchmarkLender, AnnualRatePercent: rate})
	}
	return lenders
}

// KeyRate returns the cached key rate, fetching it on a miss
func (s *Service) KeyRate(ctx context.Context) (float64, error) {
	if rate, ok := s.cachedKeyRate(ctx); ok {
		return rate, nil
	}
	return s.RefreshKeyRate(ctx)
}

// RefreshKeyRate fetches the key rate from upstream and caches it
func (s *Service) RefreshKeyRate(ctx context.Context) (float64, error) {
	if s.keyRates == nil {
		return 0, ErrKeyRateUnavailable
	}
	rate, err := s.keyRates.GetKeyRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrKeyRateUnavailable, err)
	}

	value := strconv.FormatFloat(rate, 'f', -1, 64)
	if err := s.cache.Set(ctx, keyRateCacheKey, value, keyRateTTL); err != nil {
		s.log.Warnf("Failed to cache key rate: %v", err)
	}
	return rate, nil
}

func (s *Service) cachedKeyRate(ctx context.Context) (float64, bool) {
	raw, ok := s.cache.Get(ctx, keyRateCacheKey)
	if !ok {
		return 0, false
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate <= 0 {
		s.log.Warnf("Ignoring malformed cached key rate %q", raw)
		return 0, false
	}
	return rate, true
}

// sign computes the HMAC of the snapshot with its signature field blanked
func (s *Service) sign(calc *models.Calculation) (string, error) {
	payload, err := unsignedPayload(calc)
	if err != nil {
		return "", err
	}
	return utils.GenerateHMAC(payload, s.config.HMACSecret), nil
}

func unsignedPayload(calc *models.Calculation) ([]byte, error) {
	unsigned := *calc
	unsigned.Signature = ""
	payload, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calculation: %w", err)
	}
	return payload, nil
}
