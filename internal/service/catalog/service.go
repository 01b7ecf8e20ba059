package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	policyRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/policy"
	promotionRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/promotion"
	vehicleRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
	"github.com/m04kA/M4Y-RentalService/internal/service/catalog/models"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// Service справочные данные для расчета цены: тарифы, политики, промоакции
type Service struct {
	vehicleRepo   VehicleRepository
	resolver      TariffResolver
	policyRepo    PolicyRepository
	promotionRepo PromotionRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	vehicleRepo VehicleRepository,
	resolver TariffResolver,
	policyRepo PolicyRepository,
	promotionRepo PromotionRepository,
	logger Logger,
) *Service {
	return &Service{
		vehicleRepo:   vehicleRepo,
		resolver:      resolver,
		policyRepo:    policyRepo,
		promotionRepo: promotionRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetTariff возвращает тариф автомобиля, действующий на дату
// Если дата не указана, используется сегодняшняя (UTC)
func (s *Service) GetTariff(ctx context.Context, vehicleID int64, onDate *types.Date) (*models.TariffResponse, error) {
	date := types.DateOf(s.timeProvider.Now().UTC())
	if onDate != nil {
		date = *onDate
	}
	s.logger.Info("GetTariff: vehicle=%d, date=%s", vehicleID, date)

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("GetTariff: vehicle id=%d not found", vehicleID)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("GetTariff: failed to get vehicle id=%d: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: GetTariff - vehicle repository error: %v", ErrInternal, err)
	}

	tariff, err := s.resolver.Resolve(ctx, vehicleID, date)
	if err != nil {
		if errors.Is(err, pricing.ErrTariffNotFound) {
			s.logger.Warn("GetTariff: no tariff for vehicle id=%d on %s", vehicleID, date)
			return nil, ErrTariffNotFound
		}
		s.logger.Error("GetTariff: failed to resolve tariff for vehicle id=%d: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: GetTariff - resolve tariff: %v", ErrInternal, err)
	}

	s.logger.Info("GetTariff: vehicle=%d resolved tariff id=%d", vehicleID, tariff.ID)
	return models.FromDomainTariff(vehicle, tariff, date), nil
}

// GetPolicy возвращает платежную политику с пунктами и правилами штрафов
func (s *Service) GetPolicy(ctx context.Context, policyID int64) (*models.PolicyResponse, error) {
	s.logger.Info("GetPolicy: fetching policy id=%d", policyID)

	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("GetPolicy: policy id=%d not found", policyID)
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("GetPolicy: repository error for policy id=%d: %v", policyID, err)
		return nil, fmt.Errorf("%w: GetPolicy - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy), nil
}

// GetPromotion возвращает промоакцию по коду и признак действия на сегодня
func (s *Service) GetPromotion(ctx context.Context, code string) (*models.PromotionResponse, error) {
	code = strings.TrimSpace(code)
	s.logger.Info("GetPromotion: fetching promotion code=%s", code)

	promotion, err := s.promotionRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			s.logger.Warn("GetPromotion: promotion code=%s not found", code)
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("GetPromotion: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetPromotion - repository error: %v", ErrInternal, err)
	}

	today := types.DateOf(s.timeProvider.Now().UTC())
	return models.FromDomainPromotion(promotion, promotion.InEffect(today)), nil
}
