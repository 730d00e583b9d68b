package usecase

import (
	"context"
	"encoding/json"
	"time"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	dashboardCacheKey = "analytics:dashboard"
	dashboardCacheTTL = 60 * time.Second

	topComplaintsLimit = 10
)

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context) (*dto.DashboardSummaryResponse, error)
	Performance(ctx context.Context, from, to time.Time) (*dto.PerformanceAnalyticsResponse, error)
	Care(ctx context.Context, from, to time.Time) (*dto.CareAnalyticsResponse, error)
	Efficiency(ctx context.Context) (*dto.EfficiencyAnalyticsResponse, error)
}

type analyticsUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	analyticsRepo repository.AnalyticsRepository
	redisClient   *redis.Client
}

func NewAnalyticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	analyticsRepo repository.AnalyticsRepository,
	redisClient *redis.Client,
) AnalyticsUsecase {
	return &analyticsUsecase{
		db:            db,
		log:           log,
		analyticsRepo: analyticsRepo,
		redisClient:   redisClient,
	}
}

// Dashboard serves the operational summary with a short-lived Redis
// cache in front of the aggregate queries. Cache failures fall through
// to the database.
func (u *analyticsUsecase) Dashboard(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	cached, err := u.redisClient.Get(ctx, dashboardCacheKey).Result()
	if err == nil {
		var resp dto.DashboardSummaryResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		u.log.Warnf("Failed to decode cached dashboard, rebuilding: %+v", err)
	} else if err != redis.Nil {
		u.log.Warnf("Failed to read dashboard cache: %+v", err)
	}

	counts, err := u.analyticsRepo.DashboardCounts(u.db.WithContext(ctx), time.Now())
	if err != nil {
		u.log.Warnf("Failed to load dashboard counts: %+v", err)
		return nil, err
	}

	resp := &dto.DashboardSummaryResponse{
		TodayAppointments: counts.TodayAppointments,
		PendingToday:      counts.PendingToday,
		UrgentTriageToday: counts.UrgentTriageToday,
		WeekAppointments:  counts.WeekAppointments,
		TotalPatients:     counts.TotalPatients,
		ActiveStaff:       counts.ActiveStaff,
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := u.redisClient.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL).Err(); err != nil {
			u.log.Warnf("Failed to cache dashboard: %+v", err)
		}
	}

	return resp, nil
}

func (u *analyticsUsecase) Performance(ctx context.Context, from, to time.Time) (*dto.PerformanceAnalyticsResponse, error) {
	db := u.db.WithContext(ctx)

	daily, err := u.analyticsRepo.DailyAppointmentCounts(db, from, to)
	if err != nil {
		u.log.Warnf("Failed to load daily appointment counts: %+v", err)
		return nil, err
	}

	distribution, err := u.analyticsRepo.StatusDistribution(db)
	if err != nil {
		u.log.Warnf("Failed to load status distribution: %+v", err)
		return nil, err
	}

	return &dto.PerformanceAnalyticsResponse{
		DailyAppointments:  daily,
		StatusDistribution: distribution,
	}, nil
}

func (u *analyticsUsecase) Care(ctx context.Context, from, to time.Time) (*dto.CareAnalyticsResponse, error) {
	db := u.db.WithContext(ctx)

	urgent, err := u.analyticsRepo.DailyUrgentTriageCounts(db, from, to)
	if err != nil {
		u.log.Warnf("Failed to load urgent triage counts: %+v", err)
		return nil, err
	}

	complaints, err := u.analyticsRepo.TopChiefComplaints(db, topComplaintsLimit)
	if err != nil {
		u.log.Warnf("Failed to load top chief complaints: %+v", err)
		return nil, err
	}

	return &dto.CareAnalyticsResponse{
		DailyUrgentCases:   urgent,
		TopChiefComplaints: complaints,
	}, nil
}

func (u *analyticsUsecase) Efficiency(ctx context.Context) (*dto.EfficiencyAnalyticsResponse, error) {
	db := u.db.WithContext(ctx)

	avgDuration, err := u.analyticsRepo.AverageVisitDurationMinutes(db)
	if err != nil {
		u.log.Warnf("Failed to load average visit duration: %+v", err)
		return nil, err
	}

	revenue, err := u.analyticsRepo.Revenue(db)
	if err != nil {
		u.log.Warnf("Failed to load revenue summary: %+v", err)
		return nil, err
	}

	return &dto.EfficiencyAnalyticsResponse{
		AverageVisitDurationMinutes: avgDuration,
		TotalBilled:                 revenue.TotalBilled.StringFixed(2),
		TotalCollected:              revenue.TotalCollected.StringFixed(2),
		PendingPayments:             revenue.PendingPayments,
	}, nil
}
