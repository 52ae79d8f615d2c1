package application

import (
	"context"

	"github.com/fazlanhoxton/hxt-events/application/dto"
	"github.com/fazlanhoxton/hxt-events/domain/activity"
)

type ActivityService interface {
	GetMetrics(ctx context.Context, query *activity.MetricsQuery) (*dto.MetricsResponse, error)
}

type activityService struct {
	repository activity.Repository
}

func NewActivityService(repository activity.Repository) ActivityService {
	return &activityService{
		repository: repository,
	}
}

func (s *activityService) GetMetrics(ctx context.Context, query *activity.MetricsQuery) (*dto.MetricsResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result, err := s.repository.GetMetrics(ctx, query)
	if err != nil {
		return nil, err
	}

	response := &dto.MetricsResponse{
		TotalCount:     result.TotalCount,
		UniqueEntities: result.UniqueEntities,
	}

	if len(result.GroupedData) > 0 {
		response.GroupedData = make([]dto.GroupedData, len(result.GroupedData))
		for i, g := range result.GroupedData {
			response.GroupedData[i] = dto.GroupedData{
				Key:            g.Key,
				TotalCount:     g.TotalCount,
				UniqueEntities: g.UniqueEntities,
			}
		}
	}

	return response, nil
}
