package activity

import "github.com/fazlanhoxton/hxt-events/domain/validation"

const (
	GroupByKind = "kind"
	GroupByHour = "hour"
	GroupByDay  = "day"
)

var validGroupBy = map[string]bool{GroupByKind: true, GroupByHour: true, GroupByDay: true}

type MetricsQuery struct {
	Kind    string `query:"kind"`
	From    int64  `query:"from"`
	To      int64  `query:"to"`
	GroupBy string `query:"group_by"`
}

func (q *MetricsQuery) Validate() error {
	validationErr := validation.NewValidationError()

	if q.From == 0 {
		validationErr.Add(validation.ErrorDetail{
			Field:   "from",
			Code:    validation.ErrCodeRequired,
			Message: "from timestamp is required",
		})
	}

	if q.To == 0 {
		validationErr.Add(validation.ErrorDetail{
			Field:   "to",
			Code:    validation.ErrCodeRequired,
			Message: "to timestamp is required",
		})
	}

	if q.From != 0 && q.To != 0 && q.To <= q.From {
		validationErr.Add(validation.ErrorDetail{
			Field:   "to",
			Code:    validation.ErrCodeInvalidRange,
			Message: "to timestamp must be greater than from timestamp",
		})
	}

	if q.Kind != "" && !validKinds[q.Kind] {
		validationErr.Add(validation.ErrorDetail{
			Field:   "kind",
			Code:    validation.ErrCodeInvalidValue,
			Message: "invalid kind value, must be one of: event.created, venue.created",
		})
	}

	if q.GroupBy != "" && !validGroupBy[q.GroupBy] {
		validationErr.Add(validation.ErrorDetail{
			Field:   "group_by",
			Code:    validation.ErrCodeInvalidGroup,
			Message: "invalid group_by value, must be one of: kind, hour, day",
		})
	}

	return validationErr.Err()
}

type MetricsResult struct {
	TotalCount     int64           `json:"total_count"`
	UniqueEntities int64           `json:"unique_entities"`
	GroupedData    []GroupedMetric `json:"grouped_data,omitempty"`
}

type GroupedMetric struct {
	Key            string `json:"key"`
	TotalCount     int64  `json:"total_count"`
	UniqueEntities int64  `json:"unique_entities"`
}
