package dto

type MetricsResponse struct {
	TotalCount     int64         `json:"total_count"`
	UniqueEntities int64         `json:"unique_entities"`
	GroupedData    []GroupedData `json:"grouped_data,omitempty"`
}

type GroupedData struct {
	Key            string `json:"key"`
	TotalCount     int64  `json:"total_count"`
	UniqueEntities int64  `json:"unique_entities"`
}
