package feed

import "airline-ops-backend/internal/store"

// ApiResponse models one page of the operations feed.
type ApiResponse struct {
	Code int `json:"code"`
	Data struct {
		Page     int                  `json:"page"`
		PageSize int                  `json:"pageSize"`
		Total    int                  `json:"total"`
		Items    []store.StatusUpdate `json:"items"`
	} `json:"data"`
}
