package views

import "investments-api/internal/stats"

type StatsResponse struct {
	Data []stats.Entry `json:"data"`
}
