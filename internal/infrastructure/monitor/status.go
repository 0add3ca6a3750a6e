package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Cache      bool      `json:"cache"`
	LastCheck  time.Time `json:"last_check"`
}
