package dto

import "github.com/google/uuid"

type RowError struct {
	Line   int                 `json:"line"`
	Errors map[string][]string `json:"errors"`
}

type ImportResult struct {
	Total    int         `json:"total"`
	Imported int         `json:"imported"`
	Failed   int         `json:"failed"`
	IDs      []uuid.UUID `json:"ids"`
	Errors   []RowError  `json:"errors"`
}
