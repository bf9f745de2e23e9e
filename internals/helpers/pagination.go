package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SafeOrderClause resolves ?sort_by=&order= against a whitelist of column expressions.
func SafeOrderClause(c *fiber.Ctx, allowed map[string]string, defaultKey string) string {
	key := strings.TrimSpace(c.Query("sort_by"))
	col, ok := allowed[key]
	if !ok {
		col = allowed[defaultKey]
	}
	order := strings.ToLower(strings.TrimSpace(c.Query("order")))
	if order != "asc" {
		order = "desc"
	}
	return col + " " + order
}

// SplitCSV splits "a, b,,c" into [a b c].
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
