package view

import (
	"strings"

	"sciequip-backend/internal/model"
)

// StatusAll is the sentinel status filter that matches every record.
const StatusAll = "ALL"

// FilterEquipment keeps an item when the search string (case-insensitive) is
// a substring of its name or code, and its status equals the filter exactly.
// An empty search matches everything, as does the "ALL" status sentinel.
// Input order is preserved.
func FilterEquipment(items []model.Equipment, search, status string) []model.Equipment {
	out := make([]model.Equipment, 0, len(items))
	needle := strings.ToLower(search)
	for _, e := range items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(e.Code), needle) {
			continue
		}
		if status != StatusAll && string(e.Status) != status {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Stats is the aggregate view of the equipment inventory.
type Stats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	ByDepartment map[string]int `json:"byDepartment"`
}

// EquipmentStats aggregates the full equipment set. A missing status counts
// under "UNKNOWN" and a missing department under "N/A", so the by-status
// values always sum to the total.
func EquipmentStats(items []model.Equipment) Stats {
	stats := Stats{
		Total:        len(items),
		ByStatus:     make(map[string]int),
		ByDepartment: make(map[string]int),
	}
	for _, e := range items {
		status := string(e.Status)
		if status == "" {
			status = "UNKNOWN"
		}
		stats.ByStatus[status]++

		dept := e.UsingDepartment
		if dept == "" {
			dept = "N/A"
		}
		stats.ByDepartment[dept]++
	}
	return stats
}
