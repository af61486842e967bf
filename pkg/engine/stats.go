package engine

import (
	"sort"

	"github.com/streamkas/streamkas/pkg/models"
)

// Stats derives the dashboard block over the whole collection.
func (e *Engine) Stats() models.StreamStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := models.StreamStats{TotalStreams: len(e.order)}
	for _, id := range e.order {
		s := e.streams[id]
		stats.TotalSompiSent += s.AmountSent
		stats.TotalTransactions += len(s.History)
		if s.Status == models.StreamActive {
			stats.ActiveStreams++
			stats.CurrentFlowRate += float64(s.FlowRate) / s.Interval.Seconds()
		}
	}
	return stats
}

// RecentTransactions flattens every stream's history into one newest-first
// list, capped at limit (50 when limit <= 0). Each entry carries its parent
// stream's id and display color.
func (e *Engine) RecentTransactions(limit int) []models.RecentTransaction {
	if limit <= 0 {
		limit = 50
	}

	e.mu.Lock()
	all := make([]models.RecentTransaction, 0)
	for _, id := range e.order {
		s := e.streams[id]
		for _, tx := range s.History {
			all = append(all, models.RecentTransaction{
				StreamTransaction: tx,
				StreamID:          s.Id,
				StreamColor:       s.Color,
			})
		}
	}
	e.mu.Unlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
