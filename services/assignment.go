package services

import (
	"sort"
	"strings"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
)

// Assignment reasons
const (
	ReasonVIPTable     = "VIP premium table"
	ReasonLargeParty   = "large party fit"
	ReasonBestCapacity = "best capacity match"
)

var premiumPositions = []string{"vip", "private", "window"}

type TableSuggestion struct {
	TableID     uint             `json:"table_id"`
	TableNumber string           `json:"table_number"`
	Capacity    int              `json:"capacity"`
	Position    string           `json:"position"`
	Reason      string           `json:"reason"`
	Priority    CustomerPriority `json:"priority"`
}

// SelectTable picks a table from a snapshot of the inventory. Only FREE tables are
// considered; ties inside a tier go to the lowest table id. Returns nil if nothing fits.
func SelectTable(tables []models.Table, priority CustomerPriority, guests int, w PriorityWeights) *TableSuggestion {
	free := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if t.IsFree() {
			free = append(free, t)
		}
	}
	sort.SliceStable(free, func(i, j int) bool { return free[i].ID < free[j].ID })

	suggest := func(t models.Table, reason string) *TableSuggestion {
		return &TableSuggestion{
			TableID:     t.ID,
			TableNumber: t.TableNumber,
			Capacity:    t.Capacity,
			Position:    t.Position,
			Reason:      reason,
			Priority:    priority,
		}
	}

	if priority.Factors.VIPStatus {
		for _, t := range free {
			if t.Capacity >= guests && isPremiumPosition(t.Position) {
				return suggest(t, ReasonVIPTable)
			}
		}
	}

	if guests >= w.LargePartyMinGuests {
		if t := tightestFit(free, guests, guests+w.LargePartyCapacitySlack); t != nil {
			return suggest(*t, ReasonLargeParty)
		}
	}

	if t := tightestFit(free, guests, -1); t != nil {
		return suggest(*t, ReasonBestCapacity)
	}
	return nil
}

// tightestFit returns the smallest table seating at least lo guests; hi < 0 means
// no upper bound.
func tightestFit(tables []models.Table, lo, hi int) *models.Table {
	var best *models.Table
	for i := range tables {
		t := &tables[i]
		if t.Capacity < lo || (hi >= 0 && t.Capacity > hi) {
			continue
		}
		if best == nil || t.Capacity < best.Capacity {
			best = t
		}
	}
	return best
}

func isPremiumPosition(position string) bool {
	p := strings.ToLower(position)
	for _, keyword := range premiumPositions {
		if strings.Contains(p, keyword) {
			return true
		}
	}
	return false
}

// AssignmentEngine suggests tables from the live inventory.
type AssignmentEngine struct {
	Tables *TableRegistry
	Scorer *PriorityScorer
}

func NewAssignmentEngine(tables *TableRegistry, scorer *PriorityScorer) *AssignmentEngine {
	return &AssignmentEngine{Tables: tables, Scorer: scorer}
}

// SuggestTable returns nil (and no error) when no free table fits.
func (e *AssignmentEngine) SuggestTable(guests int, customerID uint, specialRequests string) (*TableSuggestion, error) {
	priority := e.Scorer.Score(customerID, guests, strings.TrimSpace(specialRequests) != "")
	tables, err := e.Tables.FreeTables()
	if err != nil {
		return nil, err
	}

	suggestion := SelectTable(tables, priority, guests, e.Scorer.Weights)
	if suggestion == nil {
		tableAssignments.WithLabelValues("none").Inc()
		logInfo("assignment", "no table fits request", map[string]interface{}{
			"customer_id": customerID,
			"guests":      guests,
		})
		return nil, nil
	}
	tableAssignments.WithLabelValues(suggestion.Reason).Inc()
	return suggestion, nil
}
