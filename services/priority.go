package services

import (
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/config"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"gorm.io/gorm"
)

// PriorityWeights holds the tunable constants of the priority score. VIPThreshold is
// the number of SERVED bookings that makes a VIP; LargePartyCapacitySlack is how many
// empty seats the assignment engine accepts for a large party.
type PriorityWeights struct {
	VIPThreshold            int
	VIPBonus                int
	LoyaltyPerVisit         int
	PerBooking              int
	LargePartyMinGuests     int
	LargePartyBonus         int
	MediumPartyMinGuests    int
	MediumPartyBonus        int
	SpecialRequestBonus     int
	WaitPerMinute           int
	WaitCap                 int
	LargePartyCapacitySlack int
}

func DefaultPriorityWeights() PriorityWeights {
	return PriorityWeights{
		VIPThreshold:            5,
		VIPBonus:                50,
		LoyaltyPerVisit:         10,
		PerBooking:              5,
		LargePartyMinGuests:     6,
		LargePartyBonus:         30,
		MediumPartyMinGuests:    4,
		MediumPartyBonus:        15,
		SpecialRequestBonus:     20,
		WaitPerMinute:           2,
		WaitCap:                 100,
		LargePartyCapacitySlack: 2,
	}
}

// WeightsFromConfig overlays the non-zero values of the inventory file on the defaults.
func WeightsFromConfig(c config.PriorityWeights) PriorityWeights {
	w := DefaultPriorityWeights()
	overlay := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	overlay(&w.VIPThreshold, c.VIPThreshold)
	overlay(&w.VIPBonus, c.VIPBonus)
	overlay(&w.LoyaltyPerVisit, c.LoyaltyPerVisit)
	overlay(&w.PerBooking, c.PerBooking)
	overlay(&w.LargePartyMinGuests, c.LargePartyMinGuests)
	overlay(&w.LargePartyBonus, c.LargePartyBonus)
	overlay(&w.MediumPartyMinGuests, c.MediumPartyMinGuests)
	overlay(&w.MediumPartyBonus, c.MediumPartyBonus)
	overlay(&w.SpecialRequestBonus, c.SpecialRequestBonus)
	overlay(&w.WaitPerMinute, c.WaitPerMinute)
	overlay(&w.WaitCap, c.WaitCap)
	overlay(&w.LargePartyCapacitySlack, c.LargePartyCapacitySlack)
	return w
}

type PriorityFactors struct {
	VIPStatus        bool `json:"vip_status"`
	LoyaltyPoints    int  `json:"loyalty_points"`
	BookingFrequency int  `json:"booking_frequency"`
	PartySize        int  `json:"party_size"`
	SpecialRequests  bool `json:"special_requests"`
	WaitTimeMinutes  int  `json:"wait_time_minutes"`
}

type CustomerPriority struct {
	CustomerID uint            `json:"customer_id"`
	Score      int             `json:"score"`
	Factors    PriorityFactors `json:"factors"`
}

// ComputePriority scores a request from the customer's booking history. It reads
// nothing but its arguments.
func ComputePriority(w PriorityWeights, customerID uint, history []models.Booking, partySize int, hasSpecialRequests bool, now time.Time) CustomerPriority {
	completed := 0
	var pendingSince *time.Time
	for i := range history {
		b := &history[i]
		switch b.Status {
		case models.BookingStatusServed:
			completed++
		case models.BookingStatusPending:
			// the most recent pending request is the one being waited on
			if pendingSince == nil || b.CreatedAt.After(*pendingSince) {
				created := b.CreatedAt
				pendingSince = &created
			}
		}
	}

	waitMinutes := 0
	if pendingSince != nil && now.After(*pendingSince) {
		waitMinutes = int(now.Sub(*pendingSince).Minutes())
	}

	f := PriorityFactors{
		VIPStatus:        completed >= w.VIPThreshold,
		LoyaltyPoints:    completed * w.LoyaltyPerVisit,
		BookingFrequency: len(history),
		PartySize:        partySize,
		SpecialRequests:  hasSpecialRequests,
		WaitTimeMinutes:  waitMinutes,
	}

	score := f.LoyaltyPoints + w.PerBooking*f.BookingFrequency
	if f.VIPStatus {
		score += w.VIPBonus
	}
	switch {
	case partySize >= w.LargePartyMinGuests:
		score += w.LargePartyBonus
	case partySize >= w.MediumPartyMinGuests:
		score += w.MediumPartyBonus
	}
	if hasSpecialRequests {
		score += w.SpecialRequestBonus
	}
	waitBonus := w.WaitPerMinute * waitMinutes
	if waitBonus > w.WaitCap {
		waitBonus = w.WaitCap
	}
	score += waitBonus

	return CustomerPriority{CustomerID: customerID, Score: score, Factors: f}
}

// PriorityScorer loads booking history from the store and scores it.
type PriorityScorer struct {
	DB      *gorm.DB
	Weights PriorityWeights
	Now     func() time.Time
}

func NewPriorityScorer(db *gorm.DB, weights PriorityWeights) *PriorityScorer {
	return &PriorityScorer{DB: db, Weights: weights, Now: time.Now}
}

// Score never fails: an unknown customer or a read error yields the floor score.
func (ps *PriorityScorer) Score(customerID uint, partySize int, hasSpecialRequests bool) CustomerPriority {
	var history []models.Booking
	if err := ps.DB.Where("customer_id = ?", customerID).Find(&history).Error; err != nil {
		logError("priority", "load booking history", err, map[string]interface{}{"customer_id": customerID})
		history = nil
	}
	return ComputePriority(ps.Weights, customerID, history, partySize, hasSpecialRequests, ps.Now())
}
