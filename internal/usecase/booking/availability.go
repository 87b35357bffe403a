package booking

import (
	"context"
	"time"

	domain "github.com/bookitlabs/bookit-server/internal/domain/booking"
	"github.com/bookitlabs/bookit-server/internal/httperr"
	"github.com/bookitlabs/bookit-server/internal/models"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityInput struct {
	StaffID   uint
	ServiceID uint
	Date      string // YYYY-MM-DD
}

// GetAvailability lists the free slots of a staff member's day: the
// working-hours window stepped by the service duration, minus the break
// window and minus already-scheduled bookings.
type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]TimeSlot, error) {

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.StaffID, int(date.Weekday()))
	if err != nil || !wh.Active {
		return []TimeSlot{}, nil
	}

	booked, err := uc.repo.ListBookingsForDay(ctx, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	return computeSlots(wh, booked, svc.DurationMin), nil
}

// computeSlots is the pure slot grid: start at the working-hours opening,
// step by the service duration, drop slots touching the break window or a
// pending/confirmed booking.
func computeSlots(
	wh *models.WorkingHours,
	booked []models.Booking,
	durationMin int,
) []TimeSlot {

	dayStart, err1 := parseClock(wh.StartTime)
	dayEnd, err2 := parseClock(wh.EndTime)
	if err1 != nil || err2 != nil || durationMin <= 0 {
		return []TimeSlot{}
	}

	hasBreak := wh.BreakStart != "" && wh.BreakEnd != ""
	var breakStart, breakEnd int
	if hasBreak {
		breakStart, _ = parseClock(wh.BreakStart)
		breakEnd, _ = parseClock(wh.BreakEnd)
	}

	type interval struct{ start, end int }
	taken := make([]interval, 0, len(booked))
	for _, b := range booked {
		s, errS := parseClock(b.StartTime)
		e, errE := parseClock(b.EndTime)
		if errS != nil || errE != nil {
			continue
		}
		taken = append(taken, interval{s, e})
	}

	slots := []TimeSlot{}

	for cur := dayStart; cur+durationMin <= dayEnd; cur += durationMin {
		slotStart := cur
		slotEnd := cur + durationMin

		if hasBreak && slotStart < breakEnd && slotEnd > breakStart {
			continue
		}

		conflict := false
		for _, iv := range taken {
			if slotStart < iv.end && slotEnd > iv.start {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: formatClock(slotStart),
				End:   formatClock(slotEnd),
			})
		}
	}

	return slots
}
