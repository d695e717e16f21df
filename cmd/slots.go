package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/HMS-AppointmentService/pkg/availability"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

var errInvalidFlag = errors.New("invalid flag value")

type slotsFlags struct {
	open        string
	close       string
	granularity int
	booked      []string
	blackout    []string
	emergency   bool
	now         string
}

type slotOutput struct {
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	Label           string           `json:"label"`
	DurationMinutes int              `json:"durationMinutes"`
}

func slotsCmd() *cobra.Command {
	var f slotsFlags

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Compute available slots for a single work window",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.toRequest(time.Now())
			if err != nil {
				return err
			}

			slots, err := availability.ComputeAvailableSlots(req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toSlotOutput(slots))
		},
	}

	cmd.Flags().StringVar(&f.open, "open", "08:00", "window open time HH:MM")
	cmd.Flags().StringVar(&f.close, "close", "22:00", "window close time HH:MM")
	cmd.Flags().IntVar(&f.granularity, "granularity", int(availability.DefaultGranularity/time.Minute), "slot length in minutes")
	cmd.Flags().StringArrayVar(&f.booked, "booked", nil, "booked interval HH:MM-HH:MM (repeatable)")
	cmd.Flags().StringArrayVar(&f.blackout, "blackout", nil, "blackout interval HH:MM-HH:MM (repeatable)")
	cmd.Flags().BoolVar(&f.emergency, "emergency", false, "emergency request, ignores blackout")
	cmd.Flags().StringVar(&f.now, "now", "", "current time HH:MM for the emergency fallback slot")

	return cmd
}

// toRequest собирает запрос калькулятора; today задает дату для --now
func (f slotsFlags) toRequest(today time.Time) (availability.Request, error) {
	open, err := types.NewTimeStringFromString(f.open)
	if err != nil {
		return availability.Request{}, fmt.Errorf("%w: --open: %v", errInvalidFlag, err)
	}
	closeTime, err := types.NewTimeStringFromString(f.close)
	if err != nil {
		return availability.Request{}, fmt.Errorf("%w: --close: %v", errInvalidFlag, err)
	}

	booked, err := parseIntervals(f.booked)
	if err != nil {
		return availability.Request{}, fmt.Errorf("%w: --booked: %v", errInvalidFlag, err)
	}
	blackout, err := parseIntervals(f.blackout)
	if err != nil {
		return availability.Request{}, fmt.Errorf("%w: --blackout: %v", errInvalidFlag, err)
	}

	now := today
	if f.now != "" {
		ts, err := types.NewTimeStringFromString(f.now)
		if err != nil {
			return availability.Request{}, fmt.Errorf("%w: --now: %v", errInvalidFlag, err)
		}
		now = ts.OnDate(today)
	}

	return availability.Request{
		Window: availability.WorkWindow{
			OpenTime:        open,
			CloseTime:       closeTime,
			SlotGranularity: time.Duration(f.granularity) * time.Minute,
		},
		Booked:    booked,
		Blackout:  blackout,
		Emergency: f.emergency,
		Now:       now,
	}, nil
}

// parseIntervals разбирает значения вида HH:MM-HH:MM
func parseIntervals(values []string) ([]availability.Interval, error) {
	intervals := make([]availability.Interval, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected HH:MM-HH:MM, got %q", v)
		}
		start, err := types.NewTimeStringFromString(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, availability.Interval{StartTime: start, EndTime: end})
	}
	return intervals, nil
}

func toSlotOutput(slots []availability.AvailableSlot) []slotOutput {
	out := make([]slotOutput, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotOutput{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			Label:           s.Label,
			DurationMinutes: s.DurationMinutes(),
		})
	}
	return out
}
