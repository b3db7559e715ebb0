// backend/src/services/calendar_service.go
package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/processors"
)

// GetDayData aggregates every occurrence on one calendar date. Results are
// memoized by (dateKey, mode); every mutation that can change a day's net
// flushes the cache.
func (s *plannerServiceImpl) GetDayData(year int, month time.Month, day int, mode models.Mode) (models.DayData, error) {
	if !mode.Valid() {
		return models.DayData{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if day < 1 || day > processors.DaysInMonth(year, month) {
		return models.DayData{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return s.dayDataLocked(date, mode), nil
}

// dayDataLocked is the memoizing day aggregator. Caller holds the mutex;
// date is a local-midnight value.
func (s *plannerServiceImpl) dayDataLocked(date time.Time, mode models.Mode) models.DayData {
	dateKey := processors.DateKey(date)
	cacheKey := dateKey + "|" + string(mode)
	if cached, found := s.dayCache.Get(cacheKey); found {
		return cached.(models.DayData)
	}

	result := models.DayData{
		Net:     decimal.Zero,
		Items:   []models.DayItem{},
		DateKey: dateKey,
	}
	for _, freq := range models.Frequencies {
		for _, it := range s.index.Bucket(freq) {
			if !processors.Matches(it, date) {
				continue
			}
			item := s.buildItemLocked(it, dateKey)
			result.Items = append(result.Items, item)

			// Live mode excludes fully settled occurrences and counts the
			// remaining value of partial ones; review mode excludes skipped
			// occurrences and ignores settlement entirely.
			switch mode {
			case models.ModeLive:
				if !item.FullyPaid {
					result.Net = result.Net.Add(item.Remaining)
				}
			case models.ModeReview:
				if !item.Skipped {
					result.Net = result.Net.Add(item.Value)
				}
			}
		}
	}

	s.dayCache.Set(cacheKey, result, DefaultCacheExpiration)
	return result
}

// buildItemLocked attaches settlement and skip state to one matched
// occurrence.
func (s *plannerServiceImpl) buildItemLocked(it processors.IndexedTransaction, dateKey string) models.DayItem {
	key := models.OccurrenceKey{Date: dateKey, TransactionID: it.ID}
	settlement, settled := s.settlements[key]

	amountPaid := decimal.Zero
	if settled {
		amountPaid = settlement.EffectivePaid(it.Amount)
	}
	remaining := it.Amount.Sub(amountPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	signedRemaining := remaining
	if it.Type == models.TypeExpense {
		signedRemaining = remaining.Neg()
	}

	return models.DayItem{
		Transaction: it.Transaction,
		Value:       it.SignedAmount(),
		Remaining:   signedRemaining,
		AmountPaid:  amountPaid,
		Paid:        settled,
		FullyPaid:   settled && settlement.FullyPaid(it.Amount),
		Skipped:     s.skips[key],
	}
}

// ComputeMonthView projects one displayed month: starting balance anchored
// on today's vault total, 6x7 week grid with per-row weekly delta and
// cumulative running total, and monthly income/expense counters that mirror
// the per-day exclusion policy exactly.
func (s *plannerServiceImpl) ComputeMonthView(year int, month time.Month, mode models.Mode) (models.MonthView, error) {
	if !mode.Valid() {
		return models.MonthView{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if month < time.January || month > time.December {
		return models.MonthView{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := processors.DateOnly(s.clock.Now())
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	if yearsApart(first, today) > s.maxNavigationYears {
		return models.MonthView{}, fmt.Errorf("%w: %04d-%02d", ErrViewTooFar, year, month)
	}

	view := models.MonthView{
		Year:            year,
		Month:           int(month),
		Mode:            mode,
		StartingBalance: s.startingBalanceLocked(first, today),
		MonthlyIncome:   decimal.Zero,
		MonthlyExpense:  decimal.Zero,
	}

	daysInMo := processors.DaysInMonth(year, month)
	firstWeekday := int(first.Weekday())
	todayKey := processors.DateKey(today)

	runningTotal := view.StartingBalance
	dayCounter := 1
	for i := 0; i < 6; i++ {
		row := models.WeekRow{WeeklyChange: decimal.Zero}
		for j := 0; j < 7; j++ {
			if (i == 0 && j < firstWeekday) || dayCounter > daysInMo {
				continue
			}
			date := time.Date(year, month, dayCounter, 0, 0, 0, 0, time.Local)
			dayData := s.dayDataLocked(date, mode)
			row.Days[j] = &models.DayCell{
				Day:     dayCounter,
				DateKey: dayData.DateKey,
				Net:     dayData.Net,
				IsToday: dayData.DateKey == todayKey,
			}
			row.WeeklyChange = row.WeeklyChange.Add(dayData.Net)
			s.tallySummary(&view, dayData.Items, mode)
			dayCounter++
		}
		runningTotal = runningTotal.Add(row.WeeklyChange)
		row.RunningTotal = runningTotal
		view.Weeks = append(view.Weeks, row)
		if dayCounter > daysInMo {
			break
		}
	}
	view.MonthlyNet = view.MonthlyIncome.Sub(view.MonthlyExpense)
	return view, nil
}

// tallySummary accumulates the monthly income/expense counters with the
// same exclusion policy as the per-day net, just summed instead of netted.
func (s *plannerServiceImpl) tallySummary(view *models.MonthView, items []models.DayItem, mode models.Mode) {
	for _, item := range items {
		var magnitude decimal.Decimal
		switch mode {
		case models.ModeLive:
			if item.FullyPaid {
				continue
			}
			magnitude = item.Remaining.Abs()
		case models.ModeReview:
			if item.Skipped {
				continue
			}
			magnitude = item.Value.Abs()
		}
		if item.Type == models.TypeIncome {
			view.MonthlyIncome = view.MonthlyIncome.Add(magnitude)
		} else {
			view.MonthlyExpense = view.MonthlyExpense.Add(magnitude)
		}
	}
}

// startingBalanceLocked walks day-by-day between today and the first of the
// viewed month. A future month accumulates upcoming live nets onto today's
// cash; a current or past month removes already-elapsed movements so the
// view begins at its own historical starting point. Both directions use
// live-mode nets, which is what makes running totals line up across month
// boundaries.
func (s *plannerServiceImpl) startingBalanceLocked(first, today time.Time) decimal.Decimal {
	balance := s.vaultTotalLocked()
	if first.After(today) {
		for d := today; d.Before(first); d = d.AddDate(0, 0, 1) {
			balance = balance.Add(s.dayDataLocked(d, models.ModeLive).Net)
		}
	} else {
		for d := first; d.Before(today); d = d.AddDate(0, 0, 1) {
			balance = balance.Sub(s.dayDataLocked(d, models.ModeLive).Net)
		}
	}
	return balance
}

// ListUpcoming returns occurrences due from today through windowDays ahead,
// excluding the fully settled and the skipped.
func (s *plannerServiceImpl) ListUpcoming(windowDays int) []models.UpcomingItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if windowDays < 0 {
		windowDays = 0
	}
	today := processors.DateOnly(s.clock.Now())
	upcoming := []models.UpcomingItem{}
	for offset := 0; offset <= windowDays; offset++ {
		date := today.AddDate(0, 0, offset)
		dayData := s.dayDataLocked(date, models.ModeLive)
		for _, item := range dayData.Items {
			if item.FullyPaid || item.Skipped {
				continue
			}
			upcoming = append(upcoming, models.UpcomingItem{
				DayItem:  item,
				DateKey:  dayData.DateKey,
				DaysAway: offset,
			})
		}
	}
	return upcoming
}

func yearsApart(a, b time.Time) int {
	diff := a.Year() - b.Year()
	if diff < 0 {
		diff = -diff
	}
	return diff
}
