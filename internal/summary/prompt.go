package summary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return "unknown month"
	}
	return monthNames[month-1]
}

// buildPrompt formats the snapshot into the natural-language prompt. Monthly
// mode lists each member's planned days for the selected month; annual mode
// rolls planned days up per month across the year.
func buildPrompt(snap Snapshot, maxWords int) string {
	period := periodHeading(snap)

	var team strings.Builder
	for _, m := range snap.Members {
		team.WriteString(memberLine(m, snap))
		team.WriteByte('\n')
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Below is the team roster with vacation status for %s.\n", period)
	fmt.Fprintf(&b, "Write a short executive summary (at most %d words) for the HR manager.\n", maxWords)
	fmt.Fprintf(&b, "Highlight who is on vacation during %s and whether there is any risk of understaffing or too many simultaneous absences.\n", period)
	if snap.Mode == ModeAnnual {
		b.WriteString("Analyze how vacations are distributed across the year and call out critical periods or months with a high concentration of absences.\n")
	}
	b.WriteString("\nTeam:\n")
	b.WriteString(team.String())
	return b.String()
}

func periodHeading(snap Snapshot) string {
	if snap.Mode == ModeMonthly {
		return fmt.Sprintf("%s %d", monthName(snap.Month), snap.Year)
	}
	return fmt.Sprintf("the year %d", snap.Year)
}

func memberLine(m Member, snap Snapshot) string {
	if snap.Mode == ModeMonthly {
		days := m.DaysByMonth[snap.Month]
		planned := "none"
		if len(days) > 0 {
			planned = joinDays(days)
		}
		return fmt.Sprintf("- %s (%s): status %s, vacation days in %s: %s",
			m.Name, m.Role, m.Status, monthName(snap.Month), planned)
	}

	months := make([]int, 0, len(m.DaysByMonth))
	for month, days := range m.DaysByMonth {
		if len(days) > 0 {
			months = append(months, month)
		}
	}
	sort.Ints(months)

	if len(months) == 0 {
		return fmt.Sprintf("- %s (%s): status %s, vacations this year: none", m.Name, m.Role, m.Status)
	}

	parts := make([]string, 0, len(months))
	for _, month := range months {
		days := m.DaysByMonth[month]
		unit := "days"
		if len(days) == 1 {
			unit = "day"
		}
		parts = append(parts, fmt.Sprintf("%s (%d %s): days %s", monthName(month), len(days), unit, joinDays(days)))
	}
	return fmt.Sprintf("- %s (%s): status %s, vacations this year: %s",
		m.Name, m.Role, m.Status, strings.Join(parts, "; "))
}

func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ", ")
}
