package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/skischool_office/internal/model"
)

var weekdayShort = []string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

// FormatDate форматирует дату YYYY-MM-DD как "Mi, 15.01.2025"
func FormatDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %s", weekdayShort[t.Weekday()], t.Format("02.01.2006"))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d Min.", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d Std.", hours)
	}
	return fmt.Sprintf("%d Std. %d Min.", hours, mins)
}

// FormatTimeRange "10:00–12:00"
func FormatTimeRange(start, end string) string {
	return start + "–" + end
}

// BookingMessage текст уведомления инструктору в HTML-разметке Telegram
func BookingMessage(instructor *model.Instructor, ticket *model.Ticket) string {
	var sb strings.Builder

	sb.WriteString("🎿 <b>Neue Privatstunde</b>\n\n")
	fmt.Fprintf(&sb, "Lehrer: %s\n", html.EscapeString(instructor.FullName()))
	fmt.Fprintf(&sb, "Kunde: %s\n", html.EscapeString(ticket.CustomerName))
	if ticket.CustomerPhone != "" {
		fmt.Fprintf(&sb, "Telefon: %s\n", html.EscapeString(ticket.CustomerPhone))
	}
	sb.WriteString("\n")

	for _, item := range ticket.Items {
		fmt.Fprintf(&sb, "📅 %s  %s (%s)\n",
			FormatDate(item.Date),
			FormatTimeRange(item.TimeStart, item.TimeEnd),
			FormatDuration(item.DurationMinutes))
	}

	fmt.Fprintf(&sb, "\nGesamt: <b>%s</b>", FormatDuration(ticket.TotalMinutes))

	if ticket.Notes != "" {
		fmt.Fprintf(&sb, "\n\n📝 %s", html.EscapeString(ticket.Notes))
	}

	return sb.String()
}
