package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/postpilot/calendar-bot/internal/models"
)

const dateFormat = "2006-01-02"

// Render produces an iCalendar document with one event per post, spanning
// the post's calendar day. The output is served as a downloadable .ics file
// and attached to calendar-ready notifications.
func Render(calendar *models.Calendar) string {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//postpilot//calendar-bot//EN")
	writeLine(&b, "X-WR-CALNAME:Social Media Calendar")

	stamp := calendar.CreatedAt
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}

	for _, post := range calendar.Posts {
		day, err := time.Parse(dateFormat, post.Date)
		if err != nil {
			continue
		}

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+post.ID)
		writeLine(&b, "DTSTAMP:"+stamp.UTC().Format("20060102T150405Z"))
		writeLine(&b, "DTSTART:"+day.Format("20060102T000000"))
		writeLine(&b, "DTEND:"+day.Format("20060102T235959"))
		writeLine(&b, "SUMMARY:"+escapeText(fmt.Sprintf("Social Media Post: %s", post.Category)))
		writeLine(&b, "DESCRIPTION:"+escapeText(eventDescription(post)))
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

func eventDescription(post models.Post) string {
	return fmt.Sprintf(
		"Post Type: %s\nCategory: %s\nTopic: %s\nPlatform: %s\nFunnel Stage: %s\nVirality: %d%%\n\nContent:\n%s",
		post.PostType, post.Category, post.Topic, post.Platform, post.FunnelStage, post.Virality, post.Content,
	)
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escapeText escapes characters that carry meaning in iCalendar text values.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
