package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
)

const noPhotoText = "(no photo available)"

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func dayName(d int) string {
	if d < 0 || d >= len(dayNames) {
		return fmt.Sprintf("day %d", d)
	}
	return dayNames[d]
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}

// printChurch renders the info panel
func printChurch(w io.Writer, c *dto.ChurchDetailResponse, photoURL string) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(w, "%s\n", c.Name)
	fmt.Fprintf(w, "ID: %d  Place: %s\n", c.ID, c.PlaceID)
	fmt.Fprintf(w, "Address: %s\n", c.Vicinity)
	fmt.Fprintf(w, "Denomination: %s\n", orDash(c.Denomination))
	fmt.Fprintf(w, "Phone: %s\n", orDash(c.Phone))
	fmt.Fprintf(w, "Website: %s\n", orDash(c.Website))
	if c.Description != nil && *c.Description != "" {
		fmt.Fprintf(w, "About: %s\n", *c.Description)
	}
	if photoURL == "" {
		photoURL = noPhotoText
	}
	fmt.Fprintf(w, "Photo: %s\n", photoURL)

	fmt.Fprintln(w)
	title.Fprintln(w, "Service times")
	if len(c.ServiceTimes) == 0 {
		fmt.Fprintln(w, "  none listed")
	}
	for _, st := range c.ServiceTimes {
		fmt.Fprintf(w, "  %-9s %s-%s  %s (%s)\n",
			dayName(st.DayOfWeek), st.StartTime, st.EndTime, orDash(st.ServiceType), st.Language)
	}

	fmt.Fprintln(w)
	title.Fprintf(w, "Reviews (%.1f average, %d total)\n", c.ReviewSummary.AverageRating, c.ReviewSummary.TotalReviews)
	if len(c.Reviews) == 0 {
		fmt.Fprintln(w, "  no reviews yet")
	}
	for _, r := range c.Reviews {
		fmt.Fprintf(w, "  %.1f/5 by %s on %s\n", r.Rating, r.UserName, r.CreatedAt.Format("2006-01-02"))
		if r.Comment != nil && *r.Comment != "" {
			fmt.Fprintf(w, "    %s\n", *r.Comment)
		}
	}
}

func printSuccess(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, "✓ "+format+"\n", args...)
}
