package lending

import (
	"fmt"
	"strings"
)

// OverdueReminderSubject is the fixed subject of the overdue reminder mail.
const OverdueReminderSubject = "Reminder: your overdue reservations"

// GroupOverdueByMember groups overdue reservations per member. The key is the
// member code, so multiple in-memory snapshots of the same member coalesce
// into one group and each member receives exactly one reminder.
func GroupOverdueByMember(overdue []Reservation) map[MemberCodeString][]Reservation {
	groups := make(map[MemberCodeString][]Reservation)

	for _, reservation := range overdue {
		code := reservation.Member.Code
		groups[code] = append(groups[code], reservation)
	}

	return groups
}

// ComposeOverdueReminder renders the single reminder message for one member,
// enumerating each overdue reservation's book title and end date.
func ComposeOverdueReminder(member Member, overdue []Reservation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", member.FirstName)
	b.WriteString("You have overdue reservations:\n")

	for _, reservation := range overdue {
		fmt.Fprintf(&b, "- %s (due back on %s)\n", reservation.Book.Title, formatDate(reservation.EndDate))
	}

	b.WriteString("\nPlease return them as soon as possible.\n\nKind regards,\nThe library")

	return b.String()
}
