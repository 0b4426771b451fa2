package lending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openlending/lending-reservations-go/lending"
)

func Test_GroupOverdueByMember_OneGroupPerMember(t *testing.T) {
	// arrange
	end := lending.ToReservationDate(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))

	alice := lending.Member{Code: "M1", FirstName: "Alice", Email: "alice@example.org"}
	// a second in-memory snapshot of the same member must coalesce into one group
	aliceSnapshot := lending.Member{Code: "M1", FirstName: "Alice", Email: "alice@example.org"}
	bob := lending.Member{Code: "M2", FirstName: "Bob", Email: "bob@example.org"}

	overdue := []lending.Reservation{
		{Member: alice, Book: lending.Book{Title: "The Stranger"}, EndDate: end},
		{Member: aliceSnapshot, Book: lending.Book{Title: "The Plague"}, EndDate: end},
		{Member: bob, Book: lending.Book{Title: "The Fall"}, EndDate: end},
	}

	// act
	groups := lending.GroupOverdueByMember(overdue)

	// assert
	assert.Len(t, groups, 2)
	assert.Len(t, groups["M1"], 2)
	assert.Len(t, groups["M2"], 1)
}

func Test_GroupOverdueByMember_Empty_WhenNothingOverdue(t *testing.T) {
	// act
	groups := lending.GroupOverdueByMember(nil)

	// assert
	assert.Empty(t, groups)
}

func Test_ComposeOverdueReminder_ListsEachOverdueBookWithEndDate(t *testing.T) {
	// arrange
	member := lending.Member{Code: "M1", FirstName: "Alice"}
	overdue := []lending.Reservation{
		{
			Member:  member,
			Book:    lending.Book{Title: "The Stranger"},
			EndDate: lending.ToReservationDate(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			Member:  member,
			Book:    lending.Book{Title: "The Plague"},
			EndDate: lending.ToReservationDate(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)),
		},
	}

	// act
	body := lending.ComposeOverdueReminder(member, overdue)

	// assert
	assert.Contains(t, body, "Dear Alice,")
	assert.Contains(t, body, "- The Stranger (due back on 2026-02-01)")
	assert.Contains(t, body, "- The Plague (due back on 2026-02-10)")
	assert.Contains(t, body, "Please return them as soon as possible.")
}
