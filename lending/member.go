package lending

// Civility is the salutation recorded for a member.
type Civility string

// Supported civility values.
const (
	CivilityMr  Civility = "MR"
	CivilityMrs Civility = "MRS"
	CivilityMs  Civility = "MS"
)

// Member is a person registered to borrow books.
// The engine treats members as read-only reference data owned by the member store.
type Member struct {
	Code      MemberCodeString `json:"code"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	BirthDate string           `json:"birth_date"`
	Civility  Civility         `json:"civility"`
	Email     string           `json:"email"`
}
