package converter

// rowRole is the part a row plays in a test case table.
type rowRole int

const (
	roleName rowRole = iota
	roleHeader
	rolePreconditions
	roleStep
	roleStop
)

// minCaseRows is the smallest table holding every role: name, header,
// preconditions, header and one step.
const minCaseRows = 5

// caseRowRole returns the role of 1-based row r of a table with total rows.
// Header rows win over the stop row, so a five row table still reads its
// last row as a step.
func caseRowRole(r, total int) rowRole {
	switch {
	case r == 2 || r == 4:
		return roleHeader
	case r == total-1:
		return roleStop
	case r == 1:
		return roleName
	case r == 3:
		return rolePreconditions
	default:
		return roleStep
	}
}
