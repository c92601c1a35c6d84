package domain

// RequirementSpec is one requirement specification (a "requirements" chapter).
type RequirementSpec struct {
	Title        string
	DocID        string // <version>-<level><order>
	Type         int    // 1=Section, 2=User Requirement Spec, 3=System Requirement Spec
	Order        int    // 1-based within the document
	Scope        string // text between the heading and the first table
	Requirements []Requirement
}

// Requirement is a single requirement read from a requirement table.
type Requirement struct {
	DocID            string
	Title            string
	Description      string
	Status           string // D, R, W, F, I, V, N or O
	Type             int    // 2=Feature
	Order            int    // 1-based within the specification
	ExpectedCoverage int
}

// TestSuite is a "Test Suite" chapter of a test procedure.
type TestSuite struct {
	Name    string
	Details string // <p> wrapped lines
	Order   int
	Cases   []TestCase
}

// TestCase is one "Test Case" table.
type TestCase struct {
	Name          string
	Order         int
	Preconditions string // <p> wrapped lines
	Steps         []Step
}

// Step is a single row of a test case table, or the closing step.
type Step struct {
	Number          int
	Actions         string
	ExpectedResults string
}
