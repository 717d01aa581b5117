package api

// Person is a registered participant.
type Person struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CanLogin  bool   `json:"canLogin"`
	CreatedAt int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type RegisterResponse struct {
	Person *Person `json:"person"`
	Token  string  `json:"token,omitempty"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Person *Person `json:"person"`
	Token  string  `json:"token"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []*Person `json:"people"`
}

// Group is a named set of people sharing one ledger.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

// GetGroupRequest looks a group up by ID, or by name when ID is empty.
type GetGroupRequest struct {
	GroupID string `json:"groupId,omitempty"`
	Name    string `json:"name,omitempty"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMembersRequest struct {
	GroupID string   `json:"groupId"`
	Members []string `json:"members"`
}

type AddMembersResponse struct {
	Group *Group   `json:"group"`
	Added []string `json:"added"`
}

// Split selects a split policy. Kind is "equal", "unequal" or "percent".
// Weights are decimal strings keyed by participant and ignored for equal.
type Split struct {
	Kind    string            `json:"kind"`
	Weights map[string]string `json:"weights,omitempty"`
}

// Share is one participant's part of an expense.
type Share struct {
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
}

type CalculateSharesRequest struct {
	Amount       string   `json:"amount"`
	Participants []string `json:"participants"`
	Split        Split    `json:"split"`
}

type CalculateSharesResponse struct {
	Shares []Share `json:"shares"`
	Total  string  `json:"total"`
	// Drift is the sum of shares minus the amount.
	Drift string `json:"drift"`
}

type Expense struct {
	ID           string   `json:"id"`
	GroupID      string   `json:"groupId"`
	Description  string   `json:"description"`
	Amount       string   `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	Split        Split    `json:"split"`
	Shares       []Share  `json:"shares"`
	CreatedAt    int64    `json:"createdAt"`
	CreatedBy    string   `json:"createdBy,omitempty"`
}

// Balance records that Debtor owes Creditor Amount.
type Balance struct {
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
	Amount   string `json:"amount"`
}

type AddExpenseRequest struct {
	GroupID      string   `json:"groupId"`
	Description  string   `json:"description"`
	Amount       string   `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	Split        Split    `json:"split"`
}

type AddExpenseResponse struct {
	Expense  *Expense  `json:"expense"`
	Balances []Balance `json:"balances"`
}

type Settlement struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	Payer     string `json:"payer"`
	Receiver  string `json:"receiver"`
	Amount    string `json:"amount"`
	Applied   string `json:"applied"`
	CreatedAt int64  `json:"createdAt"`
	CreatedBy string `json:"createdBy,omitempty"`
	Note      string `json:"note,omitempty"`
}

type SettleUpRequest struct {
	GroupID  string `json:"groupId"`
	Payer    string `json:"payer"`
	Receiver string `json:"receiver"`
	Amount   string `json:"amount"`
	Note     string `json:"note,omitempty"`
}

type SettleUpResponse struct {
	Settlement *Settlement `json:"settlement"`
	Balances   []Balance   `json:"balances"`
}

// MemberBalance summarises one member's position in a group.
type MemberBalance struct {
	Name       string `json:"name"`
	NetBalance string `json:"netBalance"`
	TotalPaid  string `json:"totalPaid"`
	TotalOwed  string `json:"totalOwed"`
}

type ListBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type ListBalancesResponse struct {
	Balances []Balance       `json:"balances"`
	Members  []MemberBalance `json:"members"`
}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses    []*Expense    `json:"expenses"`
	Settlements []*Settlement `json:"settlements"`
}

type ExportSummaryRequest struct{}

type ExportSummaryResponse struct {
	// Summary is the exported JSON document, indented with four spaces.
	Summary string `json:"summary"`
}
