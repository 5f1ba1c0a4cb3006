package mtd

// Obligation is one periodic update obligation. Dates are YYYY-MM-DD as
// returned by the API.
type Obligation struct {
	Start    string `json:"periodStartDate"`
	End      string `json:"periodEndDate"`
	Due      string `json:"dueDate"`
	Received string `json:"receivedDate"`
}

// Met reports whether a submission was received for the period.
func (o Obligation) Met() bool {
	return o.Received != ""
}

// PeriodID is the start_end identifier update endpoints expect.
func (o Obligation) PeriodID() string {
	return o.Start + "_" + o.End
}

// Calculation is one entry from the calculations list.
type Calculation struct {
	ID        string `json:"id"`
	Timestamp string `json:"calculationTimestamp"`
	Type      string `json:"type"`
}

// SavingsAccount is one entry from the savings account list.
type SavingsAccount struct {
	ID   string `json:"id"`
	Name string `json:"accountName"`
}
