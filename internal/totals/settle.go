package totals

// Settlement reconciles the net payable against an amount paid.
type Settlement struct {
	NetPayable   float64 `json:"net_payable"`
	DueAmount    float64 `json:"due_amount"`
	ChangeAmount float64 `json:"change_amount"`
	Tracked      bool    `json:"tracked"`
}

// Settle computes the net payable and, when paidAmount is non-nil, splits
// the difference into due or change. At most one of them is positive.
func Settle(taxableAmount, taxAmount, shippingCost float64, paidAmount *float64) Settlement {
	s := Settlement{
		NetPayable: Round2(finite(taxableAmount) + finite(taxAmount) + finite(shippingCost)),
	}
	if paidAmount == nil {
		return s
	}

	s.Tracked = true
	paid := finite(*paidAmount)
	if paid >= s.NetPayable {
		s.ChangeAmount = Round2(paid - s.NetPayable)
	} else {
		s.DueAmount = Round2(s.NetPayable - paid)
	}
	return s
}
