// Package loans provides fixed-rate loan amortization utilities.
//
// Balances are always derived from the closed-form amortization formula
// rather than by subtracting principal month over month, so the balance
// reaches exactly zero at the final payment.
package loans

import (
	"math"

	"github.com/iwvelando/rental-analysis/pkg/constants"
)

// Payment holds the values for a given payment.
type Payment struct {
	Period             int
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// Split is the interest and principal portion of a single payment.
type Split struct {
	Interest  float64
	Principal float64
}

// MonthlyRate converts an annual percentage rate into a periodic monthly
// rate. Negative rates are treated as zero.
func MonthlyRate(annualRatePercent float64) float64 {
	if annualRatePercent <= 0 {
		return 0
	}
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// NumPayments returns the number of monthly payments over termYears.
func NumPayments(termYears int) int {
	if termYears <= 0 {
		return 0
	}
	return termYears * constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula.
func CalculateMonthlyPayment(loanAmount, annualRatePercent float64, termYears int) float64 {
	n := NumPayments(termYears)
	if n == 0 {
		return 0
	}

	monthlyRate := MonthlyRate(annualRatePercent)
	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by term
		return loanAmount / float64(n)
	}

	power := math.Pow(1+monthlyRate, float64(n))
	return loanAmount * monthlyRate * power / (power - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, monthlyRate float64) float64 {
	return remainingPrincipal * monthlyRate
}

// RemainingBalance returns the balance still owed after periodsElapsed
// payments of a loan of n periods. The result is loanAmount before the first
// payment and zero from the n-th payment onward.
func RemainingBalance(loanAmount, monthlyRate float64, n, periodsElapsed int) float64 {
	if n <= 0 || periodsElapsed >= n {
		return 0
	}
	if periodsElapsed <= 0 {
		return loanAmount
	}

	if monthlyRate == 0 {
		return loanAmount * float64(n-periodsElapsed) / float64(n)
	}

	total := math.Pow(1+monthlyRate, float64(n))
	elapsed := math.Pow(1+monthlyRate, float64(periodsElapsed))
	return loanAmount * (total - elapsed) / (total - 1)
}

// PeriodSplit splits the payment for a one-based period into interest on the
// balance before that payment and the principal remainder. Periods outside
// 1..n carry no payment.
func PeriodSplit(loanAmount, monthlyRate float64, n int, payment float64, period int) Split {
	if period < 1 || period > n {
		return Split{}
	}
	balance := RemainingBalance(loanAmount, monthlyRate, n, period-1)
	interest := CalculateInterestPayment(balance, monthlyRate)
	return Split{
		Interest:  interest,
		Principal: payment - interest,
	}
}

// Model is a fixed-rate, fully amortizing loan.
type Model struct {
	LoanAmount   float64
	AnnualRate   float64
	TermYears    int
	monthlyRate  float64
	numPayments  int
	monthlyTotal float64
}

// NewModel precomputes the loan-level constants for the given terms.
func NewModel(loanAmount, annualRatePercent float64, termYears int) Model {
	return Model{
		LoanAmount:   loanAmount,
		AnnualRate:   annualRatePercent,
		TermYears:    termYears,
		monthlyRate:  MonthlyRate(annualRatePercent),
		numPayments:  NumPayments(termYears),
		monthlyTotal: CalculateMonthlyPayment(loanAmount, annualRatePercent, termYears),
	}
}

// Payment returns the fixed monthly payment.
func (m Model) Payment() float64 {
	return m.monthlyTotal
}

// MonthlyRate returns the periodic monthly rate.
func (m Model) MonthlyRate() float64 {
	return m.monthlyRate
}

// NumPayments returns the number of scheduled payments.
func (m Model) NumPayments() int {
	return m.numPayments
}

// Balance returns the remaining balance after periodsElapsed payments.
func (m Model) Balance(periodsElapsed int) float64 {
	return RemainingBalance(m.LoanAmount, m.monthlyRate, m.numPayments, periodsElapsed)
}

// Split returns the interest/principal split of the one-based period.
func (m Model) Split(period int) Split {
	return PeriodSplit(m.LoanAmount, m.monthlyRate, m.numPayments, m.monthlyTotal, period)
}

// Between sums the splits of the one-based periods from..to inclusive.
func (m Model) Between(from, to int) Split {
	var total Split
	for period := from; period <= to; period++ {
		s := m.Split(period)
		total.Interest += s.Interest
		total.Principal += s.Principal
	}
	return total
}

// PrincipalBetween sums principal paid over the one-based periods from..to.
func (m Model) PrincipalBetween(from, to int) float64 {
	return m.Between(from, to).Principal
}

// InterestBetween sums interest paid over the one-based periods from..to.
func (m Model) InterestBetween(from, to int) float64 {
	return m.Between(from, to).Interest
}

// Schedule returns the full month-by-month amortization schedule.
func (m Model) Schedule() []Payment {
	schedule := make([]Payment, 0, m.numPayments)
	for period := 1; period <= m.numPayments; period++ {
		s := m.Split(period)
		schedule = append(schedule, Payment{
			Period:             period,
			Payment:            m.monthlyTotal,
			Principal:          s.Principal,
			Interest:           s.Interest,
			RemainingPrincipal: m.Balance(period),
		})
	}
	return schedule
}
