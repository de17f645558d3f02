// Package amortization provides closed-form math for fixed-rate loans.
//
// All functions are pure. Callers are expected to pass a non-negative loan
// amount and a positive term; other values produce meaningless but finite
// results rather than errors.
package amortization

import "math"

// MonthsPerYear is the number of payment periods in a loan year.
const MonthsPerYear = 12

// MonthlyPayment calculates the fixed principal and interest payment for a loan.
//
// Uses the annuity formula M = P[r(1+r)^n]/[(1+r)^n-1] where r is the monthly
// rate and n the number of monthly payments. A zero rate, or one too small to
// change 1+r in float64, degenerates to straight-line repayment.
func MonthlyPayment(loanAmount, annualRate float64, termYears int) float64 {
	totalPayments := float64(termYears * MonthsPerYear)

	monthlyRate := annualRate / MonthsPerYear
	growth := math.Pow(1+monthlyRate, totalPayments)
	if annualRate == 0 || growth == 1 {
		return loanAmount / totalPayments
	}

	return loanAmount * (monthlyRate * growth / (growth - 1))
}

// RemainingBalance calculates the outstanding balance after monthsPaid payments.
//
// Uses B = P[(1+r)^n - (1+r)^p]/[(1+r)^n - 1]. Returns exactly 0 once the loan
// term has been reached.
func RemainingBalance(loanAmount, annualRate float64, termYears, monthsPaid int) float64 {
	totalPayments := termYears * MonthsPerYear
	if monthsPaid >= totalPayments {
		return 0
	}

	monthlyRate := annualRate / MonthsPerYear
	full := math.Pow(1+monthlyRate, float64(totalPayments))
	if annualRate == 0 || full == 1 {
		payment := loanAmount / float64(totalPayments)
		return loanAmount - payment*float64(monthsPaid)
	}
	paid := math.Pow(1+monthlyRate, float64(monthsPaid))

	return loanAmount * ((full - paid) / (full - 1))
}

// InterestPayment returns the interest portion due on the current balance for one month.
func InterestPayment(remainingBalance, annualRate float64) float64 {
	return remainingBalance * (annualRate / MonthsPerYear)
}

// PrincipalPayment returns the portion of a payment that reduces principal.
func PrincipalPayment(monthlyPayment, interestPayment float64) float64 {
	return monthlyPayment - interestPayment
}
