// Package forecast projects an organization's cash position from its
// historical invoices, open obligations and recurring billings, and derives a
// risk level, insights, what-if scenarios and receivable/payable aging.
//
// Everything in this package is a pure function of its inputs. Monetary values
// are carried unrounded and rounded to cents only when written to a result.
package forecast
