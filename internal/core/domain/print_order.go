package domain

import (
	"strings"
	"time"
)

type PaperSize string

const (
	PaperA4 PaperSize = "A4"
	PaperA3 PaperSize = "A3"
)

type ColorType string

const (
	ColorBW    ColorType = "bw"
	ColorColor ColorType = "color"
)

type Binding string

const (
	BindingNone    Binding = "none"
	BindingSpiral  Binding = "spiral"
	BindingStapler Binding = "stapler"
)

type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyExpress Urgency = "express"
)

// PrintStatus is the lifecycle state of a print order.
type PrintStatus string

const (
	PrintPending   PrintStatus = "pending"
	PrintConfirmed PrintStatus = "confirmed"
	PrintPrinting  PrintStatus = "printing"
	PrintCompleted PrintStatus = "completed"
	PrintCancelled PrintStatus = "cancelled"
)

var printStatuses = []PrintStatus{PrintPending, PrintConfirmed, PrintPrinting, PrintCompleted, PrintCancelled}

// printTransitions is as permissive as orderTransitions.
var printTransitions = map[PrintStatus][]PrintStatus{
	PrintPending:   printStatuses,
	PrintConfirmed: printStatuses,
	PrintPrinting:  printStatuses,
	PrintCompleted: printStatuses,
	PrintCancelled: printStatuses,
}

func (s PrintStatus) Valid() bool {
	_, ok := printTransitions[s]
	return ok
}

func (s PrintStatus) CanTransitionTo(next PrintStatus) bool {
	for _, allowed := range printTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Per-page rates keyed by paper size and colour.
var pageRates = map[PaperSize]map[ColorType]float64{
	PaperA4: {ColorBW: 2, ColorColor: 10},
	PaperA3: {ColorBW: 5, ColorColor: 20},
}

const spiralSurcharge = 50

// PrintSpec is everything that determines the price of a print job.
type PrintSpec struct {
	PaperSize PaperSize `json:"paperSize"`
	ColorType ColorType `json:"colorType"`
	PageCount int       `json:"pageCount"`
	Binding   Binding   `json:"binding"`
}

// EstimateCost is the single pricing function for print jobs. Unknown paper
// or colour values price at zero per page.
func EstimateCost(s PrintSpec) float64 {
	pages := s.PageCount
	if pages < 0 {
		pages = 0
	}
	cost := LineTotal(pageRates[s.PaperSize][s.ColorType], pages)
	if s.Binding == BindingSpiral {
		cost = SumMoney(cost, spiralSurcharge)
	}
	return cost
}

// Validate checks the enum values and page count.
func (s PrintSpec) Validate() error {
	if _, ok := pageRates[s.PaperSize]; !ok {
		return Invalid("paperSize must be one of: A4 A3")
	}
	if s.ColorType != ColorBW && s.ColorType != ColorColor {
		return Invalid("colorType must be one of: bw color")
	}
	if s.PageCount < 1 {
		return Invalid("pageCount must be at least 1")
	}
	switch s.Binding {
	case BindingNone, BindingSpiral, BindingStapler:
	default:
		return Invalid("binding must be one of: none spiral stapler")
	}
	return nil
}

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyNormal, UrgencyUrgent, UrgencyExpress:
		return true
	}
	return false
}

// PrintOrder is a print-service request, independent of retail orders.
type PrintOrder struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Email               string      `json:"email,omitempty"`
	Phone               string      `json:"phone"`
	PaperSize           PaperSize   `json:"paperSize"`
	ColorType           ColorType   `json:"colorType"`
	PageCount           int         `json:"pageCount"`
	Binding             Binding     `json:"binding"`
	Urgency             Urgency     `json:"urgency"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	EstimatedCost       float64     `json:"estimatedCost"`
	FinalCost           *float64    `json:"finalCost,omitempty"`
	Status              PrintStatus `json:"status"`
	Version             int64       `json:"version"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

func (p *PrintOrder) Spec() PrintSpec {
	return PrintSpec{PaperSize: p.PaperSize, ColorType: p.ColorType, PageCount: p.PageCount, Binding: p.Binding}
}

// NormalizePaperSize accepts "a4"/"A4" style input.
func NormalizePaperSize(s string) PaperSize {
	return PaperSize(strings.ToUpper(strings.TrimSpace(s)))
}
