package models

import (
	"time"
)

// Project is a mock climate finance investment project. All figures are
// fabricated at generation time for demo rendering.
type Project struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Location           string    `json:"location"`
	InvestmentRequired float64   `json:"investment_required"` // $M
	ExpectedReturn     float64   `json:"expected_return"`     // %
	RiskScore          float64   `json:"risk_score"`          // 1.0-5.0
	RiskCategory       string    `json:"risk_category"`       // Low, Medium, High
	CarbonOffset       float64   `json:"carbon_offset"`       // tons CO2
	Status             string    `json:"status"`
	Completion         int       `json:"completion"` // %
	ESGScore           float64   `json:"esg_score"`
	VerificationStatus string    `json:"verification_status"`
	MaturityYears      int       `json:"maturity_years"`
	MinInvestment      float64   `json:"min_investment"`
	GovernmentBacking  bool      `json:"government_backing"`
	SDGAlignment       []int     `json:"sdg_alignment"`
	BlockchainHash     string    `json:"blockchain_hash"`
	CreatedAt          time.Time `json:"created_at"`
}

// LedgerTransaction is a fabricated blockchain transaction shown on the
// transparency ledger. Nothing is signed or verified.
type LedgerTransaction struct {
	Hash         string    `json:"hash"`
	Timestamp    time.Time `json:"timestamp"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	BlockHeight  int       `json:"block_height"`
	Participants []string  `json:"participants"`
}

// Insight is a canned advisory message surfaced as an "AI insight".
type Insight struct {
	Message string `json:"message"`
}

// PlatformMetric is a headline dashboard figure.
type PlatformMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
}
