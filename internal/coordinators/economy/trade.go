package economy

import (
	"fmt"

	"github.com/openrune/botcore/internal/entities"
	repo "github.com/openrune/botcore/internal/repositories/reputation"
)

// Fairness bands over offered/requested value
const (
	fairRatio      = 0.8
	negotiateRatio = 0.7

	// A counterpart asking for this multiple of what they offer, on a
	// high-value trade, matches the classic swap scam shape.
	scamAsymmetryFactor = 10
)

// Reputation deltas attached to trade outcomes
const (
	DeltaCompletedTrade = 3
	DeltaUnfairTrade    = -5
	DeltaScamAttempt    = -10
)

// TradeVerdict is the outcome class of a trade evaluation
type TradeVerdict string

// Trade verdicts
const (
	TradeAccept    TradeVerdict = "accept"
	TradeReject    TradeVerdict = "reject"
	TradeNegotiate TradeVerdict = "negotiate"
)

// TradeDecision is the full result of evaluating an incoming offer
type TradeDecision struct {
	Verdict TradeVerdict
	Reason  string
	// CounterValue is the zeny value proposed back on a negotiate verdict
	CounterValue int64
	// ReputationDelta to apply to the counterpart for this outcome
	ReputationDelta int
	ScamDetected    bool
}

// detectScam flags asymmetric high-for-low swap patterns and mismatched
// item descriptions. A scam overrides valuation entirely.
func detectScam(offer *entities.TradeOffer, highValueThreshold int64) bool {
	if offer.RequestedValue >= highValueThreshold &&
		offer.OfferedValue*scamAsymmetryFactor < offer.RequestedValue {
		return true
	}

	if len(offer.DescribedItems) > 0 {
		if len(offer.DescribedItems) != len(offer.OfferedItems) {
			return true
		}
		for i, described := range offer.DescribedItems {
			if described != offer.OfferedItems[i] {
				return true
			}
		}
	}
	return false
}

// EvaluateTrade classifies an incoming trade offer against the
// counterpart's trust record. Policy rejection here is a normal decision
// outcome, not an error.
func EvaluateTrade(offer *entities.TradeOffer, record *repo.Record, highValueThreshold int64) TradeDecision {
	if offer == nil {
		return TradeDecision{
			Verdict: TradeReject,
			Reason:  "no trade offer attached",
		}
	}

	if detectScam(offer, highValueThreshold) {
		return TradeDecision{
			Verdict:         TradeReject,
			Reason:          "trade matches a known scam pattern",
			ReputationDelta: DeltaScamAttempt,
			ScamDetected:    true,
		}
	}

	// Gifts are always welcome.
	if offer.RequestedValue <= 0 {
		return TradeDecision{
			Verdict:         TradeAccept,
			Reason:          "nothing asked in return",
			ReputationDelta: DeltaCompletedTrade,
		}
	}

	// High-value trades need an established relationship regardless of how
	// fair the numbers look.
	highValue := offer.RequestedValue >= highValueThreshold || offer.OfferedValue >= highValueThreshold
	if highValue && !record.Tier.AtLeast(repo.TierTrusted) {
		return TradeDecision{
			Verdict: TradeReject,
			Reason:  fmt.Sprintf("high-value trade requires trusted tier, counterpart is %s", record.Tier),
		}
	}

	ratio := float64(offer.OfferedValue) / float64(offer.RequestedValue)
	switch {
	case ratio >= fairRatio:
		return TradeDecision{
			Verdict:         TradeAccept,
			Reason:          fmt.Sprintf("fair offer (ratio %.2f)", ratio),
			ReputationDelta: DeltaCompletedTrade,
		}
	case ratio >= negotiateRatio:
		// Counter at the fair floor rather than walking away.
		counter := int64(float64(offer.OfferedValue) / fairRatio)
		return TradeDecision{
			Verdict:      TradeNegotiate,
			Reason:       fmt.Sprintf("slightly under value (ratio %.2f), countering", ratio),
			CounterValue: counter,
		}
	default:
		return TradeDecision{
			Verdict:         TradeReject,
			Reason:          fmt.Sprintf("offer too low (ratio %.2f)", ratio),
			ReputationDelta: DeltaUnfairTrade,
		}
	}
}
