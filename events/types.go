package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/mezonai/crowdfund/types"
)

// EventType is an enum-like string type for ledger events
type EventType string

const (
	EventCampaignCreated  EventType = "CampaignCreated"
	EventDonationReceived EventType = "DonationReceived"
	EventFundsWithdrawn   EventType = "FundsWithdrawn"
	EventExecutionFailed  EventType = "ExecutionFailed"
)

// LedgerEvent represents a committed (or rejected) state transition
type LedgerEvent interface {
	ID() string
	Type() EventType
	Timestamp() time.Time
	Campaign() types.Pubkey
}

type baseEvent struct {
	id        string
	campaign  types.Pubkey
	timestamp time.Time
}

func newBaseEvent(campaign types.Pubkey) baseEvent {
	return baseEvent{
		id:        uuid.Must(uuid.NewV7()).String(),
		campaign:  campaign,
		timestamp: time.Now(),
	}
}

func (e baseEvent) ID() string {
	return e.id
}

func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func (e baseEvent) Campaign() types.Pubkey {
	return e.campaign
}

// CampaignCreated event when a campaign record is (re)initialized
type CampaignCreated struct {
	baseEvent
	Admin types.Pubkey
	Name  string
}

func NewCampaignCreated(campaign, admin types.Pubkey, name string) *CampaignCreated {
	return &CampaignCreated{baseEvent: newBaseEvent(campaign), Admin: admin, Name: name}
}

func (e *CampaignCreated) Type() EventType {
	return EventCampaignCreated
}

// DonationReceived event when a donation record is swept into a campaign
type DonationReceived struct {
	baseEvent
	Donation     types.Pubkey
	Donator      types.Pubkey
	Amount       uint64
	TotalDonated uint64
}

func NewDonationReceived(campaign, donation, donator types.Pubkey, amount, total uint64) *DonationReceived {
	return &DonationReceived{
		baseEvent:    newBaseEvent(campaign),
		Donation:     donation,
		Donator:      donator,
		Amount:       amount,
		TotalDonated: total,
	}
}

func (e *DonationReceived) Type() EventType {
	return EventDonationReceived
}

// FundsWithdrawn event when the admin moves funds out of a campaign
type FundsWithdrawn struct {
	baseEvent
	Admin  types.Pubkey
	Amount uint64
}

func NewFundsWithdrawn(campaign, admin types.Pubkey, amount uint64) *FundsWithdrawn {
	return &FundsWithdrawn{baseEvent: newBaseEvent(campaign), Admin: admin, Amount: amount}
}

func (e *FundsWithdrawn) Type() EventType {
	return EventFundsWithdrawn
}

// ExecutionFailed event when an instruction is rejected; nothing was committed
type ExecutionFailed struct {
	baseEvent
	Program types.Pubkey
	Reason  string
}

func NewExecutionFailed(program, campaign types.Pubkey, reason string) *ExecutionFailed {
	return &ExecutionFailed{baseEvent: newBaseEvent(campaign), Program: program, Reason: reason}
}

func (e *ExecutionFailed) Type() EventType {
	return EventExecutionFailed
}
