package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

const (
	AggregateType = "Contract"

	RoutingKeyContractCreated    = "contracts.contract.created"
	RoutingKeyRescheduleConsumed = "contracts.contract.reschedule_consumed"
)

// ContractCreated is emitted when a new contract is signed.
type ContractCreated struct {
	sharedDomain.BaseEvent
	ParentID    uuid.UUID `json:"parent_id"`
	MainTutorID uuid.UUID `json:"main_tutor_id"`
	PackageName string    `json:"package_name"`
	EndDate     time.Time `json:"end_date"`
}

// NewContractCreated creates a ContractCreated event.
func NewContractCreated(contractID, parentID, mainTutorID uuid.UUID, packageName string, endDate time.Time) *ContractCreated {
	return &ContractCreated{
		BaseEvent:   sharedDomain.NewBaseEvent(contractID, AggregateType, RoutingKeyContractCreated),
		ParentID:    parentID,
		MainTutorID: mainTutorID,
		PackageName: packageName,
		EndDate:     endDate,
	}
}

// RescheduleConsumed is emitted when a reschedule attempt is used up.
type RescheduleConsumed struct {
	sharedDomain.BaseEvent
	Remaining int `json:"remaining"`
}

// NewRescheduleConsumed creates a RescheduleConsumed event.
func NewRescheduleConsumed(contractID uuid.UUID, remaining int) *RescheduleConsumed {
	return &RescheduleConsumed{
		BaseEvent: sharedDomain.NewBaseEvent(contractID, AggregateType, RoutingKeyRescheduleConsumed),
		Remaining: remaining,
	}
}
