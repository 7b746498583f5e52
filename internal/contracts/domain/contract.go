package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// Contract binds a parent to a tuition package and the tutors allowed to
// teach under it. rescheduleCount is the REMAINING number of reschedule
// attempts, decremented on each approval.
type Contract struct {
	sharedDomain.BaseAggregateRoot
	parentID        uuid.UUID
	mainTutorID     uuid.UUID
	subTutor1ID     *uuid.UUID
	subTutor2ID     *uuid.UUID
	pkg             Package
	rescheduleCount int
	endDate         time.Time
	status          string
}

// NewContract creates a new active contract with a full reschedule quota.
func NewContract(parentID, mainTutorID uuid.UUID, pkg Package, endDate time.Time) *Contract {
	if pkg.SlotDuration == 0 {
		pkg.SlotDuration = DefaultSlotDuration
	}

	c := &Contract{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		parentID:          parentID,
		mainTutorID:       mainTutorID,
		pkg:               pkg,
		rescheduleCount:   pkg.MaxReschedule,
		endDate:           endDate,
		status:            "active",
	}

	c.AddDomainEvent(NewContractCreated(c.ID(), parentID, mainTutorID, pkg.Name, endDate))

	return c
}

// RehydrateContract recreates a contract from persisted state.
func RehydrateContract(
	entity sharedDomain.BaseEntity,
	parentID, mainTutorID uuid.UUID,
	subTutor1ID, subTutor2ID *uuid.UUID,
	pkg Package,
	rescheduleCount int,
	endDate time.Time,
	status string,
) *Contract {
	return &Contract{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		parentID:          parentID,
		mainTutorID:       mainTutorID,
		subTutor1ID:       subTutor1ID,
		subTutor2ID:       subTutor2ID,
		pkg:               pkg,
		rescheduleCount:   rescheduleCount,
		endDate:           endDate,
		status:            status,
	}
}

// Getters
func (c *Contract) ParentID() uuid.UUID      { return c.parentID }
func (c *Contract) MainTutorID() uuid.UUID   { return c.mainTutorID }
func (c *Contract) SubTutor1ID() *uuid.UUID  { return c.subTutor1ID }
func (c *Contract) SubTutor2ID() *uuid.UUID  { return c.subTutor2ID }
func (c *Contract) Package() Package         { return c.pkg }
func (c *Contract) RescheduleCount() int     { return c.rescheduleCount }
func (c *Contract) EndDate() time.Time       { return c.endDate }
func (c *Contract) Status() string           { return c.status }

// HasRescheduleQuota reports whether at least one reschedule attempt is left.
func (c *Contract) HasRescheduleQuota() bool {
	return c.rescheduleCount > 0
}

// AssignSubTutors sets the optional substitute tutors.
func (c *Contract) AssignSubTutors(sub1, sub2 *uuid.UUID) {
	c.subTutor1ID = sub1
	c.subTutor2ID = sub2
	c.Touch()
}

// IsAllowedTutor reports whether the tutor is the main tutor or one of the
// substitutes on this contract.
func (c *Contract) IsAllowedTutor(tutorID uuid.UUID) bool {
	if tutorID == c.mainTutorID {
		return true
	}
	if c.subTutor1ID != nil && tutorID == *c.subTutor1ID {
		return true
	}
	if c.subTutor2ID != nil && tutorID == *c.subTutor2ID {
		return true
	}
	return false
}

// CoversDate reports whether the given date falls within the contract term.
func (c *Contract) CoversDate(date time.Time) bool {
	y, m, d := date.Date()
	ey, em, ed := c.endDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return !day.After(end)
}

// ConsumeReschedule records one used reschedule attempt. The decrement is
// unconditional: an approval past the quota pushes the remaining count
// negative rather than failing.
func (c *Contract) ConsumeReschedule() {
	c.rescheduleCount--
	c.Touch()

	c.AddDomainEvent(NewRescheduleConsumed(c.ID(), c.rescheduleCount))
}
