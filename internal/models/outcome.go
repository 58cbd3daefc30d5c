package models

import "time"

// OutcomeState is the lifecycle state of a single action invocation.
type OutcomeState string

const (
	OutcomePending OutcomeState = "pending"
	OutcomeSuccess OutcomeState = "success"
	OutcomeFailure OutcomeState = "failure"
)

// Outcome is the status of one action call, scoped to that call.
type Outcome struct {
	ID         ULID         `json:"id"`
	Action     string       `json:"action"`
	State      OutcomeState `json:"state"`
	Code       ErrorCode    `json:"code,omitempty"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt *time.Time   `json:"finishedAt,omitempty"`

	err error
}

// NewOutcome starts a pending outcome for action.
func NewOutcome(action string) *Outcome {
	return &Outcome{
		ID:        NewULID(),
		Action:    action,
		State:     OutcomePending,
		StartedAt: time.Now(),
	}
}

// Succeed marks the outcome successful.
func (o *Outcome) Succeed() {
	now := time.Now()
	o.State = OutcomeSuccess
	o.FinishedAt = &now
}

// Fail marks the outcome failed with err.
func (o *Outcome) Fail(err error) {
	now := time.Now()
	o.State = OutcomeFailure
	o.FinishedAt = &now
	o.err = err
	if err != nil {
		o.Error = err.Error()
		o.Code = CodeOf(err)
	}
}

// Err returns the failure cause, if any.
func (o *Outcome) Err() error {
	return o.err
}

// Done reports whether the outcome has left the pending state.
func (o *Outcome) Done() bool {
	return o.State != OutcomePending
}
