package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
)

// Action is a lifecycle operation requested on a document.
type Action string

const (
	ActionSend     Action = "send"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionSign     Action = "sign"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionExpire   Action = "expire"
)

// AllActions lists every action known to the state machine.
var AllActions = []Action{ActionSend, ActionApprove, ActionReject, ActionSign, ActionCancel, ActionComplete, ActionExpire}

// StatusesFor lists the statuses a document of type t can be in.
func StatusesFor(t DocumentType) []DocumentStatus {
	if t == DocumentTypeQuote {
		return []DocumentStatus{StatusDraft, StatusSent, StatusApproved, StatusRejected, StatusExpired}
	}
	return []DocumentStatus{StatusDraft, StatusSent, StatusSigned, StatusCancelled, StatusCompleted}
}

type transitionKey struct {
	docType DocumentType
	from    DocumentStatus
	action  Action
}

type transitionRule struct {
	to    DocumentStatus
	roles []ActorRole
}

var transitions = map[transitionKey]transitionRule{
	{DocumentTypeQuote, StatusDraft, ActionSend}:   {StatusSent, []ActorRole{RoleOwner}},
	{DocumentTypeQuote, StatusSent, ActionApprove}: {StatusApproved, []ActorRole{RoleRecipient}},
	{DocumentTypeQuote, StatusSent, ActionReject}:  {StatusRejected, []ActorRole{RoleRecipient}},
	{DocumentTypeQuote, StatusSent, ActionExpire}:  {StatusExpired, []ActorRole{RoleSystem}},

	{DocumentTypeContract, StatusDraft, ActionSend}:      {StatusSent, []ActorRole{RoleOwner}},
	{DocumentTypeContract, StatusSent, ActionSign}:       {StatusSigned, []ActorRole{RoleRecipient}},
	{DocumentTypeContract, StatusSent, ActionCancel}:     {StatusCancelled, []ActorRole{RoleRecipient}},
	{DocumentTypeContract, StatusSent, ActionReject}:     {StatusCancelled, []ActorRole{RoleRecipient}},
	{DocumentTypeContract, StatusSigned, ActionComplete}: {StatusCompleted, []ActorRole{RoleOwner, RoleSystem}},
}

// NextStatus looks up the status reached when role applies action to a document
// of type t currently in status from.
func NextStatus(t DocumentType, from DocumentStatus, action Action, role ActorRole) (DocumentStatus, error) {
	rule, ok := transitions[transitionKey{t, from, action}]
	if !ok {
		return from, fmt.Errorf("%w: cannot %s a %s %s", apperrors.ErrInvalidTransition, action, from, t)
	}
	for _, allowed := range rule.roles {
		if allowed == role {
			return rule.to, nil
		}
	}
	return from, fmt.Errorf("%w: %s may not %s a %s %s", apperrors.ErrInvalidTransition, role, action, from, t)
}

// Transition applies action to doc and returns the resulting document.
// doc itself is never modified; on error the returned document equals the input.
func Transition(doc Document, action Action, role ActorRole, actorID string, at time.Time) (Document, error) {
	next, err := NextStatus(doc.Type, doc.Status, action, role)
	if err != nil {
		return doc, err
	}
	out := doc.Clone()
	out.Status = next
	out.LastUpdatedAt = at
	if actorID != "" {
		out.LastUpdatedBy = actorID
	}
	return out, nil
}

// AllowedActions returns the actions role may apply to doc in its current status.
func AllowedActions(doc Document, role ActorRole) []Action {
	var out []Action
	for _, a := range AllActions {
		if _, err := NextStatus(doc.Type, doc.Status, a, role); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// RecipientCanAct reports whether a recipient still has a pending decision on doc.
func RecipientCanAct(doc Document) bool {
	return len(AllowedActions(doc, RoleRecipient)) > 0
}
