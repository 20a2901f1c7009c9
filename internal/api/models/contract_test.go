package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContractStatus_Edges(t *testing.T) {
	assert.True(t, ContractStatusDraft.CanTransitionTo(ContractStatusSent))
	assert.True(t, ContractStatusDraft.CanTransitionTo(ContractStatusVoid))
	assert.True(t, ContractStatusSent.CanTransitionTo(ContractStatusSigned))
	assert.True(t, ContractStatusSent.CanTransitionTo(ContractStatusVoid))

	// Signing is only legal once the contract went out.
	assert.False(t, ContractStatusDraft.CanTransitionTo(ContractStatusSigned))
	assert.False(t, ContractStatusSigned.CanTransitionTo(ContractStatusVoid))
	assert.False(t, ContractStatusVoid.CanTransitionTo(ContractStatusSent))
}

func TestContractStatus_Terminal(t *testing.T) {
	assert.True(t, ContractStatusSigned.IsTerminal())
	assert.True(t, ContractStatusVoid.IsTerminal())
	assert.False(t, ContractStatusDraft.IsTerminal())
	assert.False(t, ContractStatusSent.IsTerminal())
}

func TestExternalAgreementMarker(t *testing.T) {
	assert.Equal(t, "ADOBE:agr-42", ExternalAgreementMarker(SignatureProviderAdobe, "agr-42"))
}

func TestContract_IsSigned_RequiresAllFields(t *testing.T) {
	now := time.Now()
	name := "Dana Signer"
	email := "dana@example.com"
	ip := "10.0.0.1"

	full := Contract{
		Status:        ContractStatusSigned,
		SignedAt:      &now,
		SignedByName:  &name,
		SignedByEmail: &email,
		SignatureIP:   &ip,
	}
	assert.True(t, full.IsSigned())

	partial := full
	partial.SignatureIP = nil
	assert.False(t, partial.IsSigned())

	wrongStatus := full
	wrongStatus.Status = ContractStatusSent
	assert.False(t, wrongStatus.IsSigned())
}
