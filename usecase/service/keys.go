package service

import (
	"context"

	"github.com/mlopsworks/azmlops/domain/model"
)

// KeysInput represents a command to fetch service access keys.
type KeysInput struct {
	// ServiceID identifies the service.
	ServiceID string `json:"service_id"`
}

// KeysOutput carries the access keys of a key-authenticated service.
type KeysOutput struct {
	PrimaryKey   string `json:"primary_key,omitempty"`
	SecondaryKey string `json:"secondary_key,omitempty"`
	AuthEnabled  bool   `json:"auth_enabled"`
}

// Keys returns the access keys accepted by the deployed endpoint.
func (u *UseCase) Keys(ctx context.Context, in *KeysInput) (*KeysOutput, error) {
	if in == nil || in.ServiceID == "" {
		return nil, model.ErrServiceInvalid
	}

	svc, err := u.Repos.Service.Get(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	out := &KeysOutput{AuthEnabled: svc.AuthEnabled}
	if svc.AuthEnabled {
		out.PrimaryKey = svc.PrimaryKey
		out.SecondaryKey = svc.SecondaryKey
	}
	return out, nil
}
