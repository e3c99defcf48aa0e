package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// InvokeInput represents a command to invoke a deployed scoring endpoint.
type InvokeInput struct {
	// ServiceID identifies the service.
	ServiceID string `json:"service_id"`
	// Payload is the raw JSON body posted to the endpoint.
	Payload []byte `json:"payload"`
}

// InvokeOutput carries the endpoint's result.
type InvokeOutput struct {
	Result json.RawMessage `json:"result"`
}

// Invoke posts the payload to the service's scoring endpoint and returns
// the result.
func (u *UseCase) Invoke(ctx context.Context, in *InvokeInput) (*InvokeOutput, error) {
	if in == nil || in.ServiceID == "" || len(in.Payload) == 0 {
		return nil, model.ErrServiceInvalid
	}
	if !json.Valid(in.Payload) {
		return nil, fmt.Errorf("payload is not valid JSON: %w", model.ErrServiceInvalid)
	}

	svc, err := u.Repos.Service.Get(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.ScoringURI == "" {
		return nil, fmt.Errorf("service %s is not deployed: %w", svc.Name, model.ErrServiceInvalid)
	}

	logging.FromContext(ctx).Debug(ctx, "invoking scoring endpoint", "service", svc.Name, "uri", svc.ScoringURI)

	result, err := client(svc).Invoke(ctx, svc.ScoringURI, in.Payload)
	if err != nil {
		return nil, err
	}
	return &InvokeOutput{Result: result}, nil
}
