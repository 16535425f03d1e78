// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/vertexlm/pkg/logging"
)

// PredictionEndpoint is the production [Client] backed by the Vertex AI
// PredictionService.
type PredictionEndpoint struct {
	client   *aiplatform.PredictionClient
	name     string
	location string
	logger   *slog.Logger
}

var _ Client = (*PredictionEndpoint)(nil)

// NewPredictionEndpoint creates a prediction endpoint for the given publisher
// model.
//
// Parameters:
//   - ctx: Context for initialization
//   - projectID: Google Cloud project ID
//   - location: Geographic location (e.g., "us-central1")
//   - model: Publisher model ID (e.g., "text-bison@002")
//   - opts: Optional transport client options
func NewPredictionEndpoint(ctx context.Context, projectID, location, model string, opts ...option.ClientOption) (*PredictionEndpoint, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required")
	}
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientOpts := append([]option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)),
	}, opts...)

	client, err := aiplatform.NewPredictionClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction service client: %w", err)
	}

	return &PredictionEndpoint{
		client:   client,
		name:     ResourceName(projectID, location, model),
		location: location,
		logger:   logging.FromContext(ctx),
	}, nil
}

// Name returns the fully qualified endpoint resource name.
func (e *PredictionEndpoint) Name() string {
	return e.name
}

// Close closes the endpoint and releases transport resources.
func (e *PredictionEndpoint) Close() error {
	if e.client != nil {
		if err := e.client.Close(); err != nil {
			return fmt.Errorf("failed to close prediction service client: %w", err)
		}
	}
	return nil
}

// Predict sends instances and parameters to the service and returns the full
// response.
func (e *PredictionEndpoint) Predict(ctx context.Context, instances []map[string]any, parameters map[string]any) (*PredictResponse, error) {
	req, err := e.buildPredictRequest(instances, parameters)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Predict(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", e.name, err)
	}

	predictions := make([]map[string]any, 0, len(resp.GetPredictions()))
	for _, p := range resp.GetPredictions() {
		if s := p.GetStructValue(); s != nil {
			predictions = append(predictions, s.AsMap())
			continue
		}
		return nil, fmt.Errorf("predict %s: non-struct prediction in response", e.name)
	}

	e.logger.DebugContext(ctx, "prediction completed",
		slog.String("endpoint", e.name),
		slog.Int("predictions", len(predictions)),
	)

	return &PredictResponse{
		Predictions:     predictions,
		DeployedModelID: resp.GetDeployedModelId(),
		ModelVersionID:  resp.GetModelVersionId(),
	}, nil
}

// PredictStream sends a single instance and yields partial responses as they
// arrive from the server stream.
func (e *PredictionEndpoint) PredictStream(ctx context.Context, instance map[string]any, parameters map[string]any) iter.Seq2[*PredictResponse, error] {
	return func(yield func(*PredictResponse, error) bool) {
		instanceVal, err := structpb.NewStruct(instance)
		if err != nil {
			yield(nil, fmt.Errorf("encode instance: %w", err))
			return
		}

		req := &aiplatformpb.StreamingPredictRequest{
			Endpoint: e.name,
			Inputs:   []*aiplatformpb.Tensor{tensorFromValue(structpb.NewStructValue(instanceVal))},
		}
		if len(parameters) > 0 {
			parametersVal, err := structpb.NewStruct(parameters)
			if err != nil {
				yield(nil, fmt.Errorf("encode parameters: %w", err))
				return
			}
			req.Parameters = tensorFromValue(structpb.NewStructValue(parametersVal))
		}

		stream, err := e.client.ServerStreamingPredict(ctx, req)
		if err != nil {
			yield(nil, fmt.Errorf("streaming predict %s: %w", e.name, err))
			return
		}

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("streaming predict %s: %w", e.name, err))
				return
			}
			if ctx.Err() != nil {
				return
			}

			predictions := make([]map[string]any, 0, len(resp.GetOutputs()))
			for _, out := range resp.GetOutputs() {
				v := valueFromTensor(out)
				if s := v.GetStructValue(); s != nil {
					predictions = append(predictions, s.AsMap())
				}
			}
			if len(predictions) == 0 {
				continue
			}

			if !yield(&PredictResponse{Predictions: predictions}, nil) {
				return
			}
		}
	}
}

// CountTokens counts tokens and billable characters for the given instances.
func (e *PredictionEndpoint) CountTokens(ctx context.Context, instances []map[string]any) (*CountTokensResponse, error) {
	instanceVals, err := encodeInstances(instances)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.CountTokens(ctx, &aiplatformpb.CountTokensRequest{
		Endpoint:  e.name,
		Instances: instanceVals,
	})
	if err != nil {
		return nil, fmt.Errorf("count tokens %s: %w", e.name, err)
	}

	return &CountTokensResponse{
		TotalTokens:             resp.GetTotalTokens(),
		TotalBillableCharacters: resp.GetTotalBillableCharacters(),
	}, nil
}

func (e *PredictionEndpoint) buildPredictRequest(instances []map[string]any, parameters map[string]any) (*aiplatformpb.PredictRequest, error) {
	instanceVals, err := encodeInstances(instances)
	if err != nil {
		return nil, err
	}

	req := &aiplatformpb.PredictRequest{
		Endpoint:  e.name,
		Instances: instanceVals,
	}
	if len(parameters) > 0 {
		parametersStruct, err := structpb.NewStruct(parameters)
		if err != nil {
			return nil, fmt.Errorf("encode parameters: %w", err)
		}
		req.Parameters = structpb.NewStructValue(parametersStruct)
	}
	return req, nil
}

func encodeInstances(instances []map[string]any) ([]*structpb.Value, error) {
	vals := make([]*structpb.Value, 0, len(instances))
	for i, instance := range instances {
		s, err := structpb.NewStruct(instance)
		if err != nil {
			return nil, fmt.Errorf("encode instance %d: %w", i, err)
		}
		vals = append(vals, structpb.NewStructValue(s))
	}
	return vals, nil
}
