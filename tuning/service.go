// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/go-a2a/vertexlm/pkg/logging"
)

// Service submits and tracks tuning jobs.
type Service struct {
	projectID     string
	location      string
	stagingBucket string
	storage       *storage.Client
	clientOpts    []option.ClientOption
	logger        *slog.Logger

	jobs   map[string]*TuningJob
	jobsMu sync.RWMutex
}

// ServiceOption is a functional option for configuring the tuning service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStagingBucket sets the Cloud Storage bucket used to stage local
// training data. Without it, only gs:// dataset references are accepted.
func WithStagingBucket(bucket string) ServiceOption {
	return func(s *Service) {
		s.stagingBucket = strings.TrimPrefix(bucket, "gs://")
	}
}

// WithStorageClient uses the given storage client instead of dialing Cloud
// Storage. Intended for tests.
func WithStorageClient(client *storage.Client) ServiceOption {
	return func(s *Service) {
		s.storage = client
	}
}

// WithClientOptions passes transport options through to the storage client.
func WithClientOptions(opts ...option.ClientOption) ServiceOption {
	return func(s *Service) {
		s.clientOpts = opts
	}
}

// NewService creates a new tuning service.
//
// Parameters:
//   - ctx: Context for initialization
//   - projectID: Google Cloud project ID
//   - location: Geographic location (e.g., "us-central1")
//   - opts: Optional configuration options
func NewService(ctx context.Context, projectID, location string, opts ...ServiceOption) (*Service, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required")
	}
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}

	service := &Service{
		projectID: projectID,
		location:  location,
		logger:    logging.FromContext(ctx),
		jobs:      make(map[string]*TuningJob),
	}
	for _, opt := range opts {
		opt(service)
	}

	if service.storage == nil {
		client, err := storage.NewClient(ctx, service.clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		service.storage = client
	}

	return service, nil
}

// Close closes the service and releases transport resources.
func (s *Service) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage client: %w", err)
		}
	}
	return nil
}

// TuneModel submits a supervised tuning job.
//
// All validation happens before any network call; an invalid request never
// stages data or creates a job.
func (s *Service) TuneModel(ctx context.Context, req *TuneRequest) (*TuningJob, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if req.TrainingData == "" {
		return nil, fmt.Errorf("training data is required")
	}

	jobLocation := req.TuningJobLocation
	if jobLocation == "" {
		jobLocation = s.location
	}
	if !slices.Contains(SupportedTuningJobLocations, jobLocation) {
		return nil, &UnsupportedLocationError{
			Kind:      "tuning job",
			Location:  jobLocation,
			Supported: SupportedTuningJobLocations,
		}
	}

	modelLocation := req.TunedModelLocation
	if modelLocation == "" {
		modelLocation = SupportedTunedModelLocations[0]
	}
	if !slices.Contains(SupportedTunedModelLocations, modelLocation) {
		return nil, &UnsupportedLocationError{
			Kind:      "tuned model",
			Location:  modelLocation,
			Supported: SupportedTunedModelLocations,
		}
	}

	if req.Accelerator != "" && req.Accelerator != AcceleratorTPU && req.Accelerator != AcceleratorGPU {
		return nil, &UnsupportedAcceleratorError{Accelerator: req.Accelerator}
	}

	if req.EvaluationSpec != nil && req.EvaluationSpec.EvaluationData != "" {
		if !isGCSURI(req.EvaluationSpec.EvaluationData) {
			return nil, &InvalidDataURIError{
				Field: "evaluation data",
				URI:   req.EvaluationSpec.EvaluationData,
			}
		}
	}

	trainingData, err := s.resolveDataset(ctx, req.TrainingData)
	if err != nil {
		return nil, err
	}

	job := &TuningJob{
		Name:               fmt.Sprintf("tune-%s", uuid.NewString()),
		Model:              req.Model,
		ModelDisplayName:   req.ModelDisplayName,
		State:              StateQueued,
		Method:             "supervised",
		TrainingData:       trainingData,
		TuningJobLocation:  jobLocation,
		TunedModelLocation: modelLocation,
		CreateTime:         time.Now(),
		UpdateTime:         time.Now(),
	}

	s.jobsMu.Lock()
	s.jobs[job.Name] = job
	s.jobsMu.Unlock()

	s.logger.InfoContext(ctx, "tuning job submitted",
		slog.String("name", job.Name),
		slog.String("model", req.Model),
		slog.String("location", jobLocation),
	)

	return job, nil
}

// TuneModelRLHF submits an RLHF tuning job.
//
// The RLHF pipeline honors only the evaluation data URI and the Tensorboard
// resource from the evaluation spec; requests setting any other evaluation
// field are rejected rather than silently ignored.
func (s *Service) TuneModelRLHF(ctx context.Context, req *RLHFTuneRequest) (*TuningJob, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if req.PromptData == "" {
		return nil, fmt.Errorf("prompt data is required")
	}
	if req.PreferenceData == "" {
		return nil, fmt.Errorf("preference data is required")
	}

	if spec := req.EvaluationSpec; spec != nil {
		switch {
		case spec.EvaluationInterval != nil:
			return nil, &UnusedEvaluationFieldError{Field: "EvaluationInterval"}
		case spec.EnableEarlyStopping != nil:
			return nil, &UnusedEvaluationFieldError{Field: "EnableEarlyStopping"}
		case spec.EnableCheckpointSelection != nil:
			return nil, &UnusedEvaluationFieldError{Field: "EnableCheckpointSelection"}
		}
		if spec.EvaluationData != "" && !isGCSURI(spec.EvaluationData) {
			return nil, &InvalidDataURIError{
				Field: "evaluation data",
				URI:   spec.EvaluationData,
			}
		}
	}

	promptData, err := s.resolveDataset(ctx, req.PromptData)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveDataset(ctx, req.PreferenceData); err != nil {
		return nil, err
	}

	job := &TuningJob{
		Name:               fmt.Sprintf("rlhf-tune-%s", uuid.NewString()),
		Model:              req.Model,
		ModelDisplayName:   req.ModelDisplayName,
		State:              StateQueued,
		Method:             "rlhf",
		TrainingData:       promptData,
		TuningJobLocation:  s.location,
		TunedModelLocation: SupportedTunedModelLocations[0],
		CreateTime:         time.Now(),
		UpdateTime:         time.Now(),
	}

	s.jobsMu.Lock()
	s.jobs[job.Name] = job
	s.jobsMu.Unlock()

	s.logger.InfoContext(ctx, "rlhf tuning job submitted",
		slog.String("name", job.Name),
		slog.String("model", req.Model),
	)

	return job, nil
}

// GetJob retrieves a tuning job by name.
func (s *Service) GetJob(ctx context.Context, name string) (*TuningJob, error) {
	s.jobsMu.RLock()
	job, exists := s.jobs[name]
	s.jobsMu.RUnlock()

	if !exists {
		return nil, &JobNotFoundError{Name: name}
	}

	// Return a copy to prevent external modification.
	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs lists all tuning jobs.
func (s *Service) ListJobs(ctx context.Context) ([]*TuningJob, error) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()

	jobs := make([]*TuningJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobCopy := *job
		jobs = append(jobs, &jobCopy)
	}
	return jobs, nil
}

// CancelJob cancels a queued or running tuning job.
func (s *Service) CancelJob(ctx context.Context, name string) error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	job, exists := s.jobs[name]
	if !exists {
		return &JobNotFoundError{Name: name}
	}
	if job.State != StateQueued && job.State != StateRunning {
		return fmt.Errorf("cannot cancel job in state %s", job.State)
	}

	job.State = StateCancelled
	job.UpdateTime = time.Now()
	job.EndTime = time.Now()
	return nil
}

// resolveDataset returns a gs:// URI for the given dataset reference,
// staging local files to the configured bucket when needed.
func (s *Service) resolveDataset(ctx context.Context, ref string) (string, error) {
	if isGCSURI(ref) {
		return ref, nil
	}
	return s.stageLocalFile(ctx, ref)
}

// stageLocalFile uploads a local dataset file to the staging bucket and
// returns the resulting gs:// URI.
func (s *Service) stageLocalFile(ctx context.Context, path string) (string, error) {
	if s.stagingBucket == "" {
		return "", &InvalidDataURIError{Field: "training data", URI: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open training data %s: %w", path, err)
	}
	defer f.Close()

	object := fmt.Sprintf("tuning-data/%s.jsonl", uuid.NewString())
	w := s.storage.Bucket(s.stagingBucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("stage training data to gs://%s/%s: %w", s.stagingBucket, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("stage training data to gs://%s/%s: %w", s.stagingBucket, object, err)
	}

	uri := fmt.Sprintf("gs://%s/%s", s.stagingBucket, object)
	s.logger.InfoContext(ctx, "training data staged",
		slog.String("path", path),
		slog.String("uri", uri),
	)
	return uri, nil
}

func isGCSURI(uri string) bool {
	return strings.HasPrefix(uri, "gs://")
}
