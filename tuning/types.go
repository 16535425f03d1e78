// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

import "time"

// AcceleratorType selects the hardware a tuning job runs on.
type AcceleratorType string

const (
	AcceleratorTPU AcceleratorType = "TPU"
	AcceleratorGPU AcceleratorType = "GPU"
)

// Supported locations. Tuning pipelines run in a restricted set of regions
// and tuned models are always deployed to us-central1.
var (
	SupportedTuningJobLocations  = []string{"europe-west4", "us-central1"}
	SupportedTunedModelLocations = []string{"us-central1"}
)

// JobState represents the lifecycle state of a tuning job.
type JobState string

const (
	StateQueued    JobState = "QUEUED"
	StateRunning   JobState = "RUNNING"
	StateSucceeded JobState = "SUCCEEDED"
	StateFailed    JobState = "FAILED"
	StateCancelled JobState = "CANCELLED"
)

// EvaluationSpec configures how a tuning job evaluates intermediate
// checkpoints.
type EvaluationSpec struct {
	// EvaluationData is the gs:// URI of the evaluation dataset.
	EvaluationData string `json:"evaluation_data,omitempty"`

	// EvaluationInterval is the number of train steps between evaluations.
	EvaluationInterval *int `json:"evaluation_interval,omitempty"`

	// EnableEarlyStopping stops training when evaluation stops improving.
	EnableEarlyStopping *bool `json:"enable_early_stopping,omitempty"`

	// EnableCheckpointSelection exports the best checkpoint rather than the
	// last one.
	EnableCheckpointSelection *bool `json:"enable_checkpoint_selection,omitempty"`

	// TensorboardResource is the Vertex AI Tensorboard instance to log to.
	TensorboardResource string `json:"tensorboard,omitempty"`
}

// TuneRequest describes one supervised tuning job.
type TuneRequest struct {
	// Model is the publisher model to tune, for example "text-bison@002".
	Model string

	// TrainingData is either a gs:// URI of a JSONL dataset or a local JSONL
	// file path. Local files are staged to the configured bucket.
	TrainingData string

	// TrainSteps is the number of training steps. Zero uses the service
	// default.
	TrainSteps int

	// LearningRateMultiplier scales the model's default learning rate.
	LearningRateMultiplier *float64

	// TuningJobLocation is where the tuning pipeline runs. Defaults to the
	// service location.
	TuningJobLocation string

	// TunedModelLocation is where the tuned model is deployed.
	TunedModelLocation string

	// ModelDisplayName names the tuned model.
	ModelDisplayName string

	// Accelerator selects the training hardware. Empty lets the service
	// choose.
	Accelerator AcceleratorType

	// EvaluationSpec optionally configures checkpoint evaluation.
	EvaluationSpec *EvaluationSpec

	// DefaultContext is baked into the tuned model as a standing context.
	DefaultContext string

	// Labels are attached to the tuning pipeline.
	Labels map[string]string
}

// RLHFTuneRequest describes one reinforcement-learning-from-human-feedback
// tuning job.
type RLHFTuneRequest struct {
	// Model is the publisher model to tune.
	Model string

	// PromptData is the gs:// URI or local path of the prompt dataset.
	PromptData string

	// PreferenceData is the gs:// URI or local path of the human preference
	// dataset used to train the reward model.
	PreferenceData string

	// ModelDisplayName names the tuned model.
	ModelDisplayName string

	// PromptSequenceLength caps the prompt length in tokens.
	PromptSequenceLength *int

	// TargetSequenceLength caps the completion length in tokens.
	TargetSequenceLength *int

	// RewardModelLearningRateMultiplier scales the reward model's default
	// learning rate.
	RewardModelLearningRateMultiplier *float64

	// ReinforcementLearningRateMultiplier scales the RL phase's default
	// learning rate.
	ReinforcementLearningRateMultiplier *float64

	// RewardModelTrainSteps is the number of reward model training steps.
	RewardModelTrainSteps *int

	// ReinforcementLearningTrainSteps is the number of RL training steps.
	ReinforcementLearningTrainSteps *int

	// KLCoeff regularizes the tuned policy against the base model.
	KLCoeff *float64

	// InstructionOverride replaces the instruction baked into the prompt
	// dataset.
	InstructionOverride string

	// EvaluationSpec optionally configures evaluation. Only the evaluation
	// data URI and the Tensorboard resource are honored by the RLHF
	// pipeline; setting any other field is an error.
	EvaluationSpec *EvaluationSpec
}

// TuningJob is one submitted tuning job.
type TuningJob struct {
	// Name is the unique job name.
	Name string

	// Model is the publisher model being tuned.
	Model string

	// ModelDisplayName names the tuned model.
	ModelDisplayName string

	// State is the current lifecycle state.
	State JobState

	// Method is "supervised" or "rlhf".
	Method string

	// TrainingData is the gs:// URI actually used, after staging.
	TrainingData string

	// TuningJobLocation is where the pipeline runs.
	TuningJobLocation string

	// TunedModelLocation is where the tuned model is deployed.
	TunedModelLocation string

	// Error holds the failure message for failed jobs.
	Error string

	CreateTime time.Time
	UpdateTime time.Time
	EndTime    time.Time
}
