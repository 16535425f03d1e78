// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// The streaming surface of the PredictionService speaks tensors rather than
// structpb values. These conversions are lossless for the JSON-shaped payloads
// the language models use: null, bool, number, string, list, struct.

func tensorFromValue(v *structpb.Value) *aiplatformpb.Tensor {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return &aiplatformpb.Tensor{
			Dtype:   aiplatformpb.Tensor_BOOL,
			BoolVal: []bool{kind.BoolValue},
		}
	case *structpb.Value_NumberValue:
		return &aiplatformpb.Tensor{
			Dtype:     aiplatformpb.Tensor_DOUBLE,
			DoubleVal: []float64{kind.NumberValue},
		}
	case *structpb.Value_StringValue:
		return &aiplatformpb.Tensor{
			Dtype:     aiplatformpb.Tensor_STRING,
			StringVal: []string{kind.StringValue},
		}
	case *structpb.Value_ListValue:
		values := kind.ListValue.GetValues()
		list := make([]*aiplatformpb.Tensor, len(values))
		for i, item := range values {
			list[i] = tensorFromValue(item)
		}
		return &aiplatformpb.Tensor{ListVal: list}
	case *structpb.Value_StructValue:
		fields := kind.StructValue.GetFields()
		structVal := make(map[string]*aiplatformpb.Tensor, len(fields))
		for name, field := range fields {
			structVal[name] = tensorFromValue(field)
		}
		return &aiplatformpb.Tensor{StructVal: structVal}
	default:
		// NullValue and unset kinds map to an empty tensor.
		return &aiplatformpb.Tensor{}
	}
}

func valueFromTensor(t *aiplatformpb.Tensor) *structpb.Value {
	switch {
	case len(t.GetBoolVal()) > 0:
		return structpb.NewBoolValue(t.GetBoolVal()[0])
	case len(t.GetDoubleVal()) > 0:
		return structpb.NewNumberValue(t.GetDoubleVal()[0])
	case len(t.GetIntVal()) > 0:
		return structpb.NewNumberValue(float64(t.GetIntVal()[0]))
	case len(t.GetInt64Val()) > 0:
		return structpb.NewNumberValue(float64(t.GetInt64Val()[0]))
	case len(t.GetStringVal()) > 0:
		return structpb.NewStringValue(t.GetStringVal()[0])
	case t.GetListVal() != nil:
		list := make([]*structpb.Value, len(t.GetListVal()))
		for i, item := range t.GetListVal() {
			list[i] = valueFromTensor(item)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: list})
	case t.GetStructVal() != nil:
		fields := make(map[string]*structpb.Value, len(t.GetStructVal()))
		for name, field := range t.GetStructVal() {
			fields[name] = valueFromTensor(field)
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields})
	default:
		return structpb.NewNullValue()
	}
}
