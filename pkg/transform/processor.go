package transform

import (
	"fmt"

	"lil-go/pkg/errs"
)

// PayloadProcessor runs a pipeline: 0..N on the way out, N..0 on the way in.
type PayloadProcessor struct {
	transforms []Transform
}

// NewPayloadProcessor requires at least one transform; pass NewNoOpTransform()
// for an explicitly empty pipeline.
func NewPayloadProcessor(pipeline ...Transform) (*PayloadProcessor, error) {
	if len(pipeline) == 0 {
		return nil, errs.Errorf(errs.InvalidArgument, "payload processor requires at least one transform")
	}
	return &PayloadProcessor{transforms: append([]Transform(nil), pipeline...)}, nil
}

// PrepareOutput applies the pipeline in forward order.
func (p *PayloadProcessor) PrepareOutput(payload []byte) ([]byte, error) {
	var err error
	for i, t := range p.transforms {
		payload, err = t.Apply(payload)
		if err != nil {
			return nil, fmt.Errorf("prepare output: transform %d (%T): %w", i, t, err)
		}
	}
	return payload, nil
}

// ParseInput undoes PrepareOutput, reversing transforms from last to first.
func (p *PayloadProcessor) ParseInput(payload []byte) ([]byte, error) {
	var err error
	for i := len(p.transforms) - 1; i >= 0; i-- {
		payload, err = p.transforms[i].Reverse(payload)
		if err != nil {
			return nil, fmt.Errorf("parse input: transform %d (%T): %w", i, p.transforms[i], err)
		}
	}
	return payload, nil
}

// Apply and Reverse make a processor usable wherever a single Transform is.
func (p *PayloadProcessor) Apply(data []byte) ([]byte, error)   { return p.PrepareOutput(data) }
func (p *PayloadProcessor) Reverse(data []byte) ([]byte, error) { return p.ParseInput(data) }
