package encoder

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Manu343726/encgen/pkg/isa"
)

type Options struct {
	Filter     FilterOptions
	Classifier ClassifierOptions
	Layout     LayoutMode
}

func DefaultOptions() Options {
	return Options{
		Filter:     DefaultFilterOptions(),
		Classifier: DefaultClassifierOptions(),
		Layout:     LayoutMode_Strict,
	}
}

// Outcome of processing one instruction descriptor. Either Rejection is set, or Operands, Plan and Encoder are
type Result struct {
	Descriptor *isa.Descriptor
	Operands   []OperandSpec
	Plan       *Plan
	Encoder    *Encoder
	Rejection  *Rejection
}

func (r *Result) Ok() bool {
	return r.Rejection == nil
}

// Runs instruction descriptors through filter, classifier, resolver and synthesizer
type Pipeline struct {
	filter     *Filter
	classifier *Classifier
	resolver   *Resolver
}

func NewPipeline(opts Options) (*Pipeline, error) {
	filter, err := NewFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		filter:     filter,
		classifier: NewClassifier(opts.Classifier),
		resolver:   NewResolver(opts.Layout),
	}, nil
}

func rejected(d *isa.Descriptor, err error) Result {
	rejection, ok := AsRejection(err)
	if !ok {
		panic("unreachable")
	}

	return Result{Descriptor: d, Rejection: rejection}
}

// Processes a single descriptor. The first failing stage short-circuits the rest
func (p *Pipeline) Process(d *isa.Descriptor) Result {
	if err := p.filter.Check(d); err != nil {
		return rejected(d, err)
	}

	operands, err := p.classifier.Classify(d)
	if err != nil {
		return rejected(d, err)
	}

	plan, err := p.resolver.Resolve(d, operands)
	if err != nil {
		return rejected(d, err)
	}

	return Result{
		Descriptor: d,
		Operands:   operands,
		Plan:       plan,
		Encoder:    Synthesize(d.Name, plan),
	}
}

// Processes a batch of descriptors using up to jobs workers. Results keep the input order.
//
// The only error returned is the context one if it gets cancelled before the batch is done.
func (p *Pipeline) Run(ctx context.Context, descriptors []*isa.Descriptor, jobs int) ([]Result, error) {
	results := make([]Result, len(descriptors))

	if jobs <= 1 {
		for i, d := range descriptors {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			results[i] = p.Process(d)
		}

		return results, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, d := range descriptors {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = p.Process(d)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Wait() does not report a cancellation of the parent context if no worker noticed it
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
