// Package orchestrator fans a split document out over concurrent translate
// requests and stitches the results back together in input order.
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/valpere/lantran/internal/placeholder"
	"github.com/valpere/lantran/internal/translator"
)

// Translator is the part of *translator.Client the orchestrator drives.
type Translator interface {
	Translate(ctx context.Context, opts *translator.TranslateOptions) *translator.Call
}

type OrchestratorConfig struct {
	// Concurrency caps the number of requests in flight. Values < 1 mean 1.
	Concurrency int
	// Protect masks markup and format placeholders before sending each piece.
	Protect bool
}

type OrchestratorResult struct {
	Pieces         []string
	WordCount      int
	CharacterCount int
	Errors         []error
	// MarkersLost counts protected parts the service dropped from its output.
	MarkersLost int
}

// Err returns the first piece error, if any.
func (r *OrchestratorResult) Err() error {
	for _, err := range r.Errors {
		if err != nil {
			return err
		}
	}
	return nil
}

type Orchestrator struct {
	client Translator
	config OrchestratorConfig
}

func New(client Translator, config OrchestratorConfig) *Orchestrator {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Orchestrator{client: client, config: config}
}

// Execute translates every piece with the language settings of base. The
// result holds one entry per piece in Pieces and Errors, at the same index.
func (o *Orchestrator) Execute(ctx context.Context, pieces []string, base translator.TranslateOptions) *OrchestratorResult {
	result := &OrchestratorResult{
		Pieces: make([]string, len(pieces)),
		Errors: make([]error, len(pieces)),
	}

	type pieceResult struct {
		index int
		text  string
		res   translator.TranslationResult
		lost  int
		err   error
	}

	results := make(chan pieceResult, len(pieces))
	sem := make(chan struct{}, o.config.Concurrency)

	var wg sync.WaitGroup
	for i, piece := range pieces {
		wg.Add(1)
		go func(index int, text string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- pieceResult{index: index, err: ctx.Err()}
				return
			}

			masked := placeholder.Masked{Text: text}
			if o.config.Protect {
				masked = placeholder.Mask(text)
			}

			opts := base
			opts.Text = masked.Text

			var res translator.TranslationResult
			if err := o.client.Translate(ctx, &opts).Decode(&res); err != nil {
				results <- pieceResult{index: index, err: err}
				return
			}
			out := res.Text()
			results <- pieceResult{
				index: index,
				text:  masked.Unmask(out),
				res:   res,
				lost:  len(masked.Missing(out)),
			}
		}(i, piece)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for pr := range results {
		if pr.err != nil {
			result.Errors[pr.index] = fmt.Errorf("piece %d of %d: %w", pr.index+1, len(pieces), pr.err)
			continue
		}
		result.Pieces[pr.index] = pr.text
		result.MarkersLost += pr.lost
		result.WordCount += pr.res.WordCount
		result.CharacterCount += pr.res.CharacterCount
	}

	return result
}
