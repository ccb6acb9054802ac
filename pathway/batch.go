// Copyright 2021 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package pathway

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// Result is the outcome for one input of a batch run.
type Result struct {
	// Input is the input path.
	Input string
	// Output is the path the annotated table was written to.
	Output string
	// Err is nil iff the input was processed successfully.
	Err error
}

// RunBatch runs the pipeline over every input independently, writing
// "<sample>_pathways.tsv" into outDir. A failing input never disturbs the
// others: its error is recorded in the returned slice (parallel to inputs)
// and the remaining inputs still produce output. RunBatch itself only
// returns an error when the shared mapping or name tables cannot be loaded.
func RunBatch(ctx context.Context, inputs []string, outDir string, opts Opts) ([]Result, error) {
	mapping, names, err := loadReference(opts)
	if err != nil {
		return nil, err
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(inputs) {
		parallelism = len(inputs)
	}
	opts.Sample = "" // always derived per input

	results := make([]Result, len(inputs))
	log.Printf("RunBatch: %d inputs (%d jobs)", len(inputs), parallelism)
	err = traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(inputs)) / parallelism
		endIdx := ((jobIdx + 1) * len(inputs)) / parallelism
		for i := startIdx; i < endIdx; i++ {
			sample := SampleName(inputs[i])
			outPath := filepath.Join(outDir, sample+"_pathways.tsv")
			results[i] = Result{Input: inputs[i], Output: outPath}
			if err := runOne(ctx, inputs[i], outPath, mapping, names, opts); err != nil {
				log.Error.Printf("%s: %v", inputs[i], err)
				results[i].Err = err
			}
		}
		return nil
	})
	return results, err
}
