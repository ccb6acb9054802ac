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

/*
bio-pathway turns functional-profiler gene-family tables into pathway-level
abundance tables. The extract stage keeps taxon-stratified KO rows and sums
the strata of each KO; filter keeps the KOs present in a KO-to-pathway
mapping, optionally restricted to one pathway category; annotate aggregates
KO abundances per pathway and keys the result by human-readable pathway
names.

The run subcommand chains the three stages for one sample. The batch
subcommand does the same for a directory of samples concurrently; a
malformed sample fails only its own output. Normalization and gene-family
regrouping are external tools whose TSV output this command consumes.

Sample usage:
bio-pathway run \
    --abundance wtA_kofamilies.tsv \
    --mapping ko2pathway.tsv \
    --category xenobiotics \
    --output wtA_pathways.tsv
*/
package main
