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
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/metagenome/encoding/abundance"
)

// checksum prints a row-order-independent checksum of the table at path, for
// comparing pipeline outputs across runs and machines.
func checksum(path string) error {
	t, err := abundance.ReadPath(path, abundance.ReadOpts{})
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(t.Checksum(), "", "  ")
	if err != nil {
		log.Panic(err)
	}
	fmt.Println(string(js))
	return nil
}
