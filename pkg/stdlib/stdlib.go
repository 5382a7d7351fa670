// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package stdlib

import "github.com/consensys/cscript/pkg/env"

// Register populates r with the full native catalog: Optional<T>'s
// is_none/is_some/unwrap/unwrap_or, String.len(), Array<T>.len()/push(),
// and the native Point struct. Mirrors EnvironmentBuilder::default in
// original_source's builder/src/environment/mod.rs, which fans out to one
// register(&mut env) call per xstd module.
func Register(r *env.Registry) error {
	registerOptional(r)
	registerString(r)
	registerArray(r)

	return registerStructs(r)
}

// NewRegistry builds a fresh registry with the full native catalog already
// populated, for callers (the CLI, tests) that don't need to layer their
// own native functions on top.
func NewRegistry() (*env.Registry, error) {
	r := env.NewRegistry()
	if err := Register(r); err != nil {
		return nil, err
	}

	return r, nil
}
