// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preproc

// condFrame is one level of conditional-compilation nesting, pushed by
// #ifdef/#ifndef/#if and popped by #endif. #elif and #else mutate the top
// frame in place.
type condFrame struct {
	ParentActive bool
	Condition    bool
	InElse       bool
	Taken        bool
}

// active reports whether source under this frame should be emitted: the
// parent chain is active and this frame's own condition currently holds.
func (f condFrame) active() bool { return f.ParentActive && f.Condition }
