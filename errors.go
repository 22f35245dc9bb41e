// Copyright 2025 Poiesic Systems
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


package govdigest

import "errors"

// ErrNoProvider is returned when a summarizing component is requested from a
// Digest opened without a completion provider.
var ErrNoProvider = errors.New("digest has no completion provider")

// ErrProviderExists is returned by OpenProvider when the Digest already has a
// completion provider.
var ErrProviderExists = errors.New("digest already has a completion provider")
