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

// Package register fetches executive orders from the Federal Register API.
//
// A single request covers a trailing window of calendar days ending today,
// filtered to presidential documents of the executive order subtype and ordered
// newest first. Each result record becomes one core.Document whose Content is
// the abstract and the body HTML joined by a blank line; null fields are
// treated as empty strings.
//
// Only the first page of results is requested. When the API reports more
// matches than one page holds, the client logs a warning naming how many were
// left behind; raise the page size to cover longer windows.
package register
