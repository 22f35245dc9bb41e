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


// Package scrape collects news articles from the White House news listing.
//
// The listing page is parsed for article links: the first anchor inside each
// h2 heading. Links already recorded in a SeenLinks file are skipped and new
// ones are appended to it before their pages are fetched, so a link is only
// ever handed out once. Each article page is reduced to its title, meta
// description, publication time, and the main content converted to Markdown.
package scrape
